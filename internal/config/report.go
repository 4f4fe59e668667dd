package config

import "time"

// Report selects the repository summarized by the status report.
type Report struct {
	Owner  string        `env:"REPORT_OWNER" envDefault:"pantheon-systems" validate:"required"`
	Repo   string        `env:"REPORT_REPO" envDefault:"documentation" validate:"required"`
	Window time.Duration `env:"REPORT_WINDOW" envDefault:"336h" validate:"gt=0"`
}

// AddSearch configures the hosted search used on the not-found page.
type AddSearch struct {
	URL     string `env:"ADDSEARCH_URL" envDefault:"https://api.addsearch.com" validate:"required,url"`
	SiteKey string `env:"ADDSEARCH_SITE_KEY" envDefault:"a7b957b7a8f57f4cc544c54f289611c6"`
}
