package domain

// Platform constants
const (
	// PlatformGitHub represents the GitHub source-control platform
	PlatformGitHub = "github"
	// PlatformAddSearch represents the hosted search provider
	PlatformAddSearch = "addsearch"
)

// Status report fetch parameters.
const (
	// ReportPageSize is the number of closed pull requests fetched per report.
	ReportPageSize = 30
	// ReportPage is the single page fetched.
	ReportPage = 1
)
