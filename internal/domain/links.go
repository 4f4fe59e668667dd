package domain

// LinkEntry is a single related link shown on the not-found page.
type LinkEntry struct {
	Text string `yaml:"text" json:"text" validate:"required"`
	URL  string `yaml:"url" json:"url" validate:"required"`
}

// LinkPanel is the static "related links" panel of the not-found page.
type LinkPanel struct {
	Title string      `yaml:"title" json:"title" validate:"required"`
	Links []LinkEntry `yaml:"links" json:"links" validate:"dive"`
}
