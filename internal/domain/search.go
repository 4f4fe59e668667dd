package domain

// SearchHit is a single result returned by the hosted search service.
type SearchHit struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	URL        string   `json:"url"`
	Highlight  string   `json:"highlight"`
	Categories []string `json:"categories,omitempty"`
}

// SearchUIConfig holds the display flags handed to the hosted search widget.
type SearchUIConfig struct {
	DisplayURL             bool `json:"display_url"`
	DisplayResultsCount    bool `json:"display_resultscount"`
	DisplaySortBy          bool `json:"display_sortby"`
	DisplayCategory        bool `json:"display_category"`
	AutomaticMatchAllQuery bool `json:"automatic_match_all_query"`
	NumberOfResults        int  `json:"number_of_results"`
}

// DefaultSearchUIConfig returns the widget settings used on the not-found page.
func DefaultSearchUIConfig() SearchUIConfig {
	return SearchUIConfig{
		DisplayURL:             true,
		DisplayResultsCount:    false,
		DisplaySortBy:          false,
		DisplayCategory:        true,
		AutomaticMatchAllQuery: false,
		NumberOfResults:        4,
	}
}
