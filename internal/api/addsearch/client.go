package addsearch

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/vilaca/docs-pages/internal/api"
	"github.com/vilaca/docs-pages/internal/domain"
)

const defaultBaseURL = "https://api.addsearch.com"

// Client implements api.SearchClient for the AddSearch public search API.
// The site key is public; no token is sent.
type Client struct {
	*api.BaseClient
	siteKey string
}

// NewClient creates a new AddSearch client for the given site key.
func NewClient(config api.ClientConfig, siteKey string, httpClient api.HTTPClient) *Client {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		BaseClient: api.NewBaseClient(baseURL, "", httpClient),
		siteKey:    siteKey,
	}
}

// Search runs a keyword search against the site index.
func (c *Client) Search(ctx context.Context, term string, limit int) ([]domain.SearchHit, error) {
	query := url.Values{}
	query.Set("term", term)
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	u := fmt.Sprintf("%s/v1/search/%s?%s", c.BaseURL, url.PathEscape(c.siteKey), query.Encode())

	var response searchResponse
	if err := c.GetJSON(ctx, u, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to search %q: %w", term, err)
	}

	hits := make([]domain.SearchHit, 0, len(response.Hits))
	for _, h := range response.Hits {
		hits = append(hits, domain.SearchHit{
			ID:         h.ID,
			Title:      h.Title,
			URL:        h.URL,
			Highlight:  h.Highlight,
			Categories: h.Categories,
		})
	}
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// AddSearch API response types
type searchResponse struct {
	Page      int         `json:"page"`
	TotalHits int         `json:"total_hits"`
	Hits      []searchHit `json:"hits"`
}

type searchHit struct {
	ID         string   `json:"id"`
	URL        string   `json:"url"`
	Title      string   `json:"title"`
	Highlight  string   `json:"highlight"`
	Categories []string `json:"categories"`
}
