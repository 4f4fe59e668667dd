package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/vilaca/docs-pages/internal/api"
	"github.com/vilaca/docs-pages/internal/domain"
)

const (
	defaultBaseURL = "https://api.github.com"
	apiVersion     = "2022-11-28"
)

// Client implements api.PullRequestClient for the GitHub REST API.
type Client struct {
	*api.BaseClient
}

// NewClient creates a new GitHub client.
// Uses dependency injection for HTTPClient (IoC).
func NewClient(config api.ClientConfig, httpClient api.HTTPClient) *Client {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		BaseClient: api.NewBaseClient(baseURL, config.Token, httpClient),
	}
}

// ListClosedPullRequests retrieves the most recently updated closed pull requests.
// Only the first page is fetched.
func (c *Client) ListClosedPullRequests(ctx context.Context, owner, repo string) ([]domain.PullRequest, error) {
	query := url.Values{}
	query.Set("state", "closed")
	query.Set("sort", "updated")
	query.Set("direction", "desc")
	query.Set("per_page", strconv.Itoa(domain.ReportPageSize))
	query.Set("page", strconv.Itoa(domain.ReportPage))

	u := fmt.Sprintf("%s/repos/%s/%s/pulls?%s",
		c.BaseURL, url.PathEscape(owner), url.PathEscape(repo), query.Encode())

	var ghPulls []githubPullRequest
	if err := c.GetJSON(ctx, u, c.setHeaders, &ghPulls); err != nil {
		return nil, fmt.Errorf("failed to list pull requests for %s/%s: %w", owner, repo, err)
	}

	return convertPullRequests(ghPulls), nil
}

func (c *Client) setHeaders(h http.Header) {
	if c.Token != "" {
		h.Set("Authorization", "Bearer "+c.Token)
	}
	h.Set("Accept", "application/vnd.github+json")
	h.Set("X-GitHub-Api-Version", apiVersion)
}

// convertPullRequests converts GitHub pull requests to domain models.
func convertPullRequests(ghPulls []githubPullRequest) []domain.PullRequest {
	pulls := make([]domain.PullRequest, 0, len(ghPulls))
	for _, pr := range ghPulls {
		labels := make([]domain.Label, 0, len(pr.Labels))
		for _, l := range pr.Labels {
			labels = append(labels, domain.Label{Name: l.Name})
		}

		webURL := pr.HTMLURL
		if pr.Links.HTML.Href != "" {
			webURL = pr.Links.HTML.Href
		}

		pulls = append(pulls, domain.PullRequest{
			ID:        pr.ID,
			Number:    pr.Number,
			Title:     pr.Title,
			Body:      pr.Body,
			MergedAt:  pr.MergedAt,
			UpdatedAt: pr.UpdatedAt,
			Labels:    labels,
			WebURL:    webURL,
		})
	}
	return pulls
}

// GitHub API response types
type githubPullRequest struct {
	ID        int64         `json:"id"`
	Number    int           `json:"number"`
	Title     string        `json:"title"`
	Body      *string       `json:"body"`
	MergedAt  *time.Time    `json:"merged_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	HTMLURL   string        `json:"html_url"`
	Labels    []githubLabel `json:"labels"`
	Links     githubLinks   `json:"_links"`
}

type githubLabel struct {
	Name string `json:"name"`
}

type githubLinks struct {
	HTML struct {
		Href string `json:"href"`
	} `json:"html"`
}
