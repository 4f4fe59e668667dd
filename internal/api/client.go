package api

import (
	"context"

	"github.com/vilaca/docs-pages/internal/domain"
)

// PullRequestClient lists pull requests from a source-control platform.
// Consumers depend on this interface, not on the GitHub implementation.
type PullRequestClient interface {
	// ListClosedPullRequests returns one page of closed pull requests,
	// most recently updated first.
	ListClosedPullRequests(ctx context.Context, owner, repo string) ([]domain.PullRequest, error)
}

// SearchClient queries a hosted site-search service.
type SearchClient interface {
	// Search returns at most limit hits for term.
	Search(ctx context.Context, term string, limit int) ([]domain.SearchHit, error)
}

// ClientConfig holds common configuration for API clients.
type ClientConfig struct {
	BaseURL string
	Token   string
}
