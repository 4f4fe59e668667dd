package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vilaca/docs-pages/internal/domain"
)

// mockSearchClient is a test double for api.SearchClient.
type mockSearchClient struct {
	searchFunc func(ctx context.Context, term string, limit int) ([]domain.SearchHit, error)
	terms      []string
}

func (m *mockSearchClient) Search(ctx context.Context, term string, limit int) ([]domain.SearchHit, error) {
	m.terms = append(m.terms, term)
	if m.searchFunc != nil {
		return m.searchFunc(ctx, term, limit)
	}
	return nil, nil
}

func TestSearchPhrase(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "/docs/wordpress-install/", want: "wordpress install"},
		{path: "/docs/", want: ""},
		{path: "/guides/docs-docs", want: "guides docs"},
		{path: "/", want: ""},
		{path: "/backups", want: "backups"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, SearchPhrase(tt.path))
		})
	}
}

// TestDeriveSearchRedirect tests the one-shot redirect decision.
// Follows AAA (Arrange, Act, Assert) pattern.
func TestDeriveSearchRedirect(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		url        string
		wantTarget string
		wantOK     bool
	}{
		{
			name:       "unknown docs page",
			path:       "/docs/wordpress-install",
			url:        "https://docs.example.com/docs/wordpress-install",
			wantTarget: "/404?search=wordpress+install",
			wantOK:     true,
		},
		{
			name:   "search already in progress",
			path:   "/404",
			url:    "https://docs.example.com/404?search=wordpress+install",
			wantOK: false,
		},
		{
			name:       "empty phrase still redirects once",
			path:       "/docs/",
			url:        "/docs/",
			wantTarget: "/404?search=",
			wantOK:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			target, ok := DeriveSearchRedirect(tt.path, tt.url)

			// Assert
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantTarget, target)
		})
	}
}

// TestDeriveSearchRedirect_NoLoop tests that following the redirect never redirects again.
func TestDeriveSearchRedirect_NoLoop(t *testing.T) {
	target, ok := DeriveSearchRedirect("/docs/some-page", "/docs/some-page")
	require.True(t, ok)

	_, again := DeriveSearchRedirect(NotFoundPath, target)

	assert.False(t, again)
}

func TestNotFoundService_Page(t *testing.T) {
	// Arrange
	search := &mockSearchClient{
		searchFunc: func(ctx context.Context, term string, limit int) ([]domain.SearchHit, error) {
			assert.Equal(t, 4, limit)
			return []domain.SearchHit{{ID: "1", Title: "Install WordPress", URL: "/docs/wordpress"}}, nil
		},
	}
	links := domain.LinkPanel{Title: "Popular", Links: []domain.LinkEntry{{Text: "Home", URL: "/"}}}
	svc := NewNotFoundService(NotFoundServiceConfig{
		Search:   search,
		Links:    links,
		UIConfig: domain.DefaultSearchUIConfig(),
		Logger:   discardLogger(),
	})

	// Act
	page := svc.Page(context.Background(), "wordpress")

	// Assert
	assert.Equal(t, []string{"wordpress"}, search.terms)
	require.Len(t, page.Hits, 1)
	assert.Equal(t, "Install WordPress", page.Hits[0].Title)
	assert.Equal(t, links, page.Links)
	assert.False(t, page.SearchFailed)
}

// TestNotFoundService_SearchFailure tests that search errors leave the panel empty.
func TestNotFoundService_SearchFailure(t *testing.T) {
	// Arrange
	search := &mockSearchClient{
		searchFunc: func(ctx context.Context, term string, limit int) ([]domain.SearchHit, error) {
			return nil, errors.New("search unavailable")
		},
	}
	svc := NewNotFoundService(NotFoundServiceConfig{Search: search, UIConfig: domain.DefaultSearchUIConfig(), Logger: discardLogger()})

	// Act
	page := svc.Page(context.Background(), "wordpress")

	// Assert
	assert.True(t, page.SearchFailed)
	assert.Empty(t, page.Hits)
}

func TestNotFoundService_EmptyPhraseSkipsSearch(t *testing.T) {
	search := &mockSearchClient{}
	svc := NewNotFoundService(NotFoundServiceConfig{Search: search, Logger: discardLogger()})

	page := svc.Page(context.Background(), "  ")

	assert.Empty(t, search.terms)
	assert.Empty(t, page.Hits)
}

func TestNotFoundService_NoSearchClient(t *testing.T) {
	svc := NewNotFoundService(NotFoundServiceConfig{Logger: discardLogger()})

	page := svc.Page(context.Background(), "wordpress")

	assert.False(t, page.SearchFailed)
	assert.Empty(t, page.Hits)
}

func TestNotFoundService_EmptyPhraseMatchesAll(t *testing.T) {
	// Arrange
	search := &mockSearchClient{
		searchFunc: func(ctx context.Context, term string, limit int) ([]domain.SearchHit, error) {
			return []domain.SearchHit{{ID: "1", Title: "Welcome", URL: "/docs"}}, nil
		},
	}
	cfg := domain.DefaultSearchUIConfig()
	cfg.AutomaticMatchAllQuery = true
	svc := NewNotFoundService(NotFoundServiceConfig{Search: search, UIConfig: cfg, Logger: discardLogger()})

	// Act
	page := svc.Page(context.Background(), " ")

	// Assert
	assert.Equal(t, []string{""}, search.terms)
	require.Len(t, page.Hits, 1)
}
