package service

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/vilaca/docs-pages/internal/api"
	"github.com/vilaca/docs-pages/internal/domain"
)

// NotFoundPath is where unknown URLs are sent with a search phrase.
const NotFoundPath = "/404"

// SearchPhrase derives a search phrase from a requested path: slashes are
// removed, hyphens become spaces and the first "docs" is dropped.
func SearchPhrase(currentPath string) string {
	phrase := strings.ReplaceAll(currentPath, "/", "")
	phrase = strings.ReplaceAll(phrase, "-", " ")
	phrase = strings.Replace(phrase, "docs", "", 1)
	return strings.TrimSpace(phrase)
}

// DeriveSearchRedirect returns the search-augmented not-found URL for a
// request, or false when currentURL already carries a search.
func DeriveSearchRedirect(currentPath, currentURL string) (string, bool) {
	if strings.Contains(currentURL, "search") {
		return "", false
	}
	return NotFoundPath + "?search=" + url.QueryEscape(SearchPhrase(currentPath)), true
}

// NotFoundPage is everything the not-found view shows.
type NotFoundPage struct {
	Phrase       string
	Hits         []domain.SearchHit
	SearchFailed bool
	Links        domain.LinkPanel
	UIConfig     domain.SearchUIConfig
}

// NotFoundServiceConfig holds the dependencies of a NotFoundService.
type NotFoundServiceConfig struct {
	Search   api.SearchClient // nil disables server-side search
	Links    domain.LinkPanel
	UIConfig domain.SearchUIConfig
	Logger   *slog.Logger
}

// NotFoundService assembles the not-found view.
type NotFoundService struct {
	search   api.SearchClient
	links    domain.LinkPanel
	uiConfig domain.SearchUIConfig
	logger   *slog.Logger
}

// NewNotFoundService creates a not-found service with injected dependencies.
func NewNotFoundService(cfg NotFoundServiceConfig) *NotFoundService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &NotFoundService{
		search:   cfg.Search,
		links:    cfg.Links,
		uiConfig: cfg.UIConfig,
		logger:   logger,
	}
}

// Page builds the not-found view for phrase. Search failures are logged and
// leave the similar-pages panel empty. A blank phrase only searches when
// AutomaticMatchAllQuery is set, and then matches everything.
func (s *NotFoundService) Page(ctx context.Context, phrase string) NotFoundPage {
	page := NotFoundPage{
		Phrase:   phrase,
		Hits:     []domain.SearchHit{},
		Links:    s.links,
		UIConfig: s.uiConfig,
	}

	term := strings.TrimSpace(phrase)
	if s.search == nil || (term == "" && !s.uiConfig.AutomaticMatchAllQuery) {
		return page
	}

	hits, err := s.search.Search(ctx, term, s.uiConfig.NumberOfResults)
	if err != nil {
		s.logger.WarnContext(ctx, "similar pages search failed",
			slog.String("phrase", phrase),
			slog.Any("error", err))
		page.SearchFailed = true
		return page
	}

	page.Hits = hits
	return page
}
