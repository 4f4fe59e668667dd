package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/vilaca/docs-pages/internal/api"
	"github.com/vilaca/docs-pages/internal/domain"
)

// AllToggle describes what happened to the "All" checkbox since the last render.
type AllToggle int

const (
	// AllUnchanged means only individual labels were toggled.
	AllUnchanged AllToggle = iota
	// AllSet means "All" was just checked.
	AllSet
	// AllCleared means "All" was just unchecked.
	AllCleared
)

// ReportQuery carries the user's filter state for one report request.
// Zero Start or End select the default window.
type ReportQuery struct {
	Start  time.Time
	End    time.Time
	Labels []string
	All    AllToggle
}

// Resolve computes the label selection against the current vocabulary.
// Names outside the vocabulary are dropped.
func (q ReportQuery) Resolve(vocabulary []string) domain.LabelSelection {
	sel := domain.NewLabelSelection(q.Labels...).Restrict(vocabulary)
	switch q.All {
	case AllSet:
		return sel.SetAll(true, vocabulary)
	case AllCleared:
		return sel.SetAll(false, vocabulary)
	}
	return sel
}

// Report is the computed status report for one request.
type Report struct {
	Owner         string
	Repo          string
	Range         domain.DateRange
	RangeInverted bool
	Vocabulary    []string
	Selection     domain.LabelSelection
	AllChecked    bool
	Entries       []Entry
	Skipped       []string // messages for items left out of Entries
	Fetched       int
}

// ReportServiceConfig holds the dependencies of a ReportService.
type ReportServiceConfig struct {
	Client   api.PullRequestClient
	Pipeline *Pipeline
	Clock    clock.Clock
	Logger   *slog.Logger
	Owner    string
	Repo     string
	Window   time.Duration
}

// ReportService builds status reports from a single pull request fetch.
type ReportService struct {
	client   api.PullRequestClient
	pipeline *Pipeline
	clock    clock.Clock
	logger   *slog.Logger
	owner    string
	repo     string
	window   time.Duration
}

// NewReportService creates a report service with injected dependencies.
func NewReportService(cfg ReportServiceConfig) *ReportService {
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	window := cfg.Window
	if window <= 0 {
		window = domain.DefaultReportWindow
	}

	return &ReportService{
		client:   cfg.Client,
		pipeline: cfg.Pipeline,
		clock:    clk,
		logger:   logger,
		owner:    cfg.Owner,
		repo:     cfg.Repo,
		window:   window,
	}
}

// DefaultRange returns the report window ending now.
func (s *ReportService) DefaultRange() domain.DateRange {
	return domain.NewDefaultDateRange(s.clock.Now(), s.window)
}

// Build fetches pull requests once and renders the report for q.
// Fetch errors are returned as domain.AppError with CodeFetchFailure or
// CodeUnavailable; per-item failures are logged and listed in Report.Skipped.
func (s *ReportService) Build(ctx context.Context, q ReportQuery) (*Report, error) {
	prs, err := s.client.ListClosedPullRequests(ctx, s.owner, s.repo)
	if err != nil {
		return nil, classifyFetchError(err)
	}

	rng := s.DefaultRange()
	if !q.Start.IsZero() {
		rng.Start = q.Start
	}
	if !q.End.IsZero() {
		rng.End = q.End
	}

	vocabulary := LabelVocabulary(prs)
	sel := q.Resolve(vocabulary)

	report := &Report{
		Owner:         s.owner,
		Repo:          s.repo,
		Range:         rng,
		RangeInverted: !rng.Valid(),
		Vocabulary:    vocabulary,
		Selection:     sel,
		AllChecked:    sel.AllChecked(vocabulary),
		Entries:       []Entry{},
		Fetched:       len(prs),
	}

	for entry, err := range s.pipeline.Entries(prs, rng, sel) {
		if err != nil {
			if !domain.IsRecoverable(err) {
				return nil, err
			}
			s.logger.WarnContext(ctx, "skipping pull request",
				slog.String("code", string(domain.CodeOf(err))),
				slog.Any("error", err))
			report.Skipped = append(report.Skipped, err.Error())
			continue
		}
		report.Entries = append(report.Entries, entry)
	}

	s.logger.DebugContext(ctx, "status report built",
		slog.Int("fetched", report.Fetched),
		slog.Int("entries", len(report.Entries)),
		slog.Int("skipped", len(report.Skipped)),
		slog.Int("labels", len(vocabulary)))

	return report, nil
}

func classifyFetchError(err error) error {
	var transportErr *api.TransportError
	if errors.As(err, &transportErr) {
		return domain.WrapError(err, domain.CodeUnavailable, "source-control API is unreachable")
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return domain.WrapError(err, domain.CodeUnavailable, "pull request fetch did not complete")
	}
	return domain.WrapError(err, domain.CodeFetchFailure, "failed to fetch pull requests")
}
