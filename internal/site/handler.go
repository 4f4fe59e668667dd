package site

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"

	"github.com/vilaca/docs-pages/internal/domain"
	"github.com/vilaca/docs-pages/internal/service"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ReportBuilder builds status reports (Dependency Inversion Principle).
type ReportBuilder interface {
	Build(ctx context.Context, q service.ReportQuery) (*service.Report, error)
}

// NotFoundPager assembles the not-found view.
type NotFoundPager interface {
	Page(ctx context.Context, phrase string) service.NotFoundPage
}

// HandlerConfig holds configuration for creating a new Handler
type HandlerConfig struct {
	Renderer Renderer
	Logger   *slog.Logger
	Reports  ReportBuilder
	NotFound NotFoundPager
	// Location interprets date-only query parameters; defaults to UTC.
	Location *time.Location
	// RequestTimeout bounds upstream calls made for one page; zero means none.
	RequestTimeout time.Duration
}

// Handler handles HTTP requests for the site pages.
type Handler struct {
	renderer       Renderer
	logger         *slog.Logger
	reports        ReportBuilder
	notFound       NotFoundPager
	location       *time.Location
	requestTimeout time.Duration
}

// NewHandler creates a new Handler with injected dependencies.
func NewHandler(cfg HandlerConfig) *Handler {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		renderer:       cfg.Renderer,
		logger:         logger,
		reports:        cfg.Reports,
		notFound:       cfg.NotFound,
		location:       loc,
		requestTimeout: cfg.RequestTimeout,
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/health", h.handleHealth)
	r.Get("/status-report", h.handleStatusReport)
	r.Get("/api/status-report", h.handleStatusReportAPI)
	r.Get(service.NotFoundPath, h.handleNotFoundPage)
	r.NotFound(h.handleNotFound)
}

// handleHealth serves the health check endpoint.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := h.renderer.RenderHealth(w); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render health", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// handleStatusReport serves the status report page.
func (h *Handler) handleStatusReport(w http.ResponseWriter, r *http.Request) {
	query, err := ParseReportQuery(r.URL.Query(), h.location)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	report, err := h.reports.Build(ctx, query)
	if err != nil {
		status := statusFor(err)
		h.logger.ErrorContext(ctx, "failed to build status report",
			slog.Int("status", status),
			slog.Any("error", err))

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		view := ReportErrorView{
			Message:  userMessage(err),
			RetryURL: r.URL.RequestURI(),
		}
		if rerr := h.renderer.RenderStatusReportError(w, view); rerr != nil {
			h.logger.ErrorContext(ctx, "failed to render status report error", slog.Any("error", rerr))
		}
		return
	}

	h.logger.DebugContext(ctx, "status report",
		slog.String("range", rangeLabel(report.Range)),
		slog.Any("labels", report.Selection.Names()),
		slog.Int("entries", len(report.Entries)))

	report.Range = report.Range.In(h.location)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.RenderStatusReport(w, report); err != nil {
		h.logger.ErrorContext(ctx, "failed to render status report", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// LabelState is a label checkbox in the JSON report.
type LabelState struct {
	Name    string `json:"name"`
	Checked bool   `json:"checked"`
}

// ReportResponse is the JSON form of a status report.
type ReportResponse struct {
	Owner         string          `json:"owner"`
	Repo          string          `json:"repo"`
	Start         time.Time       `json:"start"`
	End           time.Time       `json:"end"`
	RangeInverted bool            `json:"range_inverted"`
	AllChecked    bool            `json:"all_checked"`
	Labels        []LabelState    `json:"labels"`
	Entries       []service.Entry `json:"entries"`
	Skipped       []string        `json:"skipped,omitempty"`
	Fetched       int             `json:"fetched"`
}

// NewReportResponse converts a report to its JSON form.
func NewReportResponse(report *service.Report) ReportResponse {
	labels := make([]LabelState, 0, len(report.Vocabulary))
	for _, name := range report.Vocabulary {
		labels = append(labels, LabelState{Name: name, Checked: report.Selection.Has(name)})
	}
	return ReportResponse{
		Owner:         report.Owner,
		Repo:          report.Repo,
		Start:         report.Range.Start,
		End:           report.Range.End,
		RangeInverted: report.RangeInverted,
		AllChecked:    report.AllChecked,
		Labels:        labels,
		Entries:       report.Entries,
		Skipped:       report.Skipped,
		Fetched:       report.Fetched,
	}
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// handleStatusReportAPI serves the status report as JSON.
func (h *Handler) handleStatusReportAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")

	query, err := ParseReportQuery(r.URL.Query(), h.location)
	if err != nil {
		h.writeJSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	report, err := h.reports.Build(ctx, query)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to build status report", slog.Any("error", err))
		code := string(domain.CodeOf(err))
		if code == "" {
			code = "INTERNAL"
		}
		h.writeJSONError(w, r, statusFor(err), code, userMessage(err))
		return
	}

	if err := json.NewEncoder(w).Encode(NewReportResponse(report)); err != nil {
		h.logger.ErrorContext(ctx, "failed to encode status report", slog.Any("error", err))
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var resp errorResponse
	resp.Error.Code = code
	resp.Error.Message = message

	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to encode error", slog.Any("error", err))
	}
}

// handleNotFound redirects unknown URLs to a search, or renders the not-found page.
func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	if target, ok := service.DeriveSearchRedirect(r.URL.Path, r.URL.RequestURI()); ok {
		h.logger.DebugContext(r.Context(), "redirecting to search",
			slog.String("path", r.URL.Path),
			slog.String("target", target))
		http.Redirect(w, r, target, http.StatusFound)
		return
	}

	h.handleNotFoundPage(w, r)
}

// handleNotFoundPage renders the not-found page for the "search" query parameter.
func (h *Handler) handleNotFoundPage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	page := h.notFound.Page(ctx, r.URL.Query().Get("search"))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if err := h.renderer.RenderNotFound(w, page); err != nil {
		h.logger.ErrorContext(ctx, "failed to render not-found page", slog.Any("error", err))
	}
}

func (h *Handler) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.requestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.requestTimeout)
}

// ParseReportQuery reads the report filters from query parameters.
// Dates are YYYY-MM-DD (start of day for start, end of day for end, in loc)
// or RFC 3339 instants. The hidden range_start and range_end fields carry the
// exact bounds of the rendered report; they apply while the matching date
// field still shows their day in loc.
func ParseReportQuery(values url.Values, loc *time.Location) (service.ReportQuery, error) {
	var q service.ReportQuery

	start, err := parseBound(values, "start", "range_start", loc, false)
	if err != nil {
		return q, err
	}
	end, err := parseBound(values, "end", "range_end", loc, true)
	if err != nil {
		return q, err
	}
	q.Start, q.End = start, end

	q.Labels = values["label"]

	allOn := values.Get("all") == "on"
	prevAll := values.Get("prev_all") == "on"
	switch {
	case allOn && !prevAll:
		q.All = service.AllSet
	case !allOn && prevAll:
		q.All = service.AllCleared
	}

	return q, nil
}

func parseBound(values url.Values, dateKey, exactKey string, loc *time.Location, endOfDay bool) (time.Time, error) {
	s := values.Get(dateKey)

	if raw := values.Get(exactKey); raw != "" {
		exact, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid %s %q", exactKey, raw)
		}
		if s == "" || s == exact.In(loc).Format(dateLayout) {
			return exact, nil
		}
	}

	if s == "" {
		return time.Time{}, nil
	}
	t, err := parseDate(s, loc, endOfDay)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s date %q", dateKey, s)
	}
	return t, nil
}

func parseDate(s string, loc *time.Location, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	day, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		return day.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
	}
	return day, nil
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch domain.CodeOf(err) {
	case domain.CodeFetchFailure, domain.CodeUnavailable:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func userMessage(err error) string {
	switch domain.CodeOf(err) {
	case domain.CodeUnavailable:
		return "The pull request service could not be reached. Please try again."
	case domain.CodeFetchFailure:
		return "Pull requests could not be loaded. Please try again."
	}
	return "Something went wrong while building the report."
}
