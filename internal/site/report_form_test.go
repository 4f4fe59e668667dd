package site

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vilaca/docs-pages/internal/domain"
	"github.com/vilaca/docs-pages/internal/logging"
	"github.com/vilaca/docs-pages/internal/markdown"
	"github.com/vilaca/docs-pages/internal/service"
)

var (
	inputPattern = regexp.MustCompile(`<input ([^>]*)>`)
	attrPattern  = regexp.MustCompile(`(\w+)="([^"]*)"`)
)

// formValues returns what a browser would submit for the inputs of page.
func formValues(page string) url.Values {
	values := url.Values{}
	for _, m := range inputPattern.FindAllStringSubmatch(page, -1) {
		attrs := map[string]string{}
		for _, a := range attrPattern.FindAllStringSubmatch(m[1], -1) {
			attrs[a[1]] = html.UnescapeString(a[2])
		}
		if attrs["type"] == "checkbox" && !strings.HasSuffix(m[1], " checked") {
			continue
		}
		values.Add(attrs["name"], attrs["value"])
	}
	return values
}

// stubPullRequests is a test double for api.PullRequestClient.
type stubPullRequests struct {
	prs []domain.PullRequest
}

func (s *stubPullRequests) ListClosedPullRequests(ctx context.Context, owner, repo string) ([]domain.PullRequest, error) {
	return s.prs, nil
}

// recordingReports remembers every report it builds.
type recordingReports struct {
	inner   ReportBuilder
	reports []*service.Report
}

func (r *recordingReports) Build(ctx context.Context, q service.ReportQuery) (*service.Report, error) {
	report, err := r.inner.Build(ctx, q)
	if err == nil {
		r.reports = append(r.reports, report)
	}
	return report, err
}

func mergedAt(t time.Time, number int, label string) domain.PullRequest {
	body := "## Summary\nChange\n## Notes"
	return domain.PullRequest{
		ID:       int64(number),
		Number:   number,
		Body:     &body,
		MergedAt: &t,
		Labels:   []domain.Label{{Name: label}},
		WebURL:   fmt.Sprintf("https://github.com/acme/docs/pull/%d", number),
	}
}

func entryNumbers(report *service.Report) []int {
	numbers := make([]int, 0, len(report.Entries))
	for _, e := range report.Entries {
		numbers = append(numbers, e.Number)
	}
	return numbers
}

// TestStatusReportForm_LabelToggleKeepsRange tests that resubmitting the
// rendered form with one more label leaves the date range untouched.
// Follows AAA (Arrange, Act, Assert) pattern.
func TestStatusReportForm_LabelToggleKeepsRange(t *testing.T) {
	// Arrange
	now := time.Date(2024, 6, 15, 15, 0, 0, 0, time.UTC)
	start := now.Add(-domain.DefaultReportWindow)
	clk := clock.NewMock()
	clk.Set(now)

	client := &stubPullRequests{prs: []domain.PullRequest{
		mergedAt(time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC), 1, "docs"),
		mergedAt(start.Add(-time.Hour), 2, "docs"),
		mergedAt(time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC), 3, "bug"),
	}}
	logger := logging.Discard()
	reports := &recordingReports{inner: service.NewReportService(service.ReportServiceConfig{
		Client:   client,
		Pipeline: service.NewPipeline(markdown.NewConverter()),
		Clock:    clk,
		Logger:   logger,
		Owner:    "acme",
		Repo:     "docs",
	})}
	router := NewRouter(NewHandler(HandlerConfig{
		Renderer: NewHTMLRenderer(),
		Logger:   logger,
		Reports:  reports,
		NotFound: &mockNotFoundPager{},
		Location: time.FixedZone("PDT", -7*60*60),
	}), logger)

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/status-report", nil))
	require.Equal(t, http.StatusOK, first.Code)

	values := formValues(first.Body.String())
	values.Add("label", "docs")

	// Act
	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/status-report?"+values.Encode(), nil))

	// Assert
	require.Equal(t, http.StatusOK, second.Code)
	require.Len(t, reports.reports, 2)
	before, after := reports.reports[0], reports.reports[1]

	assert.True(t, before.Range.Start.Equal(start))
	assert.True(t, after.Range.Start.Equal(before.Range.Start), "start moved to %s", after.Range.Start)
	assert.True(t, after.Range.End.Equal(before.Range.End), "end moved to %s", after.Range.End)
	assert.Equal(t, []int{1, 3}, entryNumbers(before))
	assert.Equal(t, []int{1}, entryNumbers(after))
	assert.Equal(t, []string{"docs"}, after.Selection.Names())
}

func TestStatusReportForm_ShowsDatesInHandlerLocation(t *testing.T) {
	// Arrange
	loc := time.FixedZone("PDT", -7*60*60)
	f := newHandlerFixture()
	f.reports.buildFunc = func(ctx context.Context, q service.ReportQuery) (*service.Report, error) {
		return &service.Report{
			Range: domain.DateRange{
				Start: time.Date(2024, 6, 1, 3, 0, 0, 0, time.UTC),
				End:   time.Date(2024, 6, 15, 3, 0, 0, 0, time.UTC),
			},
			Selection: domain.NewLabelSelection(),
		}, nil
	}
	renderer := NewHTMLRenderer()
	logger := logging.Discard()
	router := NewRouter(NewHandler(HandlerConfig{
		Renderer: renderer,
		Logger:   logger,
		Reports:  f.reports,
		NotFound: f.notFound,
		Location: loc,
	}), logger)

	// Act
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status-report", nil))

	// Assert
	values := formValues(w.Body.String())
	assert.Equal(t, "2024-05-31", values.Get("start"))
	assert.Equal(t, "2024-06-14", values.Get("end"))

	q, err := ParseReportQuery(values, loc)
	require.NoError(t, err)
	assert.True(t, q.Start.Equal(time.Date(2024, 6, 1, 3, 0, 0, 0, time.UTC)))
	assert.True(t, q.End.Equal(time.Date(2024, 6, 15, 3, 0, 0, 0, time.UTC)))
}

func TestParseReportQuery_EditedDateOverridesExactBound(t *testing.T) {
	// Arrange
	values := url.Values{
		"start":       {"2024-05-20"},
		"range_start": {"2024-06-01T15:00:00Z"},
		"end":         {"2024-06-15"},
		"range_end":   {"2024-06-15T15:00:00Z"},
	}

	// Act
	q, err := ParseReportQuery(values, time.UTC)

	// Assert
	require.NoError(t, err)
	assert.True(t, q.Start.Equal(time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)))
	assert.True(t, q.End.Equal(time.Date(2024, 6, 15, 15, 0, 0, 0, time.UTC)))
}

func TestParseReportQuery_InvalidExactBound(t *testing.T) {
	_, err := ParseReportQuery(url.Values{"range_start": {"soon"}}, time.UTC)

	assert.Error(t, err)
}
