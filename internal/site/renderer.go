package site

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/vilaca/docs-pages/internal/domain"
	"github.com/vilaca/docs-pages/internal/service"
)

const dateLayout = "2006-01-02"

// Renderer handles rendering responses to HTTP clients.
type Renderer interface {
	RenderHealth(w io.Writer) error
	RenderStatusReport(w io.Writer, report *service.Report) error
	RenderStatusReportError(w io.Writer, view ReportErrorView) error
	RenderNotFound(w io.Writer, page service.NotFoundPage) error
}

// ReportErrorView is the user-visible error state of the status report.
type ReportErrorView struct {
	Message  string
	RetryURL string
}

// HTMLRenderer implements Renderer for HTML responses.
// All HTML is embedded in methods, no external templates needed.
type HTMLRenderer struct {
	// highlight keeps the emphasis markup of search snippets and nothing else.
	highlight *bluemonday.Policy
}

// NewHTMLRenderer creates a new HTML renderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{
		highlight: bluemonday.NewPolicy().AllowElements("em", "b", "strong", "mark"),
	}
}

func (r *HTMLRenderer) RenderHealth(w io.Writer) error {
	_, err := w.Write([]byte(`{"status":"ok"}`))
	return err
}

func (r *HTMLRenderer) RenderStatusReport(w io.Writer, report *service.Report) error {
	_, err := io.WriteString(w, r.buildStatusReportHTML(report))
	return err
}

func (r *HTMLRenderer) RenderStatusReportError(w io.Writer, view ReportErrorView) error {
	var sb strings.Builder

	sb.WriteString(htmlHead("Status Report", "Recently merged pull requests"))
	sb.WriteString(`
<body>
	<div class="container">
		`)
	sb.WriteString(buildNavigation())
	sb.WriteString(`
		<main id="report" class="doc-content-well">
			<h2>Recently Merged PRs</h2>
			<div class="notice notice-error" role="alert">`)
	sb.WriteString(escapeHTML(view.Message))
	sb.WriteString(`</div>
			<p><a class="button" href="`)
	sb.WriteString(escapeHTML(view.RetryURL))
	sb.WriteString(`">Retry</a></p>
		</main>
	</div>`)
	sb.WriteString(htmlFooter())

	_, err := io.WriteString(w, sb.String())
	return err
}

func (r *HTMLRenderer) RenderNotFound(w io.Writer, page service.NotFoundPage) error {
	_, err := io.WriteString(w, r.buildNotFoundHTML(page))
	return err
}

// buildStatusReportHTML constructs the status report page.
func (r *HTMLRenderer) buildStatusReportHTML(report *service.Report) string {
	var sb strings.Builder

	sb.WriteString(htmlHead("Status Report", "Recently merged pull requests"))
	sb.WriteString(pageCSS(`
		.filters { display: flex; flex-wrap: wrap; gap: 15px; align-items: center; margin: 20px 0; }
		.filters label { white-space: nowrap; }
		.summary { padding: 10px 0; border-bottom: 1px solid var(--line); }
		.summary-link { font-size: 14px; }
		.repo { color: var(--muted); font-size: 14px; }`))
	sb.WriteString(`
<body>
	<div class="container">
		`)
	sb.WriteString(buildNavigation())
	sb.WriteString(`
		<main id="report" class="doc-content-well">
			<h2>Recently Merged PRs</h2>
			<p class="repo">`)
	sb.WriteString(escapeHTML(report.Owner + "/" + report.Repo))
	sb.WriteString(`</p>
`)
	sb.WriteString(r.buildFilterForm(report))

	if report.RangeInverted {
		sb.WriteString(`			<div class="notice notice-warning">The start date is after the end date, so no pull requests match.</div>
`)
	}
	if n := len(report.Skipped); n > 0 {
		sb.WriteString(fmt.Sprintf(`			<div class="notice notice-warning">%d pull request(s) could not be rendered and were skipped.</div>
`, n))
	}

	sb.WriteString(`			<hr>
			<section id="summaries">
`)
	if len(report.Entries) == 0 {
		sb.WriteString(`				<div class="empty">No merged pull requests match the current filters.</div>
`)
	}
	for _, entry := range report.Entries {
		sb.WriteString(r.buildEntryHTML(entry))
	}
	sb.WriteString(`			</section>
		</main>
	</div>`)
	sb.WriteString(htmlFooter())

	return sb.String()
}

// buildFilterForm renders the date range inputs and label checkboxes.
// range_start and range_end keep the exact bounds so that toggling a label
// does not widen the range to whole days.
// prev_all records whether "All" was checked when the page was rendered, so
// the next request can tell a toggle of "All" from a toggle of one label.
func (r *HTMLRenderer) buildFilterForm(report *service.Report) string {
	var sb strings.Builder

	sb.WriteString(`			<form method="GET" action="/status-report" class="filters" data-autosubmit>
				<label>From <input type="date" name="start" value="`)
	sb.WriteString(report.Range.Start.Format(dateLayout))
	sb.WriteString(`"></label>
				<label>To <input type="date" name="end" value="`)
	sb.WriteString(report.Range.End.Format(dateLayout))
	sb.WriteString(`"></label>
`)
	sb.WriteString(`				<input type="hidden" name="range_start" value="`)
	sb.WriteString(report.Range.Start.Format(time.RFC3339Nano))
	sb.WriteString(`">
				<input type="hidden" name="range_end" value="`)
	sb.WriteString(report.Range.End.Format(time.RFC3339Nano))
	sb.WriteString(`">
`)

	if report.AllChecked {
		sb.WriteString(`				<input type="hidden" name="prev_all" value="on">
`)
	}
	sb.WriteString(`				<label><input type="checkbox" name="all" value="on"`)
	sb.WriteString(checkedAttr(report.AllChecked))
	sb.WriteString(`> All</label>
`)

	for _, name := range report.Vocabulary {
		sb.WriteString(`				<label><input type="checkbox" name="label" value="`)
		sb.WriteString(escapeHTML(name))
		sb.WriteString(`"`)
		sb.WriteString(checkedAttr(report.Selection.Has(name)))
		sb.WriteString(`> `)
		sb.WriteString(escapeHTML(name))
		sb.WriteString(`</label>
`)
	}

	sb.WriteString(`				<noscript><button class="button" type="submit">Apply</button></noscript>
			</form>
`)
	return sb.String()
}

// buildEntryHTML renders one summary followed by a link to its pull request.
// entry.HTML is already sanitized by the markdown converter.
func (r *HTMLRenderer) buildEntryHTML(entry service.Entry) string {
	return fmt.Sprintf(`				<div id="%d" class="summary">
%s
					<span class="summary-link">%s</span>
				</div>
				<br>
`, entry.ID, string(entry.HTML), externalLink(entry.URL, entry.LinkText()))
}

// buildNotFoundHTML constructs the not-found page.
func (r *HTMLRenderer) buildNotFoundHTML(page service.NotFoundPage) string {
	var sb strings.Builder

	sb.WriteString(htmlHead("404", "Zoinks! You've hit a URL that doesn't exist. Let's try a search:"))
	sb.WriteString(pageCSS(`
		.panels { display: flex; gap: 5%; flex-wrap: wrap; }
		.panel { width: 45%; min-width: 280px; }
		.links { list-style-type: none; margin-top: 20px; max-width: 75%; padding: 0; }
		.links li { font-size: 20px; margin-bottom: 20px; padding-bottom: 10px; border-bottom: 1px solid var(--rule); }
		.hits { padding-left: 20px; }
		.hit-highlight { color: var(--muted); font-size: 14px; }
		.results-count { color: var(--muted); font-size: 14px; }`))
	sb.WriteString(`
<body>
	<div class="container">
		`)
	sb.WriteString(buildNavigation())
	sb.WriteString(`
		<div class="doc-content-well">
			<h2>Sorry, there's no page at that URL.</h2>
			<h3>You can try one of the links below, or go <a href="/">back to all docs</a>?</h3>
			<div class="panels">
				<div class="panel">
					<h2 class="subtitle">Similar Pages</h2>
`)
	sb.WriteString(r.buildHitsHTML(page))
	sb.WriteString(`				</div>
				<div class="panel">
					<h2 class="subtitle">`)
	sb.WriteString(escapeHTML(page.Links.Title))
	sb.WriteString(`</h2>
					<ul class="links">
`)
	for _, link := range page.Links.Links {
		sb.WriteString(`						<li>`)
		sb.WriteString(externalLink(link.URL, link.Text))
		sb.WriteString(`</li>
`)
	}
	sb.WriteString(`					</ul>
				</div>
			</div>
		</div>
	</div>`)
	sb.WriteString(htmlFooter())

	return sb.String()
}

// buildHitsHTML renders the similar-pages panel from the server-side search.
func (r *HTMLRenderer) buildHitsHTML(page service.NotFoundPage) string {
	switch {
	case page.SearchFailed:
		return `					<p class="empty">Search is unavailable right now.</p>
`
	case len(page.Hits) == 0:
		return `					<p class="empty">No similar pages found.</p>
`
	}

	var sb strings.Builder
	if page.UIConfig.DisplayResultsCount {
		sb.WriteString(fmt.Sprintf(`					<p class="results-count">%d results</p>
`, len(page.Hits)))
	}
	sb.WriteString(`					<ul class="hits">
`)
	for _, hit := range page.Hits {
		sb.WriteString(`						<li>`)
		sb.WriteString(externalLink(hit.URL, hit.Title))
		if page.UIConfig.DisplayURL {
			sb.WriteString(`<br><small>`)
			sb.WriteString(escapeHTML(hit.URL))
			sb.WriteString(`</small>`)
		}
		if page.UIConfig.DisplayCategory && len(hit.Categories) > 0 {
			sb.WriteString(` <small>[`)
			sb.WriteString(escapeHTML(strings.Join(hit.Categories, ", ")))
			sb.WriteString(`]</small>`)
		}
		if hit.Highlight != "" {
			sb.WriteString(`<br><span class="hit-highlight">`)
			sb.WriteString(r.highlight.Sanitize(hit.Highlight))
			sb.WriteString(`</span>`)
		}
		sb.WriteString(`</li>
`)
	}
	sb.WriteString(`					</ul>
`)
	return sb.String()
}

func checkedAttr(checked bool) string {
	if checked {
		return " checked"
	}
	return ""
}

// rangeLabel formats a date range for log lines.
func rangeLabel(rng domain.DateRange) string {
	return rng.Start.Format(dateLayout) + ".." + rng.End.Format(dateLayout)
}
