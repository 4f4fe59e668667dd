package service

import (
	"fmt"
	"html/template"
	"iter"
	"regexp"

	"github.com/samber/lo"

	"github.com/vilaca/docs-pages/internal/domain"
	"github.com/vilaca/docs-pages/internal/markdown"
)

// summaryPattern captures the text after a literal "Summary" token, skipping
// leading whitespace, up to the next Markdown heading marker.
var summaryPattern = regexp.MustCompile(`Summary\s*([\s\S]*?)##`)

// Entry is one rendered pull request summary of the status report.
type Entry struct {
	ID     int64         `json:"id"`
	Number int           `json:"number"`
	Title  string        `json:"title"`
	URL    string        `json:"url"`
	HTML   template.HTML `json:"html"`
}

// LinkText returns the label of the link to the pull request page.
func (e Entry) LinkText() string {
	return fmt.Sprintf("PR %d", e.Number)
}

// FilterByDate keeps merged pull requests whose merge time lies in rng.
func FilterByDate(prs []domain.PullRequest, rng domain.DateRange) []domain.PullRequest {
	return lo.Filter(prs, func(pr domain.PullRequest, _ int) bool {
		return pr.MergedAt != nil && rng.Contains(*pr.MergedAt)
	})
}

// FilterByLabels keeps pull requests carrying at least one selected label.
// An empty selection keeps everything, and unlabeled pull requests always pass.
func FilterByLabels(prs []domain.PullRequest, sel domain.LabelSelection) []domain.PullRequest {
	if sel.IsEmpty() {
		return prs
	}
	return lo.Filter(prs, func(pr domain.PullRequest, _ int) bool {
		if len(pr.Labels) == 0 {
			return true
		}
		return lo.SomeBy(pr.Labels, func(l domain.Label) bool {
			return sel.Has(l.Name)
		})
	})
}

// ExtractSummary returns the "Summary" section of a pull request body, or the
// whole body when there is none.
func ExtractSummary(body string) string {
	m := summaryPattern.FindStringSubmatch(body)
	if m == nil {
		return body
	}
	return m[1]
}

// LabelVocabulary returns the distinct label names of prs in first-seen order.
func LabelVocabulary(prs []domain.PullRequest) []string {
	names := lo.FlatMap(prs, func(pr domain.PullRequest, _ int) []string {
		return pr.LabelNames()
	})
	return lo.Uniq(names)
}

// Pipeline turns fetched pull requests into rendered report entries.
type Pipeline struct {
	converter markdown.Converter
}

// NewPipeline creates a pipeline that renders summaries with converter.
func NewPipeline(converter markdown.Converter) *Pipeline {
	return &Pipeline{converter: converter}
}

// Entries filters prs by rng and sel and yields one entry per merged pull
// request, in input order. Items that cannot be rendered yield an error with
// a zero Entry; iteration continues with the next item.
// The sequence is recomputed from its inputs every time it is ranged over.
func (p *Pipeline) Entries(prs []domain.PullRequest, rng domain.DateRange, sel domain.LabelSelection) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		for _, pr := range FilterByLabels(FilterByDate(prs, rng), sel) {
			if !pr.IsMerged() {
				continue
			}

			entry, err := p.render(pr)
			if !yield(entry, err) {
				return
			}
		}
	}
}

func (p *Pipeline) render(pr domain.PullRequest) (Entry, error) {
	if pr.Body == nil {
		return Entry{}, domain.NewError(domain.CodeMalformedItem,
			fmt.Sprintf("pull request #%d has no body", pr.Number))
	}

	html, err := p.converter.ToHTML(ExtractSummary(*pr.Body))
	if err != nil {
		return Entry{}, domain.WrapError(err, domain.CodeRenderFailure,
			fmt.Sprintf("failed to render pull request #%d", pr.Number))
	}

	return Entry{
		ID:     pr.ID,
		Number: pr.Number,
		Title:  pr.Title,
		URL:    pr.WebURL,
		HTML:   html,
	}, nil
}
