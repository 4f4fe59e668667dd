package domain

import "time"

// PullRequest represents a closed pull request as returned by the source-control API.
// Body and MergedAt are nil when the API reports null.
type PullRequest struct {
	ID        int64
	Number    int
	Title     string
	Body      *string
	MergedAt  *time.Time // nil if closed without merge
	UpdatedAt time.Time
	Labels    []Label
	WebURL    string // Link to the pull request page on the hosting platform
}

// Label is a categorical tag attached to a pull request.
type Label struct {
	Name string
}

// IsMerged returns true if the pull request carries a merge timestamp.
func (p PullRequest) IsMerged() bool {
	return p.MergedAt != nil
}

// LabelNames returns the names of the pull request's labels in API order.
func (p PullRequest) LabelNames() []string {
	names := make([]string, len(p.Labels))
	for i, l := range p.Labels {
		names[i] = l.Name
	}
	return names
}
