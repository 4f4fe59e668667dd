package domain

import (
	"sort"

	"github.com/samber/lo"
)

// LabelSelection is the set of label names checked in the report filter.
// "All checked" is never stored; it is derived against a vocabulary.
type LabelSelection struct {
	names map[string]struct{}
}

// NewLabelSelection returns a selection containing the given names.
func NewLabelSelection(names ...string) LabelSelection {
	s := LabelSelection{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		s.names[n] = struct{}{}
	}
	return s
}

// Toggle checks or unchecks a single label and returns the new selection.
func (s LabelSelection) Toggle(name string, checked bool) LabelSelection {
	next := s.clone()
	if checked {
		next.names[name] = struct{}{}
	} else {
		delete(next.names, name)
	}
	return next
}

// SetAll checks every label of the vocabulary, or clears the selection.
func (s LabelSelection) SetAll(checked bool, vocabulary []string) LabelSelection {
	if !checked {
		return NewLabelSelection()
	}
	return NewLabelSelection(vocabulary...)
}

// AllChecked reports whether every label of a non-empty vocabulary is selected.
func (s LabelSelection) AllChecked(vocabulary []string) bool {
	if len(vocabulary) == 0 {
		return false
	}
	return lo.EveryBy(vocabulary, s.Has)
}

// Has reports whether the label is selected.
func (s LabelSelection) Has(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Len returns the number of selected labels.
func (s LabelSelection) Len() int {
	return len(s.names)
}

// IsEmpty reports whether no label is selected.
func (s LabelSelection) IsEmpty() bool {
	return len(s.names) == 0
}

// Names returns the selected labels sorted alphabetically.
func (s LabelSelection) Names() []string {
	names := lo.Keys(s.names)
	sort.Strings(names)
	return names
}

// Restrict drops names that are not part of the vocabulary.
func (s LabelSelection) Restrict(vocabulary []string) LabelSelection {
	return NewLabelSelection(lo.Filter(vocabulary, func(name string, _ int) bool {
		return s.Has(name)
	})...)
}

func (s LabelSelection) clone() LabelSelection {
	return NewLabelSelection(lo.Keys(s.names)...)
}
