package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestLabelSelection_CheckAllThenUncheckOne tests that unchecking one label after
// "check all" leaves every other label selected.
func TestLabelSelection_CheckAllThenUncheckOne(t *testing.T) {
	// Arrange
	vocabulary := []string{"docs", "bug", "release-note"}
	sel := NewLabelSelection().SetAll(true, vocabulary)

	// Act
	sel = sel.Toggle("bug", false)

	// Assert
	assert.Equal(t, []string{"docs", "release-note"}, sel.Names())
	assert.False(t, sel.AllChecked(vocabulary))
}

// TestLabelSelection_AllCheckedIsDerived tests that checking every label one by one
// turns "All" on without any stored flag.
func TestLabelSelection_AllCheckedIsDerived(t *testing.T) {
	// Arrange
	vocabulary := []string{"docs", "bug"}
	sel := NewLabelSelection()

	// Act
	sel = sel.Toggle("docs", true).Toggle("bug", true)

	// Assert
	assert.True(t, sel.AllChecked(vocabulary))
}

func TestLabelSelection_InitialState(t *testing.T) {
	sel := NewLabelSelection()

	assert.True(t, sel.IsEmpty())
	assert.Equal(t, 0, sel.Len())
	assert.False(t, sel.AllChecked(nil))
	assert.False(t, sel.AllChecked([]string{"docs"}))
}

func TestLabelSelection_SetAllFalseClears(t *testing.T) {
	vocabulary := []string{"docs", "bug"}
	sel := NewLabelSelection("docs")

	sel = sel.SetAll(false, vocabulary)

	assert.True(t, sel.IsEmpty())
}

// TestLabelSelection_ToggleDoesNotMutate tests that selections behave as values.
func TestLabelSelection_ToggleDoesNotMutate(t *testing.T) {
	// Arrange
	original := NewLabelSelection("docs")

	// Act
	next := original.Toggle("bug", true)

	// Assert
	assert.False(t, original.Has("bug"))
	assert.True(t, next.Has("bug"))
	assert.True(t, next.Has("docs"))
}

func TestLabelSelection_Restrict(t *testing.T) {
	sel := NewLabelSelection("docs", "gone")

	restricted := sel.Restrict([]string{"docs", "bug"})

	assert.Equal(t, []string{"docs"}, restricted.Names())
}
