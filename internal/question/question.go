package question

import (
	"sort"
	"strings"
)

// DefaultCategory is the catch-all label for questions without a category.
const DefaultCategory = "기타"

// Question is a single bank record. It is treated as immutable once loaded.
type Question struct {
	// ID is unique within a bank and stable across reloads.
	ID ID `json:"id" yaml:"id"`

	// Category is an optional subject label.
	Category string `json:"category,omitempty" yaml:"category,omitempty"`

	// Type is the raw type label from the bank ("OX", "빈칸", "객관식", ...).
	// Use Kind for dispatch.
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	// Text is the prompt. Structured blank questions embed inline choice
	// markers of the form "(a / b)".
	Text string `json:"question" yaml:"question"`

	// Context is an optional supplementary block shown above the options.
	Context string `json:"context,omitempty" yaml:"context,omitempty"`

	// Options is populated only for multiple choice questions.
	Options []string `json:"options,omitempty" yaml:"options,omitempty"`

	// Answer is an O/X letter, a comma-separated blank list, or a 1-based
	// index into Options depending on the kind.
	Answer AnswerKey `json:"answer" yaml:"answer"`

	// Explanation is shown after grading.
	Explanation string `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// CategoryOrDefault returns the category label, falling back to DefaultCategory.
func (q Question) CategoryOrDefault() string {
	if c := strings.TrimSpace(q.Category); c != "" {
		return c
	}
	return DefaultCategory
}

// Kind returns the grading variant for this question.
func (q Question) Kind() Kind {
	return kindFor(q.Type, len(q.Options) > 0, len(ParseBlanks(q.Text)) > 0)
}

// Categories returns the sorted distinct categories of qs.
func Categories(qs []Question) []string {
	seen := make(map[string]bool)
	var out []string
	for _, q := range qs {
		c := q.CategoryOrDefault()
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}

// SortByID sorts qs in place by ascending ID.
func SortByID(qs []Question) {
	sort.SliceStable(qs, func(i, j int) bool {
		return LessID(qs[i].ID, qs[j].ID)
	})
}

// Clone returns a shallow copy of qs so callers can reorder it freely.
func Clone(qs []Question) []Question {
	if qs == nil {
		return nil
	}
	out := make([]Question, len(qs))
	copy(out, qs)
	return out
}
