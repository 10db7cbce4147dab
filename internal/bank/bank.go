// Package bank loads the question bank from disk.
package bank

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/fincert/internal/question"
)

var (
	// ErrNotFound means the bank file does not exist.
	ErrNotFound = errors.New("question bank not found")

	// ErrMalformed means the bank file could not be parsed.
	ErrMalformed = errors.New("question bank malformed")
)

// Bank is a read-only, ordered question collection.
type Bank struct {
	path      string
	questions []question.Question
	byID      map[question.ID]int
	issues    []Issue
}

// New builds a bank from already-parsed questions.
func New(qs []question.Question) *Bank {
	return newBank(qs, nil)
}

// newBank builds a bank; pos maps each question to its source record.
func newBank(qs []question.Question, pos []int) *Bank {
	b := &Bank{
		questions: question.Clone(qs),
		byID:      make(map[question.ID]int, len(qs)),
	}
	for i, q := range b.questions {
		if _, dup := b.byID[q.ID]; !dup {
			b.byID[q.ID] = i
		}
	}
	b.issues = checkRecords(b.questions, pos)
	return b
}

// Load reads a JSON or YAML bank. On any error it still returns a usable,
// empty bank so callers can report "no questions" instead of failing.
func Load(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		empty := New(nil)
		empty.path = path
		if errors.Is(err, fs.ErrNotExist) {
			return empty, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return empty, fmt.Errorf("read question bank: %w", err)
	}

	b, err := Parse(data, formatOf(path))
	b.path = path
	return b, err
}

// Format is the encoding of a bank file.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func formatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Parse decodes bank content. JSON banks are also checked against the bank
// schema. Schema violations and records that fail to decode become issues,
// not errors; only an unreadable document is fatal.
func Parse(data []byte, format Format) (*Bank, error) {
	var (
		qs     []question.Question
		pos    []int
		issues []Issue
	)
	keep := func(i int, q question.Question, err error) {
		if err != nil {
			issues = append(issues, Issue{Index: i, Message: fmt.Sprintf("record skipped: %v", err)})
			return
		}
		qs = append(qs, q)
		pos = append(pos, i)
	}

	switch format {
	case FormatYAML:
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return New(nil), fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		records, err := yamlRecords(&doc)
		if err != nil {
			return New(nil), err
		}
		for i, n := range records {
			var q question.Question
			err := n.Decode(&q)
			keep(i, q, err)
		}
	default:
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			return New(nil), fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		issues = validateSchema(doc)
		var records []json.RawMessage
		if err := json.Unmarshal(data, &records); err != nil {
			return New(nil), fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		for i, raw := range records {
			var q question.Question
			err := json.Unmarshal(raw, &q)
			keep(i, q, err)
		}
	}

	b := newBank(qs, pos)
	b.issues = append(issues, b.issues...)
	return b, nil
}

// yamlRecords returns the items of a top-level YAML sequence.
func yamlRecords(doc *yaml.Node) ([]*yaml.Node, error) {
	if doc.Kind == 0 {
		return nil, nil
	}
	n := doc
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	if n.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: expected a list of questions", ErrMalformed)
	}
	return n.Content, nil
}

// Path returns the file the bank was loaded from, if any.
func (b *Bank) Path() string { return b.path }

// Len returns the number of questions.
func (b *Bank) Len() int { return len(b.questions) }

// Questions returns a copy of the questions in bank order.
func (b *Bank) Questions() []question.Question {
	return question.Clone(b.questions)
}

// Categories returns the sorted distinct categories.
func (b *Bank) Categories() []string {
	return question.Categories(b.questions)
}

// ByID looks up a question by its ID.
func (b *Bank) ByID(id question.ID) (question.Question, bool) {
	i, ok := b.byID[id]
	if !ok {
		return question.Question{}, false
	}
	return b.questions[i], true
}

// Issues returns the validation warnings found while loading.
func (b *Bank) Issues() []Issue {
	out := make([]Issue, len(b.issues))
	copy(out, b.issues)
	return out
}

// Count returns the number of questions per category.
func (b *Bank) Count() map[string]int {
	out := make(map[string]int)
	for _, q := range b.questions {
		out[q.CategoryOrDefault()]++
	}
	return out
}
