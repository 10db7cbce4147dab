package question

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ID identifies a question. Banks use either integers or strings; both are
// kept as text and numeric IDs are written back as JSON numbers.
type ID string

// Number returns the integer value of a numeric ID.
func (id ID) Number() (int, bool) {
	n, err := strconv.Atoi(string(id))
	if err != nil {
		return 0, false
	}
	return n, true
}

func (id ID) String() string {
	return string(id)
}

// LessID orders IDs numerically when both are numeric, otherwise lexically.
// Numeric IDs sort before string IDs.
func LessID(a, b ID) bool {
	na, aok := a.Number()
	nb, bok := b.Number()
	switch {
	case aok && bok:
		return na < nb
	case aok:
		return true
	case bok:
		return false
	default:
		return a < b
	}
}

func (id *ID) UnmarshalJSON(b []byte) error {
	s, err := scalarFromJSON(b)
	if err != nil {
		return fmt.Errorf("question id: %w", err)
	}
	*id = ID(s)
	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	return scalarToJSON(string(id))
}

func (id *ID) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("question id: expected scalar, got %s", node.ShortTag())
	}
	*id = ID(strings.TrimSpace(node.Value))
	return nil
}

// AnswerKey is the stored answer. It accepts JSON numbers (multiple choice
// indexes) as well as strings.
type AnswerKey string

// Index returns the 1-based option index of a multiple choice answer.
func (a AnswerKey) Index() (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(string(a)))
	if err != nil {
		return 0, false
	}
	return n, true
}

func (a AnswerKey) String() string {
	return string(a)
}

func (a *AnswerKey) UnmarshalJSON(b []byte) error {
	s, err := scalarFromJSON(b)
	if err != nil {
		return fmt.Errorf("answer: %w", err)
	}
	*a = AnswerKey(s)
	return nil
}

func (a AnswerKey) MarshalJSON() ([]byte, error) {
	return scalarToJSON(string(a))
}

func (a *AnswerKey) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("answer: expected scalar, got %s", node.ShortTag())
	}
	*a = AnswerKey(node.Value)
	return nil
}

// scalarFromJSON decodes a JSON string or number into its text form.
func scalarFromJSON(b []byte) (string, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return "", nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return "", fmt.Errorf("expected string or number: %w", err)
	}
	return n.String(), nil
}

// scalarToJSON writes canonical integers as numbers and everything else as strings.
func scalarToJSON(s string) ([]byte, error) {
	if n, err := strconv.Atoi(s); err == nil && strconv.Itoa(n) == s {
		return []byte(s), nil
	}
	return json.Marshal(s)
}
