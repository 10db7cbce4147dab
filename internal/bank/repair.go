package bank

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrUnrepairable means the content is still invalid after repair.
var ErrUnrepairable = errors.New("question bank could not be repaired")

var (
	fencePattern      = regexp.MustCompile("```(?:json)?")
	splitArrayPattern = regexp.MustCompile(`\]\s*\[`)
)

// Repair fixes the damage typical of banks pasted together from chat
// output: markdown fences, several arrays back to back, and a missing outer
// bracket. It returns the re-indented JSON and the number of records.
func Repair(content []byte) ([]byte, int, error) {
	s := fencePattern.ReplaceAllString(string(content), "")
	s = splitArrayPattern.ReplaceAllString(s, ", ")
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") {
		s = "[" + s
	}
	if !strings.HasSuffix(s, "]") {
		s += "]"
	}

	var records []json.RawMessage
	if err := json.Unmarshal([]byte(s), &records); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUnrepairable, err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(s), "", "  "); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUnrepairable, err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), len(records), nil
}
