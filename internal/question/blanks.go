package question

import (
	"regexp"
	"strings"
)

// blankPattern matches an inline choice marker such as "(증가 / 감소)".
var blankPattern = regexp.MustCompile(`\(([^()]*/[^()]*)\)`)

// Blank is one inline choice marker within a question's text.
type Blank struct {
	Options []string
	Start   int // byte offset of "("
	End     int // byte offset just past ")"
}

// Segment is a piece of question text: either literal text or a blank.
type Segment struct {
	Text  string
	Blank int // index into ParseBlanks result, -1 for literal text
}

// ParseBlanks extracts the inline choice markers from text, in order.
// A marker needs at least two non-empty options.
func ParseBlanks(text string) []Blank {
	var blanks []Blank
	for _, m := range blankPattern.FindAllStringSubmatchIndex(text, -1) {
		parts := strings.Split(text[m[2]:m[3]], "/")
		opts := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p == "" {
				opts = nil
				break
			}
			opts = append(opts, p)
		}
		if len(opts) < 2 {
			continue
		}
		blanks = append(blanks, Blank{Options: opts, Start: m[0], End: m[1]})
	}
	return blanks
}

// Segments splits text into literal and blank segments for rendering.
func Segments(text string) []Segment {
	blanks := ParseBlanks(text)
	if len(blanks) == 0 {
		return []Segment{{Text: text, Blank: -1}}
	}

	var segs []Segment
	pos := 0
	for i, b := range blanks {
		if b.Start > pos {
			segs = append(segs, Segment{Text: text[pos:b.Start], Blank: -1})
		}
		segs = append(segs, Segment{Text: text[b.Start:b.End], Blank: i})
		pos = b.End
	}
	if pos < len(text) {
		segs = append(segs, Segment{Text: text[pos:], Blank: -1})
	}
	return segs
}

// SplitAnswerList splits a comma-separated answer into trimmed parts.
func SplitAnswerList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}
