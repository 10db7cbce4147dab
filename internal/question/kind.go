package question

import "strings"

// Kind is the closed set of grading variants.
type Kind int

const (
	KindFreeForm        Kind = iota // Self-graded by the learner
	KindOX                          // True/false as O or X
	KindStructuredBlank             // Inline "(a / b)" markers, comma-separated answer list
	KindMultipleChoice              // Options with a 1-based answer index
)

func (k Kind) String() string {
	switch k {
	case KindOX:
		return "ox"
	case KindStructuredBlank:
		return "blank"
	case KindMultipleChoice:
		return "multiple-choice"
	default:
		return "free-form"
	}
}

var kindAliases = map[string]string{
	"ox":                "ox",
	"o/x":               "ox",
	"o-x":               "ox",
	"빈칸":                "blank",
	"blank":             "blank",
	"fill-in-blank":     "blank",
	"fill-in-the-blank": "blank",
	"cloze":             "blank",
	"객관식":               "mc",
	"multiple-choice":   "mc",
	"mc":                "mc",
	"choice":            "mc",
	"주관식":               "free",
	"단답형":               "free",
	"서술형":               "free",
	"free-form":         "free",
	"freeform":          "free",
	"short":             "free",
	"short-answer":      "free",
}

// kindFor maps a raw type label onto a Kind. Blank-typed questions without
// inline markers cannot be checked structurally and fall back to free-form.
func kindFor(label string, hasOptions, hasMarkers bool) Kind {
	norm := strings.ToLower(strings.TrimSpace(label))
	norm = strings.NewReplacer("_", "-", " ", "-").Replace(norm)

	switch kindAliases[norm] {
	case "ox":
		return KindOX
	case "blank":
		if hasMarkers {
			return KindStructuredBlank
		}
		return KindFreeForm
	case "mc":
		if hasOptions {
			return KindMultipleChoice
		}
		return KindFreeForm
	case "free":
		return KindFreeForm
	}

	if hasOptions {
		return KindMultipleChoice
	}
	return KindFreeForm
}
