package grader

import (
	"testing"

	"github.com/abhisek/fincert/internal/question"
)

func TestGrade_OX(t *testing.T) {
	tests := []struct {
		answer string
		choice string
		want   Verdict
	}{
		{"X이다", "X", Correct},
		{"O 맞음", "X", Incorrect},
		{"O 맞음", "O", Correct},
		{"o", "O", Correct},
		{"X", "x", Incorrect}, // candidate compared exactly
		{"X", "", Incorrect},
		// Explanatory text that happens to contain an O still reads as O.
		{"X (NOT a bond)", "O", Correct},
	}

	for _, tc := range tests {
		q := question.Question{Type: "OX", Answer: question.AnswerKey(tc.answer)}
		got := Grade(q, Candidate{Choice: tc.choice})
		if got != tc.want {
			t.Errorf("Grade(OX %q, %q) = %s, want %s", tc.answer, tc.choice, got, tc.want)
		}
	}
}

func TestGrade_StructuredBlank(t *testing.T) {
	q := question.Question{
		Type:   "빈칸",
		Text:   "금리가 (a / b)하면 가격은 (a / b)한다.",
		Answer: "a, b",
	}

	tests := []struct {
		name   string
		blanks []string
		want   Verdict
	}{
		{"in order", []string{"a", "b"}, Correct},
		{"padded", []string{" a", "b "}, Correct},
		{"swapped", []string{"b", "a"}, Incorrect},
		{"too few", []string{"a"}, Indeterminate},
		{"too many", []string{"a", "b", "c"}, Indeterminate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Grade(q, Candidate{Blanks: tt.blanks})
			if got != tt.want {
				t.Errorf("Grade(blank, %v) = %s, want %s", tt.blanks, got, tt.want)
			}
		})
	}
}

func TestGrade_MultipleChoice(t *testing.T) {
	q := question.Question{Options: []string{"x", "y", "z"}, Answer: "2"}

	tests := []struct {
		choice string
		want   Verdict
	}{
		{"y", Correct},
		{"x", Incorrect},
		{"w", Incorrect}, // not among the options
		{"", Incorrect},
	}

	for _, tc := range tests {
		got := Grade(q, Candidate{Choice: tc.choice})
		if got != tc.want {
			t.Errorf("Grade(mc, %q) = %s, want %s", tc.choice, got, tc.want)
		}
	}
}

func TestGrade_MultipleChoice_BadAnswerIndex(t *testing.T) {
	for _, answer := range []string{"0", "4", "two"} {
		q := question.Question{Options: []string{"x", "y", "z"}, Answer: question.AnswerKey(answer)}
		if got := Grade(q, Candidate{Choice: "x"}); got != Incorrect {
			t.Errorf("Grade(mc answer=%q) = %s, want %s", answer, got, Incorrect)
		}
	}
}

func TestGrade_FreeForm(t *testing.T) {
	q := question.Question{Type: "주관식", Answer: "듀레이션"}
	if got := Grade(q, Candidate{Choice: "듀레이션"}); got != Indeterminate {
		t.Errorf("Grade(free-form) = %s, want %s", got, Indeterminate)
	}
}

func TestGrade_DoesNotMutateQuestion(t *testing.T) {
	q := question.Question{Options: []string{"x", "y"}, Answer: "1"}
	before := append([]string(nil), q.Options...)
	Grade(q, Candidate{Choice: "y"})
	for i := range before {
		if q.Options[i] != before[i] {
			t.Fatalf("options mutated: %v", q.Options)
		}
	}
}

func TestExpectedText(t *testing.T) {
	tests := []struct {
		name string
		q    question.Question
		want string
	}{
		{"ox", question.Question{Type: "OX", Answer: "o (맞음)"}, "O"},
		{"mc", question.Question{Options: []string{"x", "y"}, Answer: "2"}, "2) y"},
		{"blank", question.Question{Type: "빈칸", Text: "(a / b) (c / d)", Answer: "a ,d"}, "a, d"},
		{"free", question.Question{Answer: "시장위험"}, "시장위험"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpectedText(tt.q); got != tt.want {
				t.Errorf("ExpectedText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCandidateEmpty(t *testing.T) {
	if !(Candidate{}).Empty() {
		t.Error("zero candidate should be empty")
	}
	if !(Candidate{Choice: " ", Blanks: []string{"", " "}}).Empty() {
		t.Error("whitespace candidate should be empty")
	}
	if (Candidate{Blanks: []string{"", "a"}}).Empty() {
		t.Error("candidate with a blank filled should not be empty")
	}
}
