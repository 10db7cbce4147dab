package question

import (
	"encoding/json"
	"reflect"
	"slices"
	"testing"

	"gopkg.in/yaml.v3"
)

func jsonEqual(t *testing.T, got []byte, want string) {
	t.Helper()
	var g, w any
	if err := json.Unmarshal(got, &g); err != nil {
		t.Fatalf("decoding %s: %v", got, err)
	}
	if err := json.Unmarshal([]byte(want), &w); err != nil {
		t.Fatalf("decoding %s: %v", want, err)
	}
	if !reflect.DeepEqual(g, w) {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		q    Question
		want Kind
	}{
		{"ox", Question{Type: "OX"}, KindOX},
		{"ox lowercase", Question{Type: " ox "}, KindOX},
		{"blank with markers", Question{Type: "빈칸", Text: "금리가 오르면 채권가격은 (상승 / 하락)한다."}, KindStructuredBlank},
		{"blank without markers", Question{Type: "빈칸", Text: "듀레이션의 정의는 ____이다."}, KindFreeForm},
		{"mc label", Question{Type: "객관식", Options: []string{"a", "b"}}, KindMultipleChoice},
		{"mc label without options", Question{Type: "multiple_choice"}, KindFreeForm},
		{"no label with options", Question{Options: []string{"a", "b"}}, KindMultipleChoice},
		{"free form", Question{Type: "주관식"}, KindFreeForm},
		{"unknown label", Question{Type: "일반"}, KindFreeForm},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.q.Kind(); got != tt.want {
				t.Errorf("Kind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCategoryOrDefault(t *testing.T) {
	if got := (Question{}).CategoryOrDefault(); got != DefaultCategory {
		t.Errorf("CategoryOrDefault() = %q, want %q", got, DefaultCategory)
	}
	if got := (Question{Category: " 채권 "}).CategoryOrDefault(); got != "채권" {
		t.Errorf("CategoryOrDefault() = %q, want %q", got, "채권")
	}
}

func TestUnmarshalJSON_NumericAndStringFields(t *testing.T) {
	raw := `[
		{"id": 7, "question": "q1", "options": ["x", "y"], "answer": 2},
		{"id": "A-3", "type": "OX", "question": "q2", "answer": "O"}
	]`

	var qs []Question
	if err := json.Unmarshal([]byte(raw), &qs); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("got %d questions, want 2", len(qs))
	}

	if qs[0].ID != "7" {
		t.Errorf("ID = %q, want 7", qs[0].ID)
	}
	if idx, ok := qs[0].Answer.Index(); !ok || idx != 2 {
		t.Errorf("Answer.Index() = %d, %v; want 2, true", idx, ok)
	}

	if qs[1].ID != "A-3" {
		t.Errorf("ID = %q, want A-3", qs[1].ID)
	}
	if _, ok := qs[1].ID.Number(); ok {
		t.Error("A-3 parsed as a number")
	}
	if qs[1].Answer != "O" {
		t.Errorf("Answer = %q, want O", qs[1].Answer)
	}
}

func TestUnmarshalJSON_RejectsNonScalarID(t *testing.T) {
	var q Question
	if err := json.Unmarshal([]byte(`{"id": true, "question": "q"}`), &q); err == nil {
		t.Error("boolean id accepted")
	}
}

func TestMarshalJSON_KeepsNumericIDs(t *testing.T) {
	tests := []struct {
		q    Question
		want string
	}{
		{Question{ID: "12", Text: "q", Answer: "3"}, `{"id": 12, "question": "q", "answer": 3}`},
		{Question{ID: "007", Text: "q", Answer: "O"}, `{"id": "007", "question": "q", "answer": "O"}`},
	}

	for _, tc := range tests {
		b, err := json.Marshal(tc.q)
		if err != nil {
			t.Fatalf("Marshal(%s): %v", tc.q.ID, err)
		}
		jsonEqual(t, b, tc.want)
	}
}

func TestUnmarshalYAML(t *testing.T) {
	raw := `
- id: 3
  category: 채권
  type: OX
  question: 듀레이션은 만기보다 길 수 없다.
  answer: O
- id: 4
  question: 다음 중 옳은 것은?
  options: [가, 나, 다]
  answer: 3
`
	var qs []Question
	if err := yaml.Unmarshal([]byte(raw), &qs); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("got %d questions, want 2", len(qs))
	}
	if qs[0].ID != "3" || qs[0].Kind() != KindOX {
		t.Errorf("first = %s/%v, want 3/%v", qs[0].ID, qs[0].Kind(), KindOX)
	}
	if qs[1].Answer != "3" || qs[1].Kind() != KindMultipleChoice {
		t.Errorf("second answer/kind = %s/%v, want 3/%v", qs[1].Answer, qs[1].Kind(), KindMultipleChoice)
	}
}

func TestLessID(t *testing.T) {
	tests := []struct {
		a, b ID
		want bool
	}{
		{"2", "10", true},
		{"10", "2", false},
		{"9", "a", true},
		{"a", "9", false},
		{"a", "b", true},
	}
	for _, tc := range tests {
		if got := LessID(tc.a, tc.b); got != tc.want {
			t.Errorf("LessID(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestSortByID(t *testing.T) {
	qs := []Question{{ID: "10"}, {ID: "x"}, {ID: "2"}, {ID: "1"}}
	SortByID(qs)
	var got []ID
	for _, q := range qs {
		got = append(got, q.ID)
	}
	if want := []ID{"1", "2", "10", "x"}; !slices.Equal(got, want) {
		t.Errorf("SortByID = %v, want %v", got, want)
	}
}

func TestCategories(t *testing.T) {
	qs := []Question{{Category: "채권"}, {Category: "주식"}, {}, {Category: "채권"}}
	if got, want := Categories(qs), []string{"기타", "주식", "채권"}; !slices.Equal(got, want) {
		t.Errorf("Categories = %v, want %v", got, want)
	}
}

func TestParseBlanks(t *testing.T) {
	text := "금리가 (상승 / 하락)하면 채권가격은 (상승/하락/불변)한다. (참고: 1장)"
	blanks := ParseBlanks(text)
	if len(blanks) != 2 {
		t.Fatalf("got %d blanks, want 2", len(blanks))
	}
	if want := []string{"상승", "하락"}; !slices.Equal(blanks[0].Options, want) {
		t.Errorf("blank 0 options = %v, want %v", blanks[0].Options, want)
	}
	if want := []string{"상승", "하락", "불변"}; !slices.Equal(blanks[1].Options, want) {
		t.Errorf("blank 1 options = %v, want %v", blanks[1].Options, want)
	}
	if got := text[blanks[0].Start:blanks[0].End]; got != "(상승 / 하락)" {
		t.Errorf("blank 0 span = %q", got)
	}
}

func TestParseBlanks_IgnoresIncompleteMarkers(t *testing.T) {
	for _, text := range []string{"(a / )와 ( / b)는 빈칸이 아니다", "괄호 없는 문장"} {
		if got := ParseBlanks(text); len(got) != 0 {
			t.Errorf("ParseBlanks(%q) = %v, want none", text, got)
		}
	}
}

func TestSegments(t *testing.T) {
	segs := Segments("A는 (B / C)이고 D는 (E / F)")
	if len(segs) != 4 {
		t.Fatalf("got %d segments, want 4", len(segs))
	}
	if want := (Segment{Text: "A는 ", Blank: -1}); segs[0] != want {
		t.Errorf("segs[0] = %+v, want %+v", segs[0], want)
	}
	if want := (Segment{Text: "이고 D는 ", Blank: -1}); segs[2] != want {
		t.Errorf("segs[2] = %+v, want %+v", segs[2], want)
	}
	if segs[1].Blank != 0 || segs[3].Blank != 1 {
		t.Errorf("blank indexes = %d, %d; want 0, 1", segs[1].Blank, segs[3].Blank)
	}

	want := []Segment{{Text: "no markers", Blank: -1}}
	if got := Segments("no markers"); !slices.Equal(got, want) {
		t.Errorf("Segments(no markers) = %+v, want %+v", got, want)
	}
}

func TestSplitAnswerList(t *testing.T) {
	if got := SplitAnswerList(" a , b "); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("SplitAnswerList = %q, want [a b]", got)
	}
	if got := SplitAnswerList("  "); got != nil {
		t.Errorf("SplitAnswerList(blank) = %q, want nil", got)
	}
}
