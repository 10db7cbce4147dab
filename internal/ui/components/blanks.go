package components

// BlankSelector tracks the learner's pick for each inline choice marker of a
// structured blank question. The screen renders it in place within the text.
type BlankSelector struct {
	Options [][]string
	Choice  []int // -1 while unpicked
	Focus   int
}

// NewBlankSelector creates a selector with nothing picked.
func NewBlankSelector(options [][]string) BlankSelector {
	choice := make([]int, len(options))
	for i := range choice {
		choice[i] = -1
	}
	return BlankSelector{Options: options, Choice: choice}
}

// Cycle moves the focused blank's pick by delta, wrapping around.
func (b *BlankSelector) Cycle(delta int) {
	if len(b.Options) == 0 {
		return
	}
	n := len(b.Options[b.Focus])
	cur := b.Choice[b.Focus]
	if cur < 0 {
		if delta < 0 {
			cur = 0
		} else {
			cur = -1
		}
	}
	b.Choice[b.Focus] = ((cur+delta)%n + n) % n
}

// Pick sets the focused blank to option i and moves focus to the next blank.
// It reports false when i is out of range.
func (b *BlankSelector) Pick(i int) bool {
	if len(b.Options) == 0 || i < 0 || i >= len(b.Options[b.Focus]) {
		return false
	}
	b.Choice[b.Focus] = i
	if b.Focus < len(b.Options)-1 {
		b.Focus++
	}
	return true
}

// Next moves focus forward, wrapping around.
func (b *BlankSelector) Next() {
	if len(b.Options) > 0 {
		b.Focus = (b.Focus + 1) % len(b.Options)
	}
}

// Prev moves focus backward, wrapping around.
func (b *BlankSelector) Prev() {
	if len(b.Options) > 0 {
		b.Focus = (b.Focus - 1 + len(b.Options)) % len(b.Options)
	}
}

// Complete reports whether every blank has a pick.
func (b BlankSelector) Complete() bool {
	for _, c := range b.Choice {
		if c < 0 {
			return false
		}
	}
	return true
}

// Values returns the picked option text per blank, "" where unpicked.
func (b BlankSelector) Values() []string {
	out := make([]string, len(b.Options))
	for i, c := range b.Choice {
		if c >= 0 {
			out[i] = b.Options[i][c]
		}
	}
	return out
}
