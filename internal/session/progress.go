package session

// Progress returns the fraction of questions answered, counting the current
// one once its result is revealed. It reaches 1.0 at the last reveal.
func (s *Session) Progress() float64 {
	total := len(s.questions)
	if total == 0 {
		return 1
	}
	answered := s.position
	if s.phase == PhaseAnswerRevealed {
		answered++
	}
	if answered > total {
		answered = total
	}
	return float64(answered) / float64(total)
}

// Ordinal is the 1-based number of the current question, for "Q 3/20" labels.
func (s *Session) Ordinal() int {
	if s.position >= len(s.questions) {
		return len(s.questions)
	}
	return s.position + 1
}

// Remaining is the number of questions not yet answered.
func (s *Session) Remaining() int {
	return len(s.questions) - len(s.outcomes)
}
