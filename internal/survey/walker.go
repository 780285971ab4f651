package survey

import "strings"

// multiSelectDelimiter joins finalized multi-select picks into one stored value.
const multiSelectDelimiter = ", "

// OutcomeKind tags the result of a walker operation.
type OutcomeKind int

const (
	// Advance: the cursor moved; the caller renders the next prompt or
	// triggers completion when IsComplete reports true.
	Advance OutcomeKind = iota
	// Updated: in-place re-render only (multi-select marks changed).
	Updated
	// Reject: the event did not match the current question; nothing mutated.
	Reject
)

// Outcome is the tagged result of applying an event to a session.
// Reason is an i18n message key, set only for Reject.
type Outcome struct {
	Kind   OutcomeKind
	Reason string
}

func advance() Outcome             { return Outcome{Kind: Advance} }
func updated() Outcome             { return Outcome{Kind: Updated} }
func reject(reason string) Outcome { return Outcome{Kind: Reject, Reason: reason} }

// Walker advances sessions through a fixed question schedule. All operations
// are synchronous state transitions over the passed session; the walker never
// performs I/O.
type Walker struct {
	schedule []QuestionSpec
}

func NewWalker(schedule []QuestionSpec) *Walker {
	return &Walker{schedule: schedule}
}

func (w *Walker) Schedule() []QuestionSpec { return w.schedule }

// Current returns the question the cursor points at, or false when the
// session is past the end of the schedule.
func (w *Walker) Current(s *Session) (QuestionSpec, bool) {
	if s.Cursor < 0 || s.Cursor >= len(w.schedule) {
		return QuestionSpec{}, false
	}
	return w.schedule[s.Cursor], true
}

func (w *Walker) IsComplete(s *Session) bool {
	return s.Cursor >= len(w.schedule)
}

// ApplyText handles a typed message against the current question.
func (w *Walker) ApplyText(s *Session, text string) Outcome {
	q, ok := w.Current(s)
	if !ok {
		return reject("already_done")
	}
	switch q.Kind {
	case FreeText, Phone:
		s.Answers[q.Key] = strings.TrimSpace(text)
		s.Cursor++
		return advance()
	case SingleChoice:
		// Typed answers are accepted only on an exact label match; "да" is
		// not "Да".
		val := strings.TrimSpace(text)
		for _, opt := range q.Options {
			if val == opt {
				s.Answers[q.Key] = val
				s.Cursor++
				return advance()
			}
		}
		return reject("need_choice")
	case MultiSelect:
		return reject("need_buttons")
	}
	return reject("need_buttons")
}

// ApplyChoice stores an option picked via button. Valid only while the
// current question is a single choice.
func (w *Walker) ApplyChoice(s *Session, value string) Outcome {
	q, ok := w.Current(s)
	if !ok || q.Kind != SingleChoice {
		return reject("need_buttons")
	}
	s.Answers[q.Key] = value
	s.Cursor++
	return advance()
}

// Toggle flips membership of option in the pending multi-select picks.
// The cursor does not move; the caller re-renders the option marks.
func (w *Walker) Toggle(s *Session, option string) Outcome {
	q, ok := w.Current(s)
	if !ok || q.Kind != MultiSelect {
		return reject("need_buttons")
	}
	s.toggleSelected(option)
	return updated()
}

// FinalizeMultiselect joins the pending picks into one delimited value
// (empty string when nothing was picked), clears them and advances.
func (w *Walker) FinalizeMultiselect(s *Session) Outcome {
	q, ok := w.Current(s)
	if !ok || q.Kind != MultiSelect {
		return reject("need_buttons")
	}
	s.Answers[q.Key] = strings.Join(s.Selected, multiSelectDelimiter)
	s.Selected = nil
	s.Cursor++
	return advance()
}

// ApplyContact stores a shared phone contact verbatim. Valid only while the
// current question asks for a phone.
func (w *Walker) ApplyContact(s *Session, phoneNumber string) Outcome {
	q, ok := w.Current(s)
	if !ok || q.Kind != Phone {
		return reject("need_buttons")
	}
	s.Answers[q.Key] = phoneNumber
	s.Cursor++
	return advance()
}

// JumpTo moves the cursor to the question identified by key without touching
// answers. Used for the leave-contact fast path.
func (w *Walker) JumpTo(s *Session, key string) Outcome {
	for i, q := range w.schedule {
		if q.Key == key {
			s.Cursor = i
			return advance()
		}
	}
	return reject("need_buttons")
}
