package survey

import "fleet-survey-bot/internal/i18n"

// Session tracks one user's progress through the schedule. It is mutated
// only by the walker, one event at a time; no two sessions share state.
type Session struct {
	UserID  int64
	Locale  i18n.Locale
	Cursor  int
	Answers map[string]string

	// Selected holds multi-select picks in toggle-on order. A slice with
	// membership checks instead of a set keeps the join order deterministic.
	Selected []string
}

func newSession(userID int64, locale i18n.Locale) *Session {
	return &Session{
		UserID:  userID,
		Locale:  locale,
		Answers: make(map[string]string),
	}
}

func (s *Session) selectedContains(option string) bool {
	for _, v := range s.Selected {
		if v == option {
			return true
		}
	}
	return false
}

// toggleSelected flips membership of option, preserving the order of the
// remaining picks. Returns true if the option is selected afterwards.
func (s *Session) toggleSelected(option string) bool {
	for i, v := range s.Selected {
		if v == option {
			s.Selected = append(s.Selected[:i], s.Selected[i+1:]...)
			return false
		}
	}
	s.Selected = append(s.Selected, option)
	return true
}
