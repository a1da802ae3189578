package filter

import "github.com/akwaba/listing-service/internal/listing/domain"

// Session keeps the draft criteria the user is editing separate from the
// applied criteria driving the current result set. Edits touch only the
// draft; the applied state changes on Apply or Reset, and those are the only
// moments the caller should issue a query.
type Session struct {
	draft   domain.FilterCriteria
	applied domain.FilterCriteria
}

func NewSession() *Session {
	d := domain.DefaultFilter()
	return &Session{draft: d, applied: d}
}

func (s *Session) Draft() domain.FilterCriteria   { return s.draft }
func (s *Session) Applied() domain.FilterCriteria { return s.applied }

// Edit mutates the draft in place through fn. The applied state is untouched.
func (s *Session) Edit(fn func(*domain.FilterCriteria)) {
	fn(&s.draft)
}

// Apply promotes the draft to the applied state and returns a copy for the
// caller to compile and run exactly once.
func (s *Session) Apply() domain.FilterCriteria {
	s.applied = s.draft
	return s.applied
}

// Reset restores the all-permissive default in both states and returns it;
// like Apply, the caller runs a single query with the result.
func (s *Session) Reset() domain.FilterCriteria {
	d := domain.DefaultFilter()
	s.draft = d
	s.applied = d
	return d
}
