package models

import (
	"errors"

	"github.com/google/uuid"
)

// SessionState is the client-visible view state machine. There is no
// terminal state; a session loops between searching and showing results
// until logout or expiry.
type SessionState string

const (
	StateLoggedOut      SessionState = "logged_out"
	StateSearching      SessionState = "searching"
	StateShowingResults SessionState = "showing_results"
)

// SessionEvent drives state transitions.
type SessionEvent string

const (
	EventLogin     SessionEvent = "login"
	EventSearch    SessionEvent = "search"
	EventNewSearch SessionEvent = "new_search"
	EventLogout    SessionEvent = "logout"
)

var ErrInvalidTransition = errors.New("invalid session transition")

// Session is the explicit session context object owned by the caller: who
// is logged in, where they are in the view flow, and the search input that
// feeds the full-results lookup. It replaces the original design's global
// mutable session flags.
type Session struct {
	ID     uuid.UUID    `json:"id"`
	Email  string       `json:"email"`
	State  SessionState `json:"state"`
	Query  string       `json:"query,omitempty"`
	Domain Domain       `json:"domain,omitempty"`
}

func NewSession(email string) *Session {
	return &Session{
		ID:    uuid.New(),
		Email: email,
		State: StateSearching,
	}
}

// Apply transitions the session for the given event. The search event also
// persists the submitted query and domain as session input; both must be
// present for the transition to happen.
func (s *Session) Apply(event SessionEvent, query string, domain Domain) error {
	switch event {
	case EventLogin:
		if s.State != StateLoggedOut {
			return ErrInvalidTransition
		}
		s.State = StateSearching
		return nil

	case EventSearch:
		if s.State != StateSearching && s.State != StateShowingResults {
			return ErrInvalidTransition
		}
		if query == "" || !domain.Valid() {
			return ErrInvalidTransition
		}
		s.Query = query
		s.Domain = domain
		s.State = StateShowingResults
		return nil

	case EventNewSearch:
		if s.State != StateShowingResults {
			return ErrInvalidTransition
		}
		s.Query = ""
		s.Domain = ""
		s.State = StateSearching
		return nil

	case EventLogout:
		s.Query = ""
		s.Domain = ""
		s.State = StateLoggedOut
		return nil
	}

	return ErrInvalidTransition
}
