package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	session := NewSession("user@example.com")

	assert.NotEqual(t, "", session.ID.String())
	assert.Equal(t, "user@example.com", session.Email)
	assert.Equal(t, StateSearching, session.State)
	assert.Empty(t, session.Query)
	assert.Empty(t, session.Domain)
}

func TestSession_Apply_Transitions(t *testing.T) {
	tests := []struct {
		name      string
		from      SessionState
		event     SessionEvent
		query     string
		domain    Domain
		wantState SessionState
		wantErr   error
	}{
		{
			name:      "Login from logged out",
			from:      StateLoggedOut,
			event:     EventLogin,
			wantState: StateSearching,
		},
		{
			name:    "Login while already searching",
			from:    StateSearching,
			event:   EventLogin,
			wantErr: ErrInvalidTransition,
		},
		{
			name:      "Search from searching",
			from:      StateSearching,
			event:     EventSearch,
			query:     "One Piece",
			domain:    DomainAnime,
			wantState: StateShowingResults,
		},
		{
			name:      "Search again from results",
			from:      StateShowingResults,
			event:     EventSearch,
			query:     "Portal",
			domain:    DomainGame,
			wantState: StateShowingResults,
		},
		{
			name:    "Search while logged out",
			from:    StateLoggedOut,
			event:   EventSearch,
			query:   "One Piece",
			domain:  DomainAnime,
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "Search with empty query",
			from:    StateSearching,
			event:   EventSearch,
			query:   "",
			domain:  DomainAnime,
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "Search with invalid domain",
			from:    StateSearching,
			event:   EventSearch,
			query:   "One Piece",
			domain:  Domain("movie"),
			wantErr: ErrInvalidTransition,
		},
		{
			name:      "New search from results",
			from:      StateShowingResults,
			event:     EventNewSearch,
			wantState: StateSearching,
		},
		{
			name:    "New search while searching",
			from:    StateSearching,
			event:   EventNewSearch,
			wantErr: ErrInvalidTransition,
		},
		{
			name:      "Logout from searching",
			from:      StateSearching,
			event:     EventLogout,
			wantState: StateLoggedOut,
		},
		{
			name:      "Logout from results",
			from:      StateShowingResults,
			event:     EventLogout,
			wantState: StateLoggedOut,
		},
		{
			name:    "Unknown event",
			from:    StateSearching,
			event:   SessionEvent("refresh"),
			wantErr: ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := NewSession("user@example.com")
			session.State = tt.from

			err := session.Apply(tt.event, tt.query, tt.domain)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, session.State)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantState, session.State)
		})
	}
}

func TestSession_Apply_SearchStoresInput(t *testing.T) {
	session := NewSession("user@example.com")

	require.NoError(t, session.Apply(EventSearch, "One Piece", DomainAnime))
	assert.Equal(t, "One Piece", session.Query)
	assert.Equal(t, DomainAnime, session.Domain)

	require.NoError(t, session.Apply(EventNewSearch, "", ""))
	assert.Empty(t, session.Query)
	assert.Empty(t, session.Domain)
}

func TestSession_Apply_LogoutClearsInput(t *testing.T) {
	session := NewSession("user@example.com")
	require.NoError(t, session.Apply(EventSearch, "Portal", DomainGame))

	require.NoError(t, session.Apply(EventLogout, "", ""))
	assert.Equal(t, StateLoggedOut, session.State)
	assert.Empty(t, session.Query)
	assert.Empty(t, session.Domain)
}
