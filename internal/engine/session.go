// Package engine drives the yearly Fishbanks turn: decision commit,
// the ecological/financial update, salvage amortization, and the
// save/resume cycle against a year-indexed archive.
package engine

import (
	"errors"
	"fmt"

	"github.com/talgya/fishbanks/internal/decision"
	"github.com/talgya/fishbanks/internal/game"
)

// Status tracks where a session is in its lifecycle.
type Status int

const (
	StatusUninitialized Status = iota
	StatusAwaitingSetup
	StatusInProgress
	StatusResumed
)

func (s Status) String() string {
	switch s {
	case StatusUninitialized:
		return "uninitialized"
	case StatusAwaitingSetup:
		return "awaiting_setup"
	case StatusInProgress:
		return "in_progress"
	case StatusResumed:
		return "resumed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Store is the year-indexed snapshot archive the session saves to and
// resumes from.
type Store interface {
	// Reset clears the archive for a fresh game under the given session.
	Reset(sessionID string) error
	// SaveYear archives one year's snapshot, replacing any snapshot
	// already stored for that year.
	SaveYear(snap *game.YearSnapshot) error
	// LoadYear returns the snapshot for a year, or an error satisfying
	// errors.Is(err, persistence.ErrNoArchive) when none exists.
	LoadYear(year int) (*game.YearSnapshot, error)
	// LoadLatest returns the most recently archived year's snapshot.
	LoadLatest() (*game.YearSnapshot, error)
}

// ErrNotConfigured reports an operation that needs a configured session.
var ErrNotConfigured = errors.New("session has no game configured")

// Session owns one game: the state aggregate, the committed decision
// sheet, and the archive. It is single-threaded by contract; there is
// exactly one writer to the state and the fishery fund.
type Session struct {
	State     *game.State
	Decisions *game.DecisionSheet

	store   Store
	status  Status
	resumed bool
}

// NewSession creates an empty session backed by the given archive.
func NewSession(store Store) *Session {
	return &Session{store: store, status: StatusUninitialized}
}

// Status reports the session lifecycle state.
func (s *Session) Status() Status { return s.status }

// Teams returns the configured team count, 0 when unconfigured.
func (s *Session) Teams() int {
	if s.State == nil {
		return 0
	}
	return s.State.Teams
}

// SetTeams configures a new game for the given team count and scenario.
// Counts outside 1..8 are a configuration error, never a silent default.
func (s *Session) SetTeams(teams int, cfg game.Config) error {
	st, err := game.NewState(teams, cfg)
	if err != nil {
		return err
	}
	s.State = st
	s.Decisions = game.NewDecisionSheet(teams)
	s.status = StatusAwaitingSetup
	s.resumed = false
	return nil
}

// ValidateDecisions checks a sheet against the current state.
func (s *Session) ValidateDecisions(d *game.DecisionSheet) (decision.Result, error) {
	if s.State == nil {
		return decision.Result{}, ErrNotConfigured
	}
	return decision.Validate(s.State, d), nil
}

// CommitDecisions applies an already-validated sheet and records it as
// the sheet the next turn (or batch) will run on.
func (s *Session) CommitDecisions(d *game.DecisionSheet) error {
	if s.State == nil {
		return ErrNotConfigured
	}
	decision.Commit(s.State, d)
	s.Decisions = d.Clone()
	s.resumed = false
	return nil
}

// SaveGame archives the current year: the full state, the decision sheet
// that produced it, and the derived worksheet values.
func (s *Session) SaveGame() error {
	if s.State == nil {
		return ErrNotConfigured
	}
	st := s.State
	snap := &game.YearSnapshot{
		SessionID:    st.SessionID,
		Year:         st.Year,
		State:        *st.Clone(),
		Decisions:    *s.Decisions.Clone(),
		SalvageValue: st.SalvageValue,
		ShipIndex:    st.ShipIndex(),
		CatchIndex:   st.CatchIndex(),
		FishIndex:    st.FishIndex(),
	}
	if err := s.store.SaveYear(snap); err != nil {
		return fmt.Errorf("archive year %d: %w", st.Year, err)
	}
	return nil
}
