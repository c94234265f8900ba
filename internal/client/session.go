package client

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rpggio/labcoats/internal/domain/activity"
	"github.com/rpggio/labcoats/internal/domain/material"
	"github.com/rpggio/labcoats/internal/domain/saved"
)

// CelebrationWindow is how long the success animation runs.
const CelebrationWindow = 3 * time.Second

// State is the phase of a lab session.
type State string

const (
	StateIdle       State = "idle"
	StateSelecting  State = "selecting"
	StateGenerating State = "generating"
	StateDisplaying State = "displaying"
	StateErrored    State = "errored"
)

// ActivityGenerator is the endpoint the session calls.
type ActivityGenerator interface {
	Generate(ctx context.Context, names []string) ([]activity.Activity, error)
}

// Session tracks one user's selection, results and saved list.
type Session struct {
	mu          sync.Mutex
	api         ActivityGenerator
	saved       *saved.Service
	state       State
	selected    []string
	activities  []activity.Activity
	message     string
	celebrating time.Time
	now         func() time.Time
}

// NewSession creates a session in the idle state.
func NewSession(api ActivityGenerator, savedSvc *saved.Service) *Session {
	return &Session{
		api:   api,
		saved: savedSvc,
		state: StateIdle,
		now:   time.Now,
	}
}

// State returns the current phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Message returns the last user-facing notice, if any.
func (s *Session) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// Selected returns the selected material IDs in selection order.
func (s *Session) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.selected)
}

// Activities returns the activities currently displayed.
func (s *Session) Activities() []activity.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.activities)
}

// Celebrating reports whether the success animation is still running.
func (s *Session) Celebrating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now().Before(s.celebrating)
}

// Toggle adds or removes a material from the selection.
func (s *Session) Toggle(id string) error {
	if _, ok := material.Lookup(id); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMaterial, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateGenerating {
		return ErrBusy
	}
	if i := slices.Index(s.selected, id); i >= 0 {
		s.selected = slices.Delete(s.selected, i, i+1)
	} else {
		s.selected = append(s.selected, id)
	}
	s.state = StateSelecting
	s.message = ""
	return nil
}

// Generate requests activities for the current selection. Only one request runs at a time.
func (s *Session) Generate(ctx context.Context) ([]activity.Activity, error) {
	s.mu.Lock()
	if s.state == StateGenerating {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	if len(s.selected) == 0 {
		s.message = MsgNoMaterials
		s.mu.Unlock()
		return nil, ErrNoMaterials
	}
	names := material.ResolveNames(s.selected)
	s.state = StateGenerating
	s.message = ""
	s.mu.Unlock()

	acts, err := s.api.Generate(ctx, names)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateErrored
		s.message = MsgTryAgain
		return nil, err
	}
	s.state = StateDisplaying
	s.activities = acts
	s.celebrating = s.now().Add(CelebrationWindow)
	return slices.Clone(acts), nil
}

// Save appends the displayed activity at index to the saved list.
func (s *Session) Save(ctx context.Context, index int) error {
	s.mu.Lock()
	if s.state != StateDisplaying || index < 0 || index >= len(s.activities) {
		s.mu.Unlock()
		return ErrNothingToSave
	}
	act := s.activities[index]
	s.mu.Unlock()

	return s.saved.Save(ctx, act)
}

// Recent returns the total saved count and the last few saved activities.
func (s *Session) Recent(ctx context.Context) (int, []activity.Activity, error) {
	return s.saved.Summary(ctx)
}
