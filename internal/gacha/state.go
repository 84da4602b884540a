package gacha

import (
	"github.com/gourmet-gacha/gacha/internal/apperrors"
	"github.com/gourmet-gacha/gacha/internal/models"
)

// Phase is a step of the presentation flow.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseLoadError
	PhaseDrawing
	PhaseDoneResults
	PhaseDoneEmpty
)

var phaseNames = [...]string{
	PhaseLoading:     "loading",
	PhaseReady:       "ready",
	PhaseLoadError:   "load-error",
	PhaseDrawing:     "drawing",
	PhaseDoneResults: "done-results",
	PhaseDoneEmpty:   "done-empty",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// State is one immutable snapshot of a user session.
// Transitions return a new State and leave the receiver untouched.
//
//	loading -> ready | load-error
//	ready | done-results | done-empty -> drawing -> done-results | done-empty
//	done-empty -> ready (reset, query cleared)
type State struct {
	Phase   Phase
	Query   string
	Dataset *models.Dataset
	Result  models.DrawResult
	Message string // user-facing load failure
}

// NewState returns the initial loading state.
func NewState() State {
	return State{Phase: PhaseLoading}
}

// Loaded moves a loading session to ready with ds.
func (s State) Loaded(ds *models.Dataset) State {
	if s.Phase != PhaseLoading {
		return s
	}
	s.Phase = PhaseReady
	s.Dataset = ds
	return s
}

// LoadFailed moves a loading session to load-error. The error is terminal
// for the session; there is no transition back to loading.
func (s State) LoadFailed(err error) State {
	if s.Phase != PhaseLoading {
		return s
	}
	s.Phase = PhaseLoadError
	s.Message = apperrors.UserMessage(err)
	return s
}

// WithQuery records the text typed by the user.
func (s State) WithQuery(q string) State {
	if !s.CanEdit() {
		return s
	}
	s.Query = q
	return s
}

// BeginDraw enters drawing. It reports false when a draw cannot start,
// including while another draw is in flight.
func (s State) BeginDraw() (State, bool) {
	if !s.CanDraw() {
		return s, false
	}
	s.Phase = PhaseDrawing
	return s, true
}

// Finish completes a draw with result.
func (s State) Finish(result models.DrawResult) State {
	if s.Phase != PhaseDrawing {
		return s
	}
	s.Result = result
	if result.Empty() {
		s.Phase = PhaseDoneEmpty
	} else {
		s.Phase = PhaseDoneResults
	}
	return s
}

// Reset returns an empty outcome to ready with the query cleared.
func (s State) Reset() State {
	if s.Phase != PhaseDoneEmpty {
		return s
	}
	s.Phase = PhaseReady
	s.Query = ""
	s.Result = models.DrawResult{}
	return s
}

// CanDraw reports whether the draw trigger is enabled.
func (s State) CanDraw() bool {
	switch s.Phase {
	case PhaseReady, PhaseDoneResults, PhaseDoneEmpty:
		return true
	default:
		return false
	}
}

// CanEdit reports whether the query input accepts text.
func (s State) CanEdit() bool {
	return s.Phase != PhaseLoading && s.Phase != PhaseLoadError
}
