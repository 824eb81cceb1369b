// Package gate holds the protected view's state machine: a page-level wrapper
// that shows its content only once the caller's session resolves as
// authenticated.
package gate

import "github.com/louisbranch/oauthflow/internal/services/dashboard/session"

// Phase is the gate's rendering state.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseUnauthenticated
	PhaseError
	PhaseReady
)

// String returns the phase label used in markup and logs.
func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseUnauthenticated:
		return "unauthenticated"
	case PhaseError:
		return "error"
	case PhaseReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Gate is a value; Apply returns the next gate.
type Gate struct {
	phase   Phase
	profile session.Profile
	detail  string
}

// New returns a gate in PhaseLoading.
func New() Gate { return Gate{phase: PhaseLoading} }

// FromState builds a gate and applies s in one step.
func FromState(s session.State) Gate { return New().Apply(s) }

// Apply transitions out of PhaseLoading. Every other phase is terminal for
// the lifetime of the mount, and a Loading state is ignored.
func (g Gate) Apply(s session.State) Gate {
	if g.phase != PhaseLoading {
		return g
	}
	switch s.Kind {
	case session.KindAuthenticated:
		return Gate{phase: PhaseReady, profile: s.Profile}
	case session.KindUnauthenticated:
		return Gate{phase: PhaseUnauthenticated}
	case session.KindTransientError:
		return Gate{phase: PhaseError, detail: s.Detail}
	default:
		return g
	}
}

// Phase returns the current phase.
func (g Gate) Phase() Phase { return g.phase }

// Profile returns the authenticated profile in PhaseReady.
func (g Gate) Profile() (session.Profile, bool) {
	return g.profile, g.phase == PhaseReady
}

// Detail returns the failure text in PhaseError.
func (g Gate) Detail() string { return g.detail }
