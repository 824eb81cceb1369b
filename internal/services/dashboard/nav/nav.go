// Package nav holds the navigation presence indicator state. Navigation
// chrome never surfaces failures: an unauthenticated caller and a failed
// probe both read as signed out.
package nav

import "github.com/louisbranch/oauthflow/internal/services/dashboard/session"

// Status is the indicator's rendering state.
type Status int

const (
	StatusLoading Status = iota
	StatusSignedOut
	StatusSignedIn
)

// String returns the status label used in markup.
func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSignedOut:
		return "signed-out"
	case StatusSignedIn:
		return "signed-in"
	default:
		return "unknown"
	}
}

// Presence is the indicator state for one mount.
type Presence struct {
	status  Status
	profile session.Profile
}

// New returns a presence in StatusLoading.
func New() Presence { return Presence{status: StatusLoading} }

// FromState builds a presence and applies s in one step.
func FromState(s session.State) Presence { return New().Apply(s) }

// Apply transitions out of StatusLoading only.
func (p Presence) Apply(s session.State) Presence {
	if p.status != StatusLoading {
		return p
	}
	switch s.Kind {
	case session.KindAuthenticated:
		return Presence{status: StatusSignedIn, profile: s.Profile}
	case session.KindUnauthenticated, session.KindTransientError:
		return Presence{status: StatusSignedOut}
	default:
		return p
	}
}

// Status returns the current status.
func (p Presence) Status() Status { return p.status }

// Profile returns the signed-in profile.
func (p Presence) Profile() (session.Profile, bool) {
	return p.profile, p.status == StatusSignedIn
}

// FirstName is the chip label.
func (p Presence) FirstName() string { return p.profile.FirstName() }

// Initials is the chip avatar fallback.
func (p Presence) Initials() string { return p.profile.Initials() }
