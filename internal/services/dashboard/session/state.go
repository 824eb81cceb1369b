package session

// Kind enumerates session resolution outcomes.
type Kind int

const (
	KindLoading Kind = iota
	KindAuthenticated
	KindUnauthenticated
	KindTransientError
)

// String returns the outcome label used in logs and metrics.
func (k Kind) String() string {
	switch k {
	case KindLoading:
		return "loading"
	case KindAuthenticated:
		return "authenticated"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindTransientError:
		return "transient_error"
	default:
		return "unknown"
	}
}

// State is one consumer's view of the caller's session. Profile is set only
// for KindAuthenticated and Detail only for KindTransientError.
type State struct {
	Kind    Kind
	Profile Profile
	Detail  string
}

// Loading is the state every mount starts in.
func Loading() State { return State{Kind: KindLoading} }

// Authenticated carries the resolved profile.
func Authenticated(profile Profile) State {
	return State{Kind: KindAuthenticated, Profile: profile}
}

// Unauthenticated reports that the backend rejected the caller's credentials.
func Unauthenticated() State { return State{Kind: KindUnauthenticated} }

// TransientError reports a failure that is neither success nor a rejection.
func TransientError(detail string) State {
	return State{Kind: KindTransientError, Detail: detail}
}

// Resolved reports whether s left Loading.
func (s State) Resolved() bool { return s.Kind != KindLoading }
