package nav

import (
	"testing"

	"github.com/louisbranch/oauthflow/internal/services/dashboard/session"
	"github.com/stretchr/testify/assert"
)

func TestPresenceCollapsesFailuresToSignedOut(t *testing.T) {
	t.Parallel()

	assert.Equal(t, StatusLoading, New().Status())
	assert.Equal(t, StatusSignedOut, FromState(session.Unauthenticated()).Status())
	assert.Equal(t, StatusSignedOut, FromState(session.TransientError("dial tcp: connection refused")).Status())
	assert.Equal(t, StatusLoading, FromState(session.Loading()).Status())
}

func TestPresenceSignedInChip(t *testing.T) {
	t.Parallel()

	p := FromState(session.Authenticated(session.Profile{Name: "Grace Hopper", Picture: "https://example.com/g.png"}))

	assert.Equal(t, StatusSignedIn, p.Status())
	assert.Equal(t, "Grace", p.FirstName())
	assert.Equal(t, "GH", p.Initials())
	profile, ok := p.Profile()
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/g.png", profile.Picture)
}

func TestPresenceIsStableOnceResolved(t *testing.T) {
	t.Parallel()

	signedOut := FromState(session.Unauthenticated())
	assert.Equal(t, signedOut, signedOut.Apply(session.Authenticated(session.Profile{Name: "Ada"})))

	signedIn := FromState(session.Authenticated(session.Profile{Name: "Ada"}))
	assert.Equal(t, signedIn, signedIn.Apply(session.Unauthenticated()))
}

func TestStatusString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "loading", StatusLoading.String())
	assert.Equal(t, "signed-out", StatusSignedOut.String())
	assert.Equal(t, "signed-in", StatusSignedIn.String())
	assert.Equal(t, "unknown", Status(9).String())
}
