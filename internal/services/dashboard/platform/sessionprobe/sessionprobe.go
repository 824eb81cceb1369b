// Package sessionprobe mounts one session consumer for the lifetime of a
// fragment request.
package sessionprobe

import (
	"net/http"

	"github.com/louisbranch/oauthflow/internal/services/dashboard/backend"
	module "github.com/louisbranch/oauthflow/internal/services/dashboard/module"
	"github.com/louisbranch/oauthflow/internal/services/dashboard/session"
)

// Resolve mounts consumer, runs its own probe with the request's cookies and
// waits for the result. ok is false when the request ended first; the caller
// must then write nothing.
func Resolve(r *http.Request, deps module.Dependencies, consumer string) (session.State, bool) {
	ctx := r.Context()
	m := session.Start(ctx, deps.Sessions, backend.CredentialsFromRequest(r),
		session.WithConsumer(consumer),
		session.WithLogger(deps.Log(r)),
		session.WithRecorder(deps.Recorder()),
	)
	defer m.Unmount()
	return m.Wait(ctx)
}
