// Package session resolves whether the caller holds a live backend session.
//
// A Prober performs one request to the backend's session-identity endpoint and
// classifies the reply into a State. A Mount wraps one consumer's probe: it
// starts the probe asynchronously, holds the consumer's local state (Loading
// until resolved), and drops any result that arrives after Unmount. Consumers
// never share probes or results.
package session
