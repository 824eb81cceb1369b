// Package dashboard hosts the browser-facing OAuth2 dashboard. It is a
// backend-for-frontend: pages render loading skeletons and each session
// dependent surface resolves its own state through a fragment request that
// probes the backend with the caller's cookies.
package dashboard
