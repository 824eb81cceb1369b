// Package routepath defines the dashboard's browser-facing routes.
package routepath

const (
	Root     = "/"
	Products = "/products"
	Hello    = "/hello"
	Profile  = "/me"
	Healthz  = "/healthz"
	Metrics  = "/metrics"

	StaticPrefix    = "/static/"
	FragmentsPrefix = "/fragments/"

	NavFragment      = FragmentsPrefix + "nav"
	ProfileFragment  = FragmentsPrefix + "me"
	ProductsFragment = FragmentsPrefix + "products"
	HelloFragment    = FragmentsPrefix + "hello"
)

// Label maps a request path to a bounded metrics label.
func Label(path string) string {
	switch path {
	case Root, Products, Hello, Profile, Healthz, Metrics,
		NavFragment, ProfileFragment, ProductsFragment, HelloFragment:
		return path
	}
	if len(path) >= len(StaticPrefix) && path[:len(StaticPrefix)] == StaticPrefix {
		return StaticPrefix
	}
	return "other"
}
