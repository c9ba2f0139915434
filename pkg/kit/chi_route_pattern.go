package kit

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RoutePatternOrPath labels a request by its chi route pattern so that
// /products/{id}/edit does not explode metric cardinality.
func RoutePatternOrPath(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if rp := rc.RoutePattern(); rp != "" {
			return rp
		}
	}
	return r.URL.Path
}
