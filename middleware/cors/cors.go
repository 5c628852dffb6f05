package cors

import (
	"github.com/rs/cors"
	"net/http"
)

//Options are the cors options applied to every route
type Options struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CORSFilter provides Cross-Origin Resource Sharing middleware.
// An empty origin list allows any origin.
func CORSFilter(options Options) func(http.Handler) http.Handler {
	origins := options.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"X-Request-Id"},
	})
	return c.Handler
}
