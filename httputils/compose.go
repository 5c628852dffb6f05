package httputils

import "net/http"

//Compose wraps a handler with the given middlewares; the last one ends up outermost
func Compose(funcs ...func(handler http.Handler) http.Handler) func(handler http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		for _, f := range funcs {
			h = f(h)
		}
		return h
	}
}
