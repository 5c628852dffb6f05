package httputils

import (
	"github.com/osstotalsoft/asanarelay/log"
	"github.com/satori/go.uuid"
	"net/http"
)

//RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-Id"

//RequestID reuses the caller's X-Request-Id or generates one, stores it into the request
//context and echoes it on the response
func RequestID(inner http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := req.Header.Get(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewV4().String()
		}
		w.Header().Set(RequestIDHeader, id)
		inner.ServeHTTP(w, req.WithContext(log.WithRequestID(req.Context(), id)))
	})
}
