package httputils

import (
	"github.com/osstotalsoft/asanarelay/log"
	"go.uber.org/zap"
	"net/http"
)

//RecoveryHandler turns a panic in the pipeline into a 500 json answer
func RecoveryHandler(loggerFactory log.Factory) func(inner http.Handler) http.Handler {
	return func(inner http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					loggerFactory(req.Context()).Error("internal server error", zap.Any("error", err), zap.Stack("stack_trace"))
					w.Header().Set("Content-Type", "application/json; charset=utf-8")
					w.WriteHeader(http.StatusInternalServerError)
					_, _ = w.Write([]byte(`{"error":"internal server error"}`))
				}
			}()

			inner.ServeHTTP(w, req)
		})
	}
}
