package tracing

import (
	"github.com/opentracing-contrib/go-stdlib/nethttp"
	"github.com/opentracing/opentracing-go"
	"net/http"
)

//SpanWrapper starts a server span for every inbound request using the global tracer
func SpanWrapper(inner http.Handler) http.Handler {
	tracer := opentracing.GlobalTracer()

	return nethttp.Middleware(tracer, inner, nethttp.OperationNameFunc(func(r *http.Request) string {
		return "HTTP " + r.Method + ":" + r.URL.Path
	}), nethttp.MWSpanObserver(func(span opentracing.Span, r *http.Request) {
		span.SetTag("http.uri", r.URL.EscapedPath())
	}))
}
