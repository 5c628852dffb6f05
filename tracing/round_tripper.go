package tracing

import (
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	otlog "github.com/opentracing/opentracing-go/log"
	"net/http"
)

type roundTripper struct {
	http.RoundTripper
}

//NewRoundTripper wraps inner with a client span for every upstream call.
//A nil inner uses http.DefaultTransport.
func NewRoundTripper(inner http.RoundTripper) http.RoundTripper {
	if inner == nil {
		inner = http.DefaultTransport
	}
	return &roundTripper{RoundTripper: inner}
}

//RoundTrip starts a span, injects it into the outbound headers and delegates to the wrapped transport
func (rt *roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	sp, _ := opentracing.StartSpanFromContext(req.Context(), "Asana "+req.Method+" "+req.URL.Path)
	defer sp.Finish()

	ext.SpanKindRPCClient.Set(sp)
	ext.Component.Set(sp, "asanarelay")
	ext.HTTPMethod.Set(sp, req.Method)
	ext.HTTPUrl.Set(sp, req.URL.Scheme+"://"+req.URL.Host+req.URL.Path)

	// the injected headers must not leak into the caller's request
	req = req.Clone(req.Context())
	carrier := opentracing.HTTPHeadersCarrier(req.Header)
	_ = sp.Tracer().Inject(sp.Context(), opentracing.HTTPHeaders, carrier)

	resp, err := rt.RoundTripper.RoundTrip(req)
	if err != nil {
		ext.Error.Set(sp, true)
		sp.LogFields(otlog.Error(err))
		return resp, err
	}

	ext.HTTPStatusCode.Set(sp, uint16(resp.StatusCode))
	if resp.StatusCode >= http.StatusBadRequest {
		ext.Error.Set(sp, true)
	}
	return resp, nil
}
