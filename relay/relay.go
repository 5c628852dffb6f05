//Package relay translates a Descriptor into a single call to the Asana API, injecting the
//server held credential, and translates the answer back.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"github.com/osstotalsoft/asanarelay/log"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"io"
	"io/ioutil"
	"net/http"
	"strings"
)

//Upstream is the process wide upstream configuration, read only after startup
type Upstream struct {
	BaseURL    string
	Credential string
}

//Response is a 2xx answer from the upstream API
type Response struct {
	Status int
	Body   json.RawMessage
}

type Relay struct {
	upstream      Upstream
	client        *http.Client
	loggerFactory log.Factory
}

//New creates a Relay. A nil client falls back to http.DefaultClient.
func New(upstream Upstream, client *http.Client, loggerFactory log.Factory) *Relay {
	if client == nil {
		client = http.DefaultClient
	}
	return &Relay{
		upstream:      upstream,
		client:        client,
		loggerFactory: loggerFactory,
	}
}

//TargetURL is the base url and the api path concatenated verbatim, followed by the query string
func (r *Relay) TargetURL(d Descriptor) string {
	target := r.upstream.BaseURL + d.APIPath
	if len(d.QueryParams) > 0 {
		target += "?" + EncodeQuery(d.QueryParams)
	}
	return target
}

//Do issues exactly one upstream call for d. It returns a *ValidationError, an *UpstreamError
//for answers outside 2xx or a *TransportError when no answer was received.
//The call is bound to ctx, so it is cancelled when the inbound request goes away.
func (r *Relay) Do(ctx context.Context, d Descriptor) (Response, error) {
	if d.APIPath == "" {
		return Response{}, ErrAPIPathRequired
	}
	if d.Method == "" {
		d.Method = http.MethodGet
	}

	logger := r.loggerFactory(ctx).With(zap.String("method", d.Method), zap.String("api_path", d.APIPath))

	req, err := r.newRequest(ctx, d)
	if err != nil {
		logger.Error("error proxying Asana request", zap.Error(err))
		return Response{}, &TransportError{Err: err}
	}

	res, err := r.client.Do(req)
	if err != nil {
		logger.Error("error proxying Asana request", zap.Error(err))
		return Response{}, &TransportError{Err: errors.Wrap(err, "perform upstream request")}
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			logger.Debug("close upstream response body failed", zap.Error(err))
		}
	}()

	payload, err := ioutil.ReadAll(res.Body)
	if err != nil {
		logger.Error("error proxying Asana request", zap.Error(err))
		return Response{}, &TransportError{Err: errors.Wrap(err, "read upstream response")}
	}
	body := decodeBody(payload)

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		uerr := &UpstreamError{Status: res.StatusCode, Details: body}
		logger.Error("error proxying Asana request", zap.Error(uerr), zap.Int("status", res.StatusCode))
		return Response{}, uerr
	}

	logger.Debug("request relayed", zap.Int("status", res.StatusCode))
	return Response{Status: res.StatusCode, Body: body}, nil
}

//Handle relays d and returns the status and json body for the caller
func (r *Relay) Handle(ctx context.Context, d Descriptor) (int, interface{}) {
	return Translate(r.Do(ctx, d))
}

func (r *Relay) newRequest(ctx context.Context, d Descriptor) (*http.Request, error) {
	var body io.Reader
	// case sensitive on purpose: "get" still carries a body
	if d.Method != http.MethodGet && hasKeys(d.PostData) {
		var buf bytes.Buffer
		if err := json.Compact(&buf, d.PostData); err != nil {
			return nil, errors.Wrap(err, "encode postData")
		}
		body = &buf
	}

	req, err := http.NewRequestWithContext(ctx, strings.ToUpper(d.Method), r.TargetURL(d), body)
	if err != nil {
		return nil, errors.Wrap(err, "build upstream request")
	}

	req.Header.Set("Authorization", "Bearer "+r.upstream.Credential)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for _, h := range d.APIHeaders {
		req.Header.Set(h.Name, h.Value)
	}

	return req, nil
}

//decodeBody keeps json bodies as they are and turns anything else into a json string
func decodeBody(payload []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) > 0 && json.Valid(trimmed) {
		return json.RawMessage(trimmed)
	}
	b, _ := json.Marshal(string(payload))
	return b
}
