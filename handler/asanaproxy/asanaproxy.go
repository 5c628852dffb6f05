//Package asanaproxy serves POST /api/asanaproxy: it decodes the relay descriptor, relays it
//to the Asana API and reports the outcome to the audit publisher.
package asanaproxy

import (
	"context"
	"github.com/osstotalsoft/asanarelay/audit"
	"github.com/osstotalsoft/asanarelay/handler"
	"github.com/osstotalsoft/asanarelay/log"
	"github.com/osstotalsoft/asanarelay/relay"
	"go.uber.org/zap"
	"io"
	"io/ioutil"
	"net/http"
	"time"
)

//Path is the route the handler is mounted on
const Path = "/api/asanaproxy"

//MaxBodyBytes bounds the size of an inbound descriptor
const MaxBodyBytes = 100 << 10

type Relayer interface {
	Do(ctx context.Context, d relay.Descriptor) (relay.Response, error)
}

type Handler struct {
	relay         Relayer
	publisher     audit.Publisher
	loggerFactory log.Factory
	now           func() time.Time
}

//New creates the relay endpoint. A nil publisher disables auditing.
func New(r Relayer, publisher audit.Publisher, loggerFactory log.Factory) *Handler {
	if publisher == nil {
		publisher = audit.Nop
	}
	return &Handler{
		relay:         r,
		publisher:     publisher,
		loggerFactory: loggerFactory,
		now:           time.Now,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	start := h.now()
	ctx := req.Context()
	logger := h.loggerFactory(ctx)

	body, err := ioutil.ReadAll(io.LimitReader(req.Body, MaxBodyBytes+1))
	if err != nil {
		logger.Warn("cannot read request body", zap.Error(err))
		handler.WriteJSON(w, http.StatusBadRequest, relay.ErrorBody{Error: "could not read request body"}, logger)
		return
	}
	if len(body) > MaxBodyBytes {
		handler.WriteJSON(w, http.StatusRequestEntityTooLarge, relay.ErrorBody{Error: "request body too large"}, logger)
		return
	}

	descriptor, err := relay.ParseDescriptor(body)
	var response relay.Response
	if err != nil {
		logger.Warn("invalid relay request", zap.Error(err))
	} else {
		response, err = h.relay.Do(ctx, descriptor)
	}

	status, payload := relay.Translate(response, err)
	handler.WriteJSON(w, status, payload, logger)

	h.publish(ctx, logger, audit.Event{
		Method:     descriptor.Method,
		APIPath:    descriptor.APIPath,
		Status:     status,
		Outcome:    string(relay.OutcomeOf(err)),
		DurationMs: h.now().Sub(start).Milliseconds(),
		Timestamp:  start.UTC(),
	})
}

func (h *Handler) publish(ctx context.Context, logger log.Logger, event audit.Event) {
	if id, ok := log.RequestIDFromContext(ctx); ok {
		event.RequestID = id
	}
	if err := h.publisher.Publish(ctx, event); err != nil {
		logger.Warn("cannot publish audit event", zap.Error(err))
	}
}
