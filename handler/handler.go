package handler

import (
	"encoding/json"
	"github.com/osstotalsoft/asanarelay/log"
	"go.uber.org/zap"
	"net/http"
)

//HealthMessage is returned by the liveness endpoint
const HealthMessage = "Asana Proxy Server is running"

//WriteJSON writes body as json with the given status
func WriteJSON(w http.ResponseWriter, status int, body interface{}, logger log.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	if !bodyAllowedForStatus(status) {
		w.WriteHeader(status)
		return
	}

	payload, err := json.Marshal(body)
	if err != nil {
		logger.Error("cannot marshal response body", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(payload); err != nil {
		logger.Debug("cannot write response body", zap.Error(err))
	}
}

//Health answers liveness probes
func Health(loggerFactory log.Factory) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"message": HealthMessage}, loggerFactory(r.Context()))
	})
}

func bodyAllowedForStatus(status int) bool {
	switch {
	case status >= 100 && status <= 199:
		return false
	case status == http.StatusNoContent:
		return false
	case status == http.StatusNotModified:
		return false
	}
	return true
}
