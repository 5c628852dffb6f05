package relay

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
)

const (
	upstreamErrorMessage  = "Error from Asana API"
	transportErrorMessage = "Failed to proxy request to Asana API"
)

//ErrorBody is the json envelope returned for every failed relay call
type ErrorBody struct {
	Error   string          `json:"error"`
	Details json.RawMessage `json:"details,omitempty"`
}

//Translate maps the result of a relay call to the status and json body returned to the caller
func Translate(response Response, err error) (int, interface{}) {
	if err == nil {
		return response.Status, response.Body
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, ErrorBody{Error: validationErr.Message}
	}

	var upstreamErr *UpstreamError
	if errors.As(err, &upstreamErr) {
		return upstreamErr.Status, ErrorBody{Error: upstreamErrorMessage, Details: upstreamErr.Details}
	}

	return http.StatusInternalServerError, ErrorBody{Error: transportErrorMessage}
}
