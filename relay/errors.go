package relay

import (
	"encoding/json"
	"fmt"
	"github.com/pkg/errors"
)

//ErrAPIPathRequired is returned for descriptors without an apiPath
var ErrAPIPathRequired = &ValidationError{Message: "apiPath is required"}

//ValidationError reports a malformed descriptor. No outbound call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

//UpstreamError is an answer from the upstream API with a status outside 2xx
type UpstreamError struct {
	Status  int
	Details json.RawMessage
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream responded with status %d", e.Status)
}

//TransportError means no response was received from the upstream API
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "transport failure: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

//Outcome classifies the result of a relay call
type Outcome string

const (
	OutcomeOK              Outcome = "ok"
	OutcomeValidationError Outcome = "validation_error"
	OutcomeUpstreamError   Outcome = "upstream_error"
	OutcomeTransportError  Outcome = "transport_error"
)

//OutcomeOf maps an error returned by ParseDescriptor or Relay.Do to its Outcome.
//Unknown errors count as transport failures.
func OutcomeOf(err error) Outcome {
	var validationErr *ValidationError
	var upstreamErr *UpstreamError
	switch {
	case err == nil:
		return OutcomeOK
	case errors.As(err, &validationErr):
		return OutcomeValidationError
	case errors.As(err, &upstreamErr):
		return OutcomeUpstreamError
	default:
		return OutcomeTransportError
	}
}
