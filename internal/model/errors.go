package model

import (
	"errors"
	"fmt"
)

// ValidationReason tells which local check rejected an action
type ValidationReason string

const (
	ReasonInvalidType ValidationReason = "invalid_type"
	ReasonTooLarge    ValidationReason = "too_large"
	ReasonNoImage     ValidationReason = "no_image"
)

// ValidationError is raised before any network activity
type ValidationError struct {
	Reason ValidationReason
	Detail string
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonInvalidType:
		return fmt.Sprintf("invalid file type: %s", e.Detail)
	case ReasonTooLarge:
		return fmt.Sprintf("file too large: %s", e.Detail)
	case ReasonNoImage:
		return "no image chosen"
	default:
		return fmt.Sprintf("validation failed: %s", e.Detail)
	}
}

// ErrNoImage is returned when a submission starts without a selected image
var ErrNoImage = &ValidationError{Reason: ReasonNoImage}

// ErrRequestInFlight is returned when a submission starts while another is outstanding
var ErrRequestInFlight = errors.New("a prediction request is already in flight")

// NetworkError means the request could not complete
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error calling %s: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HTTPStatusError means a response arrived with a non-2xx status
type HTTPStatusError struct {
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP error: status %d: %s", e.StatusCode, e.Body)
}

// ServerReportedError means the payload carried an explicit error field
type ServerReportedError struct {
	Message string
}

func (e *ServerReportedError) Error() string {
	return fmt.Sprintf("server reported an error: %s", e.Message)
}

// MalformedResponseError means the payload matched none of the accepted shapes
type MalformedResponseError struct {
	Payload string
	Err     error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed response (%v): %s", e.Err, e.Payload)
	}
	return fmt.Sprintf("malformed response: %s", e.Payload)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// FailureCategory enumerates the user-visible failure kinds
type FailureCategory int

const (
	FailureUnknown FailureCategory = iota
	FailureInvalidType
	FailureTooLarge
	FailureNoImage
	FailureBusy
	FailureNetwork
	FailureHTTPStatus
	FailureServerReported
	FailureMalformed
)

// String returns a stable name for the category
func (fc FailureCategory) String() string {
	switch fc {
	case FailureInvalidType:
		return "invalid_type"
	case FailureTooLarge:
		return "too_large"
	case FailureNoImage:
		return "no_image"
	case FailureBusy:
		return "busy"
	case FailureNetwork:
		return "network"
	case FailureHTTPStatus:
		return "http_status"
	case FailureServerReported:
		return "server_reported"
	case FailureMalformed:
		return "malformed_response"
	default:
		return "unknown"
	}
}

// CategoryOf classifies an error produced by intake or submission
func CategoryOf(err error) FailureCategory {
	if err == nil {
		return FailureUnknown
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		switch validationErr.Reason {
		case ReasonInvalidType:
			return FailureInvalidType
		case ReasonTooLarge:
			return FailureTooLarge
		case ReasonNoImage:
			return FailureNoImage
		}
		return FailureUnknown
	}

	if errors.Is(err, ErrRequestInFlight) {
		return FailureBusy
	}

	var networkErr *NetworkError
	if errors.As(err, &networkErr) {
		return FailureNetwork
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return FailureHTTPStatus
	}

	var serverErr *ServerReportedError
	if errors.As(err, &serverErr) {
		return FailureServerReported
	}

	var malformedErr *MalformedResponseError
	if errors.As(err, &malformedErr) {
		return FailureMalformed
	}

	return FailureUnknown
}
