package model

// RequestState represents the phase of the prediction request owned by a session
type RequestState string

const (
	// RequestIdle means no request has been made since startup
	RequestIdle RequestState = "Idle"

	// RequestInFlight means a request was sent and its response is awaited
	RequestInFlight RequestState = "InFlight"

	// RequestSucceeded means the last request produced ranked results
	RequestSucceeded RequestState = "Succeeded"

	// RequestFailed means the last request ended on a failure path
	RequestFailed RequestState = "Failed"
)

// String returns the string representation of RequestState
func (rs RequestState) String() string {
	return string(rs)
}

// IsActive returns true while a request is outstanding
func (rs RequestState) IsActive() bool {
	return rs == RequestInFlight
}

// IsFinished returns true if a request completed (successfully or not)
func (rs RequestState) IsFinished() bool {
	return rs == RequestSucceeded || rs == RequestFailed
}
