package app

import "errors"

// InvalidRequestError is special error type returned when any request params are invalid.
type InvalidRequestError string

// Error implements error interface.
func (e InvalidRequestError) Error() string {
	return string(e)
}

// IsInvalidRequest tells that this error is 'invalid request'.
// Returns always true.
func (InvalidRequestError) IsInvalidRequest() bool {
	return true
}

// IsInvalidRequestError checks if given error is caused by invalid request.
func IsInvalidRequestError(err error) bool {
	var ire interface {
		IsInvalidRequest() bool
	}
	if errors.As(err, &ire) {
		return ire.IsInvalidRequest()
	}

	return false
}

// TooManyRequestsError is special error type returned when client exceeds call limits.
type TooManyRequestsError string

// Error implements error interface.
func (e TooManyRequestsError) Error() string {
	return string(e)
}

// IsTooManyRequests tells that this error is 'too many requests'.
// Returns always true.
func (TooManyRequestsError) IsTooManyRequests() bool {
	return true
}

// IsTooManyRequestsError checks if given error is caused by exceeding call limits.
func IsTooManyRequestsError(err error) bool {
	var tme interface {
		IsTooManyRequests() bool
	}
	if errors.As(err, &tme) {
		return tme.IsTooManyRequests()
	}

	return false
}

// UnavailableError is special error type returned when an upstream api refuses
// to serve a request (authorization failures, disabled endpoints). Metrics
// failing this way are skipped with a warning instead of failing the cycle.
type UnavailableError string

// Error implements error interface.
func (e UnavailableError) Error() string {
	return string(e)
}

// IsUnavailable tells that this error is 'unavailable'.
// Returns always true.
func (UnavailableError) IsUnavailable() bool {
	return true
}

// IsUnavailableError checks if given error is caused by an unavailable upstream.
func IsUnavailableError(err error) bool {
	var ue interface {
		IsUnavailable() bool
	}
	if errors.As(err, &ue) {
		return ue.IsUnavailable()
	}

	return false
}
