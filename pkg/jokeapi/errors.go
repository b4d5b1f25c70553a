package jokeapi

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidArgument is returned when a caller supplied argument fails validation.
	// It is always detected before any network call.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrRemoteUnavailable is returned when the HTTP call can not complete.
	ErrRemoteUnavailable = errors.New("joke API is unavailable")
	// ErrMalformedResponse is returned when the response body can not be decoded,
	// or lacks the fields required to format a joke.
	// The API's not found reply for an unknown id is reported with this kind as well.
	ErrMalformedResponse = errors.New("malformed joke API response")
)
