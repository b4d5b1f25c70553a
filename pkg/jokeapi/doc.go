// Package jokeapi provides a client for the Official Joke API.
//
// Every call performs a single GET and decodes the body into a typed Joke.
// The client keeps no state between calls: there is no cache, no retry and
// no rate limiting. Failures are reported with one of three kinds, matched
// with errors.Is: ErrInvalidArgument, ErrRemoteUnavailable and
// ErrMalformedResponse.
package jokeapi
