package session

import "errors"

// ErrValidation marks a malformed request: nothing was mutated and the
// caller should fix the request rather than retry.
var ErrValidation = errors.New("invalid request")

// ErrSessionNotFound marks an unknown or already-ended session; the caller
// must start a new one.
var ErrSessionNotFound = errors.New("session not found")
