package domain

import "errors"

// ErrUpstream covers AI backend failures: connection errors, non-success
// status, or a malformed stream.
var ErrUpstream = errors.New("upstream AI backend failure")
