// Package errorspkg provides common app errors.
package errorspkg

import "errors"

// ErrInternal indicates internal server error.
var ErrInternal = errors.New("internal")

// ErrUnavailable indicates that the underlying store cannot be reached.
var ErrUnavailable = errors.New("storage unavailable")
