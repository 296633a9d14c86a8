package panchang

import "errors"

// ErrComputation marks a failed almanac computation. Handlers map it to a
// generic 500; the underlying cause stays in the server logs. Failures are
// never cached, so a retry recomputes.
var ErrComputation = errors.New("almanac computation failed")
