package console

import "errors"

// ErrTransport marks a backend read that was rejected in transit. The
// affected list is left in an explicit failed state; the other list is
// untouched.
var ErrTransport = errors.New("backend transport failure")

// ErrMalformedIdentifier marks click input that does not contain the
// expected delimited structure. Navigation becomes a no-op.
var ErrMalformedIdentifier = errors.New("malformed identifier")
