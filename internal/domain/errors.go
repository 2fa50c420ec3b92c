package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database (or is not owned by the
// requesting user; ownership failures are indistinguishable from absence).
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrAnchorMissing is returned when a travel segment references an anchor
// (accommodation or plan item) that does not appear in the day's timeline.
// Kept distinct from ErrNotFound so callers can tell "day gone" from
// "anchor gone"; handlers map both to HTTP 404 with different messages.
var ErrAnchorMissing = errors.New("anchor missing from timeline")

// ErrNotAdjacent is returned when both segment anchors exist in the timeline
// but are not consecutive. Handlers should map this to HTTP 422.
var ErrNotAdjacent = errors.New("anchors not adjacent in timeline")
