package service

import "errors"

// Service-level error taxonomy. Handlers map these to HTTP statuses; nothing
// below this layer knows about HTTP.
var (
	// ErrUnauthenticated means no identity could be resolved (401)
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden means the caller's role or site membership is insufficient (403)
	ErrForbidden = errors.New("access denied")
	// ErrFeatureDisabled means the site exists but the capability is off (403)
	ErrFeatureDisabled = errors.New("feature not enabled for this site")
	// ErrSiteNotFound means the target site does not exist (404)
	ErrSiteNotFound = errors.New("site not found")
	// ErrNotFound means the target entity does not exist (404)
	ErrNotFound = errors.New("not found")
	// ErrConflict means a uniqueness constraint was violated (409)
	ErrConflict = errors.New("conflict")
	// ErrInvalidState means the operation is not valid for the entity's
	// current state, e.g. editing a consumed invite (409)
	ErrInvalidState = errors.New("invalid state")
	// ErrValidation means the request is missing or has malformed required
	// fields (400)
	ErrValidation = errors.New("validation failed")
)
