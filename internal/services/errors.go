package services

import "errors"

// Sentinel errors surfaced to handlers. Validation and permission
// failures never leave partial state behind.
var (
	ErrPermission = errors.New("you do not have permission to perform this action")

	// Device registry
	ErrInvalidIMEI       = errors.New("invalid imei")
	ErrDuplicateIMEI     = errors.New("imei already registered")
	ErrMissingDeviceInfo = errors.New("make and model name are required")

	// Case manager
	ErrDeviceIneligible    = errors.New("device cannot be reported stolen")
	ErrInvalidRegion       = errors.New("unknown region code")
	ErrMissingCaseDetails  = errors.New("location and circumstances are required")
	ErrMissingTheftTime    = errors.New("date and time of theft is required")
	ErrTheftTimeInFuture   = errors.New("date and time of theft cannot be in the future")
	ErrInvalidOutcome      = errors.New("invalid case resolution outcome")
	ErrCaseAlreadyResolved = errors.New("case has already been resolved")
	// ErrSequenceExhausted is terminal for the (date, region) pair: the
	// 4-digit sequence field is full.
	ErrSequenceExhausted = errors.New("case id sequence limit reached for today in this region")
	// ErrCaseIDContention is transient: the collision retry cap was hit.
	ErrCaseIDContention = errors.New("could not allocate a case id, please retry")

	// Found-report matcher
	ErrNoIdentifyingHints      = errors.New("provide a case id, an imei, or a device description")
	ErrContactRequired         = errors.New("direct contact requires an email or phone number")
	ErrMissingFoundLocation    = errors.New("location found is required")
	ErrMissingFoundTime        = errors.New("date and time found is required")
	ErrFoundTimeInFuture       = errors.New("date and time found cannot be in the future")
	ErrInvalidCondition        = errors.New("unknown device condition")
	ErrInvalidReturnPreference = errors.New("unknown return preference")

	// Auth
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrUserNotFound       = errors.New("user not found")
)
