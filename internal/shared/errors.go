package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// API and service errors
	ErrAPIRequest           = fmt.Errorf("API request failed")
	ErrServiceUnavailable   = fmt.Errorf("service unavailable")
	ErrClassificationFailed = fmt.Errorf("classification failed")
	ErrTimeout              = fmt.Errorf("operation timed out")

	// Selection and playback errors
	ErrQueryTooShort  = fmt.Errorf("query too short")
	ErrSelectionFull  = fmt.Errorf("selection is full")
	ErrNoPreview      = fmt.Errorf("no preview available")
	ErrPlayerNotFound = fmt.Errorf("audio player not found")

	// Persistence errors
	ErrSessionNotFound = fmt.Errorf("session not found")
	ErrPayloadNotFound = fmt.Errorf("payload not found")
	ErrPayloadExists   = fmt.Errorf("payload already stored")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
