package wizard

import "errors"

// Validation errors for the interactive wizard.
var (
	errHostnameRequired = errors.New("hostname is required")
	errHostnameInvalid  = errors.New("hostname must be 1-32 lowercase alphanumeric characters or hyphens, starting and ending with alphanumeric")
	errStorageRequired  = errors.New("a storage pool must be selected")
	errCIDRRequired     = errors.New("address is required")
	errCIDRInvalid      = errors.New("invalid address (expected: x.x.x.x/xx)")
	errGatewayInvalid   = errors.New("invalid gateway address")
	errDBNameInvalid    = errors.New("database identifiers must be 1-32 alphanumeric or underscore characters starting with a letter")
)
