package plugin

import (
	"errors"
	"fmt"
)

// Registry and panel errors. All of them are recoverable: the requested
// action simply had no effect.
var (
	ErrInvalidIndex      = errors.New("invalid index")
	ErrUnknownPluginID   = errors.New("unknown plugin id")
	ErrPluginUnavailable = errors.New("plugin unavailable")
	ErrPanelHidden       = errors.New("plugin panel is hidden")
	ErrEmptyPluginID     = errors.New("plugin id cannot be empty")
	ErrDuplicatePluginID = errors.New("duplicate plugin id")
)

// ErrInvalidField creates an error for an unrecognised descriptor field value
func ErrInvalidField(field, value string) error {
	return fmt.Errorf("invalid %s: %q", field, value)
}

// ErrIndexOutOfRange creates an InvalidIndex error carrying the offending index
func ErrIndexOutOfRange(index, length int) error {
	return fmt.Errorf("%w: %d not in [0,%d)", ErrInvalidIndex, index, length)
}

// ErrUnknown creates an UnknownPluginID error for id
func ErrUnknown(id string) error {
	return fmt.Errorf("%w: %s", ErrUnknownPluginID, id)
}

// ErrUnavailable creates a PluginUnavailable error with a reason
func ErrUnavailable(id, reason string) error {
	return fmt.Errorf("%w: %s (%s)", ErrPluginUnavailable, id, reason)
}
