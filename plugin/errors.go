package plugin

import "errors"

var (
	// ErrUnknownPlugin is returned when a label or ID is not registered or
	// a nil descriptor is instantiated.
	ErrUnknownPlugin = errors.New("plugin: unknown plugin")

	// ErrInvalidSampleRate is returned by Instantiate for a sample rate
	// that is not positive and finite.
	ErrInvalidSampleRate = errors.New("plugin: invalid sample rate")

	// ErrPortIndex is returned when a port index is out of range.
	ErrPortIndex = errors.New("plugin: port index out of range")

	// ErrPortBuffer is returned when a buffer cannot back the port.
	ErrPortBuffer = errors.New("plugin: unusable port buffer")

	errDuplicatePlugin = errors.New("plugin: duplicate plugin")
	errReleased        = errors.New("plugin: instance released")
)
