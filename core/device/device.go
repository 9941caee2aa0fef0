// Package device wraps platform access to audio input hardware: permission,
// enumeration, stream open and a non-destructive liveness probe.
package device

import "recbox/model"

// Stream is a live handle to an audio input device. It is exclusively held
// by one session or probe at a time; Close releases the hardware.
type Stream interface {
	// ReadFrames blocks until the next buffer of interleaved samples is
	// captured and returns it. The returned slice is reused between calls.
	ReadFrames() ([]int16, error)

	// Start begins capture; Stop suspends it without releasing the device.
	Start() error
	Stop() error

	// Close stops capture and releases the underlying hardware handle.
	Close() error

	SampleRate() int
	Channels() int
}

// Gateway is the device access contract consumed by the recording session.
type Gateway interface {
	// ListInputDevices enumerates available audio input endpoints. It
	// returns an empty slice, never an error, when enumeration fails or
	// permission is denied: callers treat empty as "no usable device".
	ListInputDevices() []model.DeviceDescriptor

	// OpenStream opens a live input stream bound to the given device, or
	// the platform default when deviceID is empty. Failures wrap
	// model.ErrDeviceUnavailable or model.ErrPermissionDenied.
	OpenStream(deviceID string) (Stream, error)

	// Probe opens a stream for the device, verifies it yields live audio,
	// and immediately releases it. Failures collapse to false. Probing
	// never touches a stream already held by an active session.
	Probe(deviceID string) bool
}
