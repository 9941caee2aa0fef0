package model

import "errors"

// Failure taxonomy shared by the session, gateways and repository.
// Callers classify wrapped errors with errors.Is.
var (
	// ErrPermissionDenied means microphone access was refused.
	ErrPermissionDenied = errors.New("microphone permission denied")

	// ErrDeviceUnavailable means the input device could not be opened or
	// failed mid-session.
	ErrDeviceUnavailable = errors.New("audio input device unavailable")

	// ErrInvalidState rejects an operation requested in a phase that
	// forbids it. The offending call has no side effects.
	ErrInvalidState = errors.New("operation not allowed in current phase")

	// ErrPersistenceFailed means a storage read or write transaction
	// failed. After a successful capture this is reported distinctly from
	// capture failures: the audio existed in memory but was not saved.
	ErrPersistenceFailed = errors.New("recording store transaction failed")

	// ErrStorageUnavailable means the local store could not be initialized.
	ErrStorageUnavailable = errors.New("recording store unavailable")
)
