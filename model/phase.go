package model

// Phase is the current state of the recording session state machine.
type Phase string

const (
	PhaseIdle               Phase = "idle"
	PhaseAwaitingPermission Phase = "awaiting_permission"
	PhaseRecording          Phase = "recording"
	PhasePaused             Phase = "paused"
	PhaseFinalizing         Phase = "finalizing"
	PhaseErrored            Phase = "errored"
)
