package model

// DeviceDescriptor identifies an audio input endpoint. GroupID distinguishes
// physically distinct hardware that exposes multiple logical endpoints.
// The session treats it as an opaque selection token.
type DeviceDescriptor struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	GroupID string `json:"groupId"`
}
