package model

import "time"

// Recording is a finished audio capture persisted in the local store.
// The payload is an opaque encoded blob; MimeType describes its encoding.
type Recording struct {
	ID        string    `json:"id" gorm:"primaryKey;size:64"`
	Name      string    `json:"name"`                            // User-editable display name, defaults to a timestamp
	Payload   []byte    `json:"-" gorm:"type:blob"`              // Raw audio data, not exposed in listings
	Duration  int       `json:"duration"`                        // Duration in whole seconds
	MimeType  string    `json:"mimeType"`                        // Content type of Payload
	CreatedAt time.Time `json:"createdAt" gorm:"index:idx_recordings_created_at"`
}

// TableName pins the table name regardless of gorm pluralization settings.
func (Recording) TableName() string {
	return "recordings"
}
