package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"recbox/model"
)

// timeNow is injectable for tests.
var timeNow = time.Now

// Assemble combines buffered chunks and session metadata into a persistable
// recording. Concatenation preserves emission order byte for byte. It does
// not touch storage; persisting is the session's job, which keeps assembly
// independently testable.
func Assemble(chunks [][]byte, elapsedSeconds int, mimeType string) (*model.Recording, error) {
	total := 0
	for _, c := range chunks {
		total += len(c)
	}
	if total == 0 {
		return nil, fmt.Errorf("no audio captured")
	}

	payload := make([]byte, 0, total)
	for _, c := range chunks {
		payload = append(payload, c...)
	}

	now := timeNow()
	return &model.Recording{
		// uuid rather than a wall-clock id: back-to-back stop/start cycles
		// within one clock tick must not collide.
		ID:        uuid.NewString(),
		Name:      "Recording " + now.Format("2006-01-02 15:04:05"),
		Payload:   payload,
		Duration:  elapsedSeconds,
		MimeType:  mimeType,
		CreatedAt: now,
	}, nil
}
