package session

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
)

func fixedClock(t *testing.T, at time.Time) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time { return at }
	t.Cleanup(func() { timeNow = orig })
}

func TestAssemblePreservesChunkOrder(t *testing.T) {
	chunks := [][]byte{
		{0x01, 0x02},
		{0x03},
		{0x04, 0x05, 0x06},
	}

	rec, err := Assemble(chunks, 7, "audio/L16;rate=44100;channels=1")
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	want := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}
	if !bytes.Equal(rec.Payload, want) {
		t.Errorf("expected payload %x, got %x", want, rec.Payload)
	}
	if rec.Duration != 7 {
		t.Errorf("expected duration 7, got %d", rec.Duration)
	}
	if rec.MimeType != "audio/L16;rate=44100;channels=1" {
		t.Errorf("unexpected mime type %q", rec.MimeType)
	}
}

func TestAssembleStampsIdentityAndTime(t *testing.T) {
	at := time.Date(2026, 8, 31, 14, 30, 5, 0, time.UTC)
	fixedClock(t, at)

	rec, err := Assemble([][]byte{{0x01}}, 0, "audio/L16;rate=16000;channels=1")
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	if _, err := uuid.Parse(rec.ID); err != nil {
		t.Errorf("identifier %q is not a uuid: %v", rec.ID, err)
	}
	if rec.Name != "Recording 2026-08-31 14:30:05" {
		t.Errorf("unexpected default name %q", rec.Name)
	}
	if !rec.CreatedAt.Equal(at) {
		t.Errorf("expected createdAt %v, got %v", at, rec.CreatedAt)
	}
}

func TestAssembleIdentifiersNeverCollide(t *testing.T) {
	// Same clock tick, distinct identifiers: back-to-back stop/start
	// cycling must not produce colliding ids.
	fixedClock(t, time.Date(2026, 8, 31, 14, 30, 5, 0, time.UTC))

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		rec, err := Assemble([][]byte{{0x01}}, 0, "audio/L16;rate=16000;channels=1")
		if err != nil {
			t.Fatalf("Assemble failed: %v", err)
		}
		if seen[rec.ID] {
			t.Fatalf("identifier collision on %s", rec.ID)
		}
		seen[rec.ID] = true
	}
}

func TestAssembleRejectsEmptyCapture(t *testing.T) {
	cases := map[string][][]byte{
		"nil chunks":   nil,
		"no chunks":    {},
		"empty chunks": {nil, {}},
	}
	for name, chunks := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Assemble(chunks, 0, "audio/L16;rate=16000;channels=1"); err == nil {
				t.Error("expected error for empty capture")
			}
		})
	}
}
