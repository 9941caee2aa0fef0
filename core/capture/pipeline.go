// Package capture turns a live input stream into an ordered sequence of
// encoded audio chunk events, with explicit stop and error signals, so the
// session state machine can consume platform callbacks as plain events.
package capture

import (
	"time"

	"recbox/core/device"
)

// EventKind discriminates pipeline events.
type EventKind int

const (
	// EventChunk carries the next encoded audio chunk.
	EventChunk EventKind = iota
	// EventStopped signals the pipeline has flushed its final chunk and
	// closed. It is always the last event emitted after Close.
	EventStopped
	// EventError signals an asynchronous capture failure, e.g. the device
	// disconnecting mid-recording. No further events follow.
	EventError
)

// Event is a single pipeline emission. Chunk is set for EventChunk,
// Err for EventError.
type Event struct {
	Kind  EventKind
	Chunk []byte
	Err   error
}

// Pipeline is an open capture pipeline over a stream. Events are emitted in
// capture order on a single channel; the channel is closed after the final
// EventStopped or EventError.
type Pipeline interface {
	Events() <-chan Event

	// Pause suspends capture without releasing the device; Resume restarts
	// it. Chunks already emitted stay emitted.
	Pause() error
	Resume() error

	// Close signals the pipeline to flush pending audio as a final chunk
	// and emit EventStopped. It does not release the stream; the stream's
	// owner does that.
	Close()
}

// Opener opens a pipeline over a stream, emitting a chunk roughly every
// chunkInterval of captured audio.
type Opener func(stream device.Stream, chunkInterval time.Duration) (Pipeline, error)
