package capture

import (
	"time"

	"recbox/core/device"
	"recbox/logger"
)

// streamPipeline reads interleaved PCM frames from a device stream on a
// dedicated goroutine and emits little-endian 16-bit chunk events.
type streamPipeline struct {
	stream   device.Stream
	events   chan Event
	pauseCh  chan struct{}
	resumeCh chan struct{}
	closeCh  chan struct{}

	chunkBytes int
	pending    []byte
}

// OpenStreamPipeline starts capture on the stream and begins emitting chunk
// events. It satisfies the Opener signature.
func OpenStreamPipeline(stream device.Stream, chunkInterval time.Duration) (Pipeline, error) {
	if err := stream.Start(); err != nil {
		return nil, err
	}

	bytesPerSecond := stream.SampleRate() * stream.Channels() * 2
	chunkBytes := int(float64(bytesPerSecond) * chunkInterval.Seconds())
	if chunkBytes < 2 {
		chunkBytes = 2
	}

	p := &streamPipeline{
		stream:     stream,
		events:     make(chan Event, 16),
		pauseCh:    make(chan struct{}, 1),
		resumeCh:   make(chan struct{}, 1),
		closeCh:    make(chan struct{}),
		chunkBytes: chunkBytes,
	}
	go p.run()
	return p, nil
}

func (p *streamPipeline) Events() <-chan Event { return p.events }

func (p *streamPipeline) Pause() error {
	select {
	case p.pauseCh <- struct{}{}:
	default:
	}
	return nil
}

func (p *streamPipeline) Resume() error {
	select {
	case p.resumeCh <- struct{}{}:
	default:
	}
	return nil
}

func (p *streamPipeline) Close() {
	close(p.closeCh)
}

// run owns the read loop. It exits on Close (flushing a final chunk and
// emitting EventStopped) or on a read failure (emitting EventError).
func (p *streamPipeline) run() {
	defer close(p.events)

	for {
		select {
		case <-p.closeCh:
			p.flush()
			p.events <- Event{Kind: EventStopped}
			return

		case <-p.pauseCh:
			if err := p.stream.Stop(); err != nil {
				p.events <- Event{Kind: EventError, Err: err}
				return
			}
			// Parked until resume or close. Pending bytes stay pending.
			select {
			case <-p.resumeCh:
				if err := p.stream.Start(); err != nil {
					p.events <- Event{Kind: EventError, Err: err}
					return
				}
			case <-p.closeCh:
				p.flush()
				p.events <- Event{Kind: EventStopped}
				return
			}

		default:
			frames, err := p.stream.ReadFrames()
			if err != nil {
				logger.Warn("Capture read failed", logger.ErrorField(err))
				p.events <- Event{Kind: EventError, Err: err}
				return
			}
			p.append(frames)
			if len(p.pending) >= p.chunkBytes {
				p.emit()
			}
		}
	}
}

// append encodes interleaved samples as little-endian 16-bit PCM.
func (p *streamPipeline) append(frames []int16) {
	for _, s := range frames {
		p.pending = append(p.pending, byte(s), byte(uint16(s)>>8))
	}
}

func (p *streamPipeline) emit() {
	chunk := make([]byte, len(p.pending))
	copy(chunk, p.pending)
	p.pending = p.pending[:0]
	p.events <- Event{Kind: EventChunk, Chunk: chunk}
}

// flush emits whatever audio is still pending as the final chunk.
func (p *streamPipeline) flush() {
	if len(p.pending) > 0 {
		p.emit()
	}
}
