// Package session implements the recording lifecycle state machine: it
// acquires an input stream, drives the capture pipeline, buffers chunks,
// tracks elapsed time and persists the assembled recording on stop.
package session

import (
	"fmt"
	"sync"
	"time"

	"recbox/core/capture"
	"recbox/core/device"
	"recbox/logger"
	"recbox/model"
	"recbox/repository"
)

// Result is delivered on the Results channel when a finalization attempt
// completes. Err wraps model.ErrPersistenceFailed when the capture
// succeeded but the save failed; the audio is lost in that path.
type Result struct {
	Recording *model.Recording
	Err       error
}

// Ticker abstracts time.Ticker so tests can drive elapsed time manually.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates the once-per-second elapsed timer.
type TickerFactory func(d time.Duration) Ticker

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

func defaultTickerFactory(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}

// Session is the recording state machine. One instance supports one active
// recording at a time but is reusable across many recordings: a successful
// finalization returns it to idle.
type Session struct {
	gateway       device.Gateway
	open          capture.Opener
	repo          repository.RecordingRepository
	newTicker     TickerFactory
	chunkInterval time.Duration

	mu       sync.Mutex
	phase    model.Phase
	reason   error
	elapsed  int
	chunks   [][]byte
	mimeType string
	stream   device.Stream
	pipeline capture.Pipeline
	tickStop chan struct{}

	results chan Result
}

// Option customizes session construction.
type Option func(*Session)

// WithTickerFactory replaces the elapsed-time ticker, for tests.
func WithTickerFactory(f TickerFactory) Option {
	return func(s *Session) { s.newTicker = f }
}

// WithChunkInterval sets the capture chunk emission interval.
func WithChunkInterval(d time.Duration) Option {
	return func(s *Session) { s.chunkInterval = d }
}

// NewSession creates an idle session over the given collaborators.
func NewSession(gateway device.Gateway, open capture.Opener, repo repository.RecordingRepository, opts ...Option) *Session {
	s := &Session{
		gateway:       gateway,
		open:          open,
		repo:          repo,
		newTicker:     defaultTickerFactory,
		chunkInterval: 250 * time.Millisecond,
		phase:         model.PhaseIdle,
		results:       make(chan Result, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Phase returns the current phase.
func (s *Session) Phase() model.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Elapsed returns accumulated whole seconds of recording time.
func (s *Session) Elapsed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

// ErrReason returns the terminal error when the phase is errored, else nil.
func (s *Session) ErrReason() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reason
}

// Results delivers the outcome of each finalization or asynchronous failure.
func (s *Session) Results() <-chan Result {
	return s.results
}

// Start acquires a stream for the device (empty means platform default),
// opens the capture pipeline and begins recording. A failed start may be
// retried directly from the errored phase. While the stream request is in
// flight the session is pinned in awaiting-permission so concurrent calls
// are rejected instead of racing it.
func (s *Session) Start(deviceID string) error {
	s.mu.Lock()
	if s.phase != model.PhaseIdle && s.phase != model.PhaseErrored {
		phase := s.phase
		s.mu.Unlock()
		return fmt.Errorf("%w: start requested in phase %s", model.ErrInvalidState, phase)
	}
	s.phase = model.PhaseAwaitingPermission
	s.reason = nil
	s.mu.Unlock()

	stream, err := s.gateway.OpenStream(deviceID)
	if err != nil {
		s.toErrored(err)
		return err
	}

	pipeline, err := s.open(stream, s.chunkInterval)
	if err != nil {
		stream.Close()
		s.toErrored(err)
		return err
	}

	s.mu.Lock()
	s.stream = stream
	s.pipeline = pipeline
	s.chunks = nil
	s.elapsed = 0
	s.reason = nil
	s.mimeType = fmt.Sprintf("audio/L16;rate=%d;channels=%d", stream.SampleRate(), stream.Channels())
	s.phase = model.PhaseRecording
	s.startTickerLocked()
	s.mu.Unlock()

	go s.forward(pipeline.Events())

	logger.Info("Recording started", logger.String("deviceId", deviceID))
	return nil
}

// Pause suspends capture and cancels the elapsed timer. No-op unless
// recording.
func (s *Session) Pause() error {
	s.mu.Lock()
	if s.phase != model.PhaseRecording {
		s.mu.Unlock()
		return nil
	}
	s.stopTickerLocked()
	s.phase = model.PhasePaused
	pipeline := s.pipeline
	s.mu.Unlock()

	pipeline.Pause()
	logger.Debug("Recording paused")
	return nil
}

// Resume restarts capture and the elapsed timer. No-op unless paused.
func (s *Session) Resume() error {
	s.mu.Lock()
	if s.phase != model.PhasePaused {
		s.mu.Unlock()
		return nil
	}
	s.phase = model.PhaseRecording
	s.startTickerLocked()
	pipeline := s.pipeline
	s.mu.Unlock()

	pipeline.Resume()
	logger.Debug("Recording resumed")
	return nil
}

// Stop cancels the timer and signals the pipeline to flush and close. The
// session finalizes once the pipeline's close signal arrives, so the last
// chunk is never truncated. The input stream is released on every outcome,
// including a failed save.
func (s *Session) Stop() error {
	s.mu.Lock()
	if s.phase != model.PhaseRecording && s.phase != model.PhasePaused {
		phase := s.phase
		s.mu.Unlock()
		return fmt.Errorf("%w: stop requested in phase %s", model.ErrInvalidState, phase)
	}
	// Timer goes down strictly before the chunk buffer is read for assembly.
	s.stopTickerLocked()
	s.phase = model.PhaseFinalizing
	pipeline := s.pipeline
	s.mu.Unlock()

	pipeline.Close()
	return nil
}

// Reset recovers an errored session back to idle. There is no implicit
// retry anywhere; recovery is always this explicit call.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != model.PhaseErrored {
		return fmt.Errorf("%w: reset requested in phase %s", model.ErrInvalidState, s.phase)
	}
	s.phase = model.PhaseIdle
	s.reason = nil
	return nil
}

// forward feeds pipeline events into the state machine. It is the only
// goroutine that reads the events channel, so chunk order matches emission
// order.
func (s *Session) forward(events <-chan capture.Event) {
	for ev := range events {
		switch ev.Kind {
		case capture.EventChunk:
			s.appendChunk(ev.Chunk)
		case capture.EventStopped:
			s.finalize()
		case capture.EventError:
			s.fail(ev.Err)
		}
	}
}

func (s *Session) appendChunk(chunk []byte) {
	if len(chunk) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.phase {
	case model.PhaseRecording, model.PhasePaused, model.PhaseFinalizing:
		s.chunks = append(s.chunks, chunk)
	}
}

// finalize runs when the pipeline confirms close. It releases the stream
// unconditionally, then assembles and persists the recording. Persistence
// and resource release are independent: a failed save still leaves the
// hardware released.
func (s *Session) finalize() {
	s.mu.Lock()
	if s.phase != model.PhaseFinalizing {
		s.mu.Unlock()
		return
	}
	// Buffer is moved to the assembler, not shared; no further appends land.
	chunks := s.chunks
	s.chunks = nil
	elapsed := s.elapsed
	mimeType := s.mimeType
	stream := s.stream
	s.stream = nil
	s.pipeline = nil
	s.mu.Unlock()

	if stream != nil {
		if err := stream.Close(); err != nil {
			logger.Warn("Releasing input stream failed", logger.ErrorField(err))
		}
	}

	rec, err := Assemble(chunks, elapsed, mimeType)
	if err != nil {
		s.toErrored(err)
		s.deliver(Result{Err: err})
		return
	}

	if err := s.repo.Put(rec); err != nil {
		// The audio was captured but could not be saved. Surface this
		// distinctly from capture failures.
		logger.Error("Captured recording could not be saved",
			logger.String("id", rec.ID),
			logger.Int("durationSec", rec.Duration),
			logger.ErrorField(err))
		s.toErrored(err)
		s.deliver(Result{Err: err})
		return
	}

	s.mu.Lock()
	s.phase = model.PhaseIdle
	s.reason = nil
	s.mu.Unlock()

	logger.Info("Recording saved",
		logger.String("id", rec.ID),
		logger.String("name", rec.Name),
		logger.Int("durationSec", rec.Duration),
		logger.Int("payloadBytes", len(rec.Payload)))
	s.deliver(Result{Recording: rec})
}

// fail handles an asynchronous capture error: immediate teardown of the
// timer and handles, then a terminal errored phase.
func (s *Session) fail(err error) {
	s.mu.Lock()
	if s.phase == model.PhaseIdle || s.phase == model.PhaseErrored {
		s.mu.Unlock()
		return
	}
	s.stopTickerLocked()
	stream := s.stream
	s.stream = nil
	s.pipeline = nil
	s.chunks = nil
	s.phase = model.PhaseErrored
	s.reason = err
	s.mu.Unlock()

	if stream != nil {
		stream.Close()
	}
	logger.Error("Recording session failed", logger.ErrorField(err))
	s.deliver(Result{Err: err})
}

func (s *Session) toErrored(err error) {
	s.mu.Lock()
	s.phase = model.PhaseErrored
	s.reason = err
	s.mu.Unlock()
}

// deliver publishes a result, replacing any unread previous one so a slow
// caller never blocks the state machine.
func (s *Session) deliver(r Result) {
	select {
	case <-s.results:
	default:
	}
	s.results <- r
}

// startTickerLocked starts the once-per-second elapsed timer. Caller holds mu.
func (s *Session) startTickerLocked() {
	stop := make(chan struct{})
	s.tickStop = stop
	t := s.newTicker(time.Second)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-stop:
				return
			case <-t.C():
				s.tick()
			}
		}
	}()
}

// stopTickerLocked cancels the elapsed timer. Caller holds mu. A tick that
// fires after cancellation is a no-op via the phase guard in tick.
func (s *Session) stopTickerLocked() {
	if s.tickStop != nil {
		close(s.tickStop)
		s.tickStop = nil
	}
}

func (s *Session) tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == model.PhaseRecording {
		s.elapsed++
	}
}
