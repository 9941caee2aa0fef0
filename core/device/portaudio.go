package device

import (
	"fmt"

	"github.com/gordonklaus/portaudio"

	"recbox/logger"
	"recbox/model"
)

// CaptureParams fixes the stream format requested from the hardware.
type CaptureParams struct {
	SampleRate      int
	Channels        int
	FramesPerBuffer int
}

// PortAudioGateway implements Gateway over the PortAudio host API.
type PortAudioGateway struct {
	params CaptureParams
}

// NewPortAudioGateway initializes the PortAudio runtime and returns a
// gateway. Call Close when done to release the runtime.
func NewPortAudioGateway(params CaptureParams) (*PortAudioGateway, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("%w: initializing portaudio: %v", model.ErrDeviceUnavailable, err)
	}
	return &PortAudioGateway{params: params}, nil
}

// Close releases the PortAudio runtime.
func (g *PortAudioGateway) Close() error {
	return portaudio.Terminate()
}

// ListInputDevices enumerates input-capable endpoints. Failures degrade to
// an empty list: "no microphones" is a normal situation, not an error.
func (g *PortAudioGateway) ListInputDevices() []model.DeviceDescriptor {
	devices, err := portaudio.Devices()
	if err != nil {
		logger.Warn("Device enumeration failed", logger.ErrorField(err))
		return nil
	}

	var descriptors []model.DeviceDescriptor
	for _, dev := range devices {
		if dev.MaxInputChannels <= 0 {
			continue
		}
		groupID := ""
		if dev.HostApi != nil {
			groupID = dev.HostApi.Name
		}
		descriptors = append(descriptors, model.DeviceDescriptor{
			ID:      dev.Name,
			Label:   dev.Name,
			GroupID: groupID,
		})
	}
	return descriptors
}

// OpenStream opens a capture stream on the named device, or the platform
// default input when deviceID is empty.
func (g *PortAudioGateway) OpenStream(deviceID string) (Stream, error) {
	info, err := g.resolveDevice(deviceID)
	if err != nil {
		return nil, err
	}

	buf := make([]int16, g.params.FramesPerBuffer*g.params.Channels)
	stream, err := portaudio.OpenStream(portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   info,
			Channels: g.params.Channels,
			Latency:  info.DefaultHighInputLatency,
		},
		SampleRate:      float64(g.params.SampleRate),
		FramesPerBuffer: g.params.FramesPerBuffer,
	}, buf)
	if err != nil {
		return nil, fmt.Errorf("%w: opening stream on %q: %v", model.ErrDeviceUnavailable, info.Name, err)
	}

	return &paStream{
		stream:     stream,
		buf:        buf,
		sampleRate: g.params.SampleRate,
		channels:   g.params.Channels,
	}, nil
}

// Probe checks that a device can produce live audio without committing a
// session to it. Whatever fails, the hardware is released before returning.
func (g *PortAudioGateway) Probe(deviceID string) bool {
	stream, err := g.OpenStream(deviceID)
	if err != nil {
		logger.Debug("Device probe failed to open",
			logger.String("deviceId", deviceID),
			logger.ErrorField(err))
		return false
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return false
	}
	if _, err := stream.ReadFrames(); err != nil {
		return false
	}
	return true
}

func (g *PortAudioGateway) resolveDevice(deviceID string) (*portaudio.DeviceInfo, error) {
	if deviceID == "" {
		info, err := portaudio.DefaultInputDevice()
		if err != nil || info == nil {
			return nil, fmt.Errorf("%w: no default input device: %v", model.ErrDeviceUnavailable, err)
		}
		return info, nil
	}

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("%w: enumerating devices: %v", model.ErrDeviceUnavailable, err)
	}
	for _, dev := range devices {
		if dev.Name == deviceID && dev.MaxInputChannels > 0 {
			return dev, nil
		}
	}
	return nil, fmt.Errorf("%w: input device %q not found", model.ErrDeviceUnavailable, deviceID)
}

// paStream adapts *portaudio.Stream to the Stream interface.
type paStream struct {
	stream     *portaudio.Stream
	buf        []int16
	sampleRate int
	channels   int
	started    bool
}

func (s *paStream) ReadFrames() ([]int16, error) {
	if err := s.stream.Read(); err != nil {
		return nil, fmt.Errorf("%w: reading frames: %v", model.ErrDeviceUnavailable, err)
	}
	return s.buf, nil
}

func (s *paStream) Start() error {
	if s.started {
		return nil
	}
	if err := s.stream.Start(); err != nil {
		return fmt.Errorf("%w: starting stream: %v", model.ErrDeviceUnavailable, err)
	}
	s.started = true
	return nil
}

func (s *paStream) Stop() error {
	if !s.started {
		return nil
	}
	s.started = false
	if err := s.stream.Stop(); err != nil {
		return fmt.Errorf("%w: stopping stream: %v", model.ErrDeviceUnavailable, err)
	}
	return nil
}

func (s *paStream) Close() error {
	s.started = false
	return s.stream.Close()
}

func (s *paStream) SampleRate() int { return s.sampleRate }
func (s *paStream) Channels() int   { return s.channels }
