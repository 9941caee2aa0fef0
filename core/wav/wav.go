// Package wav provides minimal WAV container encoding and decoding for
// 16-bit PCM payloads at the import/export boundary.
package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

const (
	bytesPerSample = 2  // LINEAR16
	bitsPerSample  = 16 // LINEAR16
	pcmFormatTag   = 1  // WAV PCM format
	headerSize     = 44
)

// Format describes decoded PCM audio.
type Format struct {
	SampleRate int
	Channels   int
}

// Encode wraps raw little-endian 16-bit PCM in a RIFF/WAVE container.
func Encode(pcm []byte, format Format) []byte {
	var buf bytes.Buffer
	bps := format.SampleRate * format.Channels * bytesPerSample

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(pcmFormatTag))
	binary.Write(&buf, binary.LittleEndian, uint16(format.Channels))
	binary.Write(&buf, binary.LittleEndian, uint32(format.SampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(bps))
	binary.Write(&buf, binary.LittleEndian, uint16(bytesPerSample*format.Channels))
	binary.Write(&buf, binary.LittleEndian, uint16(bitsPerSample))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)

	return buf.Bytes()
}

// Decode extracts the PCM payload and format from a 16-bit PCM WAV file.
// Only the canonical 44-byte-header layout with a leading data chunk is
// accepted; anything else is rejected.
func Decode(data []byte) ([]byte, Format, error) {
	if len(data) < headerSize {
		return nil, Format{}, fmt.Errorf("wav: file too short (%d bytes)", len(data))
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, Format{}, fmt.Errorf("wav: not a RIFF/WAVE file")
	}
	if string(data[12:16]) != "fmt " {
		return nil, Format{}, fmt.Errorf("wav: missing fmt chunk")
	}
	if tag := binary.LittleEndian.Uint16(data[20:22]); tag != pcmFormatTag {
		return nil, Format{}, fmt.Errorf("wav: unsupported format tag %d", tag)
	}
	if bits := binary.LittleEndian.Uint16(data[34:36]); bits != bitsPerSample {
		return nil, Format{}, fmt.Errorf("wav: unsupported bit depth %d", bits)
	}
	if string(data[36:40]) != "data" {
		return nil, Format{}, fmt.Errorf("wav: missing data chunk")
	}

	format := Format{
		SampleRate: int(binary.LittleEndian.Uint32(data[24:28])),
		Channels:   int(binary.LittleEndian.Uint16(data[22:24])),
	}
	if format.SampleRate <= 0 || format.Channels <= 0 {
		return nil, Format{}, fmt.Errorf("wav: invalid format %d Hz / %d ch", format.SampleRate, format.Channels)
	}

	size := int(binary.LittleEndian.Uint32(data[40:44]))
	if size > len(data)-headerSize {
		size = len(data) - headerSize
	}
	return data[headerSize : headerSize+size], format, nil
}

// DurationSeconds computes whole seconds of audio in a PCM payload.
func DurationSeconds(pcmLen int, format Format) int {
	bps := format.SampleRate * format.Channels * bytesPerSample
	if bps <= 0 {
		return 0
	}
	return pcmLen / bps
}

// ParseL16Mime extracts the format from an "audio/L16;rate=N;channels=N"
// content type, the encoding stamped on assembled recordings.
func ParseL16Mime(mimeType string) (Format, error) {
	parts := strings.Split(mimeType, ";")
	if !strings.EqualFold(strings.TrimSpace(parts[0]), "audio/L16") {
		return Format{}, fmt.Errorf("wav: unsupported content type %q", mimeType)
	}
	format := Format{}
	for _, part := range parts[1:] {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return Format{}, fmt.Errorf("wav: bad %s parameter in %q", key, mimeType)
		}
		switch strings.ToLower(key) {
		case "rate":
			format.SampleRate = n
		case "channels":
			format.Channels = n
		}
	}
	if format.SampleRate <= 0 || format.Channels <= 0 {
		return Format{}, fmt.Errorf("wav: incomplete content type %q", mimeType)
	}
	return format, nil
}
