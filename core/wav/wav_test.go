package wav

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	pcm := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	format := Format{SampleRate: 16000, Channels: 1}

	encoded := Encode(pcm, format)
	if len(encoded) != headerSize+len(pcm) {
		t.Fatalf("expected %d bytes, got %d", headerSize+len(pcm), len(encoded))
	}

	gotPCM, gotFormat, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(gotPCM, pcm) {
		t.Errorf("payload mismatch: %x", gotPCM)
	}
	if gotFormat != format {
		t.Errorf("format mismatch: %+v", gotFormat)
	}
}

func TestDecodeRejectsBadInput(t *testing.T) {
	cases := map[string][]byte{
		"empty":       nil,
		"too short":   []byte("RIFF"),
		"wrong magic": bytes.Repeat([]byte{0x00}, 64),
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			if _, _, err := Decode(data); err == nil {
				t.Error("expected decode error")
			}
		})
	}
}

func TestDurationSeconds(t *testing.T) {
	format := Format{SampleRate: 16000, Channels: 1}
	cases := []struct {
		name   string
		pcmLen int
		want   int
	}{
		{"empty", 0, 0},
		{"sub-second", 16000, 0},         // half a second of 16-bit mono
		{"exactly 3s", 3 * 32000, 3},
		{"3.5s truncates", 3*32000 + 16000, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DurationSeconds(tc.pcmLen, format); got != tc.want {
				t.Errorf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestParseL16Mime(t *testing.T) {
	cases := []struct {
		name    string
		mime    string
		want    Format
		wantErr bool
	}{
		{"canonical", "audio/L16;rate=44100;channels=1", Format{44100, 1}, false},
		{"spaced", "audio/L16; rate=16000; channels=2", Format{16000, 2}, false},
		{"missing rate", "audio/L16;channels=1", Format{}, true},
		{"wrong type", "audio/webm;codecs=opus", Format{}, true},
		{"garbage rate", "audio/L16;rate=fast;channels=1", Format{}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseL16Mime(tc.mime)
			if tc.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseL16Mime failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}
