package audio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/lixenwraith/crosswalk/parameter"
)

// LoadWAV decodes a WAV file into a clip named after the file
func LoadWAV(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	c, err := DecodeWAV(name, f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return c, nil
}

// DecodeWAV buffers a WAV stream, resampling to the clip format when needed
func DecodeWAV(name string, r io.Reader) (*Clip, error) {
	s, format, err := wav.Decode(r)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	var src beep.Streamer = s
	if format.SampleRate != Format.SampleRate {
		src = beep.Resample(parameter.AudioResampleQ, format.SampleRate, Format.SampleRate, s)
	}

	c := NewClip(name, src)
	if err := s.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

// EncodeWAV writes a clip as 16-bit PCM
func EncodeWAV(w io.WriteSeeker, c *Clip) error {
	if c == nil {
		return fmt.Errorf("encode: nil clip")
	}
	return wav.Encode(w, c.Streamer(), Format)
}
