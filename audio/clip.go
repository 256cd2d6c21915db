package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/lixenwraith/crosswalk/parameter"
)

// Format is the canonical format every clip is stored in
var Format = beep.Format{
	SampleRate:  beep.SampleRate(parameter.AudioSampleRate),
	NumChannels: parameter.AudioChannels,
	Precision:   parameter.AudioPrecision,
}

// Clip is a named, fully buffered sound
// A nil *Clip is valid and reports zero duration
type Clip struct {
	Name string
	buf  *beep.Buffer
}

// NewClip buffers a finite streamer into a clip
func NewClip(name string, s beep.Streamer) *Clip {
	buf := beep.NewBuffer(Format)
	buf.Append(s)
	return &Clip{Name: name, buf: buf}
}

// Duration returns the natural play length
func (c *Clip) Duration() time.Duration {
	if c == nil || c.buf == nil {
		return 0
	}
	return Format.SampleRate.D(c.buf.Len())
}

// Len returns the number of buffered samples
func (c *Clip) Len() int {
	if c == nil || c.buf == nil {
		return 0
	}
	return c.buf.Len()
}

// Streamer returns a fresh streamer over the whole clip
func (c *Clip) Streamer() beep.StreamSeeker {
	return c.buf.Streamer(0, c.buf.Len())
}

func (c *Clip) String() string {
	if c == nil {
		return "<nil clip>"
	}
	return fmt.Sprintf("%s(%v)", c.Name, c.Duration())
}
