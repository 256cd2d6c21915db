package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/lixenwraith/crosswalk/parameter"
)

// Output owns the speaker device and the mixer every source feeds
type Output struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewOutput creates an uninitialized output
func NewOutput() *Output {
	return &Output{mixer: &beep.Mixer{}}
}

// Initialize opens the audio device; calling it twice is a no-op
func (o *Output) Initialize() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.initialized {
		return nil
	}

	rate := Format.SampleRate
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferDelay)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	speaker.Play(o.mixer)
	o.initialized = true
	return nil
}

// Close silences every source and releases the device
func (o *Output) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	o.initialized = false
}

// add registers a streamer with the mixer under the speaker lock
func (o *Output) add(s beep.Streamer) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.initialized {
		return false
	}
	speaker.Lock()
	o.mixer.Add(s)
	speaker.Unlock()
	return true
}

// SpeakerSource plays clips through a shared Output
type SpeakerSource struct {
	out     *Output
	name    string
	volume  float64
	current *beep.Ctrl
}

// NewSpeakerSource creates a source feeding out
func NewSpeakerSource(out *Output, name string, volume float64) *SpeakerSource {
	return &SpeakerSource{out: out, name: name, volume: volume}
}

// Play replaces the current clip; duration is reported even when the device is down
func (s *SpeakerSource) Play(clip *Clip) time.Duration {
	s.Stop()
	if clip == nil {
		return 0
	}
	ctrl := &beep.Ctrl{Streamer: newVolume(clip.Streamer(), s.volume)}
	if s.out.add(ctrl) {
		s.current = ctrl
	}
	return clip.Duration()
}

// PlayOneShot overlays a clip; pitch 1 is natural speed
func (s *SpeakerSource) PlayOneShot(clip *Clip, pitch float64) {
	if clip == nil {
		return
	}
	var st beep.Streamer = clip.Streamer()
	if pitch > 0 && pitch != 1 {
		st = beep.ResampleRatio(parameter.AudioResampleQ, pitch, st)
	}
	s.out.add(newVolume(st, s.volume))
}

// Stop drops the current clip; the mixer removes a ctrl with no streamer
func (s *SpeakerSource) Stop() {
	if s.current == nil {
		return
	}
	speaker.Lock()
	s.current.Streamer = nil
	speaker.Unlock()
	s.current = nil
}
