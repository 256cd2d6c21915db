package audio

import (
	"log"
	"sync"
	"time"
)

// Playback is one recorded play call
type Playback struct {
	Clip    string
	Pitch   float64
	OneShot bool
}

// Recorder is a Source that records play calls without producing sound
// Used by tests and by headless runs with logging
type Recorder struct {
	mu      sync.Mutex
	name    string
	logging bool
	plays   []Playback
	stops   int
}

// NewRecorder creates a recorder; when logging is set every play is logged under name
func NewRecorder(name string, logging bool) *Recorder {
	return &Recorder{name: name, logging: logging}
}

func (r *Recorder) Play(clip *Clip) time.Duration {
	if clip == nil {
		return 0
	}
	r.record(Playback{Clip: clip.Name, Pitch: 1})
	return clip.Duration()
}

func (r *Recorder) PlayOneShot(clip *Clip, pitch float64) {
	if clip == nil {
		return
	}
	r.record(Playback{Clip: clip.Name, Pitch: pitch, OneShot: true})
}

func (r *Recorder) Stop() {
	r.mu.Lock()
	r.stops++
	r.mu.Unlock()
}

func (r *Recorder) record(p Playback) {
	r.mu.Lock()
	r.plays = append(r.plays, p)
	r.mu.Unlock()
	if r.logging {
		log.Printf("[AUDIO] %s: %s (pitch %.2f)", r.name, p.Clip, p.Pitch)
	}
}

// Plays returns a copy of the recorded calls
func (r *Recorder) Plays() []Playback {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Playback, len(r.plays))
	copy(out, r.plays)
	return out
}

// Names returns the recorded clip names in order
func (r *Recorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.plays))
	for i, p := range r.plays {
		out[i] = p.Clip
	}
	return out
}

// Stops returns how many times Stop was called
func (r *Recorder) Stops() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stops
}
