package scenario

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/crosswalk/audio"
	"github.com/lixenwraith/crosswalk/engine"
	"github.com/lixenwraith/crosswalk/parameter"
)

// Cue is one queued narration clip with its virtual playback window
type Cue struct {
	Clip  *audio.Clip
	Start time.Duration
	End   time.Duration

	queue   *CueQueue
	started bool
	skipped bool
}

// Done reports whether the cue has finished or was skipped
func (c *Cue) Done() bool {
	if c == nil || c.skipped {
		return true
	}
	return c.queue.world.Now() >= c.End
}

// Started reports whether the clip has been handed to the source
func (c *Cue) Started() bool {
	return c != nil && c.started
}

// Skipped reports a nil clip that never entered the queue
func (c *Cue) Skipped() bool {
	return c != nil && c.skipped
}

// EndTime returns the virtual end, usable as an engine.At deadline
func (c *Cue) EndTime() time.Duration {
	if c == nil || c.skipped {
		return 0
	}
	return c.End
}

// CueQueue serializes narration onto a single source
//
// Cues never overlap: each one is scheduled at the previous cue's virtual end,
// so the Nth clip starts exactly after the summed durations of those before it.
// Windows are estimated from the clip at enqueue and corrected to the duration
// the source reports once the clip actually starts
type CueQueue struct {
	world  *engine.World
	source audio.Source

	pending []*Cue
	current *Cue
	tail    time.Duration

	statPlayed *atomic.Int64
}

// NewCueQueue creates an idle queue playing on source
func NewCueQueue(w *engine.World, source audio.Source) *CueQueue {
	if source == nil {
		source = audio.Null{}
	}
	return &CueQueue{
		world:      w,
		source:     source,
		statPlayed: w.Status.Ints.Get("audio.cues_played"),
	}
}

// PlayCue starts clip now if the queue is idle, otherwise appends it
// A nil clip is skipped and returns a cue that is already done
func (q *CueQueue) PlayCue(clip *audio.Clip) *Cue {
	if clip == nil {
		return &Cue{queue: q, skipped: true}
	}

	now := q.world.Now()
	start := q.tail
	if start < now {
		start = now
	}
	c := &Cue{
		Clip:  clip,
		Start: start,
		End:   start + clip.Duration(),
		queue: q,
	}
	q.tail = c.End
	q.pending = append(q.pending, c)
	q.drain(now)
	return c
}

// Busy reports whether a cue is playing or waiting
func (q *CueQueue) Busy() bool {
	return q.world.Now() < q.tail || len(q.pending) > 0
}

// Pending returns the number of cues not yet started
func (q *CueQueue) Pending() int {
	return len(q.pending)
}

// Current returns the cue playing now, nil when idle
func (q *CueQueue) Current() *Cue {
	if q.current != nil && q.current.Done() {
		return nil
	}
	return q.current
}

// Clear drops waiting cues and stops playback
func (q *CueQueue) Clear() {
	q.pending = q.pending[:0]
	q.current = nil
	q.tail = q.world.Now()
	q.source.Stop()
}

func (q *CueQueue) Name() string  { return "cues" }
func (q *CueQueue) Priority() int { return parameter.PriorityCueQueue }

// Update starts every cue whose virtual start has been reached
func (q *CueQueue) Update(time.Duration) {
	q.drain(q.world.Now())
}

func (q *CueQueue) drain(now time.Duration) {
	for len(q.pending) > 0 && q.pending[0].Start <= now {
		c := q.pending[0]
		q.pending[0] = nil
		q.pending = q.pending[1:]

		c.started = true
		q.current = c
		reported := q.source.Play(c.Clip)
		if reported < 0 {
			reported = 0
		}
		if shift := c.Start + reported - c.End; shift != 0 {
			q.reflow(c, shift)
		}
		q.statPlayed.Add(1)
		log.Printf("[SCENARIO] Cue %s at %v (scheduled %v)", c.Clip.Name, now, c.Start)
	}
}

// reflow moves the end of the playing cue to the duration its source reported,
// shifting every queued cue behind it by the same amount
func (q *CueQueue) reflow(c *Cue, shift time.Duration) {
	c.End += shift
	for _, p := range q.pending {
		p.Start += shift
		p.End += shift
	}
	q.tail += shift
}
