package audio

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/lixenwraith/crosswalk/parameter"
)

// Narration lines spoken by the scenario and pedestrian
const (
	LineIntro      = "intro"
	LineTryExpand  = "try-expand"
	LineAfterTry   = "after-try"
	LineFindButton = "find-button"
	LineInfo       = "info"
	LineRecap      = "recap"
	LineExitDoor   = "exit-door"
	LinePedestrian = "pedestrian"
	CueWait        = "wait"
	CueCross       = "cross"
	CueBeep        = "beep"
	CueImpact      = "impact"
)

// Script holds the placeholder text for each narration line
var Script = map[string]string{
	LineIntro:      "You are standing at a busy street with limited central vision",
	LineTryExpand:  "Try stretching your hands apart to widen what you can see",
	LineAfterTry:   "Widening only helps a little when the world is this loud",
	LineFindButton: "Find the crosswalk button on the pole beside you",
	LineInfo:       "Many people with tunnel vision cross streets like this every day",
	LineRecap:      "Noise and crowds shrink the field you can attend to",
	LineExitDoor:   "Walk to the door when you are ready",
	LinePedestrian: "Oh sorry I did not see you there",
}

// Bank is the set of clips a scene plays
type Bank struct {
	clips map[string]*Clip
	Horns []*Clip
}

// NewBank synthesizes every cue
func NewBank() *Bank {
	b := &Bank{clips: make(map[string]*Clip, len(Script)+4)}
	for name, line := range Script {
		b.clips[name] = Voice(name, line)
	}
	b.clips[CueWait] = Tone(CueWait, parameter.WaitCueFrequency, parameter.WaitCueDuration, 0.5)
	b.clips[CueCross] = Tone(CueCross, parameter.CrossCueFrequency, parameter.CrossCueDuration, 0.5)
	b.clips[CueBeep] = Ticks(CueBeep, parameter.BeepTickFrequency, parameter.BeepCueDuration,
		parameter.BeepTickDuration, parameter.BeepTickPeriod, 0.4)
	b.clips[CueImpact] = Impact()
	for i := 0; i < parameter.HornVariantCount; i++ {
		b.Horns = append(b.Horns, Horn(i))
	}
	return b
}

// Clip returns a named clip, nil if unknown
func (b *Bank) Clip(name string) *Clip {
	if b == nil {
		return nil
	}
	return b.clips[name]
}

// Set replaces a named clip; a nil clip removes it
func (b *Bank) Set(name string, c *Clip) {
	if c == nil {
		delete(b.clips, name)
		return
	}
	b.clips[name] = c
}

// LoadDir replaces synthesized clips with <name>.wav files found in dir
// Horn overrides are named horn-a.wav, horn-b.wav, ...
func (b *Bank) LoadDir(dir string) (int, error) {
	if dir == "" {
		return 0, nil
	}
	if _, err := os.Stat(dir); err != nil {
		return 0, fmt.Errorf("audio dir: %w", err)
	}

	loaded := 0
	load := func(name string) (*Clip, error) {
		c, err := LoadWAV(filepath.Join(dir, name+".wav"))
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return c, err
	}

	for name := range b.clips {
		c, err := load(name)
		if err != nil {
			return loaded, err
		}
		if c != nil {
			b.clips[name] = c
			loaded++
		}
	}
	for i := range b.Horns {
		c, err := load(hornName(i))
		if err != nil {
			return loaded, err
		}
		if c != nil {
			b.Horns[i] = c
			loaded++
		}
	}
	log.Printf("[AUDIO] Loaded %d clips from %s", loaded, dir)
	return loaded, nil
}
