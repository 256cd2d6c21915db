package audio

import "time"

// Source is a playback channel attached to an actor or to the narrator
type Source interface {
	// Play replaces whatever the source is playing and returns the clip's duration
	Play(clip *Clip) time.Duration
	// PlayOneShot overlays a clip at the given pitch ratio without interrupting Play
	PlayOneShot(clip *Clip, pitch float64)
	// Stop silences the source
	Stop()
}

// Null discards everything
type Null struct{}

func (Null) Play(clip *Clip) time.Duration  { return clip.Duration() }
func (Null) PlayOneShot(*Clip, float64)     {}
func (Null) Stop()                          {}
