package audio

import (
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/lixenwraith/crosswalk/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a finite oscillator; noise draws from a fixed seed so clips are reproducible
func NewOscillator(freq float64, duration time.Duration, wave WaveType) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: Format.SampleRate.N(duration),
		wave:     wave,
		rate:     Format.SampleRate,
		rng:      rand.New(rand.NewSource(1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope wraps a streamer with a linear attack/release
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration) beep.Streamer {
	total := Format.SampleRate.N(duration)
	att := Format.SampleRate.N(attack)
	rel := Format.SampleRate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = float64(remaining) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// math.Log2(0) is -Inf, zero volume maps to silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Tone synthesizes a shaped single-frequency cue
func Tone(name string, freq float64, d time.Duration, vol float64) *Clip {
	sine, err := generators.SineTone(Format.SampleRate, freq)
	if err != nil {
		sine = NewOscillator(freq, d, WaveSine)
	}
	shaped := NewEnvelope(beep.Take(Format.SampleRate.N(d), sine), d, parameter.CueAttack, parameter.CueRelease)
	return NewClip(name, newVolume(shaped, vol))
}

// Ticks synthesizes a pulse train filling d, one tick per period
func Ticks(name string, freq float64, d, tick, period time.Duration, vol float64) *Clip {
	var parts []beep.Streamer
	for at := time.Duration(0); at < d; at += period {
		on := min(tick, d-at)
		off := min(period-on, d-at-on)
		osc := NewOscillator(freq, on, WaveSquare)
		parts = append(parts, newVolume(NewEnvelope(osc, on, on/8, on/4), vol))
		if off > 0 {
			parts = append(parts, beep.Silence(Format.SampleRate.N(off)))
		}
	}
	return NewClip(name, beep.Seq(parts...))
}

// Horn synthesizes a two-tone car horn; variants differ in base frequency
func Horn(variant int) *Clip {
	base := 350.0 + 60.0*float64(variant)
	d := parameter.HornDuration
	low := NewEnvelope(NewOscillator(base, d, WaveSaw), d, parameter.CueAttack, parameter.CueRelease)
	high := NewEnvelope(NewOscillator(base*1.26, d, WaveSquare), d, parameter.CueAttack, parameter.CueRelease)
	mixed := beep.Mix(newVolume(low, 0.5), newVolume(high, 0.25))
	return NewClip(hornName(variant), beep.Take(Format.SampleRate.N(d), mixed))
}

func hornName(variant int) string {
	return "horn-" + string(rune('a'+variant))
}

// Impact synthesizes a short thud for a collision
func Impact() *Clip {
	d := parameter.ImpactCueDuration
	noise := NewEnvelope(NewOscillator(0, d, WaveNoise), d, time.Millisecond, d/2)
	thump := NewEnvelope(NewOscillator(90, d, WaveSine), d, time.Millisecond, d/2)
	mixed := beep.Mix(newVolume(noise, 0.3), newVolume(thump, 0.7))
	return NewClip("impact", beep.Take(Format.SampleRate.N(d), mixed))
}

// Voice synthesizes a placeholder for recorded speech, one low syllable per word
// so the duration tracks the line length
func Voice(name, line string) *Clip {
	words := len(strings.Fields(line))
	if words == 0 {
		words = 1
	}
	syllable := parameter.NarrationPerWordDur
	var parts []beep.Streamer
	for i := 0; i < words; i++ {
		freq := parameter.VoiceCueFrequency * (1 + 0.08*float64(i%3))
		on := syllable * 3 / 4
		osc := NewOscillator(freq, on, WaveSine)
		parts = append(parts,
			newVolume(NewEnvelope(osc, on, on/6, on/3), parameter.PlaceholderCueVol),
			beep.Silence(Format.SampleRate.N(syllable-on)),
		)
	}
	return NewClip(name, beep.Seq(parts...))
}
