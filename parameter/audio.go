package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate  = 44100
	AudioChannels    = 2
	AudioPrecision   = 2 // bytes per sample
	AudioBufferDelay = 100 * time.Millisecond
	AudioResampleQ   = 4
)

// Signal cue synthesis
const (
	WaitCueDuration     = 1200 * time.Millisecond
	WaitCueFrequency    = 523.25
	CrossCueDuration    = 900 * time.Millisecond
	CrossCueFrequency   = 880.0
	BeepCueDuration     = 4 * time.Second // Fills the pedestrian green window
	BeepTickDuration    = 80 * time.Millisecond
	BeepTickPeriod      = 500 * time.Millisecond
	BeepTickFrequency   = 1046.5
	CueAttack           = 10 * time.Millisecond
	CueRelease          = 60 * time.Millisecond
	HornDuration        = 450 * time.Millisecond
	HornVariantCount    = 3
	ImpactCueDuration   = 250 * time.Millisecond
	VoiceCueFrequency   = 220.0
	PlaceholderCueVol   = 0.4
	NarrationPerWordDur = 320 * time.Millisecond
)
