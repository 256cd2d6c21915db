package main

import (
	"log"

	"github.com/lixenwraith/crosswalk/audio"
	"github.com/lixenwraith/crosswalk/street"
)

// setupAudio returns the source factory for the scene and its cleanup
// Without a device every emitter records and logs what it would have played
func setupAudio(enabled bool, volume float64) (street.SourceFactory, func()) {
	record := func(name string) audio.Source { return audio.NewRecorder(name, true) }
	if !enabled {
		return record, func() {}
	}

	out := audio.NewOutput()
	if err := out.Initialize(); err != nil {
		log.Printf("[AUDIO] Speaker unavailable: %v (continuing without audio)", err)
		return record, func() {}
	}
	return func(name string) audio.Source {
		return audio.NewSpeakerSource(out, name, volume)
	}, out.Close
}
