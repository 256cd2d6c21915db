package parameter

import "time"

// Narration pacing
const (
	ScenarioIntroPause    = 4 * time.Second
	ScenarioAfterTryPause = 2 * time.Second
	ScenarioOutroPause    = 1 * time.Second
)

// TranscriptLimit bounds the narration notes kept for display
const TranscriptLimit = 12
