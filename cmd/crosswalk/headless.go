package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/lixenwraith/crosswalk/engine"
	"github.com/lixenwraith/crosswalk/parameter"
	"github.com/lixenwraith/crosswalk/street"
)

// runHeadless plays the scripted walkthrough and prints a summary
// Scene time runs as fast as possible unless audio is on, then it follows the wall clock
func runHeadless(s *street.Scene, limit time.Duration, realtime bool, w io.Writer) int {
	tick := s.Config.Tick
	var pilot *street.Autopilot
	s.World.RunSafe(func() {
		s.Start()
		pilot = street.NewAutopilot(s, tick)
		pilot.Start()
	})

	finished := func() (done bool) {
		s.World.RunSafe(func() {
			done = pilot.Done() || s.World.Now() >= limit
		})
		return done
	}

	if realtime {
		runner, ticks := engine.NewRunner(s.World, engine.NewPausableClock(), tick, parameter.MaxTickLag)
		runner.Start()
		for range ticks {
			if finished() {
				break
			}
		}
		runner.Stop()
	} else {
		for !finished() {
			s.Tick(tick)
		}
	}

	ok := true
	s.World.RunSafe(func() {
		report(w, s)
		ok = pilot.Done()
	})
	if !ok {
		fmt.Fprintf(w, "walkthrough incomplete after %v\n", limit)
		return 1
	}
	return 0
}

// report writes the session summary; callers hold the world lock
func report(w io.Writer, s *street.Scene) {
	fmt.Fprintf(w, "session  %s\n", s.Session.ID)
	fmt.Fprintf(w, "elapsed  %v\n", s.World.Now())
	fmt.Fprintf(w, "phases   %s\n", strings.Join(s.Scenario.History(), " -> "))
	fmt.Fprintf(w, "signal   %v\n", s.Signal.State())
	fmt.Fprintln(w, "narration:")
	for _, n := range s.Transcript.Notes() {
		fmt.Fprintf(w, "  %s\n", n)
	}
	fmt.Fprintln(w, "status:")
	for _, line := range s.World.Status.Lines() {
		fmt.Fprintf(w, "  %s\n", line)
	}
}
