package main

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/crosswalk/core"
	"github.com/lixenwraith/crosswalk/engine"
	"github.com/lixenwraith/crosswalk/event"
	"github.com/lixenwraith/crosswalk/parameter"
	"github.com/lixenwraith/crosswalk/signal"
	"github.com/lixenwraith/crosswalk/street"
	"github.com/lixenwraith/crosswalk/vmath"
)

const (
	viewMinZ  = -12.0
	viewMaxZ  = 10.0
	viewSpan  = 40.0 // Meters covered by a full vision radius
	statusTop = 2    // Rows between the street and the status area

	restHandDistance = 0.3
)

var (
	styleRoad     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleCurb     = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleStripe   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleWalk     = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleStop     = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleHeld     = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleCar      = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	stylePlayer   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleOther    = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	styleMarker   = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	styleText     = tcell.StyleDefault
	styleDimText  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleRedLamp  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleDarkCell = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
)

// tui renders the street top-down and turns keys into scene events
type tui struct {
	screen tcell.Screen
	scene  *street.Scene
	runner *engine.Runner

	width, height int
	grips         bool
	handDistance  float64
}

func runTUI(s *street.Scene) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()
	core.SetCrashHook(screen.Fini)
	defer core.SetCrashHook(nil)

	runner, ticks := engine.NewRunner(s.World, engine.NewPausableClock(), s.Config.Tick, parameter.MaxTickLag)
	t := &tui{
		screen:       screen,
		scene:        s,
		runner:       runner,
		handDistance: restHandDistance,
	}
	t.width, t.height = screen.Size()

	s.World.RunSafe(s.Start)
	runner.Start()
	defer runner.Stop()

	eventChan := make(chan tcell.Event, 100)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	})

	ticker := time.NewTicker(parameter.FrameInterval)
	defer ticker.Stop()

	// Frames redraw only after a tick or input changed something
	dirty := true
	for {
		select {
		case ev := <-eventChan:
			if !t.handleInput(ev) {
				return nil
			}
			dirty = true
		case <-ticks:
			dirty = true
		case <-ticker.C:
			if !dirty {
				continue
			}
			s.World.RunSafe(t.draw)
			screen.Show()
			dirty = false
		}
	}
}

// handleInput returns false when the user quits
func (t *tui) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		step := parameter.PlayerStepSize
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			t.emit(event.EventPlayerMove, &event.PlayerMovePayload{DZ: step})
		case tcell.KeyDown:
			t.emit(event.EventPlayerMove, &event.PlayerMovePayload{DZ: -step})
		case tcell.KeyLeft:
			t.emit(event.EventPlayerMove, &event.PlayerMovePayload{DX: -step})
		case tcell.KeyRight:
			t.emit(event.EventPlayerMove, &event.PlayerMovePayload{DX: step})
		case tcell.KeyRune:
			return t.handleRune(ev.Rune())
		}
	case *tcell.EventResize:
		t.width, t.height = t.screen.Size()
		t.screen.Sync()
	}
	return true
}

func (t *tui) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case 'b':
		t.emit(event.EventButtonPress, nil)
	case 'g':
		t.grips = !t.grips
		t.emit(event.EventGripChange, &event.GripPayload{Left: t.grips, Right: t.grips})
	case 's':
		t.handDistance += 0.1
		t.emit(event.EventHandDistance, &event.HandDistancePayload{Meters: t.handDistance})
	case 'S':
		t.handDistance = math.Max(0, t.handDistance-0.1)
		t.emit(event.EventHandDistance, &event.HandDistancePayload{Meters: t.handDistance})
	case 'a':
		t.emit(event.EventPlayerTurn, &event.PlayerTurnPayload{Degrees: -parameter.PlayerTurnStep})
	case 'd':
		t.emit(event.EventPlayerTurn, &event.PlayerTurnPayload{Degrees: parameter.PlayerTurnStep})
	case 'p':
		t.runner.TogglePause()
	}
	return true
}

func (t *tui) emit(et event.EventType, payload any) {
	t.scene.World.RunSafe(func() {
		t.scene.World.Emit(et, payload)
	})
}

// cell maps a ground point to a screen cell; ok is false off the street area
func (t *tui) cell(p vmath.Vec3F) (x, y int, ok bool) {
	rows := t.streetRows()
	if rows <= 0 || t.width <= 0 {
		return 0, 0, false
	}
	x = int(p.X / t.scene.Layout.Length * float64(t.width))
	y = int((viewMaxZ - p.Z) / (viewMaxZ - viewMinZ) * float64(rows))
	return x, y, x >= 0 && x < t.width && y >= 0 && y < rows
}

// ground maps a screen cell back to the ground point at its center
func (t *tui) ground(x, y int) vmath.Vec3F {
	rows := t.streetRows()
	return vmath.Vec3F{
		X: (float64(x) + 0.5) / float64(t.width) * t.scene.Layout.Length,
		Z: viewMaxZ - (float64(y)+0.5)/float64(rows)*(viewMaxZ-viewMinZ),
	}
}

func (t *tui) streetRows() int {
	return t.height * 2 / 3
}

func (t *tui) put(p vmath.Vec3F, r rune, style tcell.Style) {
	if x, y, ok := t.cell(p); ok {
		t.screen.SetContent(x, y, r, nil, style)
	}
}

func (t *tui) text(x, y int, s string, style tcell.Style) {
	for i, r := range s {
		if x+i >= t.width {
			return
		}
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}

// draw renders one frame; callers hold the world lock
func (t *tui) draw() {
	s := t.scene
	t.screen.Clear()

	pedsGreen := s.Signal.State() == signal.CarsRedPedsGreen
	lay := s.Layout
	roadHalf := lay.CrossingHalf.Z

	rows := t.streetRows()
	for y := 0; y < rows; y++ {
		for x := 0; x < t.width; x++ {
			p := t.ground(x, y)
			var r rune
			style := styleRoad
			switch {
			case math.Abs(p.Z) < 0.25:
				r = '-'
				style = styleStripe
			case math.Abs(p.Z) <= roadHalf && math.Abs(p.X-lay.Crossing.X) <= lay.CrossingHalf.X:
				r = '='
				if pedsGreen {
					style = styleWalk
				} else {
					style = styleStripe
				}
			case math.Abs(p.Z) <= roadHalf:
				r = ' '
			case math.Abs(p.Z) <= roadHalf+0.5:
				r = '_'
				style = styleCurb
			default:
				r = '.'
				style = styleDarkCell
			}
			t.screen.SetContent(x, y, r, nil, style)
		}
	}

	for _, ch := range s.Chains {
		for _, node := range ch.Nodes {
			style := styleStop
			if node.Occupied() {
				style = styleHeld
			}
			t.put(node.Origin, '|', style)
		}
	}
	for _, v := range s.Fleet.Vehicles() {
		if !v.Alive() {
			continue
		}
		style := styleCar
		if v.Held() {
			style = styleHeld
		}
		r := '>'
		if v.Lane == s.Opposite {
			r = '<'
		}
		t.put(v.Position(), r, style)
	}

	t.put(lay.Button, 'B', styleMarker)
	t.put(lay.ExitDoor, 'D', styleMarker)
	t.drawHead(vmath.Vec3F{X: lay.Crossing.X - lay.CrossingHalf.X - 1, Z: lay.FarCurb.Z}, &s.Signal.Opposite)
	t.drawHead(vmath.Vec3F{X: lay.Crossing.X + lay.CrossingHalf.X + 1, Z: lay.StartArea.Z + 2}, &s.Signal.Near)

	for _, w := range s.Crowd.Walkers() {
		if w.Alive() {
			t.put(w.Position(), 'P', styleOther)
		}
	}
	t.put(s.Player.Position(), '@', stylePlayer)

	t.dimOutsideVision(rows)
	t.drawStatus(rows + statusTop)
}

func (t *tui) drawHead(at vmath.Vec3F, h *signal.Head) {
	switch h.Showing() {
	case "green":
		t.put(at, 'W', styleWalk)
	case "red":
		t.put(at, 'H', styleRedLamp)
	default:
		t.put(at, '?', styleDimText)
	}
}

// dimOutsideVision fades every street cell beyond the tunnel radius around the player
func (t *tui) dimOutsideVision(rows int) {
	radius := t.scene.Tunnel.Radius() * viewSpan
	eye := t.scene.Player.Position()
	for y := 0; y < rows; y++ {
		for x := 0; x < t.width; x++ {
			p := t.ground(x, y)
			if math.Hypot(p.X-eye.X, p.Z-eye.Z) <= radius {
				continue
			}
			r, _, _, _ := t.screen.GetContent(x, y)
			t.screen.SetContent(x, y, r, nil, styleDarkCell)
		}
	}
}

func (t *tui) drawStatus(y int) {
	s := t.scene
	paused := ""
	if t.runner.Paused() {
		paused = "  [PAUSED]"
	}
	t.text(0, y, fmt.Sprintf("phase %-20s signal %-18s radius %.3f  t=%v%s",
		s.Scenario.PhaseName(), s.Signal.State(), s.Tunnel.Radius(), s.World.Now().Truncate(time.Second), paused), styleText)
	y++

	notes := s.Transcript.Notes()
	for i := max(0, len(notes)-3); i < len(notes) && y < t.height-2; i++ {
		t.text(0, y, notes[i].String(), styleDimText)
		y++
	}
	for _, line := range s.World.Status.Lines() {
		if y >= t.height-1 {
			break
		}
		t.text(0, y, line, styleDimText)
		y++
	}
	t.text(0, t.height-1, "arrows move  a/d turn  b button  g grip  s/S stretch  p pause  q quit", styleText)
}
