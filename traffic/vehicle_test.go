package traffic

import (
	"testing"

	"github.com/lixenwraith/crosswalk/parameter"
	"github.com/lixenwraith/crosswalk/vmath"
)

func testLane() *Lane {
	return NewLane("near", vmath.Vec3F{}, vmath.Vec3F{X: parameter.LaneLength})
}

func TestHoldReleaseRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		speed    float64
		fallback float64
		want     float64
	}{
		{"cruising", 7.3, 10, 7.3},
		{"near zero uses fallback", 0.005, 10, 10},
		{"exactly threshold uses fallback", parameter.StoppedSpeed, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewVehicle(1, testLane(), 0, tt.speed)
			holder := &struct{ int }{}

			if !v.Hold(holder, ClaimCheckpoint, tt.fallback) {
				t.Error("Expected first hold to open the slot")
			}
			if v.Speed != 0 {
				t.Errorf("Expected speed 0 while held, got %f", v.Speed)
			}
			if !v.Release(holder) {
				t.Error("Expected release to restore")
			}
			if v.Speed != tt.want {
				t.Errorf("Expected %f, got %f", tt.want, v.Speed)
			}
			if v.Release(holder) {
				t.Error("Expected second release to be a no-op")
			}
		})
	}
}

func TestRepeatedHoldDoesNotOverwriteSaved(t *testing.T) {
	v := NewVehicle(1, testLane(), 0, 6)
	h := "line"
	v.Hold(h, ClaimCheckpoint, 10)
	if v.Hold(h, ClaimCheckpoint, 10) {
		t.Error("Expected repeated hold by same holder not to reopen")
	}
	v.Release(h)
	if v.Speed != 6 {
		t.Errorf("Expected 6, got %f", v.Speed)
	}
}

func TestSharedSlotRestoresOnLastRelease(t *testing.T) {
	v := NewVehicle(1, testLane(), 0, 8)
	line, sensor := "line", "sensor"

	v.Hold(sensor, ClaimSpacing, 5)
	v.Hold(line, ClaimCheckpoint, 10)

	if kind, ok := v.Owner(); !ok || kind != ClaimSpacing {
		t.Errorf("Expected spacing to own, got %v %t", kind, ok)
	}

	if v.Release(sensor) {
		t.Error("Expected no restore while the line still holds")
	}
	if v.Speed != 0 {
		t.Errorf("Expected vehicle to stay stopped, got %f", v.Speed)
	}
	if kind, _ := v.Owner(); kind != ClaimCheckpoint {
		t.Errorf("Expected checkpoint to own, got %v", kind)
	}
	if !v.Release(line) {
		t.Error("Expected final release to restore")
	}
	if v.Speed != 8 {
		t.Errorf("Expected the first saved speed 8, got %f", v.Speed)
	}
}

func TestDespawnDropsClaims(t *testing.T) {
	v := NewVehicle(1, testLane(), 0, 8)
	v.Hold("line", ClaimCheckpoint, 10)
	v.Despawn()

	if v.Held() {
		t.Error("Expected no claims after despawn")
	}
	if v.Release("line") {
		t.Error("Expected release after despawn to be a no-op")
	}
	if v.Body.Alive() {
		t.Error("Expected body collider destroyed")
	}
}

func TestVehicleAdvance(t *testing.T) {
	v := NewVehicle(1, testLane(), 0, 8)
	v.Advance(parameter.TickInterval * 20) // 1s
	if v.Distance != 8 {
		t.Errorf("Expected 8m, got %f", v.Distance)
	}
	if p := v.Position(); p.X != 8 {
		t.Errorf("Expected x=8, got %f", p.X)
	}
}
