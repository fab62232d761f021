package camera

import (
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	cam := New(1280, 800, 4)

	if cam.X != 0 || cam.Y != 0 {
		t.Errorf("expected camera at origin, got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 4 {
		t.Errorf("expected zoom 4, got %f", cam.Zoom)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1280, 800, 4)

	sx, sy := cam.WorldToScreen(0, 0)
	if math.Abs(float64(sx-640)) > 0.01 || math.Abs(float64(sy-400)) > 0.01 {
		t.Errorf("expected screen center (640, 400), got (%f, %f)", sx, sy)
	}

	// +Y is down the screen
	_, sy = cam.WorldToScreen(0, 10)
	if sy != 440 {
		t.Errorf("expected y=440 for +10 units, got %f", sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 800, 4)
	cam.CenterOn(-35, 120)

	testCases := []struct{ sx, sy float32 }{
		{640, 400},
		{100, 100},
		{1200, 700},
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if math.Abs(float64(sx-tc.sx)) > 0.01 || math.Abs(float64(sy-tc.sy)) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestTrackLerps(t *testing.T) {
	cam := New(1280, 800, 4)

	cam.Track(100, -50)
	if math.Abs(float64(cam.X-10)) > 1e-4 || math.Abs(float64(cam.Y+5)) > 1e-4 {
		t.Errorf("expected (10, -5) after one frame, got (%f, %f)", cam.X, cam.Y)
	}

	for i := 0; i < 200; i++ {
		cam.Track(100, -50)
	}
	if math.Abs(float64(cam.X-100)) > 0.01 || math.Abs(float64(cam.Y+50)) > 0.01 {
		t.Errorf("camera did not converge: (%f, %f)", cam.X, cam.Y)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 800, 4)

	cam.SetZoom(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MaxZoom, cam.Zoom)
	}
	cam.SetZoom(0.01)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MinZoom, cam.Zoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 800, 4)
	// Visible half-extent is 160 x 100 units

	if !cam.IsVisible(150, 0, 1) {
		t.Error("point inside view reported invisible")
	}
	if cam.IsVisible(0, 120, 5) {
		t.Error("point outside view reported visible")
	}
	if !cam.IsVisible(0, 103, 5) {
		t.Error("radius should extend visibility")
	}
}

func TestVisibleWorldBounds(t *testing.T) {
	cam := New(1280, 800, 4)
	cam.CenterOn(10, 20)

	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	if minX != -150 || maxX != 170 || minY != -80 || maxY != 120 {
		t.Errorf("bounds = (%f,%f)-(%f,%f)", minX, minY, maxX, maxY)
	}
}
