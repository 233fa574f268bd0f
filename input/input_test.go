package input

import "testing"

func TestNewState(t *testing.T) {
	s := NewState()
	if s.Zoom != InitialZoom {
		t.Fatalf("zoom = %v, want %v", s.Zoom, InitialZoom)
	}
	for i, on := range s.Lights {
		if !on {
			t.Fatalf("light %d starts off", i)
		}
	}
}

func TestArrowKeysRotate(t *testing.T) {
	s := NewState()
	s.HandleKey(KeyUp, Press)
	s.HandleKey(KeyRight, Repeat)
	s.HandleKey(KeyRight, Repeat)
	s.HandleKey(KeyLeft, Release)

	if s.RotationX != -5 || s.RotationY != 10 {
		t.Fatalf("rotation = (%v, %v), want (-5, 10)", s.RotationX, s.RotationY)
	}
}

func TestRequestsAreOneShot(t *testing.T) {
	s := NewState()
	s.HandleKey(KeySpace, Press)
	s.HandleKey(KeyTab, Press)
	s.HandleKey(KeyR, Press)
	s.HandleKey(KeyF12, Press)

	if !s.TakeStart() || !s.TakeRandomize() || !s.TakeReset() || !s.TakeScreenshot() {
		t.Fatalf("pending requests not reported")
	}
	if s.TakeStart() || s.TakeRandomize() || s.TakeReset() || s.TakeScreenshot() {
		t.Fatalf("requests reported twice")
	}
}

func TestEscapeQuits(t *testing.T) {
	s := NewState()
	if s.QuitRequested() {
		t.Fatalf("quit before escape")
	}
	s.HandleKey(KeyEscape, Press)
	if !s.QuitRequested() || !s.QuitRequested() {
		t.Fatalf("quit not sticky")
	}
}

func TestLightToggles(t *testing.T) {
	s := NewState()
	s.HandleKey(Key2, Press)
	s.HandleKey(Key4, Press)
	s.HandleKey(Key4, Repeat)

	want := [NumLights]bool{true, false, true, false}
	if s.Lights != want {
		t.Fatalf("lights = %v, want %v", s.Lights, want)
	}

	s.HandleKey(Key2, Press)
	if !s.Lights[DirectionalLight] {
		t.Fatalf("second press did not re-enable directional light")
	}
}

func TestCursorRotatesByFixedStep(t *testing.T) {
	s := NewState()
	s.HandleCursor(100, 100)
	if s.RotationX != 0 || s.RotationY != 0 {
		t.Fatalf("first cursor event rotated camera")
	}

	s.HandleCursor(150, 90) // far right, slightly up
	if s.RotationY != 1 || s.RotationX != -1 {
		t.Fatalf("rotation = (%v, %v), want (-1, 1)", s.RotationX, s.RotationY)
	}

	s.HandleCursor(150, 90)
	if s.RotationY != 1 || s.RotationX != -1 {
		t.Fatalf("stationary cursor rotated camera")
	}
}

func TestScrollZoom(t *testing.T) {
	s := NewState()
	s.HandleScroll(1)
	if s.Zoom < 5.49 || s.Zoom > 5.51 {
		t.Fatalf("zoom after scroll up = %v, want 5.5", s.Zoom)
	}
	s.HandleScroll(-1)
	if s.Zoom < 4.94 || s.Zoom > 4.96 {
		t.Fatalf("zoom after scroll down = %v, want 4.95", s.Zoom)
	}
}
