// Package input turns raw window events into camera and scene requests.
// It has no dependency on the windowing library so it can be driven from
// tests; core translates its events into the Key values below.
package input

import "math"

// Key is a window-system independent key identifier.
type Key int

const (
	KeyUnknown Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyTab
	KeyEscape
	KeyR
	KeyF12
	Key1
	Key2
	Key3
	Key4
)

// Action is what happened to a key.
type Action int

const (
	Release Action = iota
	Press
	Repeat
)

// Light slots toggled by keys 1 to 4.
const (
	AmbientLight = iota
	DirectionalLight
	PointLight
	SpotLight
	NumLights
)

const (
	CursorRotationStep = 1.0 // degrees per cursor event per axis
	KeyRotationStep    = 5.0 // degrees per arrow key press
	ZoomFactor         = 0.1
	InitialZoom        = 5.0
)

// State accumulates camera parameters and one-shot requests between frames.
type State struct {
	RotationX float32
	RotationY float32
	Zoom      float32
	Lights    [NumLights]bool

	lastX, lastY float64
	haveCursor   bool

	start      bool
	reset      bool
	randomize  bool
	screenshot bool
	quit       bool
}

// NewState returns the startup camera with all lights on.
func NewState() *State {
	s := &State{Zoom: InitialZoom}
	for i := range s.Lights {
		s.Lights[i] = true
	}
	return s
}

// HandleKey applies a key event. Only presses and repeats act.
func (s *State) HandleKey(key Key, action Action) {
	if action != Press && action != Repeat {
		return
	}
	switch key {
	case KeyUp:
		s.RotationX -= KeyRotationStep
	case KeyDown:
		s.RotationX += KeyRotationStep
	case KeyRight:
		s.RotationY += KeyRotationStep
	case KeyLeft:
		s.RotationY -= KeyRotationStep
	case KeySpace:
		s.start = true
	case KeyTab:
		s.randomize = true
	case KeyR:
		s.reset = true
	case KeyF12:
		s.screenshot = true
	case KeyEscape:
		s.quit = true
	case Key1, Key2, Key3, Key4:
		// repeats would flicker the light
		if action == Press {
			i := int(key - Key1)
			s.Lights[i] = !s.Lights[i]
		}
	}
}

// HandleCursor rotates the camera a fixed step per axis in the direction
// the cursor moved. The first event only records the position.
func (s *State) HandleCursor(x, y float64) {
	if s.haveCursor {
		switch {
		case x > s.lastX:
			s.RotationY += CursorRotationStep
		case x < s.lastX:
			s.RotationY -= CursorRotationStep
		}
		switch {
		case y > s.lastY:
			s.RotationX += CursorRotationStep
		case y < s.lastY:
			s.RotationX -= CursorRotationStep
		}
	}
	s.lastX, s.lastY = x, y
	s.haveCursor = true
}

// HandleScroll zooms proportionally to the current zoom.
func (s *State) HandleScroll(yoff float64) {
	s.Zoom += float32(math.Abs(float64(s.Zoom)) * yoff * ZoomFactor)
}

// TakeStart reports and clears a pending start request.
func (s *State) TakeStart() bool { return take(&s.start) }

// TakeReset reports and clears a pending reset request.
func (s *State) TakeReset() bool { return take(&s.reset) }

// TakeRandomize reports and clears a pending re-randomise request.
func (s *State) TakeRandomize() bool { return take(&s.randomize) }

// TakeScreenshot reports and clears a pending screenshot request.
func (s *State) TakeScreenshot() bool { return take(&s.screenshot) }

// QuitRequested reports whether Escape was pressed. It stays set.
func (s *State) QuitRequested() bool { return s.quit }

func take(flag *bool) bool {
	v := *flag
	*flag = false
	return v
}
