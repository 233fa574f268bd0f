package scene

import "github.com/go-gl/mathgl/mgl32"

// State of the moving ball.
type State int

const (
	Idle State = iota
	Moving
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Moving:
		return "moving"
	}
	return "unknown"
}

// Bounds is an axis-aligned rectangle on the table plane.
type Bounds struct {
	MinX, MaxX float32
	MinY, MaxY float32
}

// Contains reports whether p lies inside b (edges included). Z is ignored.
func (b Bounds) Contains(p mgl32.Vec3) bool {
	return p.X() >= b.MinX && p.X() <= b.MaxX && p.Y() >= b.MinY && p.Y() <= b.MaxY
}

// Table and ball constants, in scene units.
const (
	BallRadius        = 1.0
	CollisionDistance = 2 * BallRadius
	BallSpeed         = 0.15

	TableLength = 100.0
	TableWidth  = 50.0
	TableDepth  = 2.5
	TableZ      = 2.25

	SpawnRange = 20.0
)

// TableBounds keeps a ball's centre one radius plus a margin inside the
// table edges.
var TableBounds = Bounds{MinX: -48.5, MaxX: 48.5, MinY: -24.5, MaxY: 24.5}

// SpawnBounds is where balls are placed at startup and on re-randomise.
var SpawnBounds = Bounds{MinX: -SpawnRange, MaxX: SpawnRange, MinY: -SpawnRange, MaxY: SpawnRange}

// BallDirection is the fixed travel direction of the moving ball.
var BallDirection = mgl32.Vec3{-1, -1, 0}.Normalize()
