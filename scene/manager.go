package scene

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/toxichemicals/GO/pooltable/model"
	"github.com/toxichemicals/GO/pooltable/texture"
)

// Backend owns GPU resources on behalf of the manager.
type Backend interface {
	texture.Uploader
	UploadVertices(vertices []model.Vertex) (model.BufferHandle, error)
	ReleaseBuffer(h model.BufferHandle)
	ReleaseTexture(h model.TextureHandle)
}

// Object is one loaded ball (or the table) and where it sits.
type Object struct {
	Name        string
	Geometry    *model.Geometry
	Buffer      model.BufferHandle
	Position    mgl32.Vec3
	Orientation mgl32.Vec3 // Euler angles, degrees
}

// DrawableState is everything the renderer needs to draw one object.
type DrawableState struct {
	Position    mgl32.Vec3
	Orientation mgl32.Vec3
	Buffer      model.BufferHandle
	VertexCount int32
	Texture     model.TextureHandle
	Ambient     mgl32.Vec3
	Diffuse     mgl32.Vec3
	Specular    mgl32.Vec3
	Shininess   float32
}

// Options configures a Manager.
type Options struct {
	// MeshPattern is a fmt pattern taking the 1-based ball number,
	// e.g. "Ball%d.obj".
	MeshPattern string
	Count       int

	MovingIndex       int
	Direction         mgl32.Vec3
	Speed             float32
	CollisionDistance float32
	Bounds            Bounds
	SpawnBounds       Bounds

	MaxTextureSize int
	Seed           int64 // zero seeds from the clock
}

// DefaultOptions returns the standard fifteen-ball setup.
func DefaultOptions() Options {
	return Options{
		MeshPattern:       "Ball%d.obj",
		Count:             15,
		MovingIndex:       0,
		Direction:         BallDirection,
		Speed:             BallSpeed,
		CollisionDistance: CollisionDistance,
		Bounds:            TableBounds,
		SpawnBounds:       SpawnBounds,
	}
}

// Manager owns the scene objects and runs the per-frame update. It is not
// safe for concurrent use; everything runs on the render thread.
type Manager struct {
	backend  Backend
	resolver *texture.Resolver
	opts     Options
	rng      *rand.Rand

	objects []*Object
	table   *Object
	state   State
}

// NewManager creates an empty scene.
func NewManager(backend Backend, opts Options) *Manager {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Manager{
		backend:  backend,
		resolver: texture.NewResolver(backend, opts.MaxTextureSize),
		opts:     opts,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// InitializePositions returns count random positions (x, y, 0) inside b.
func InitializePositions(rng *rand.Rand, count int, b Bounds) []mgl32.Vec3 {
	positions := make([]mgl32.Vec3, count)
	for i := range positions {
		x := b.MinX + rng.Float32()*(b.MaxX-b.MinX)
		y := b.MinY + rng.Float32()*(b.MaxY-b.MinY)
		positions[i] = mgl32.Vec3{x, y, 0}
	}
	return positions
}

// LoadScene loads Count meshes named by MeshPattern from dir, resolves their
// textures, uploads them and scatters them over the spawn area. dir is
// prefixed as-is, so it must end with a separator.
//
// A mesh that fails to load aborts the whole scene; anything already
// uploaded is released before returning.
func (m *Manager) LoadScene(dir string) error {
	for i := 1; i <= m.opts.Count; i++ {
		path := dir + fmt.Sprintf(m.opts.MeshPattern, i)
		geom, err := model.Load(path)
		if err != nil {
			m.ReleaseAll()
			return errors.Wrapf(err, "failed to load ball %d", i)
		}
		m.resolver.Resolve(&geom.Material)

		if _, err := m.AddObject(fmt.Sprintf("Ball%d", i), geom, mgl32.Vec3{}); err != nil {
			if geom.Material.HasTexture() {
				m.backend.ReleaseTexture(geom.Material.Texture)
			}
			m.ReleaseAll()
			return err
		}
		log.Printf("Loaded %d vertices from %s", len(geom.Vertices), path)
	}
	m.Randomize()
	return nil
}

// AddObject uploads geom and appends it to the scene at pos. The object takes
// ownership of geom and its material's texture.
func (m *Manager) AddObject(name string, geom *model.Geometry, pos mgl32.Vec3) (int, error) {
	obj, err := m.upload(name, geom, pos)
	if err != nil {
		return -1, err
	}
	m.objects = append(m.objects, obj)
	return len(m.objects) - 1, nil
}

// SetTable uploads the table geometry. The table is drawn but never collides.
func (m *Manager) SetTable(geom *model.Geometry, pos mgl32.Vec3) error {
	obj, err := m.upload("Table", geom, pos)
	if err != nil {
		return err
	}
	if m.table != nil {
		m.release(m.table)
	}
	m.table = obj
	return nil
}

func (m *Manager) upload(name string, geom *model.Geometry, pos mgl32.Vec3) (*Object, error) {
	if len(geom.Vertices) == 0 {
		return nil, errors.Wrapf(model.ErrResource, "object %s has no vertices", name)
	}
	buf, err := m.backend.UploadVertices(geom.Vertices)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to upload object %s", name)
	}
	return &Object{
		Name:     name,
		Geometry: geom,
		Buffer:   buf,
		Position: pos,
	}, nil
}

// Len returns the number of balls.
func (m *Manager) Len() int {
	return len(m.objects)
}

// Object returns ball i.
func (m *Manager) Object(i int) (*Object, error) {
	if i < 0 || i >= len(m.objects) {
		return nil, errors.Errorf("object index out of range: %d (have %d)", i, len(m.objects))
	}
	return m.objects[i], nil
}

// Table returns the table object, or nil if none was set.
func (m *Manager) Table() *Object {
	return m.table
}

// SetPosition moves ball i.
func (m *Manager) SetPosition(i int, pos mgl32.Vec3) error {
	obj, err := m.Object(i)
	if err != nil {
		return err
	}
	obj.Position = pos
	return nil
}

// Randomize scatters every ball over the spawn area.
func (m *Manager) Randomize() {
	positions := InitializePositions(m.rng, len(m.objects), m.opts.SpawnBounds)
	for i, p := range positions {
		m.objects[i].Position = p
	}
}

// State returns the animation state.
func (m *Manager) State() State {
	return m.state
}

// Start sets the moving ball in motion.
func (m *Manager) Start() {
	if m.state == Idle {
		m.state = Moving
	}
}

// Reset stops the moving ball where it is.
func (m *Manager) Reset() {
	m.state = Idle
}

// Step advances the moving ball by one fixed increment and returns the new
// state. The ball halts when it comes within CollisionDistance of any other
// ball or leaves Bounds; the move that caused the halt is kept.
func (m *Manager) Step() State {
	if m.state != Moving {
		return m.state
	}
	idx := m.opts.MovingIndex
	if idx < 0 || idx >= len(m.objects) {
		m.state = Idle
		return m.state
	}

	moving := m.objects[idx]
	moving.Position = moving.Position.Add(m.opts.Direction.Mul(m.opts.Speed))

	for i, other := range m.objects {
		if i == idx {
			continue
		}
		if moving.Position.Sub(other.Position).Len() < m.opts.CollisionDistance {
			m.state = Idle
			break
		}
	}

	if !m.opts.Bounds.Contains(moving.Position) {
		m.state = Idle
	}
	return m.state
}

// Drawable returns the draw state of ball i.
func (m *Manager) Drawable(i int) (DrawableState, error) {
	obj, err := m.Object(i)
	if err != nil {
		return DrawableState{}, err
	}
	return drawableOf(obj), nil
}

// TableDrawable returns the draw state of the table, if one was set.
func (m *Manager) TableDrawable() (DrawableState, bool) {
	if m.table == nil {
		return DrawableState{}, false
	}
	return drawableOf(m.table), true
}

func drawableOf(obj *Object) DrawableState {
	mat := obj.Geometry.Material
	return DrawableState{
		Position:    obj.Position,
		Orientation: obj.Orientation,
		Buffer:      obj.Buffer,
		VertexCount: int32(len(obj.Geometry.Vertices)),
		Texture:     mat.Texture,
		Ambient:     mat.Ambient,
		Diffuse:     mat.Diffuse,
		Specular:    mat.Specular,
		Shininess:   mat.Shininess,
	}
}

// ReleaseAll frees every buffer and texture the scene owns. Calling it again
// is a no-op.
func (m *Manager) ReleaseAll() {
	for _, obj := range m.objects {
		m.release(obj)
	}
	if m.table != nil {
		m.release(m.table)
	}
	m.objects = nil
	m.table = nil
	m.state = Idle
}

func (m *Manager) release(obj *Object) {
	if obj.Buffer != 0 {
		m.backend.ReleaseBuffer(obj.Buffer)
		obj.Buffer = 0
	}
	if obj.Geometry.Material.HasTexture() {
		m.backend.ReleaseTexture(obj.Geometry.Material.Texture)
		obj.Geometry.Material.Texture = 0
	}
}
