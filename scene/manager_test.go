package scene

import (
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/toxichemicals/GO/pooltable/model"
)

type fakeBackend struct {
	nextBuf  model.BufferHandle
	nextTex  model.TextureHandle
	buffers  map[model.BufferHandle]int // live buffer -> vertex count
	textures map[model.TextureHandle]bool
	released []model.BufferHandle
	failAt   int // fail the n-th upload (1-based), 0 never
	uploads  int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		buffers:  make(map[model.BufferHandle]int),
		textures: make(map[model.TextureHandle]bool),
	}
}

func (f *fakeBackend) UploadVertices(vertices []model.Vertex) (model.BufferHandle, error) {
	f.uploads++
	if f.failAt != 0 && f.uploads == f.failAt {
		return 0, errors.Wrap(model.ErrResource, "upload failed")
	}
	f.nextBuf++
	f.buffers[f.nextBuf] = len(vertices)
	return f.nextBuf, nil
}

func (f *fakeBackend) ReleaseBuffer(h model.BufferHandle) {
	if _, ok := f.buffers[h]; !ok {
		panic("release of unknown or already released buffer")
	}
	delete(f.buffers, h)
	f.released = append(f.released, h)
}

func (f *fakeBackend) CreateTexture(img *image.RGBA) (model.TextureHandle, error) {
	f.nextTex++
	f.textures[f.nextTex] = true
	return f.nextTex, nil
}

func (f *fakeBackend) ReleaseTexture(h model.TextureHandle) {
	if !f.textures[h] {
		panic("release of unknown or already released texture")
	}
	delete(f.textures, h)
}

func triangle() *model.Geometry {
	return &model.Geometry{
		Vertices: []model.Vertex{
			{Position: mgl32.Vec3{0, 0, 0}},
			{Position: mgl32.Vec3{1, 0, 0}},
			{Position: mgl32.Vec3{0, 1, 0}},
		},
	}
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.Seed = 1
	return opts
}

func newSceneWith(t *testing.T, opts Options, positions ...mgl32.Vec3) (*Manager, *fakeBackend) {
	t.Helper()
	be := newFakeBackend()
	m := NewManager(be, opts)
	for i, p := range positions {
		if _, err := m.AddObject("ball", triangle(), p); err != nil {
			t.Fatalf("AddObject %d: %v", i, err)
		}
	}
	return m, be
}

func TestStepHaltsOnCollision(t *testing.T) {
	opts := testOptions()
	opts.Direction = mgl32.Vec3{1, 0, 0}
	m, _ := newSceneWith(t, opts, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0})

	m.Start()
	if got := m.Step(); got != Idle {
		t.Fatalf("state = %v, want idle", got)
	}

	moved, _ := m.Object(0)
	if want := (mgl32.Vec3{BallSpeed, 0, 0}); !moved.Position.ApproxEqual(want) {
		t.Fatalf("moving ball at %v, want %v (move must not be reverted)", moved.Position, want)
	}
	other, _ := m.Object(1)
	if other.Position != (mgl32.Vec3{1, 0, 0}) {
		t.Fatalf("other ball moved to %v", other.Position)
	}
}

func TestStepHaltsOnTableBounds(t *testing.T) {
	opts := testOptions()
	opts.Direction = mgl32.Vec3{1, 0, 0}
	m, _ := newSceneWith(t, opts, mgl32.Vec3{48.9, 0, 0}, mgl32.Vec3{-30, 0, 0})

	m.Start()
	if got := m.Step(); got != Idle {
		t.Fatalf("state = %v, want idle", got)
	}
	ball, _ := m.Object(0)
	if ball.Position.X() <= 48.9 {
		t.Fatalf("ball did not move: %v", ball.Position)
	}
}

func TestBoundsContains(t *testing.T) {
	cases := []struct {
		p    mgl32.Vec3
		want bool
	}{
		{mgl32.Vec3{0, 0, 0}, true},
		{mgl32.Vec3{48.5, 24.5, 0}, true},
		{mgl32.Vec3{49, 0, 0}, false},
		{mgl32.Vec3{-49, 0, 0}, false},
		{mgl32.Vec3{0, 25, 0}, false},
		{mgl32.Vec3{0, -25, 0}, false},
	}
	for _, c := range cases {
		if got := TableBounds.Contains(c.p); got != c.want {
			t.Fatalf("Contains(%v) = %v, want %v", c.p, got, c.want)
		}
	}
}

func TestStepKeepsMovingWhenClear(t *testing.T) {
	m, _ := newSceneWith(t, testOptions(), mgl32.Vec3{10, 10, 0}, mgl32.Vec3{-10, 10, 0})

	m.Start()
	for i := 0; i < 10; i++ {
		if got := m.Step(); got != Moving {
			t.Fatalf("step %d: state = %v, want moving", i, got)
		}
	}
	ball, _ := m.Object(0)
	want := mgl32.Vec3{10, 10, 0}.Add(BallDirection.Mul(10 * BallSpeed))
	if !ball.Position.ApproxEqualThreshold(want, 1e-4) {
		t.Fatalf("ball at %v, want %v", ball.Position, want)
	}
}

func TestStepWhileIdleDoesNothing(t *testing.T) {
	m, _ := newSceneWith(t, testOptions(), mgl32.Vec3{5, 5, 0})
	if got := m.Step(); got != Idle {
		t.Fatalf("state = %v, want idle", got)
	}
	ball, _ := m.Object(0)
	if ball.Position != (mgl32.Vec3{5, 5, 0}) {
		t.Fatalf("idle ball moved to %v", ball.Position)
	}
}

func TestStartAndReset(t *testing.T) {
	m, _ := newSceneWith(t, testOptions(), mgl32.Vec3{})
	m.Start()
	if m.State() != Moving {
		t.Fatalf("state after Start = %v", m.State())
	}
	m.Reset()
	if m.State() != Idle {
		t.Fatalf("state after Reset = %v", m.State())
	}
}

func TestStepWithoutBallsGoesIdle(t *testing.T) {
	m, _ := newSceneWith(t, testOptions())
	m.Start()
	if got := m.Step(); got != Idle {
		t.Fatalf("state = %v, want idle", got)
	}
}

func TestInitializePositionsWithinBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	b := Bounds{MinX: -20, MaxX: 20, MinY: -10, MaxY: 10}
	positions := InitializePositions(rng, 100, b)
	if len(positions) != 100 {
		t.Fatalf("got %d positions, want 100", len(positions))
	}
	for i, p := range positions {
		if !b.Contains(p) || p.Z() != 0 {
			t.Fatalf("position %d = %v outside %+v", i, p, b)
		}
	}
}

func TestAddObjectRejectsEmptyGeometry(t *testing.T) {
	m, be := newSceneWith(t, testOptions())
	_, err := m.AddObject("empty", &model.Geometry{}, mgl32.Vec3{})
	if !errors.Is(err, model.ErrResource) {
		t.Fatalf("err = %v, want ErrResource", err)
	}
	if be.uploads != 0 {
		t.Fatalf("backend called for empty geometry")
	}
}

func TestDrawable(t *testing.T) {
	m, _ := newSceneWith(t, testOptions())
	geom := triangle()
	geom.Material = model.Material{Diffuse: mgl32.Vec3{1, 0, 0}, Shininess: 8, Texture: 0}
	i, err := m.AddObject("red", geom, mgl32.Vec3{3, 4, 0})
	if err != nil {
		t.Fatalf("AddObject: %v", err)
	}

	d, err := m.Drawable(i)
	if err != nil {
		t.Fatalf("Drawable: %v", err)
	}
	if d.Position != (mgl32.Vec3{3, 4, 0}) || d.VertexCount != 3 || d.Diffuse != (mgl32.Vec3{1, 0, 0}) || d.Shininess != 8 {
		t.Fatalf("drawable = %+v", d)
	}
	if d.Buffer == 0 {
		t.Fatalf("drawable has no buffer")
	}
	if d.Texture != 0 {
		t.Fatalf("untextured material reports texture %d", d.Texture)
	}

	if _, err := m.Drawable(5); err == nil {
		t.Fatalf("Drawable(5) succeeded on a one-object scene")
	}
}

func TestReleaseAllReleasesOnce(t *testing.T) {
	m, be := newSceneWith(t, testOptions(), mgl32.Vec3{}, mgl32.Vec3{5, 0, 0})
	if err := m.SetTable(TableGeometry(TableLength, TableWidth, TableDepth), mgl32.Vec3{0, 0, TableZ}); err != nil {
		t.Fatalf("SetTable: %v", err)
	}
	obj, _ := m.Object(0)
	tex, _ := be.CreateTexture(nil)
	obj.Geometry.Material.Texture = tex

	m.ReleaseAll()
	if len(be.buffers) != 0 || len(be.textures) != 0 {
		t.Fatalf("leaked buffers=%v textures=%v", be.buffers, be.textures)
	}
	if len(be.released) != 3 {
		t.Fatalf("released %d buffers, want 3", len(be.released))
	}

	// second call must not double free (fake panics)
	m.ReleaseAll()
	if m.Len() != 0 {
		t.Fatalf("objects remain after ReleaseAll")
	}
}

func TestTableGeometry(t *testing.T) {
	g := TableGeometry(100, 50, 2.5)
	if len(g.Vertices) != 36 {
		t.Fatalf("got %d vertices, want 36", len(g.Vertices))
	}
	for i, v := range g.Vertices {
		p := v.Position
		if abs(p.X()) != 50 || abs(p.Y()) != 25 || abs(p.Z()) != 1.25 {
			t.Fatalf("vertex %d = %v is not a corner", i, p)
		}
	}
	if g.Material != TableMaterial {
		t.Fatalf("table material = %+v", g.Material)
	}
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

func writeBall(t *testing.T, dir string, n int, withTexture bool) {
	t.Helper()
	mesh := "mtllib ball.mtl\nv 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nvn 0 0 1\nf 1/1/1 2/1/1 3/1/1\n"
	if err := os.WriteFile(filepath.Join(dir, "Ball"+strconv.Itoa(n)+".obj"), []byte(mesh), 0o644); err != nil {
		t.Fatalf("write mesh: %v", err)
	}
	if !withTexture {
		return
	}
	mtl := "newmtl Ball\nKd 1 1 1\nmap_Kd ball.png\n"
	if err := os.WriteFile(filepath.Join(dir, "ball.mtl"), []byte(mtl), 0o644); err != nil {
		t.Fatalf("write material: %v", err)
	}
	f, err := os.Create(filepath.Join(dir, "ball.png"))
	if err != nil {
		t.Fatalf("create png: %v", err)
	}
	defer f.Close()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.White)
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
}

func TestLoadScene(t *testing.T) {
	dir := t.TempDir()
	for i := 1; i <= 3; i++ {
		writeBall(t, dir, i, true)
	}
	opts := testOptions()
	opts.Count = 3
	be := newFakeBackend()
	m := NewManager(be, opts)

	if err := m.LoadScene(filepath.ToSlash(dir) + "/"); err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	if m.Len() != 3 {
		t.Fatalf("loaded %d balls, want 3", m.Len())
	}
	for i := 0; i < 3; i++ {
		d, _ := m.Drawable(i)
		if d.Texture == 0 {
			t.Fatalf("ball %d has no texture", i)
		}
		if !SpawnBounds.Contains(d.Position) {
			t.Fatalf("ball %d spawned at %v", i, d.Position)
		}
	}

	m.ReleaseAll()
	if len(be.buffers) != 0 || len(be.textures) != 0 {
		t.Fatalf("leaked buffers=%v textures=%v", be.buffers, be.textures)
	}
}

func TestLoadSceneMissingMeshIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeBall(t, dir, 1, false)
	writeBall(t, dir, 2, false)
	opts := testOptions()
	opts.Count = 3
	be := newFakeBackend()
	m := NewManager(be, opts)

	err := m.LoadScene(filepath.ToSlash(dir) + "/")
	if !errors.Is(err, model.ErrIO) {
		t.Fatalf("err = %v, want ErrIO", err)
	}
	if m.Len() != 0 || len(be.buffers) != 0 {
		t.Fatalf("partial scene left behind: %d objects, %d buffers", m.Len(), len(be.buffers))
	}
}

func TestLoadSceneUploadFailureReleasesTexture(t *testing.T) {
	dir := t.TempDir()
	writeBall(t, dir, 1, true)
	writeBall(t, dir, 2, true)
	opts := testOptions()
	opts.Count = 2
	be := newFakeBackend()
	be.failAt = 2
	m := NewManager(be, opts)

	if err := m.LoadScene(filepath.ToSlash(dir) + "/"); !errors.Is(err, model.ErrResource) {
		t.Fatalf("err = %v, want ErrResource", err)
	}
	if len(be.buffers) != 0 || len(be.textures) != 0 {
		t.Fatalf("leaked buffers=%v textures=%v", be.buffers, be.textures)
	}
}

func TestStateString(t *testing.T) {
	if Idle.String() != "idle" || Moving.String() != "moving" {
		t.Fatalf("unexpected state names %q %q", Idle, Moving)
	}
}
