// Package core owns the window, the GL context and every GPU object. It
// implements scene.Backend. All methods must be called from the thread that
// called Init.
package core

import (
	"fmt"
	"log"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/toxichemicals/GO/pooltable/input"
	"github.com/toxichemicals/GO/pooltable/model"
)

// InputHandler receives translated window events.
type InputHandler interface {
	HandleKey(key input.Key, action input.Action)
	HandleCursor(x, y float64)
	HandleScroll(yoff float64)
}

type meshBuffer struct {
	vao, vbo uint32
	count    int32
}

// Core encapsulates the window and the low-level graphics state.
type Core struct {
	window *glfw.Window

	width, height int
	title         string

	program  uint32
	uniforms uniforms

	buffers  map[model.BufferHandle]meshBuffer
	textures map[model.TextureHandle]bool

	// Game state for FPS
	fpsFrames         int
	fpsLastUpdateTime time.Time
}

// NewCore creates a Core. Nothing touches the window system until Init.
func NewCore(width, height int, title string) *Core {
	return &Core{
		width:    width,
		height:   height,
		title:    title,
		buffers:  make(map[model.BufferHandle]meshBuffer),
		textures: make(map[model.TextureHandle]bool),
	}
}

// Init creates the window and context and compiles the scene shader.
func (c *Core) Init() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	window, err := glfw.CreateWindow(c.width, c.height, c.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create GLFW window: %w", err)
	}
	c.window = window
	c.window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		c.window.Destroy()
		glfw.Terminate()
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Printf("OpenGL version %s", gl.GoStr(gl.GetString(gl.VERSION)))

	// the framebuffer can differ from the window size on HiDPI displays
	c.width, c.height = c.window.GetFramebufferSize()
	c.window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		c.width = width
		c.height = height
	})

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	program, err := compileShader(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		c.window.Destroy()
		glfw.Terminate()
		return fmt.Errorf("failed to compile shaders: %w", err)
	}
	c.program = program
	gl.UseProgram(c.program)
	c.uniforms = lookupUniforms(c.program)

	c.fpsLastUpdateTime = time.Now()
	return nil
}

// SetInputHandler routes key, cursor and scroll events to h.
func (c *Core) SetInputHandler(h InputHandler) {
	c.window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		h.HandleKey(translateKey(key), translateAction(action))
	})
	c.window.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		h.HandleCursor(xpos, ypos)
	})
	c.window.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		h.HandleScroll(yoff)
	})
}

var keyMap = map[glfw.Key]input.Key{
	glfw.KeyUp:     input.KeyUp,
	glfw.KeyDown:   input.KeyDown,
	glfw.KeyLeft:   input.KeyLeft,
	glfw.KeyRight:  input.KeyRight,
	glfw.KeySpace:  input.KeySpace,
	glfw.KeyTab:    input.KeyTab,
	glfw.KeyEscape: input.KeyEscape,
	glfw.KeyR:      input.KeyR,
	glfw.KeyF12:    input.KeyF12,
	glfw.Key1:      input.Key1,
	glfw.Key2:      input.Key2,
	glfw.Key3:      input.Key3,
	glfw.Key4:      input.Key4,
}

func translateKey(key glfw.Key) input.Key {
	if k, ok := keyMap[key]; ok {
		return k
	}
	return input.KeyUnknown
}

func translateAction(action glfw.Action) input.Action {
	switch action {
	case glfw.Press:
		return input.Press
	case glfw.Repeat:
		return input.Repeat
	}
	return input.Release
}

// Size returns the framebuffer size in pixels.
func (c *Core) Size() (int, int) {
	return c.width, c.height
}

// ShouldClose reports whether the user asked to close the window.
func (c *Core) ShouldClose() bool {
	return c.window.ShouldClose()
}

// Close asks the main loop to stop.
func (c *Core) Close() {
	c.window.SetShouldClose(true)
}

// PollEvents processes pending window events.
func (c *Core) PollEvents() {
	glfw.PollEvents()
}

// SwapBuffers presents the frame and updates the FPS counter.
func (c *Core) SwapBuffers() {
	c.window.SwapBuffers()
	c.updateAndDisplayFPS()
}

// updateAndDisplayFPS calculates and displays FPS in the window title.
func (c *Core) updateAndDisplayFPS() {
	c.fpsFrames++
	if time.Since(c.fpsLastUpdateTime) >= time.Second {
		fps := float64(c.fpsFrames) / time.Since(c.fpsLastUpdateTime).Seconds()
		c.window.SetTitle(fmt.Sprintf("%s | FPS: %.2f", c.title, fps))
		c.fpsFrames = 0
		c.fpsLastUpdateTime = time.Now()
	}
}

// Shutdown frees whatever GPU objects are still alive and closes the window.
func (c *Core) Shutdown() {
	if c.window == nil {
		return
	}
	if n := len(c.buffers) + len(c.textures); n > 0 {
		log.Printf("Warning: %d GPU objects still alive at shutdown", n)
	}
	for h := range c.buffers {
		c.ReleaseBuffer(h)
	}
	for h := range c.textures {
		c.ReleaseTexture(h)
	}
	gl.DeleteProgram(c.program)

	c.window.Destroy()
	c.window = nil
	glfw.Terminate()
}
