package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"runtime"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/toxichemicals/GO/pooltable/config"
	"github.com/toxichemicals/GO/pooltable/core"
	"github.com/toxichemicals/GO/pooltable/input"
	"github.com/toxichemicals/GO/pooltable/render"
	"github.com/toxichemicals/GO/pooltable/scene"
)

func init() {
	// GLFW and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	assetDir := flag.String("assets", "", "Directory holding the ball meshes (default: PoolBalls/)")
	balls := flag.Int("balls", 0, "Number of balls to load (default: 15)")
	width := flag.Int("width", 0, "Window width (default: 1280)")
	height := flag.Int("height", 0, "Window height (default: 720)")
	shotDir := flag.String("screenshots", "", "Directory for F12 screenshots (default: .)")
	seed := flag.Int64("seed", 0, "Random seed for ball placement (default: clock)")
	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			log.Fatalf("Error loading config: %v", err)
		}
	}
	cfg.Resolve(config.Flags{
		AssetDir:      *assetDir,
		BallCount:     *balls,
		Width:         *width,
		Height:        *height,
		ScreenshotDir: *shotDir,
		Seed:          *seed,
	})

	coreLib := core.NewCore(cfg.Width, cfg.Height, cfg.Title)
	if err := coreLib.Init(); err != nil {
		log.Fatalf("Core library initialization failed: %v", err)
	}
	defer coreLib.Shutdown()

	controls := input.NewState()
	coreLib.SetInputHandler(controls)

	manager := scene.NewManager(coreLib, cfg.SceneOptions())
	defer manager.ReleaseAll()

	table := scene.TableGeometry(scene.TableLength, scene.TableWidth, scene.TableDepth)
	if err := manager.SetTable(table, mgl32.Vec3{0, 0, scene.TableZ}); err != nil {
		coreLib.Shutdown()
		log.Fatalf("Failed to upload table: %v", err)
	}
	if err := manager.LoadScene(cfg.AssetDir); err != nil {
		// deferred calls do not run after log.Fatal
		manager.ReleaseAll()
		coreLib.Shutdown()
		log.Fatalf("Failed to load scene from %s: %v", cfg.AssetDir, err)
	}

	log.Printf("Loaded %d balls. Starting main loop...", manager.Len())
	log.Println("Controls:")
	log.Println("  Mouse / arrow keys: rotate table")
	log.Println("  Scroll: zoom")
	log.Println("  Space: shoot  R: stop  Tab: re-rack")
	log.Println("  1-4: toggle ambient/directional/point/spot light")
	log.Println("  F12: screenshot  ESC: exit")

	lights := render.DefaultLights()
	for !coreLib.ShouldClose() {
		coreLib.PollEvents()

		if controls.QuitRequested() {
			coreLib.Close()
		}
		if controls.TakeRandomize() {
			manager.Reset()
			manager.Randomize()
		}
		if controls.TakeReset() {
			manager.Reset()
		}
		if controls.TakeStart() {
			manager.Start()
		}
		manager.Step()

		w, h := coreLib.Size()
		cam := render.Camera{
			Width:     w,
			Height:    h,
			Zoom:      controls.Zoom,
			RotationX: controls.RotationX,
			RotationY: controls.RotationY,
		}
		coreLib.BeginFrame(cam, lights, controls.Lights[:])

		if td, ok := manager.TableDrawable(); ok {
			coreLib.Draw(td)
		}
		for i := 0; i < manager.Len(); i++ {
			d, err := manager.Drawable(i)
			if err != nil {
				log.Printf("Warning: %v", err)
				continue
			}
			coreLib.Draw(d)
		}

		if controls.TakeScreenshot() {
			name := fmt.Sprintf("pooltable-%s.webp", time.Now().Format("20060102-150405"))
			path := filepath.Join(cfg.ScreenshotDir, name)
			if err := coreLib.Screenshot(path); err != nil {
				log.Printf("Warning: screenshot failed: %v", err)
			} else {
				log.Printf("Saved screenshot %s", path)
			}
		}

		coreLib.SwapBuffers()
	}

	log.Println("Pool table shutting down.")
}
