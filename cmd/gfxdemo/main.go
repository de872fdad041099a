// Command gfxdemo opens a gfx device and drives the frame loop.
//
// Usage:
//
//	gfxdemo [-config gfx.toml] [-backend software] [-frames 120] [-output last.png] [-v]
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/backend"
	_ "github.com/gogpu/gfx/backend/all"
	"github.com/gogpu/gfx/backend/software"
	"github.com/gogpu/gfx/config"
)

func main() {
	var (
		configPath  = flag.String("config", "", "TOML configuration file")
		backendName = flag.String("backend", "", "backend name (overrides the config)")
		frames      = flag.Int("frames", 120, "frames to run, 0 runs until a canvas closes")
		output      = flag.String("output", "", "save the last software frame as PNG")
		verbose     = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		gfx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if err := runDemo(*configPath, *backendName, *frames, *output); err != nil {
		log.Fatal(err)
	}
}

// runDemo opens the device and runs the demo. Both are closed before it
// returns.
func runDemo(configPath, backendName string, frames int, output string) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}
	if backendName != "" {
		cfg.Backend = backendName
	}

	dev, err := backend.OpenDefault(cfg)
	if err != nil {
		return fmt.Errorf("failed to open device: %w (available: %v)", err, backend.Available())
	}
	defer dev.Close()

	demo := NewDemo(dev)
	defer demo.Close()
	if err := demo.Load(cfg); err != nil {
		return fmt.Errorf("failed to load demo: %w", err)
	}

	if err := run(demo, frames); err != nil {
		log.Printf("Stopped: %v", err)
	}
	log.Printf("Presented %d frames on %T", demo.Frames(), dev)

	if output != "" {
		return saveOutput(demo, output)
	}
	return nil
}

// maxDeclined bounds consecutive frames the backend may decline.
const maxDeclined = 1000

// run calls Update until frames are presented or a canvas dies.
// Declined frames do not count.
func run(demo *Demo, frames int) error {
	declined := 0
	for frames == 0 || demo.Frames() < frames {
		ok, err := demo.Update()
		if err != nil {
			return err
		}
		if ok {
			declined = 0
			continue
		}
		if declined++; declined >= maxDeclined {
			return fmt.Errorf("%d frames declined in a row", declined)
		}
	}
	return nil
}

func saveOutput(demo *Demo, path string) error {
	for _, c := range demo.Canvases() {
		if sc, ok := c.(*software.Canvas); ok {
			if err := sc.SavePNG(path); err != nil {
				return fmt.Errorf("failed to save: %w", err)
			}
			log.Printf("Frame saved to %s", path)
			return nil
		}
	}
	log.Printf("No software canvas to save")
	return nil
}
