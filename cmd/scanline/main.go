// scanline - CPU scanline triangle rasterizer
// Renders the spinning box demo, or a glTF model, either to image files or
// live in the terminal.
//
// Usage:
//
//	scanline render [flags]   write frames as PNG, WebP or TGA
//	scanline view [flags]     animate in the terminal
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/taigrr/scanline/internal/config"
	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
	"github.com/taigrr/scanline/pkg/scene"
)

var (
	configPath string
	flags      config.Flags
)

func main() {
	root := &cobra.Command{
		Use:   "scanline",
		Short: "CPU scanline triangle rasterizer",
		Long:  "scanline fills colored triangles on the CPU with a scanline algorithm and a depth buffer.",
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "JSON config file")
	pf.StringVar(&flags.Background, "bg", "", "background color (R,G,B)")
	pf.IntVar(&flags.FPS, "fps", 0, "frames per second")
	pf.StringVarP(&flags.Model, "model", "m", "", "glTF/GLB model to show instead of the box demo")
	pf.Float64Var(&flags.Shade, "shade", 0, "box shade factor (0-1]")
	pf.BoolVarP(&flags.Wireframe, "wireframe", "w", false, "draw outlines instead of filled faces")
	pf.StringVar(&flags.LogLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(newRenderCmd(), newViewCmd())

	if err := fang.Execute(context.Background(), root); err != nil {
		os.Exit(1)
	}
}

// loadConfig merges the config file, flags and defaults.
func loadConfig() (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return config.Config{}, err
		}
	}
	cfg.Resolve(flags)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	level, _ := cfg.Level()
	render.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return cfg, nil
}

// buildScene returns the demo boxes, or the configured model scaled to fit
// the same space.
func buildScene(cfg config.Config) (*scene.Scene, error) {
	if cfg.Model == "" {
		s := scene.Demo(cfg.Shade)
		s.Wireframe = cfg.Wireframe
		return s, nil
	}

	mesh, err := models.LoadGLTF(cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	mesh.Fit(3)
	render.Logger().Info("model loaded",
		"name", mesh.Name,
		"vertices", mesh.VertexCount(),
		"triangles", mesh.TriangleCount())

	s := &scene.Scene{Wireframe: cfg.Wireframe}
	s.Add(mesh)
	return s, nil
}
