package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/taigrr/scanline/internal/config"
	"github.com/taigrr/scanline/pkg/render"
	"github.com/taigrr/scanline/pkg/scene"
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render frames to image files",
		Long: "Render the animation headlessly. The output extension picks the format " +
			"(png, webp or tga); a printf verb such as %04d numbers the frames.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runRender(cmd, cfg)
		},
	}

	f := cmd.Flags()
	f.IntVar(&flags.Width, "width", 0, "frame width in pixels")
	f.IntVar(&flags.Height, "height", 0, "frame height in pixels")
	f.IntVar(&flags.PixelSize, "pixel-size", 0, "upscale factor applied when writing")
	f.IntVarP(&flags.Frames, "frames", "n", 0, "number of frames to write")
	f.StringVarP(&flags.Output, "output", "o", "", "output path pattern")
	return cmd
}

func runRender(cmd *cobra.Command, cfg config.Config) error {
	s, err := buildScene(cfg)
	if err != nil {
		return err
	}

	surface, err := render.NewSequenceSurface(cfg.Width, cfg.Height, cfg.Output, cfg.PixelSize)
	if err != nil {
		return err
	}
	surface.Background, _ = cfg.BackgroundColor()

	rast := render.NewRasterizer(surface)
	rig := scene.NewRig(cfg.FPS)
	dt := 1.0 / float64(cfg.FPS)

	start := time.Now()
	for i := range cfg.Frames {
		if err := cmd.Context().Err(); err != nil {
			return err
		}
		if i > 0 {
			rig.Update(dt)
		}
		if err := s.Render(rast, rig); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		st := rast.Stats()
		render.Logger().Debug("frame",
			"n", i,
			"triangles", st.Triangles,
			"near_rejected", st.NearRejected,
			"pixels", st.Pixels)
	}

	render.Logger().Info("render complete",
		"frames", surface.Frames(),
		"last", surface.Path(surface.Frames()-1),
		"elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}
