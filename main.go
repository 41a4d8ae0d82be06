//go:build !(js && wasm)

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/voxelsplace/voxview/utils"
	"github.com/voxelsplace/voxview/vox"
)

func options(c *cli.Context) vox.Options {
	opts := vox.DefaultOptions()
	opts.MaxDepth = c.Int("max-depth")
	if c.Bool("zero-based") {
		opts.IndexBase = vox.ZeroBased
	}
	opts.Strict = !c.Bool("lenient")
	return opts
}

func newLogger(c *cli.Context) *slog.Logger {
	level := slog.LevelInfo
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func needArgs(c *cli.Context, n int) error {
	if c.NArg() != n {
		return cli.Exit(fmt.Sprintf("%s: expected %d arguments, got %d\nusage: %s %s", c.Command.Name, n, c.NArg(), c.Command.HelpName, c.Command.ArgsUsage), 2)
	}
	return nil
}

func main() {
	app := &cli.App{
		Name:  "voxview",
		Usage: "decode MagicaVoxel .vox models into meshes, glTF and preview images",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "max-depth", Value: vox.DefaultMaxDepth, Usage: "maximum chunk nesting depth", EnvVars: []string{"VOXVIEW_MAX_DEPTH"}},
			&cli.BoolFlag{Name: "zero-based", Usage: "index the palette with color index directly instead of index-1", EnvVars: []string{"VOXVIEW_ZERO_BASED"}},
			&cli.BoolFlag{Name: "lenient", Usage: "mesh voxels lying outside the declared model size", EnvVars: []string{"VOXVIEW_LENIENT"}},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "debug logging"},
		},
		Before: func(c *cli.Context) error {
			slog.SetDefault(newLogger(c))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "info",
				Usage:     "print dimensions, chunks and palette usage",
				ArgsUsage: "input.vox",
				Action: func(c *cli.Context) error {
					if err := needArgs(c, 1); err != nil {
						return err
					}
					return utils.RunInfo(os.Stdout, c.Args().Get(0), options(c))
				},
			},
			{
				Name:      "vox2glb",
				Usage:     "convert a .vox file to .glb, one cube per voxel",
				ArgsUsage: "input.vox output.glb",
				Action: func(c *cli.Context) error {
					if err := needArgs(c, 2); err != nil {
						return err
					}
					return utils.RunVOX2GLB(c.Args().Get(0), c.Args().Get(1), options(c))
				},
			},
			{
				Name:      "render",
				Usage:     "rasterize a .vox file to png, bmp or tiff",
				ArgsUsage: "input.vox output.png",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "width", Value: 941, EnvVars: []string{"VOXVIEW_WIDTH"}},
					&cli.IntFlag{Name: "height", Value: 500, EnvVars: []string{"VOXVIEW_HEIGHT"}},
					&cli.Float64Flag{Name: "yaw", Usage: "horizontal drag in pixels"},
					&cli.Float64Flag{Name: "pitch", Usage: "vertical drag in pixels"},
					&cli.IntFlag{Name: "zoom", Usage: "wheel steps, positive moves closer"},
				},
				Action: func(c *cli.Context) error {
					if err := needArgs(c, 2); err != nil {
						return err
					}
					view := utils.View{
						Width:  c.Int("width"),
						Height: c.Int("height"),
						Yaw:    float32(c.Float64("yaw")),
						Pitch:  float32(c.Float64("pitch")),
						Zoom:   c.Int("zoom"),
					}
					return utils.RunRender(c.Args().Get(0), c.Args().Get(1), view, options(c))
				},
			},
			{
				Name:      "batch",
				Usage:     "convert many .vox files to .glb concurrently",
				ArgsUsage: "output_dir input1.vox [input2.vox ...]",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "workers", Usage: "worker count, 0 for one per CPU", EnvVars: []string{"VOXVIEW_WORKERS"}},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() < 2 {
						return cli.Exit("batch: need an output directory and at least one input", 2)
					}
					var inputs []string
					for _, arg := range c.Args().Slice()[1:] {
						matches, err := filepath.Glob(arg)
						if err != nil || len(matches) == 0 {
							inputs = append(inputs, arg)
							continue
						}
						inputs = append(inputs, matches...)
					}
					_, err := utils.RunBatch(inputs, c.Args().Get(0), c.Int("workers"), options(c), slog.Default())
					return err
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("voxview failed", "err", err)
		os.Exit(1)
	}
}
