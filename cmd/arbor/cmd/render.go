package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-drift/arbor/pkg/debugdraw"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Draw a wireframe of a laid out scene",
		Long: `Run one frame over a scene and draw every visible widget as a
wireframe PNG, tinted by global layer and drawn in render order.

Flags:
  -o, --output FILE   Output path (default: <scene>.png)
  --scale N           Pixel scale (default: render.scale from arbor.yaml)
  --no-labels         Do not draw widget names
  --clipped           Outline the clipped-away part of each widget

Usage:
  arbor render toolbar.yaml
  arbor render -o out.png --scale 2 toolbar.yaml`,
		Usage: "arbor render [flags] <scene>",
		Run:   runRender,
	})
}

func runRender(env *Env, args []string) error {
	opts := debugdraw.Options{
		Scale:  env.Config.Scale,
		Labels: env.Config.Labels,
	}
	var (
		output string
		rest   []string
	)
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-o", "--output":
			if i+1 >= len(args) {
				return fmt.Errorf("%s requires a file path", args[i])
			}
			output = args[i+1]
			i++
		case "--scale":
			if i+1 >= len(args) {
				return fmt.Errorf("--scale requires a value")
			}
			scale, err := strconv.ParseFloat(args[i+1], 64)
			if err != nil || scale <= 0 {
				return fmt.Errorf("invalid scale %q", args[i+1])
			}
			opts.Scale = scale
			i++
		case "--no-labels":
			opts.Labels = false
		case "--clipped":
			opts.ShowClipped = true
		default:
			rest = append(rest, args[i])
		}
	}
	path, err := sceneArg("render", rest)
	if err != nil {
		return err
	}
	if output == "" {
		output = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".png"
	}

	tree, err := loadTree(env, path)
	if err != nil {
		return err
	}
	if err := tree.Frame(); err != nil {
		return err
	}

	r := debugdraw.NewRenderer(tree.Size(tree.Root()), opts)
	r.Render(tree)
	if err := r.SavePNG(output); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	env.Logger.Info("wrote image", "path", output, "scale", opts.Scale)
	fmt.Fprintf(env.Stdout, "Wrote %s\n", output)
	return nil
}
