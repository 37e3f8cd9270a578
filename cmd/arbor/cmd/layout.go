package cmd

import (
	"fmt"
	"strings"

	"github.com/go-drift/arbor/pkg/core"
	arbortest "github.com/go-drift/arbor/pkg/testing"
)

func init() {
	RegisterCommand(&Command{
		Name:  "layout",
		Short: "Lay out a scene and print its geometry",
		Long: `Run one frame over a scene and print every widget's size, parent
relative position and global unclipped region. With --json the output is
the snapshot format used by layout tests.

Usage:
  arbor layout toolbar.yaml
  arbor layout --json toolbar.yaml > toolbar.json`,
		Usage: "arbor layout [--json] <scene>",
		Run:   runLayout,
	})
}

func runLayout(env *Env, args []string) error {
	var (
		asJSON bool
		rest   []string
	)
	for _, arg := range args {
		switch arg {
		case "--json":
			asJSON = true
		default:
			rest = append(rest, arg)
		}
	}
	path, err := sceneArg("layout", rest)
	if err != nil {
		return err
	}
	tree, err := loadTree(env, path)
	if err != nil {
		return err
	}
	if err := tree.Frame(); err != nil {
		return err
	}

	if asJSON {
		data, err := arbortest.CaptureSnapshot(tree).JSON()
		if err != nil {
			return fmt.Errorf("failed to encode layout: %w", err)
		}
		_, err = env.Stdout.Write(data)
		return err
	}
	printWidget(env, tree, tree.Root(), 0)
	return nil
}

func printWidget(env *Env, tree *core.Tree, id core.WidgetID, depth int) {
	size := tree.Size(id)
	pos := tree.Position(id)
	r := tree.UnclippedRegion(id)
	line := fmt.Sprintf("%s%s size=%gx%g pos=(%g,%g) region=(%g,%g %gx%g)",
		strings.Repeat("  ", depth), tree.Name(id),
		size.Width, size.Height, pos.X, pos.Y,
		r.Left, r.Top, r.Width(), r.Height())
	if !tree.Visible(id) {
		line += " hidden"
	}
	fmt.Fprintln(env.Stdout, line)
	for _, c := range tree.Children(id) {
		printWidget(env, tree, c, depth+1)
	}
}
