package cmd

import (
	"fmt"
	"strings"

	"github.com/go-drift/arbor/pkg/core"
)

func init() {
	RegisterCommand(&Command{
		Name:  "schedule",
		Short: "Print the update schedule of a scene",
		Long: `Build the dependency graph of a scene and print its update schedule,
one layer per line. Entries within a layer do not depend on each other.

Flags:
  --kind KIND   Only list entries of one kind (Normal, PositionX, SizeY,
                ChildrenX, ...). Layer numbers are kept.

Usage:
  arbor schedule toolbar.yaml
  arbor schedule --kind ChildrenX toolbar.yaml`,
		Usage: "arbor schedule [--kind KIND] <scene>",
		Run:   runSchedule,
	})
}

func runSchedule(env *Env, args []string) error {
	var (
		filter *core.EntryKind
		rest   []string
	)
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--kind":
			if i+1 >= len(args) {
				return fmt.Errorf("--kind requires an entry kind")
			}
			kind, err := core.ParseEntryKind(args[i+1])
			if err != nil {
				return err
			}
			filter = &kind
			i++
		default:
			rest = append(rest, args[i])
		}
	}
	path, err := sceneArg("schedule", rest)
	if err != nil {
		return err
	}
	tree, err := loadTree(env, path)
	if err != nil {
		return err
	}

	s := tree.Scheduler()
	if err := s.Rebuild(); err != nil {
		return fmt.Errorf("failed to build schedule (see \"arbor cycles\"): %w", err)
	}
	for i, layer := range s.Layers() {
		var names []string
		for _, n := range layer {
			if filter != nil {
				e, ok := n.(core.Entry)
				if !ok || e.Kind != *filter {
					continue
				}
			}
			names = append(names, tree.NodeName(n))
		}
		if len(names) == 0 {
			continue
		}
		fmt.Fprintf(env.Stdout, "%3d: %s\n", i, strings.Join(names, " "))
	}
	return nil
}
