package cmd

import (
	stderrors "errors"
	"fmt"

	"github.com/go-drift/arbor/pkg/errors"
)

// errCyclesFound makes "arbor cycles" exit non-zero when loops exist.
var errCyclesFound = stderrors.New("update graph contains cycles")

func init() {
	RegisterCommand(&Command{
		Name:  "cycles",
		Short: "List dependency cycles of a scene",
		Long: `Build the dependency graph of a scene and list every cycle found.
The command exits with an error when at least one cycle exists.

Usage:
  arbor cycles form.yaml`,
		Usage: "arbor cycles <scene>",
		Run:   runCycles,
	})
}

func runCycles(env *Env, args []string) error {
	path, err := sceneArg("cycles", args)
	if err != nil {
		return err
	}
	tree, err := loadTree(env, path)
	if err != nil {
		return err
	}

	err = tree.Scheduler().Rebuild()
	if err == nil {
		fmt.Fprintln(env.Stdout, "no cycles")
		return nil
	}
	var cycles *errors.CycleError
	if !stderrors.As(err, &cycles) {
		return err
	}
	for i, loop := range cycles.Unwrap() {
		fmt.Fprintf(env.Stdout, "cycle %d: %s\n", i+1, loop)
	}
	return fmt.Errorf("%w: %d found", errCyclesFound, len(cycles.Loops))
}
