package cmd

import (
	"fmt"

	"github.com/go-drift/arbor/pkg/core"
	"github.com/go-drift/arbor/pkg/scene"
)

// loadTree reads a scene file and builds it into a fresh tree. The scene's
// viewport wins over the configured one.
func loadTree(env *Env, path string) (*core.Tree, error) {
	s, err := scene.Load(path)
	if err != nil {
		return nil, err
	}
	opts := s.Options(env.Config.Viewport)
	opts.Logger = env.Logger
	tree := core.NewTree(opts)
	if err := s.Build(tree); err != nil {
		return nil, fmt.Errorf("failed to build scene: %w", err)
	}
	env.Logger.Debug("scene loaded", "path", path, "widgets", tree.Len())
	return tree, nil
}

// sceneArg returns the single positional argument of a command.
func sceneArg(cmd string, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%s expects exactly one scene file\n\nUsage: arbor %s [flags] <scene>", cmd, cmd)
	}
	return args[0], nil
}
