package cmd

import "runtime"

func init() {
	RegisterCommand(&Command{
		Name:  "version",
		Short: "Show version information",
		Long:  "Print the arbor version, build time and Go runtime.",
		Usage: "arbor version",
		Run: func(env *Env, _ []string) error {
			printVersion(env.Stdout)
			env.Logger.Debug("runtime", "go", runtime.Version(), "os", runtime.GOOS, "arch", runtime.GOARCH)
			return nil
		},
	})
}
