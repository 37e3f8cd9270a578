// Package cmd implements the arbor CLI commands.
//
// The command structure follows standard Go CLI patterns with a root command
// that dispatches to subcommands (schedule, layout, cycles, render).
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/go-drift/arbor/cmd/arbor/internal/config"
	"github.com/go-drift/arbor/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name  string
	Short string
	Long  string
	Usage string
	Run   func(env *Env, args []string) error
}

// Env is what a command runs against: resolved configuration, a logger and
// the output streams.
type Env struct {
	Config *config.Resolved
	Logger hclog.Logger
	Stdout io.Writer
	Stderr io.Writer
}

var rootCmd = &Command{
	Name:  "arbor",
	Short: "arbor - inspect retained widget layouts",
	Long: `arbor loads widget scenes described in YAML or TOML, runs the layout
engine over them and reports the resulting update schedule, geometry
and render order.

Use "arbor <command> --help" for more information about a command.`,
	Usage: "arbor <command> [flags]",
}

// Commands registered with the CLI, in registration order.
var (
	commands = make(map[string]*Command)
	ordered  []*Command
)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	ordered = append(ordered, cmd)
}

// Execute runs the CLI with the given arguments.
func Execute(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		printHelp(stdout)
		return nil
	}

	// Handle global flags and extract --dir and --log-level
	var (
		filteredArgs []string
		dir          string
		level        string
	)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help", "help":
			if len(filteredArgs) == 0 {
				printHelp(stdout)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "-v", "--version":
			if len(filteredArgs) == 0 {
				printVersion(stdout)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "--dir", "--log-level":
			if i+1 >= len(args) {
				return fmt.Errorf("%s requires a value", arg)
			}
			if arg == "--dir" {
				dir = args[i+1]
			} else {
				level = args[i+1]
			}
			i++
		default:
			if v, ok := strings.CutPrefix(arg, "--dir="); ok {
				dir = v
				continue
			}
			if v, ok := strings.CutPrefix(arg, "--log-level="); ok {
				level = v
				continue
			}
			filteredArgs = append(filteredArgs, arg)
		}
	}
	args = filteredArgs

	if len(args) == 0 {
		printHelp(stdout)
		return nil
	}

	// Find and execute the command
	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(stderr)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	// Check for help flag on subcommand
	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(stdout, cmd)
			return nil
		}
	}

	env, err := newEnv(dir, level, stdout, stderr)
	if err != nil {
		return err
	}
	prev := errors.SetHandler(&errors.LogHandler{Verbose: env.Config.Verbose, Logger: env.Logger})
	defer errors.SetHandler(prev)

	return cmd.Run(env, cmdArgs)
}

// newEnv resolves configuration for dir, or for the project enclosing the
// working directory when dir is empty.
func newEnv(dir, level string, stdout, stderr io.Writer) (*Env, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = wd
		if root, err := config.FindProjectRoot(wd); err == nil {
			dir = root
		}
	}

	cfg, err := config.Resolve(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if level != "" {
		cfg.LogLevel = hclog.LevelFromString(level)
		if cfg.LogLevel == hclog.NoLevel {
			return nil, fmt.Errorf("unknown log level %q", level)
		}
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "arbor",
		Level:  cfg.LogLevel,
		Output: stderr,
	})
	return &Env{Config: cfg, Logger: logger, Stdout: stdout, Stderr: stderr}, nil
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "arbor version %s (built %s)\n", Version, BuildTime)
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, rootCmd.Long)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s\n", rootCmd.Usage)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, sub := range ordered {
		fmt.Fprintf(w, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -h, --help           Show help for a command")
	fmt.Fprintln(w, "  -v, --version        Show version information")
	fmt.Fprintln(w, "  --dir DIR            Project directory holding arbor.yaml")
	fmt.Fprintln(w, "  --log-level LEVEL    Override the configured log level")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  arbor schedule toolbar.yaml      Print the update schedule")
	fmt.Fprintln(w, "  arbor layout --json form.toml    Dump laid out geometry")
	fmt.Fprintln(w, "  arbor render -o out.png ui.yaml  Draw a wireframe")
}

func printCommandHelp(w io.Writer, cmd *Command) {
	fmt.Fprintln(w, cmd.Long)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s\n", cmd.Usage)
}
