package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches the command in args and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := args[1], args[2:]
	switch cmd {
	case "md2html", "html2pdf", "md2pdf", "postprocess":
		return runPipelineCmd(ctx, cmd, rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "specpub %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		return runHelp(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// runPipelineCmd parses flags for one of the pipeline commands, runs it
// and reports the outcome.
func runPipelineCmd(ctx context.Context, cmd string, args []string, env *Environment) int {
	flags, input, err := parsePipelineFlags(cmd, args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	if err := runCommand(ctx, cmd, input, flags, env); err != nil {
		printError(env.Stderr, cmd, err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// printError writes err and, when one applies, an actionable hint.
func printError(w io.Writer, cmd string, err error) {
	fmt.Fprintf(w, "specpub %s: %v%s\n", cmd, err, hintFor(cmd, err))
}
