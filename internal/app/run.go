package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andyballingall/cargo-fmt/internal/fs"
	"github.com/andyballingall/cargo-fmt/internal/rustfmt"
	"github.com/andyballingall/cargo-fmt/internal/workspace"
)

const (
	Success = 0
	Failure = 1
)

// SubcommandToken is the argument cargo inserts when running `cargo fmt`.
const SubcommandToken = "fmt"

// Run executes cargo-fmt with the given arguments (args[0] is the program
// name) and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer, envProvider fs.EnvProvider) int {
	logLevel := &slog.LevelVar{}
	logLevel.Set(slog.LevelInfo)

	if envProvider == nil {
		envProvider = fs.NewEnvProvider()
	}

	logger, closer, err := setupLogger(stderr, logLevel, envProvider.Get(LogEnvVar))
	if closer != nil {
		defer closer.Close()
	}
	if err != nil {
		logger.Warn("logging to file disabled", "error", err)
	}

	deps := Deps{
		Runner:   rustfmt.NewInvoker(envProvider, stdout, stderr, logger),
		Resolver: workspace.NewCargoResolver(envProvider, stderr),
		Logger:   logger,
	}

	rootCmd := NewRootCmd(deps, logLevel)
	rootCmd.SetArgs(commandArgs(args))
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	return exitCode(rootCmd, rootCmd.ExecuteContext(ctx), stderr)
}

// commandArgs skips the program name and the cargo subcommand token. The
// result is never nil, since cobra falls back to os.Args for a nil slice.
func commandArgs(args []string) []string {
	if len(args) == 0 {
		return []string{}
	}
	return dropSubcommand(args[1:])
}

// dropSubcommand removes the first "fmt" token that cargo passes through.
func dropSubcommand(args []string) []string {
	for i, a := range args {
		if a == SubcommandToken {
			out := make([]string, 0, len(args)-1)
			out = append(out, args[:i]...)
			return append(out, args[i+1:]...)
		}
	}
	return args
}

// exitCode maps the command's result to an exit code. rustfmt's own non-zero
// codes pass through silently; every other error is printed with the usage.
func exitCode(cmd *cobra.Command, err error, stderr io.Writer) int {
	if err == nil {
		return Success
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	printUsage(cmd, stderr, err.Error())
	return Failure
}

// printUsage writes reason followed by the command's help text.
func printUsage(cmd *cobra.Command, stderr io.Writer, reason string) {
	fmt.Fprintln(stderr, reason)
	if desc := strings.TrimSpace(cmd.Long); desc != "" {
		fmt.Fprintf(stderr, "\n%s\n\n", desc)
	}
	fmt.Fprint(stderr, cmd.UsageString())
}
