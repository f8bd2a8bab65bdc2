// Package rustfmt locates and runs the rustfmt executable.
package rustfmt

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os/exec"
	"slices"
	"strings"

	cfs "github.com/andyballingall/cargo-fmt/internal/fs"
	"github.com/andyballingall/cargo-fmt/internal/options"
	"github.com/andyballingall/cargo-fmt/internal/workspace"
)

const (
	// EnvVar overrides the formatter executable.
	EnvVar = "RUSTFMT"
	// DefaultExecutable is looked up on PATH when EnvVar is unset.
	DefaultExecutable = "rustfmt"
)

// Success is the exit code reported when rustfmt exits cleanly.
const Success = 0

// Runner runs the formatter.
type Runner interface {
	// Info forwards args unchanged, for --version, --help and --print-config.
	Info(ctx context.Context, args []string) (int, error)

	// Format runs the formatter over targets with the assembled args.
	Format(ctx context.Context, targets []workspace.Target, args []string, v options.Verbosity) (int, error)
}

// Invoker is the Runner backed by a rustfmt subprocess whose output streams
// are connected straight to stdout and stderr.
type Invoker struct {
	env    cfs.EnvProvider
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

// NewInvoker creates an Invoker.
func NewInvoker(env cfs.EnvProvider, stdout, stderr io.Writer, logger *slog.Logger) *Invoker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Invoker{env: env, stdout: stdout, stderr: stderr, logger: logger}
}

// Path returns the executable to run: $RUSTFMT if set, else "rustfmt".
func (i *Invoker) Path() string {
	if p := i.env.Get(EnvVar); p != "" {
		return p
	}
	return DefaultExecutable
}

// Info forwards args unchanged, for --version, --help and --print-config.
func (i *Invoker) Info(ctx context.Context, args []string) (int, error) {
	return i.run(ctx, args, i.stdout)
}

// Format runs rustfmt once over all targets. The edition is passed only when
// every target agrees on one. No process is started when there are no targets.
func (i *Invoker) Format(
	ctx context.Context,
	targets []workspace.Target,
	args []string,
	v options.Verbosity,
) (int, error) {
	if len(targets) == 0 {
		i.logger.Debug("no targets to format")
		return Success, nil
	}

	for _, t := range targets {
		i.logger.Debug(t.String())
	}
	if eds := editions(targets); len(eds) > 1 {
		i.logger.Warn("targets use different editions, running rustfmt without --edition",
			"editions", strings.Join(eds, ","))
	}

	stdout := i.stdout
	if v == options.Quiet {
		stdout = io.Discard
	}
	return i.run(ctx, FormatArgs(targets, args), stdout)
}

// FormatArgs builds the rustfmt command line for targets: the shared edition,
// the target paths, then the assembled args.
func FormatArgs(targets []workspace.Target, args []string) []string {
	out := make([]string, 0, len(targets)+len(args)+2)
	if edition := sharedEdition(targets); edition != "" {
		out = append(out, "--edition", edition)
	}
	for _, t := range targets {
		out = append(out, t.Path)
	}
	return append(out, args...)
}

func sharedEdition(targets []workspace.Target) string {
	if len(targets) == 0 {
		return ""
	}
	edition := targets[0].Edition
	for _, t := range targets[1:] {
		if t.Edition != edition {
			return ""
		}
	}
	return edition
}

// editions returns the distinct editions named by targets, sorted.
func editions(targets []workspace.Target) []string {
	var out []string
	for _, t := range targets {
		if t.Edition != "" {
			out = append(out, t.Edition)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func (i *Invoker) run(ctx context.Context, args []string, stdout io.Writer) (int, error) {
	path := i.Path()
	i.logger.Debug(strings.TrimSpace(path + " " + strings.Join(args, " ")))

	//nolint:gosec // the executable is chosen by the user through $RUSTFMT
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = stdout
	cmd.Stderr = i.stderr

	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return 0, &NotFoundError{Path: path}
		}
		return 0, &LaunchError{Path: path, Wrapped: err}
	}

	err := cmd.Wait()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return Success, nil
	case errors.As(err, &exitErr):
		// Killed by a signal: there is no code to forward.
		if code := exitErr.ExitCode(); code > 0 {
			return code, nil
		}
		return Success, nil
	default:
		return 0, &LaunchError{Path: path, Wrapped: err}
	}
}
