package app

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/andyballingall/cargo-fmt/internal/options"
	"github.com/andyballingall/cargo-fmt/internal/rustfmt"
	"github.com/andyballingall/cargo-fmt/internal/workspace"
)

// Version is the current version of cargo-fmt, set at build time.
var Version = "dev"

var LongDescription = `
This utility formats all bin and lib files of the current crate using rustfmt.

Options after '--' are passed to rustfmt unchanged. Set RUSTFMT to run a
rustfmt other than the one found on PATH.
`

// Deps are the collaborators the root command delegates to.
type Deps struct {
	Runner   rustfmt.Runner
	Resolver workspace.Resolver
	Logger   *slog.Logger
}

// NewRootCmd creates the `cargo fmt` command. ll is raised or lowered to
// match the requested verbosity before anything is logged.
func NewRootCmd(deps Deps, ll *slog.LevelVar) *cobra.Command {
	opts := &options.Options{}
	messageFormat := messageFormatValue("")
	manifestPath := pathValue("")

	rootCmd := &cobra.Command{
		Use:           "cargo fmt [flags] [-- <rustfmt options>...]",
		Short:         "Format all bin and lib files of the current crate using rustfmt",
		Long:          LongDescription,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          onlyAfterDash,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if dash := cmd.ArgsLenAtDash(); dash >= 0 {
				opts.RustfmtArgs = args[dash:]
			}
			if cmd.Flags().Changed("message-format") {
				opts.MessageFormat = messageFormat.ptr()
			}
			if cmd.Flags().Changed("manifest-path") {
				opts.ManifestPath = manifestPath.ptr()
			}
			return execute(cmd.Context(), deps, ll, opts)
		},
	}

	flags := rootCmd.Flags()
	flags.BoolVarP(&opts.Quiet, "quiet", "q", false, "No output printed to stdout")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "Use verbose output")
	flags.BoolVar(&opts.Version, "version", false, "Print rustfmt version and exit")
	flags.StringArrayVarP(&opts.Packages, "package", "p", nil, "Specify package to format")
	flags.Var(&manifestPath, "manifest-path", "Specify path to Cargo.toml")
	flags.Var(&messageFormat, "message-format", "Specify message-format: short|json|human")
	flags.BoolVar(&opts.FormatAll, "all", false, "Format all packages, and also their local path-based dependencies")
	flags.BoolVar(&opts.Check, "check", false, "Run rustfmt in check mode")

	_ = rootCmd.RegisterFlagCompletionFunc("message-format",
		cobra.FixedCompletions(options.MessageFormats, cobra.ShellCompDirectiveNoFileComp))

	return rootCmd
}

// onlyAfterDash rejects positional arguments that are not behind "--".
func onlyAfterDash(cmd *cobra.Command, args []string) error {
	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		dash = len(args)
	}
	if dash > 0 {
		return &options.UnexpectedArgumentError{Args: args[:dash]}
	}
	return nil
}

func execute(ctx context.Context, deps Deps, ll *slog.LevelVar, opts *options.Options) error {
	verbosity, err := options.NewVerbosity(opts.Quiet, opts.Verbose)
	if err != nil {
		return err
	}
	ll.Set(verbosity.LogLevel())
	deps.Logger.Debug("cargo-fmt", "version", Version)

	if opts.Version {
		return exitStatus(deps.Runner.Info(ctx, []string{"--version"}))
	}
	if options.IsInfoQuery(opts.RustfmtArgs) {
		return exitStatus(deps.Runner.Info(ctx, opts.RustfmtArgs))
	}

	inv, err := opts.Resolve()
	if err != nil {
		return err
	}
	deps.Logger.Debug("resolved options", "strategy", inv.Strategy, "args", inv.Args)

	targets, err := deps.Resolver.Targets(ctx, inv.Strategy, inv.ManifestPath)
	if err != nil {
		return err
	}

	return exitStatus(deps.Runner.Format(ctx, targets, inv.Args, inv.Verbosity))
}

// exitStatus turns a formatter result into the command's error.
func exitStatus(code int, err error) error {
	if err != nil {
		return err
	}
	if code != rustfmt.Success {
		return &ExitError{Code: code}
	}
	return nil
}
