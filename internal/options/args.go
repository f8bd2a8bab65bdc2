package options

import (
	"slices"
	"strings"
)

// ManifestFile is the file name every --manifest-path must end with.
const ManifestFile = "Cargo.toml"

// Options holds the parsed command-line values.
type Options struct {
	Quiet    bool
	Verbose  bool
	Version  bool
	Packages []string
	// ManifestPath and MessageFormat are nil when the flag was not given.
	// A given but empty value is still validated.
	ManifestPath  *string
	MessageFormat *string
	FormatAll     bool
	Check         bool
	// RustfmtArgs are the tokens given after "--".
	RustfmtArgs []string
}

// Invocation is everything needed to run the formatter over a workspace.
type Invocation struct {
	Strategy     Strategy
	Verbosity    Verbosity
	Args         []string
	ManifestPath string
}

// infoFlags bypass package resolution and are forwarded to rustfmt as-is.
var infoFlags = []string{"--print-config", "-h", "--help", "-V", "--version"}

// IsInfoQuery reports whether any pass-through argument asks rustfmt for
// information rather than formatting.
func IsInfoQuery(args []string) bool {
	return slices.ContainsFunc(args, func(s string) bool {
		return slices.Contains(infoFlags, s) ||
			strings.HasPrefix(s, "--help=") ||
			strings.HasPrefix(s, "--print-config=")
	})
}

// AssembleArgs builds the final rustfmt argument list: the pass-through
// arguments, then --check if requested and absent, then the message format
// translation when a format was given.
func AssembleArgs(rustfmtArgs []string, check bool, messageFormat *string) ([]string, error) {
	args := append([]string{}, rustfmtArgs...)
	if check && !slices.Contains(args, CheckFlag) {
		args = append(args, CheckFlag)
	}
	if messageFormat == nil {
		return args, nil
	}
	return ApplyMessageFormat(*messageFormat, args)
}

// ValidateManifestPath requires a given manifest path to name a Cargo.toml.
func ValidateManifestPath(path string) error {
	if !strings.HasSuffix(path, ManifestFile) {
		return &InvalidManifestPathError{Path: path}
	}
	return nil
}

// Resolve turns the parsed options into an Invocation. Nothing is returned
// on error so a partial argument list can never reach rustfmt.
func (o *Options) Resolve() (*Invocation, error) {
	verbosity, err := NewVerbosity(o.Quiet, o.Verbose)
	if err != nil {
		return nil, err
	}

	args, err := AssembleArgs(o.RustfmtArgs, o.Check, o.MessageFormat)
	if err != nil {
		return nil, err
	}

	var manifestPath string
	if o.ManifestPath != nil {
		if err = ValidateManifestPath(*o.ManifestPath); err != nil {
			return nil, err
		}
		manifestPath = *o.ManifestPath
	}

	return &Invocation{
		Strategy:     NewStrategy(o.FormatAll, o.Packages),
		Verbosity:    verbosity,
		Args:         args,
		ManifestPath: manifestPath,
	}, nil
}
