package options

import (
	"fmt"
	"strings"
)

// IncompatibleVerbosityError is returned when --quiet and --verbose are both set.
type IncompatibleVerbosityError struct{}

func (e *IncompatibleVerbosityError) Error() string {
	return "quiet mode and verbose mode are not compatible"
}

// InvalidMessageFormatError reports a --message-format value outside
// MessageFormats, including an empty one.
type InvalidMessageFormatError struct {
	Value string
}

func (e *InvalidMessageFormatError) Error() string {
	return fmt.Sprintf(
		"invalid --message-format value: %s. Allowed values are: %s",
		e.Value,
		strings.Join(MessageFormats, "|"),
	)
}

// IncompatibleArgError reports a rustfmt argument that cannot be combined
// with the chosen message format.
type IncompatibleArgError struct {
	Arg    string
	Format string
}

func (e *IncompatibleArgError) Error() string {
	return fmt.Sprintf("cannot include %s arg when --message-format is set to %s", e.Arg, e.Format)
}

// InvalidManifestPathError reports a --manifest-path that does not name a
// Cargo.toml file.
type InvalidManifestPathError struct {
	Path string
}

func (e *InvalidManifestPathError) Error() string {
	return "the manifest-path must be a path to a Cargo.toml file"
}

// UnexpectedArgumentError reports positional arguments given before "--".
type UnexpectedArgumentError struct {
	Args []string
}

func (e *UnexpectedArgumentError) Error() string {
	return fmt.Sprintf(
		"unexpected argument '%s'; pass rustfmt options after '--'",
		strings.Join(e.Args, " "),
	)
}
