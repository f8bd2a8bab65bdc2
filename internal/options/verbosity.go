package options

import "log/slog"

// Verbosity controls how much the command and the formatter print.
type Verbosity int

const (
	Normal Verbosity = iota
	Quiet
	Verbose
)

func (v Verbosity) String() string {
	switch v {
	case Quiet:
		return "quiet"
	case Verbose:
		return "verbose"
	default:
		return "normal"
	}
}

// NewVerbosity derives the Verbosity from the -q and -v flags.
func NewVerbosity(quiet, verbose bool) (Verbosity, error) {
	switch {
	case quiet && verbose:
		return Normal, &IncompatibleVerbosityError{}
	case quiet:
		return Quiet, nil
	case verbose:
		return Verbose, nil
	default:
		return Normal, nil
	}
}

// LogLevel is the console log level matching the verbosity.
func (v Verbosity) LogLevel() slog.Level {
	switch v {
	case Quiet:
		return slog.LevelWarn
	case Verbose:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}
