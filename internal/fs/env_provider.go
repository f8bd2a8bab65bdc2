package fs

import "os"

// EnvProvider looks up the variables that configure cargo-fmt: RUSTFMT,
// CARGO and CARGO_FMT_LOG_FILE. An unset variable reads as empty.
type EnvProvider interface {
	Get(key string) string
}

// ProcessEnv reads the environment of the running process.
type ProcessEnv struct{}

// NewEnvProvider returns the provider used outside tests.
func NewEnvProvider() ProcessEnv {
	return ProcessEnv{}
}

func (ProcessEnv) Get(key string) string {
	return os.Getenv(key)
}

// MapEnvProvider serves variables from a fixed map, so tests can point
// RUSTFMT and CARGO at stand-in executables without touching the process
// environment.
type MapEnvProvider map[string]string

func (m MapEnvProvider) Get(key string) string {
	return m[key]
}
