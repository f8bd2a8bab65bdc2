package app

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/andyballingall/cargo-fmt/internal/options"
	"github.com/andyballingall/cargo-fmt/internal/workspace"
)

type infoCall struct {
	args []string
}

type formatCall struct {
	targets   []workspace.Target
	args      []string
	verbosity options.Verbosity
}

// MockRunner records calls instead of starting rustfmt.
type MockRunner struct {
	code    int
	err     error
	info    []infoCall
	formats []formatCall
}

func (m *MockRunner) Info(_ context.Context, args []string) (int, error) {
	m.info = append(m.info, infoCall{args: args})
	return m.code, m.err
}

func (m *MockRunner) Format(
	_ context.Context,
	targets []workspace.Target,
	args []string,
	v options.Verbosity,
) (int, error) {
	m.formats = append(m.formats, formatCall{targets: targets, args: args, verbosity: v})
	return m.code, m.err
}

func (m *MockRunner) spawned() bool {
	return len(m.info)+len(m.formats) > 0
}

// MockResolver returns fixed targets and records the strategies it saw.
type MockResolver struct {
	targets   []workspace.Target
	err       error
	strategy  []options.Strategy
	manifests []string
}

func (m *MockResolver) Targets(_ context.Context, s options.Strategy, manifestPath string) ([]workspace.Target, error) {
	m.strategy = append(m.strategy, s)
	m.manifests = append(m.manifests, manifestPath)
	return m.targets, m.err
}

type testCmd struct {
	cmd      *cobra.Command
	runner   *MockRunner
	resolver *MockResolver
	logLevel *slog.LevelVar
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
}

func newTestCmd(args ...string) *testCmd {
	tc := &testCmd{
		runner: &MockRunner{},
		resolver: &MockResolver{targets: []workspace.Target{
			{Package: "app", Kind: "lib", Path: "/ws/src/lib.rs", Edition: "2021"},
		}},
		logLevel: &slog.LevelVar{},
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
	}
	logger := slog.New(&consoleHandler{w: tc.stderr, level: tc.logLevel})
	tc.cmd = NewRootCmd(Deps{Runner: tc.runner, Resolver: tc.resolver, Logger: logger}, tc.logLevel)
	// A nil slice would make cobra read os.Args.
	tc.cmd.SetArgs(append([]string{}, args...))
	tc.cmd.SetOut(tc.stdout)
	tc.cmd.SetErr(tc.stderr)
	return tc
}

func (tc *testCmd) execute() error {
	return tc.cmd.ExecuteContext(context.Background())
}
