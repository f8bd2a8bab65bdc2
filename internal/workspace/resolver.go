// Package workspace asks cargo which source files belong to the packages a
// Strategy selects.
package workspace

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/tidwall/gjson"

	cfs "github.com/andyballingall/cargo-fmt/internal/fs"
	"github.com/andyballingall/cargo-fmt/internal/options"
)

const (
	// ManifestFile is the cargo manifest file name.
	ManifestFile = options.ManifestFile
	// CargoEnvVar overrides the cargo executable.
	CargoEnvVar = "CARGO"
	// DefaultCargo is looked up on PATH when CargoEnvVar is unset.
	DefaultCargo = "cargo"
)

// Resolver enumerates the targets a Strategy selects.
type Resolver interface {
	Targets(ctx context.Context, s options.Strategy, manifestPath string) ([]Target, error)
}

// metadataFunc returns the `cargo metadata --no-deps` JSON for a manifest.
type metadataFunc func(ctx context.Context, manifestPath string) ([]byte, error)

// CargoResolver resolves targets with `cargo metadata`.
type CargoResolver struct {
	env      cfs.EnvProvider
	stderr   io.Writer
	getwd    func() (string, error)
	metadata metadataFunc
}

// NewCargoResolver creates a CargoResolver. cargo's own diagnostics go to stderr.
func NewCargoResolver(env cfs.EnvProvider, stderr io.Writer) *CargoResolver {
	r := &CargoResolver{env: env, stderr: stderr, getwd: os.Getwd}
	r.metadata = r.cargoMetadata
	return r
}

// Targets returns the targets selected by s, ordered as cargo reports them
// and without duplicate paths.
func (r *CargoResolver) Targets(ctx context.Context, s options.Strategy, manifestPath string) ([]Target, error) {
	manifest, err := r.locateManifest(manifestPath)
	if err != nil {
		return nil, err
	}

	var pkgs []gjson.Result
	switch s.Kind {
	case options.StrategyRoot:
		pkgs, err = r.rootPackages(ctx, manifest)
	case options.StrategyAll:
		pkgs, err = r.allPackages(ctx, manifest)
	case options.StrategySome:
		pkgs, err = r.somePackages(ctx, manifest, s.Packages)
	default:
		err = fmt.Errorf("unknown strategy %v", s.Kind)
	}
	if err != nil {
		return nil, err
	}

	return collectTargets(pkgs), nil
}

func (r *CargoResolver) locateManifest(manifestPath string) (string, error) {
	if manifestPath != "" {
		return filepath.Abs(manifestPath)
	}

	wd, err := r.getwd()
	if err != nil {
		return "", err
	}
	found, err := cfs.FindUpwards(wd, ManifestFile)
	if errors.Is(err, fs.ErrNotExist) {
		return "", &ManifestNotFoundError{Dir: wd}
	}
	return found, err
}

func (r *CargoResolver) load(ctx context.Context, manifest string) (gjson.Result, error) {
	data, err := r.metadata(ctx, manifest)
	if err != nil {
		return gjson.Result{}, &MetadataError{ManifestPath: manifest, Wrapped: err}
	}
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, &MetadataError{ManifestPath: manifest, Wrapped: errors.New("invalid JSON output")}
	}
	return gjson.ParseBytes(data), nil
}

// rootPackages selects the package owning the manifest, or every member when
// the manifest sits at the workspace root.
func (r *CargoResolver) rootPackages(ctx context.Context, manifest string) ([]gjson.Result, error) {
	md, err := r.load(ctx, manifest)
	if err != nil {
		return nil, err
	}

	inWorkspaceRoot := samePath(md.Get("workspace_root").String(), filepath.Dir(manifest))
	var pkgs []gjson.Result
	for _, pkg := range md.Get("packages").Array() {
		if inWorkspaceRoot || samePath(pkg.Get("manifest_path").String(), manifest) {
			pkgs = append(pkgs, pkg)
		}
	}
	return pkgs, nil
}

// allPackages selects every workspace member and, recursively, every local
// path dependency.
func (r *CargoResolver) allPackages(ctx context.Context, manifest string) ([]gjson.Result, error) {
	var pkgs []gjson.Result
	visited := map[string]bool{}
	queue := []string{manifest}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true

		md, err := r.load(ctx, current)
		if err != nil {
			return nil, err
		}
		for _, pkg := range md.Get("packages").Array() {
			visited[filepath.Clean(pkg.Get("manifest_path").String())] = true
			pkgs = append(pkgs, pkg)

			for _, dep := range pkg.Get("dependencies").Array() {
				depPath := dep.Get("path").String()
				if depPath == "" {
					continue
				}
				if depManifest := filepath.Join(depPath, ManifestFile); !visited[depManifest] {
					queue = append(queue, depManifest)
				}
			}
		}
	}
	return pkgs, nil
}

// somePackages selects the named workspace members in the order given.
func (r *CargoResolver) somePackages(ctx context.Context, manifest string, names []string) ([]gjson.Result, error) {
	md, err := r.load(ctx, manifest)
	if err != nil {
		return nil, err
	}

	byName := map[string]gjson.Result{}
	for _, pkg := range md.Get("packages").Array() {
		byName[pkg.Get("name").String()] = pkg
	}

	pkgs := make([]gjson.Result, 0, len(names))
	for _, name := range names {
		pkg, ok := byName[name]
		if !ok {
			return nil, &UnknownPackageError{Name: name}
		}
		pkgs = append(pkgs, pkg)
	}
	return pkgs, nil
}

func collectTargets(pkgs []gjson.Result) []Target {
	var targets []Target
	seen := map[string]bool{}
	for _, pkg := range pkgs {
		name := pkg.Get("name").String()
		for _, t := range pkg.Get("targets").Array() {
			path := t.Get("src_path").String()
			if path == "" || seen[path] {
				continue
			}
			seen[path] = true

			edition := t.Get("edition").String()
			if edition == "" {
				edition = pkg.Get("edition").String()
			}
			targets = append(targets, Target{
				Package: name,
				Kind:    t.Get("kind.0").String(),
				Path:    path,
				Edition: edition,
			})
		}
	}
	return targets
}

// cargoMetadata runs `cargo metadata --no-deps` for the manifest.
func (r *CargoResolver) cargoMetadata(ctx context.Context, manifestPath string) ([]byte, error) {
	cargo := r.env.Get(CargoEnvVar)
	if cargo == "" {
		cargo = DefaultCargo
	}

	//nolint:gosec // the executable is chosen by the user through $CARGO
	cmd := exec.CommandContext(ctx, cargo,
		"metadata", "--format-version", "1", "--no-deps", "--manifest-path", manifestPath)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = r.stderr

	if err := cmd.Run(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func samePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	ca, errA := cfs.CanonicalPath(a)
	cb, errB := cfs.CanonicalPath(b)
	return errA == nil && errB == nil && ca == cb
}
