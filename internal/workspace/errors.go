package workspace

import "fmt"

// ManifestNotFoundError is returned when no Cargo.toml exists in Dir or above it.
type ManifestNotFoundError struct {
	Dir string
}

func (e *ManifestNotFoundError) Error() string {
	return fmt.Sprintf("could not find `%s` in `%s` or any parent directory", ManifestFile, e.Dir)
}

// MetadataError wraps a failure to run cargo metadata or to parse its output.
type MetadataError struct {
	ManifestPath string
	Wrapped      error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("failed to read cargo metadata for %s: %v", e.ManifestPath, e.Wrapped)
}

func (e *MetadataError) Unwrap() error {
	return e.Wrapped
}

// UnknownPackageError reports a -p name that is not a workspace member.
type UnknownPackageError struct {
	Name string
}

func (e *UnknownPackageError) Error() string {
	return fmt.Sprintf("package `%s` is not a member of the workspace", e.Name)
}
