package workspace

import "fmt"

// Target is one source entry point rustfmt is asked to format.
type Target struct {
	// Package is the name of the package owning the target.
	Package string
	// Kind is the cargo target kind, e.g. "lib", "bin" or "test".
	Kind string
	// Path is the absolute path of the target's root source file.
	Path string
	// Edition is the Rust edition the package is built with.
	Edition string
}

func (t Target) String() string {
	return fmt.Sprintf("[%s] %s", t.Kind, t.Path)
}
