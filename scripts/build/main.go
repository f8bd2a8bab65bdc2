// Package main builds bin/cargo-fmt with the version stamped in.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

func main() {
	binaryName := "cargo-fmt"
	if runtime.GOOS == "windows" {
		binaryName += ".exe"
	}

	ctx := context.Background()
	versionOut, _ := exec.CommandContext(ctx, "go", "run", "./scripts/version").Output()
	version := strings.TrimSpace(string(versionOut))
	if version == "" {
		version = "dev"
	}

	ldflags := "-X github.com/andyballingall/cargo-fmt/internal/app.Version=" + version

	if err := os.MkdirAll("bin", 0o755); err != nil {
		fmt.Printf("❌ Failed to create bin directory: %v\n", err)
		os.Exit(1)
	}

	// cargo finds the subcommand as cargo-fmt on PATH.
	outputPath := filepath.Join("bin", binaryName)
	fmt.Printf("Building %s %s...\n", binaryName, version)

	cmd := exec.CommandContext(ctx, "go", "build", "-ldflags", ldflags, "-o", outputPath, "./cmd/cargo-fmt")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		fmt.Printf("❌ Build failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Build complete: %s\n", outputPath)
}
