// Package tarcmd drives GNU tar as the archiving engine. Archives are
// created and extracted with --listed-incremental state files; tar owns the
// checkpoint format and mutates it in place on every create run.
package tarcmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
)

const DefaultBinary = "tar"

// CreateSpec describes one create-mode invocation.
type CreateSpec struct {
	ArchivePath    string
	CheckpointPath string
	SourceDir      string
}

// ExtractSpec describes one extract-mode invocation. Extraction strips the
// leading path component (the source dir basename recorded at create time).
type ExtractSpec struct {
	ArchivePath    string
	CheckpointPath string
	DestDir        string
}

// Engine is the archiving collaborator. Implementations block until the
// external process finishes; cancellation goes through ctx.
type Engine interface {
	Create(ctx context.Context, spec CreateSpec) error
	Extract(ctx context.Context, spec ExtractSpec) error
}

// EngineError reports a non-zero exit from the archiving engine.
type EngineError struct {
	Mode     string // "create" or "extract"
	Archive  string
	ExitCode int
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("tar %s %s: exit status %d", e.Mode, e.Archive, e.ExitCode)
}

// GNUTar invokes the tar binary with an argument vector; no shell is
// involved, so paths need no escaping.
type GNUTar struct {
	Binary string
	// Output receives tar's stdout and stderr. Nil discards it.
	Output io.Writer
}

func New() *GNUTar {
	return &GNUTar{Binary: DefaultBinary}
}

func (g *GNUTar) Create(ctx context.Context, spec CreateSpec) error {
	src, err := filepath.Abs(spec.SourceDir)
	if err != nil {
		return fmt.Errorf("resolve source dir %s: %w", spec.SourceDir, err)
	}
	args := []string{
		"--create",
		"--file=" + spec.ArchivePath,
		"--listed-incremental=" + spec.CheckpointPath,
		"--ignore-failed-read",
		"--one-file-system",
		"--recursion",
		"--preserve-permissions",
		"--gzip",
		"-C", filepath.Dir(src),
		filepath.Base(src),
	}
	return g.run(ctx, "create", spec.ArchivePath, args)
}

func (g *GNUTar) Extract(ctx context.Context, spec ExtractSpec) error {
	args := []string{
		"--extract",
		"--strip-components", "1",
		"--ignore-failed-read",
		"--preserve-permissions",
		"--recursion",
		"--listed-incremental=" + spec.CheckpointPath,
		"--file", spec.ArchivePath,
		"-C", spec.DestDir,
	}
	return g.run(ctx, "extract", spec.ArchivePath, args)
}

func (g *GNUTar) run(ctx context.Context, mode, archive string, args []string) error {
	binary := g.Binary
	if binary == "" {
		binary = DefaultBinary
	}
	cmd := exec.CommandContext(ctx, binary, args...)
	if g.Output != nil {
		cmd.Stdout = g.Output
		cmd.Stderr = g.Output
	}
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &EngineError{Mode: mode, Archive: archive, ExitCode: exitErr.ExitCode()}
		}
		return fmt.Errorf("tar %s %s: %w", mode, archive, err)
	}
	return nil
}

// Version returns the first line of `tar --version`, used by doctor to
// verify a GNU tar is installed (--listed-incremental is a GNU extension).
func Version(ctx context.Context, binary string) (string, error) {
	if binary == "" {
		binary = DefaultBinary
	}
	out, err := exec.CommandContext(ctx, binary, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("tar --version: %w", err)
	}
	for i, b := range out {
		if b == '\n' {
			return string(out[:i]), nil
		}
	}
	return string(out), nil
}
