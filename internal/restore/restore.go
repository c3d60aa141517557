// Package restore replays a backup chain through the archiving engine.
package restore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"Rotar/internal/naming"
	"Rotar/internal/rotation"
	"Rotar/internal/tarcmd"
)

// Step pairs one archive with the checkpoint the engine needs to apply it.
type Step struct {
	Archive    string
	Checkpoint string
}

// BuildReplayChain orders the archives of name found in listing into the
// sequence a restore must replay. Lexical order of the fixed-width filenames
// is hierarchical order, with the full backup first; each archive is paired
// with the checkpoint at its own depth.
func BuildReplayChain(name string, listing []string) []Step {
	archives := rotation.Archives(name, listing)
	steps := make([]Step, 0, len(archives))
	for _, f := range archives {
		depth := len(naming.ParseArchive(name, f))
		steps = append(steps, Step{
			Archive:    f,
			Checkpoint: naming.CheckpointName(name, depth),
		})
	}
	return steps
}

// Runner replays a chain from a backup directory into a destination.
type Runner struct {
	Name   string
	Dir    string // directory holding the archives and checkpoints
	Engine tarcmd.Engine
}

// Run extracts every archive of the chain in order. The first engine failure
// aborts the sequence; the partially restored destination is left as-is for
// the caller to inspect or discard.
func (r *Runner) Run(ctx context.Context, destDir string) ([]Step, error) {
	entries, err := os.ReadDir(r.Dir)
	if err != nil {
		return nil, fmt.Errorf("read backup dir %s: %w", r.Dir, err)
	}
	listing := make([]string, 0, len(entries))
	for _, e := range entries {
		listing = append(listing, e.Name())
	}

	chain := BuildReplayChain(r.Name, listing)
	if len(chain) == 0 {
		return nil, fmt.Errorf("no archives for %s in %s", r.Name, r.Dir)
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("create destination %s: %w", destDir, err)
	}

	for i, step := range chain {
		err := r.Engine.Extract(ctx, tarcmd.ExtractSpec{
			ArchivePath:    filepath.Join(r.Dir, step.Archive),
			CheckpointPath: filepath.Join(r.Dir, step.Checkpoint),
			DestDir:        destDir,
		})
		if err != nil {
			return chain[:i], fmt.Errorf("replay %s: %w", step.Archive, err)
		}
	}
	return chain, nil
}
