// Package backup runs one rotation step end to end: scan the destination,
// plan the next level path, ready the checkpoint, drive the archiving
// engine, and retire whatever the plan marked stale.
package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"Rotar/internal/checkpoint"
	"Rotar/internal/naming"
	"Rotar/internal/rotation"
	"Rotar/internal/tarcmd"
)

type Options struct {
	Name      string
	SourceDir string
	DestDir   string
	Policy    rotation.Policy
}

// Result describes a completed backup invocation.
type Result struct {
	Plan       rotation.Plan
	Archive    string
	Checkpoint string
	// Created lists the artifacts this run wrote or refreshed, in the
	// order a remote sync should push them.
	Created []string
}

type Runner struct {
	Engine tarcmd.Engine
}

// Run executes one backup invocation. On an engine failure during an
// incremental run the checkpoint is rolled back to its pre-run copy, so the
// chain stays consistent with the archives that actually exist.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := os.MkdirAll(opts.DestDir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir %s: %w", opts.DestDir, err)
	}
	entries, err := os.ReadDir(opts.DestDir)
	if err != nil {
		return nil, fmt.Errorf("read backup dir %s: %w", opts.DestDir, err)
	}
	listing := make([]string, 0, len(entries))
	for _, e := range entries {
		listing = append(listing, e.Name())
	}

	plan, err := rotation.PlanNext(opts.Name, listing, opts.Policy)
	if err != nil {
		return nil, err
	}

	mgr := checkpoint.NewManager(opts.Name, opts.DestDir)
	var snap string
	if plan.CreateFull {
		snap, err = mgr.PrepareFull()
	} else {
		snap, err = mgr.PrepareIncremental(plan.Target.Depth())
	}
	if err != nil {
		return nil, err
	}

	archive := naming.ArchiveName(opts.Name, plan.Target)
	err = r.Engine.Create(ctx, tarcmd.CreateSpec{
		ArchivePath:    filepath.Join(opts.DestDir, archive),
		CheckpointPath: snap,
		SourceDir:      opts.SourceDir,
	})
	if err != nil {
		if !plan.CreateFull {
			if rbErr := mgr.Rollback(plan.Target.Depth()); rbErr != nil {
				return nil, fmt.Errorf("%w (checkpoint rollback also failed: %v)", err, rbErr)
			}
		}
		return nil, err
	}

	if err := mgr.RemoveArtifacts(plan.Stale); err != nil {
		return nil, err
	}

	return &Result{
		Plan:       plan,
		Archive:    archive,
		Checkpoint: filepath.Base(snap),
		Created:    []string{archive, filepath.Base(snap)},
	}, nil
}
