// Package checkpoint manages the per-depth incremental state files the
// archiving engine reads and mutates. The manager is the only writer of
// checkpoint bookkeeping; the engine itself only ever touches the file it is
// handed for a run.
package checkpoint

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"Rotar/internal/naming"
)

// Manager owns the checkpoint files of one backup name inside one
// destination directory.
type Manager struct {
	name string
	dir  string
}

func NewManager(name, dir string) *Manager {
	return &Manager{name: name, dir: dir}
}

func (m *Manager) Path(depth int) string {
	return filepath.Join(m.dir, naming.CheckpointName(m.name, depth))
}

func (m *Manager) backupPath(depth int) string {
	return filepath.Join(m.dir, naming.CheckpointBackupName(m.name, depth))
}

// PrepareFull resets depth 0 for a fresh chain: the old checkpoint, its
// rollback copy, and the previous full archive are removed so the engine
// starts from nothing. Returns the checkpoint path to hand to the engine.
func (m *Manager) PrepareFull() (string, error) {
	stale := []string{
		m.Path(0),
		m.backupPath(0),
		filepath.Join(m.dir, naming.ArchiveName(m.name, nil)),
	}
	for _, p := range stale {
		if err := removeIfExists(p); err != nil {
			return "", fmt.Errorf("reset %s: %w", p, err)
		}
	}
	return m.Path(0), nil
}

// PrepareIncremental readies depth for a run. When the depth is entered for
// the first time its checkpoint is seeded by copying the parent's, so the
// child branch starts from the parent's accumulated knowledge. The current
// checkpoint is then copied aside as the rollback copy, replacing any
// previous one. Returns the checkpoint path to hand to the engine.
func (m *Manager) PrepareIncremental(depth int) (string, error) {
	if depth < 1 {
		return "", fmt.Errorf("incremental depth must be >= 1, got %d", depth)
	}
	snap := m.Path(depth)
	if _, err := os.Stat(snap); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("stat checkpoint %s: %w", snap, err)
		}
		parent := m.Path(depth - 1)
		if err := copyFile(parent, snap); err != nil {
			return "", fmt.Errorf("seed checkpoint for %s depth %d from parent: %w", m.name, depth, err)
		}
	}
	old := m.backupPath(depth)
	if err := removeIfExists(old); err != nil {
		return "", fmt.Errorf("replace rollback copy %s: %w", old, err)
	}
	if err := copyFile(snap, old); err != nil {
		return "", fmt.Errorf("write rollback copy for %s depth %d: %w", m.name, depth, err)
	}
	return snap, nil
}

// Rollback restores the checkpoint from its pre-run copy after a failed
// engine run, so the next invocation plans from the state the failed run
// started with. Missing rollback copies are ignored.
func (m *Manager) Rollback(depth int) error {
	old := m.backupPath(depth)
	if _, err := os.Stat(old); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat rollback copy %s: %w", old, err)
	}
	if err := copyFile(old, m.Path(depth)); err != nil {
		return fmt.Errorf("rollback checkpoint for %s depth %d: %w", m.name, depth, err)
	}
	return nil
}

// RemoveArtifacts deletes the named files from the destination directory.
// Already-absent files are not an error.
func (m *Manager) RemoveArtifacts(filenames []string) error {
	for _, f := range filenames {
		if err := removeIfExists(filepath.Join(m.dir, f)); err != nil {
			return fmt.Errorf("remove %s: %w", f, err)
		}
	}
	return nil
}

// PruneOrphans deletes checkpoint files left behind by retired subtrees:
// checkpoints (and their rollback copies) deeper than frontierDepth. The
// rotation itself never reclaims these, it only retires archives. Returns
// the filenames removed.
func (m *Manager) PruneOrphans(frontierDepth int) ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", m.dir, err)
	}
	var removed []string
	for _, e := range entries {
		f := e.Name()
		depth, ok := naming.CheckpointDepth(m.name, f)
		if !ok || depth <= frontierDepth {
			continue
		}
		if err := removeIfExists(filepath.Join(m.dir, f)); err != nil {
			return removed, fmt.Errorf("prune %s: %w", f, err)
		}
		removed = append(removed, f)
	}
	sort.Strings(removed)
	return removed, nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	info, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
