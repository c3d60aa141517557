// Package lock serializes backup and restore invocations per backup name.
// Concurrent runs against the same name and destination race on the
// checkpoint and frontier files, so each invocation holds an advisory lock
// file inside the destination directory for its whole duration.
package lock

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type Locker interface {
	Acquire(ctx context.Context) error
	Release(ctx context.Context) error
}

// DirLocker is a lock file scoped to one backup name inside one directory.
// A TTL > 0 lets a fresh invocation take over a lock whose holder died
// without releasing it.
type DirLocker struct {
	path string
	ttl  time.Duration
	file *os.File
	mu   sync.Mutex
	held bool
}

type Options struct {
	Dir  string
	Name string
	TTL  time.Duration
}

func New(opts Options) (*DirLocker, error) {
	if opts.Dir == "" || opts.Name == "" {
		return nil, fmt.Errorf("lock dir and name are required")
	}
	name := opts.Name
	if filepath.Base(name) != name {
		return nil, fmt.Errorf("lock name %q must not contain path separators", name)
	}
	return &DirLocker{
		path: filepath.Join(opts.Dir, "."+name+".lock"),
		ttl:  opts.TTL,
	}, nil
}

func (l *DirLocker) Acquire(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held {
		return fmt.Errorf("lock already held by this process")
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create lock dir: %w", err)
	}

	tryAcquire := func() (*os.File, error) {
		return os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0o640)
	}

	file, err := tryAcquire()
	if err != nil {
		if !os.IsExist(err) {
			return fmt.Errorf("create lock file: %w", err)
		}
		if l.ttl <= 0 {
			return fmt.Errorf("lock file exists: %s (another backup may be running)", l.path)
		}
		info, statErr := os.Stat(l.path)
		if statErr != nil {
			return fmt.Errorf("lock file exists and stat failed: %w", statErr)
		}
		if time.Since(info.ModTime()) < l.ttl {
			return fmt.Errorf("lock file exists: %s (held by another process)", l.path)
		}
		if removeErr := os.Remove(l.path); removeErr != nil {
			return fmt.Errorf("stale lock exists, remove failed: %w", removeErr)
		}
		file, err = tryAcquire()
		if err != nil {
			return fmt.Errorf("retry acquire after stale remove: %w", err)
		}
	}

	if _, err := fmt.Fprintf(file, "%d\n", os.Getpid()); err != nil {
		_ = file.Close()
		_ = os.Remove(l.path)
		return fmt.Errorf("write lock file: %w", err)
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		_ = os.Remove(l.path)
		return fmt.Errorf("sync lock file: %w", err)
	}

	l.file = file
	l.held = true
	return nil
}

func (l *DirLocker) Release(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.held {
		return nil
	}
	var errs []error
	if l.file != nil {
		if err := l.file.Close(); err != nil {
			errs = append(errs, err)
		}
		l.file = nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		errs = append(errs, err)
	}
	l.held = false
	if len(errs) > 0 {
		return fmt.Errorf("release lock: %v", errs)
	}
	return nil
}
