// Package remote reconciles the local artifact set of a backup name against
// a remote file store. Reconciliation is presence-based: only filenames are
// compared, never contents or timestamps.
package remote

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"

	"Rotar/internal/naming"
)

// Storage is the subset of S3 operations the reconciler needs. *s3.Client
// implements this interface.
type Storage interface {
	ListObjects(ctx context.Context, prefix string, maxKeys int32) ([]string, error)
	GetObject(ctx context.Context, key string) (io.ReadCloser, error)
	PutObject(ctx context.Context, key string, body io.Reader, contentLength int64) error
	DeleteObject(ctx context.Context, key string) error
}

// multipartUploader is implemented by stores that support streaming large
// uploads in parts; *s3.Client does.
type multipartUploader interface {
	UploadMultipart(ctx context.Context, key string, body io.Reader, partSizeBytes int64) error
}

// Files at or above this size go through the multipart path when available.
const multipartThreshold = 64 * 1024 * 1024

// Reconciler syncs the artifacts of one backup name between a local
// directory and a remote store.
type Reconciler struct {
	store Storage
	name  string
	dir   string
}

func New(store Storage, name, dir string) *Reconciler {
	return &Reconciler{store: store, name: name, dir: dir}
}

// AfterBackup pushes the artifacts a successful backup produced and removes
// retired archives from the remote. Retired checkpoints are never deleted
// remotely, matching the local retirement behavior.
func (r *Reconciler) AfterBackup(ctx context.Context, created, stale []string) error {
	for _, f := range created {
		if err := r.Upload(ctx, f); err != nil {
			return err
		}
	}
	for _, f := range stale {
		if !naming.IsArchive(r.name, f) {
			continue
		}
		if err := r.store.DeleteObject(ctx, f); err != nil {
			return fmt.Errorf("delete remote %s: %w", f, err)
		}
	}
	return nil
}

// SyncMissing uploads every local artifact absent from the remote. It never
// deletes anything, so running it twice in a row uploads nothing the second
// time. Returns the uploaded filenames in order.
func (r *Reconciler) SyncMissing(ctx context.Context) ([]string, error) {
	local, err := r.localArtifacts()
	if err != nil {
		return nil, err
	}
	remote, err := r.remoteArtifacts(ctx)
	if err != nil {
		return nil, err
	}
	var uploaded []string
	for _, f := range local {
		if _, ok := remote[f]; ok {
			continue
		}
		if err := r.Upload(ctx, f); err != nil {
			return uploaded, err
		}
		uploaded = append(uploaded, f)
	}
	return uploaded, nil
}

// FetchAll downloads every remote artifact of the name into the local
// directory, overwriting local copies unconditionally. Returns the fetched
// filenames.
func (r *Reconciler) FetchAll(ctx context.Context) ([]string, error) {
	remote, err := r.remoteArtifacts(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(remote))
	for f := range remote {
		names = append(names, f)
	}
	sort.Strings(names)
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create local dir %s: %w", r.dir, err)
	}
	for _, f := range names {
		if err := r.fetch(ctx, f); err != nil {
			return nil, err
		}
	}
	return names, nil
}

// Upload pushes one local artifact to the remote under its bare filename.
func (r *Reconciler) Upload(ctx context.Context, filename string) error {
	local := filepath.Join(r.dir, filename)
	f, err := os.Open(local)
	if err != nil {
		return fmt.Errorf("open %s for upload: %w", local, err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", local, err)
	}
	if mp, ok := r.store.(multipartUploader); ok && info.Size() >= multipartThreshold {
		if err := mp.UploadMultipart(ctx, filename, f, 0); err != nil {
			return fmt.Errorf("upload %s: %w", filename, err)
		}
		return nil
	}
	if err := r.store.PutObject(ctx, filename, f, info.Size()); err != nil {
		return fmt.Errorf("upload %s: %w", filename, err)
	}
	return nil
}

// DeleteRemote removes the named artifacts from the remote store.
func (r *Reconciler) DeleteRemote(ctx context.Context, filenames []string) error {
	for _, f := range filenames {
		if err := r.store.DeleteObject(ctx, f); err != nil {
			return fmt.Errorf("delete remote %s: %w", f, err)
		}
	}
	return nil
}

func (r *Reconciler) fetch(ctx context.Context, filename string) error {
	rc, err := r.store.GetObject(ctx, filename)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", filename, err)
	}
	defer rc.Close()
	local := filepath.Join(r.dir, filename)
	out, err := os.OpenFile(local, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("write %s: %w", local, err)
	}
	if _, err := io.Copy(out, rc); err != nil {
		_ = out.Close()
		return fmt.Errorf("write %s: %w", local, err)
	}
	return out.Close()
}

func (r *Reconciler) localArtifacts() ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("read local dir %s: %w", r.dir, err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if r.owns(e.Name()) {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}

// remoteArtifacts lists the remote keys and reduces them to bare artifact
// filenames belonging to the reconciler's backup name.
func (r *Reconciler) remoteArtifacts(ctx context.Context) (map[string]struct{}, error) {
	keys, err := r.store.ListObjects(ctx, "", 0)
	if err != nil {
		return nil, fmt.Errorf("list remote artifacts: %w", err)
	}
	out := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		base := path.Base(k)
		if r.owns(base) {
			out[base] = struct{}{}
		}
	}
	return out, nil
}

// owns reports whether filename is an artifact the reconciler syncs.
// Rollback copies are transient local state and stay out of the remote set.
func (r *Reconciler) owns(filename string) bool {
	if naming.IsCheckpointBackup(r.name, filename) {
		return false
	}
	return naming.IsArchive(r.name, filename) || naming.IsCheckpoint(r.name, filename)
}
