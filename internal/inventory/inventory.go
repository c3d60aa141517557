// Package inventory inspects the artifacts of a backup name on disk:
// sizes, content digests, and archive member listings for status output.
package inventory

import (
	"archive/tar"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/klauspost/compress/gzip"
	"github.com/zeebo/blake3"

	"Rotar/internal/naming"
)

type Artifact struct {
	Name   string
	Size   int64
	Digest string // blake3, empty unless requested
}

// List returns the artifacts of name in dir, archives and checkpoints alike,
// sorted by filename. With digests enabled each file is hashed with blake3.
func List(name, dir string, digests bool) ([]Artifact, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}
	var out []Artifact
	for _, e := range entries {
		f := e.Name()
		if e.IsDir() || (!naming.IsArchive(name, f) && !naming.IsCheckpoint(name, f)) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", f, err)
		}
		a := Artifact{Name: f, Size: info.Size()}
		if digests {
			a.Digest, err = DigestFile(filepath.Join(dir, f))
			if err != nil {
				return nil, err
			}
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// DigestFile streams a file through blake3 and returns the hex digest.
func DigestFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	h := blake3.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Contents lists the member paths of a gzip-compressed tar archive.
func Contents(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	gr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("gzip %s: %w", path, err)
	}
	defer gr.Close()

	tr := tar.NewReader(gr)
	var members []string
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read tar %s: %w", path, err)
		}
		members = append(members, hdr.Name)
	}
	return members, nil
}
