//go:build integration

package integration

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"Rotar/internal/backup"
	"Rotar/internal/restore"
	"Rotar/internal/rotation"
	"Rotar/internal/tarcmd"
)

// Runs a full rotation cycle against the real GNU tar binary: five backups
// with the source mutating in between, then a restore whose result must
// match the final source state.
func TestGNUTar_BackupRestoreCycle(t *testing.T) {
	if _, err := exec.LookPath(tarcmd.DefaultBinary); err != nil {
		t.Skipf("tar not found: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	src := t.TempDir()
	dst := t.TempDir()
	runner := &backup.Runner{Engine: tarcmd.New()}
	opts := backup.Options{
		Name:      "cycle",
		SourceDir: src,
		DestDir:   dst,
		Policy:    rotation.Policy{MaxLevels: 3, CountPerLevel: 2},
	}

	writeFile := func(rel, content string) {
		t.Helper()
		p := filepath.Join(src, rel)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	writeFile("base.txt", "v1")
	writeFile("sub/nested.txt", "nested")

	steps := []func(){
		func() {},
		func() { writeFile("base.txt", "v2") },
		func() { writeFile("new.txt", "added at step 3") },
		func() { writeFile("sub/nested.txt", "nested v2") },
		func() { writeFile("base.txt", "v5") },
	}
	for i, mutate := range steps {
		mutate()
		if _, err := runner.Run(ctx, opts); err != nil {
			t.Fatalf("backup %d: %v", i+1, err)
		}
	}

	dest := t.TempDir()
	rr := &restore.Runner{Name: "cycle", Dir: dst, Engine: tarcmd.New()}
	replayed, err := rr.Run(ctx, dest)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if len(replayed) == 0 {
		t.Fatal("restore replayed no archives")
	}

	want := map[string]string{
		"base.txt":       "v5",
		"new.txt":        "added at step 3",
		"sub/nested.txt": "nested v2",
	}
	for rel, content := range want {
		got, err := os.ReadFile(filepath.Join(dest, rel))
		if err != nil {
			t.Errorf("read restored %s: %v", rel, err)
			continue
		}
		if string(got) != content {
			t.Errorf("restored %s = %q, want %q", rel, got, content)
		}
	}
}
