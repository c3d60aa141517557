package doctor

import (
	"context"
	"testing"

	"Rotar/internal/config"
)

func TestRun_LocalOnly(t *testing.T) {
	cfg := config.Default()
	cfg.Backup.Dir = t.TempDir()

	results := Run(context.Background(), cfg)

	byName := make(map[string]CheckResult)
	for _, r := range results {
		byName[r.Name] = r
	}
	for _, name := range []string{"tar", "backup dir", "lock", "s3"} {
		if _, ok := byName[name]; !ok {
			t.Errorf("missing check %q", name)
		}
	}
	if r := byName["backup dir"]; !r.OK {
		t.Errorf("backup dir check failed: %s", r.Detail)
	}
	if r := byName["lock"]; !r.OK {
		t.Errorf("lock check failed: %s", r.Detail)
	}
	if r := byName["s3"]; !r.OK {
		t.Errorf("s3 check should pass when not configured: %s", r.Detail)
	}
}
