// Package doctor runs environment checks for the backup host.
package doctor

import (
	"context"
	"fmt"
	"os"
	"time"

	"Rotar/internal/config"
	"Rotar/internal/lock"
	"Rotar/internal/s3"
	"Rotar/internal/tarcmd"
)

type CheckResult struct {
	Name   string
	OK     bool
	Detail string
}

func Run(ctx context.Context, cfg *config.Config) []CheckResult {
	var results []CheckResult

	ok, detail := checkTar(ctx)
	results = append(results, CheckResult{Name: "tar", OK: ok, Detail: detail})

	ok, detail = checkBackupDir(cfg.Backup.Dir)
	results = append(results, CheckResult{Name: "backup dir", OK: ok, Detail: detail})

	ok, detail = checkLock(ctx, cfg.Backup.Dir)
	results = append(results, CheckResult{Name: "lock", OK: ok, Detail: detail})

	if cfg.S3 != nil {
		ok, detail = checkS3(ctx, cfg.S3)
		results = append(results, CheckResult{Name: "s3", OK: ok, Detail: detail})
	} else {
		results = append(results, CheckResult{Name: "s3", OK: true, Detail: "not configured, local-only mode"})
	}

	return results
}

func checkTar(ctx context.Context) (bool, string) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	version, err := tarcmd.Version(ctx, tarcmd.DefaultBinary)
	if err != nil {
		return false, fmt.Sprintf("tar not usable: %v", err)
	}
	return true, version
}

func checkBackupDir(dir string) (bool, string) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Sprintf("create %s failed: %v", dir, err)
	}
	f, err := os.CreateTemp(dir, ".rotar-doctor-*")
	if err != nil {
		return false, fmt.Sprintf("%s not writable: %v", dir, err)
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return true, fmt.Sprintf("%s writable", dir)
}

func checkLock(ctx context.Context, dir string) (bool, string) {
	l, err := lock.New(lock.Options{Dir: dir, Name: "doctor"})
	if err != nil {
		return false, fmt.Sprintf("lock init failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := l.Acquire(ctx); err != nil {
		return false, fmt.Sprintf("lock acquire failed: %v", err)
	}
	if err := l.Release(context.Background()); err != nil {
		return false, fmt.Sprintf("lock release failed: %v", err)
	}
	return true, "lock file usable"
}

func checkS3(ctx context.Context, cfg *config.S3Config) (bool, string) {
	client, err := s3.New(ctx, s3.Options{
		Endpoint:           cfg.Endpoint,
		Region:             cfg.Region,
		AccessKey:          cfg.AccessKey,
		SecretKey:          cfg.SecretKey,
		Bucket:             cfg.Bucket,
		Prefix:             cfg.Prefix,
		InsecureSkipVerify: cfg.TLS != nil && cfg.TLS.InsecureSkipVerify,
	})
	if err != nil {
		return false, fmt.Sprintf("s3 client init failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := client.ListObjects(ctx, "", 1); err != nil {
		return false, fmt.Sprintf("s3 list failed: %v", err)
	}
	return true, fmt.Sprintf("bucket %s reachable", cfg.Bucket)
}
