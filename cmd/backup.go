package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"Rotar/internal/backup"
	"Rotar/internal/lock"
	"Rotar/internal/remote"
	"Rotar/internal/rotation"
	"Rotar/internal/tarcmd"

	"github.com/spf13/cobra"
)

var (
	backupDst    string
	backupLevels int
	backupCount  int
	backupSync   bool
)

// Held for the whole invocation; a holder dead longer than this is taken
// over. Shared by backup and restore, which contend on the same checkpoint
// files in the destination directory.
const runLockTTL = 30 * time.Minute

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.Flags().StringVar(&backupDst, "dst", "", "Destination directory (default: backup.dir from config)")
	backupCmd.Flags().IntVar(&backupLevels, "levels", 0, "Rotation depth (default: backup.levels from config)")
	backupCmd.Flags().IntVar(&backupCount, "count", 0, "Backups per level before the counter carries (default: backup.count from config)")
	backupCmd.Flags().BoolVar(&backupSync, "sync", false, "Push the produced artifacts to the configured S3 store")
}

var backupCmd = &cobra.Command{
	Use:   "backup <name> <source-dir>",
	Short: "Take the next backup in the rotation for a source directory",
	Args:  cobra.ExactArgs(2),
	RunE:  runBackup,
}

func runBackup(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	name, src := args[0], args[1]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dst := backupDst
	if dst == "" {
		dst = cfg.Backup.Dir
	}
	pol := rotation.Policy{MaxLevels: cfg.Backup.Levels, CountPerLevel: cfg.Backup.Count}
	if backupLevels > 0 {
		pol.MaxLevels = backupLevels
	}
	if backupCount > 0 {
		pol.CountPerLevel = backupCount
	}
	if err := pol.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(dst, 0o755); err != nil {
		return fmt.Errorf("create destination %s: %w", dst, err)
	}
	l, err := lock.New(lock.Options{Dir: dst, Name: name, TTL: runLockTTL})
	if err != nil {
		return err
	}
	if err := l.Acquire(ctx); err != nil {
		return err
	}
	defer func() { _ = l.Release(context.Background()) }()

	notif := NotifierFromConfig(cfg, func(msg string) { cmd.PrintErrln("Warning:", msg) })
	_ = notif.NotifyStart(ctx, name)

	start := time.Now()
	runner := &backup.Runner{Engine: tarcmd.New()}
	res, err := runner.Run(ctx, backup.Options{
		Name:      name,
		SourceDir: src,
		DestDir:   dst,
		Policy:    pol,
	})
	if err != nil {
		_ = notif.NotifyError(ctx, name, err)
		return err
	}

	var size int64
	if fi, err := os.Stat(filepath.Join(dst, res.Archive)); err == nil {
		size = fi.Size()
	}

	if res.Plan.CreateFull {
		cmd.Printf("Created full backup %s\n", res.Archive)
	} else {
		cmd.Printf("Created incremental %s (level %s)\n", res.Archive, res.Plan.Target)
	}
	for _, f := range res.Plan.Stale {
		cmd.Printf("Retired %s\n", f)
	}

	if backupSync {
		client, err := s3ClientFromConfig(ctx, cfg)
		if err != nil {
			_ = notif.NotifyError(ctx, name, err)
			return err
		}
		rec := remote.New(client, name, dst)
		if err := rec.AfterBackup(ctx, res.Created, res.Plan.Stale); err != nil {
			_ = notif.NotifyError(ctx, name, fmt.Errorf("remote sync: %w", err))
			return fmt.Errorf("remote sync: %w", err)
		}
		cmd.Printf("Synced %d artifact(s) to s3\n", len(res.Created))
	}

	_ = notif.NotifySuccess(ctx, name, res.Archive, time.Since(start), size)
	return nil
}
