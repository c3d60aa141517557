package cmd

import (
	"context"
	"fmt"
	"os"

	"Rotar/internal/lock"
	"Rotar/internal/remote"
	"Rotar/internal/restore"
	"Rotar/internal/tarcmd"

	"github.com/spf13/cobra"
)

var (
	restoreSrc  string
	restoreSync bool
)

func init() {
	rootCmd.AddCommand(restoreCmd)
	restoreCmd.Flags().StringVar(&restoreSrc, "src", "", "Directory holding the archives (default: backup.dir from config)")
	restoreCmd.Flags().BoolVar(&restoreSync, "sync", false, "Fetch all artifacts from the S3 store before restoring")
}

var restoreCmd = &cobra.Command{
	Use:   "restore <name> <dest-dir>",
	Short: "Replay the archive chain of a backup into a directory",
	Args:  cobra.ExactArgs(2),
	RunE:  runRestore,
}

func runRestore(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	name, dest := args[0], args[1]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	src := restoreSrc
	if src == "" {
		src = cfg.Backup.Dir
	}

	// A restore reads the same checkpoint files a concurrent backup
	// rewrites, and --sync overwrites them outright, so it takes the same
	// per-name lock in the archive directory that backup holds.
	if err := os.MkdirAll(src, 0o755); err != nil {
		return fmt.Errorf("create archive dir %s: %w", src, err)
	}
	l, err := lock.New(lock.Options{Dir: src, Name: name, TTL: runLockTTL})
	if err != nil {
		return err
	}
	if err := l.Acquire(ctx); err != nil {
		return err
	}
	defer func() { _ = l.Release(context.Background()) }()

	notif := NotifierFromConfig(cfg, func(msg string) { cmd.PrintErrln("Warning:", msg) })

	if restoreSync {
		client, err := s3ClientFromConfig(ctx, cfg)
		if err != nil {
			return err
		}
		fetched, err := remote.New(client, name, src).FetchAll(ctx)
		if err != nil {
			return fmt.Errorf("fetch from s3: %w", err)
		}
		cmd.Printf("Fetched %d artifact(s) from s3\n", len(fetched))
	}

	runner := &restore.Runner{Name: name, Dir: src, Engine: tarcmd.New()}
	steps, err := runner.Run(ctx, dest)
	for _, s := range steps {
		cmd.Printf("Applied %s\n", s.Archive)
	}
	if err != nil {
		_ = notif.NotifyError(ctx, name, err)
		return err
	}

	cmd.Printf("Restored %s into %s (%d archive(s))\n", name, dest, len(steps))
	_ = notif.NotifyRestore(ctx, name, dest, len(steps))
	return nil
}
