package cmd

import (
	"context"

	"Rotar/internal/remote"

	"github.com/spf13/cobra"
)

var (
	syncDst   string
	syncFetch bool
)

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.Flags().StringVar(&syncDst, "dst", "", "Destination directory (default: backup.dir from config)")
	syncCmd.Flags().BoolVar(&syncFetch, "fetch", false, "Pull every remote artifact instead of pushing missing ones")
}

var syncCmd = &cobra.Command{
	Use:   "sync <name>",
	Short: "Reconcile local artifacts with the S3 store",
	Long:  "Push local archives and checkpoints the remote is missing. With --fetch, pull every remote artifact into the local directory instead, overwriting local copies.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSync,
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	name := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dst := syncDst
	if dst == "" {
		dst = cfg.Backup.Dir
	}

	client, err := s3ClientFromConfig(ctx, cfg)
	if err != nil {
		return err
	}
	rec := remote.New(client, name, dst)

	if syncFetch {
		fetched, err := rec.FetchAll(ctx)
		if err != nil {
			return err
		}
		for _, f := range fetched {
			cmd.Printf("Fetched %s\n", f)
		}
		cmd.Printf("Fetched %d artifact(s)\n", len(fetched))
		return nil
	}

	uploaded, err := rec.SyncMissing(ctx)
	if err != nil {
		return err
	}
	for _, f := range uploaded {
		cmd.Printf("Uploaded %s\n", f)
	}
	cmd.Printf("Uploaded %d artifact(s)\n", len(uploaded))
	return nil
}
