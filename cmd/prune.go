package cmd

import (
	"context"

	"Rotar/internal/checkpoint"
	"Rotar/internal/remote"
	"Rotar/internal/rotation"

	"github.com/spf13/cobra"
)

var (
	pruneDst  string
	pruneSync bool
)

func init() {
	rootCmd.AddCommand(pruneCmd)
	pruneCmd.Flags().StringVar(&pruneDst, "dst", "", "Destination directory (default: backup.dir from config)")
	pruneCmd.Flags().BoolVar(&pruneSync, "sync", false, "Also delete the pruned checkpoints from the S3 store")
}

var pruneCmd = &cobra.Command{
	Use:   "prune <name>",
	Short: "Remove checkpoints orphaned by retired subtrees",
	Long:  "Rotation retires archives but leaves checkpoints deeper than the current frontier behind. Prune deletes those orphans; archives are never touched.",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrune,
}

func runPrune(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	name := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dst := pruneDst
	if dst == "" {
		dst = cfg.Backup.Dir
	}

	listing, err := readListing(dst)
	if err != nil {
		return err
	}
	// With no archives at all every checkpoint is an orphan.
	frontierDepth := -1
	if frontier, found := rotation.ScanFrontier(name, listing); found {
		frontierDepth = frontier.Depth()
	}

	removed, err := checkpoint.NewManager(name, dst).PruneOrphans(frontierDepth)
	if err != nil {
		return err
	}
	for _, f := range removed {
		cmd.Printf("Removed %s\n", f)
	}
	if len(removed) == 0 {
		cmd.Println("Nothing to prune")
		return nil
	}

	if pruneSync {
		client, err := s3ClientFromConfig(ctx, cfg)
		if err != nil {
			return err
		}
		if err := remote.New(client, name, dst).DeleteRemote(ctx, removed); err != nil {
			return err
		}
		cmd.Printf("Removed %d remote artifact(s)\n", len(removed))
	}

	notif := NotifierFromConfig(cfg, func(msg string) { cmd.PrintErrln("Warning:", msg) })
	_ = notif.NotifyPrune(ctx, name, len(removed))
	return nil
}
