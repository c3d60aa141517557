package cmd

import (
	"path/filepath"

	"Rotar/internal/inventory"
	"Rotar/internal/naming"
	"Rotar/internal/restore"

	"github.com/spf13/cobra"
)

var (
	listDst      string
	listContents bool
)

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listDst, "dst", "", "Destination directory (default: backup.dir from config)")
	listCmd.Flags().BoolVar(&listContents, "contents", false, "List the member files inside each archive")
}

var listCmd = &cobra.Command{
	Use:   "list <name>",
	Short: "List the archive chain in replay order",
	Args:  cobra.ExactArgs(1),
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	name := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dst := listDst
	if dst == "" {
		dst = cfg.Backup.Dir
	}

	listing, err := readListing(dst)
	if err != nil {
		return err
	}
	steps := restore.BuildReplayChain(name, listing)
	if len(steps) == 0 {
		cmd.Printf("No archives for %q in %s\n", name, dst)
		return nil
	}

	for _, s := range steps {
		depth := len(naming.ParseArchive(name, s.Archive))
		if depth == 0 {
			cmd.Printf("%s (full)\n", s.Archive)
		} else {
			cmd.Printf("%s (level %d)\n", s.Archive, depth)
		}
		if listContents {
			members, err := inventory.Contents(filepath.Join(dst, s.Archive))
			if err != nil {
				return err
			}
			for _, m := range members {
				cmd.Printf("    %s\n", m)
			}
		}
	}
	return nil
}
