package cmd

import (
	"os"
	"time"

	"Rotar/internal/inventory"
	"Rotar/internal/rotation"
	"Rotar/internal/schedule"

	"github.com/spf13/cobra"
)

var (
	statusDst     string
	statusDigests bool
)

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().StringVar(&statusDst, "dst", "", "Destination directory (default: backup.dir from config)")
	statusCmd.Flags().BoolVar(&statusDigests, "digests", false, "Compute a BLAKE3 digest per artifact")
}

var statusCmd = &cobra.Command{
	Use:   "status <name>",
	Short: "Show the rotation state and what the next backup will do",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	name := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dst := statusDst
	if dst == "" {
		dst = cfg.Backup.Dir
	}
	pol := rotation.Policy{MaxLevels: cfg.Backup.Levels, CountPerLevel: cfg.Backup.Count}

	listing, err := readListing(dst)
	if err != nil {
		return err
	}

	frontier, found := rotation.ScanFrontier(name, listing)
	if !found {
		cmd.Printf("Backup %q: no archives in %s\n", name, dst)
	} else {
		cmd.Printf("Backup %q in %s\n", name, dst)
		cmd.Printf("Frontier: %s\n", frontier)
	}
	cmd.Printf("Policy: levels=%d count=%d\n", pol.MaxLevels, pol.CountPerLevel)

	plan, err := rotation.PlanNext(name, listing, pol)
	switch {
	case err != nil:
		cmd.Printf("Next: chain unreadable (%v); run backup to start over or prune by hand\n", err)
	case plan.CreateFull:
		cmd.Println("Next: full backup")
	default:
		cmd.Printf("Next: incremental at level %s", plan.Target)
		if len(plan.Stale) > 0 {
			cmd.Printf(", retiring %d archive(s)", len(plan.Stale))
		}
		cmd.Println()
	}

	artifacts, err := inventory.List(name, dst, statusDigests)
	if err != nil {
		return err
	}
	if len(artifacts) > 0 {
		cmd.Println("Artifacts:")
		for _, a := range artifacts {
			if statusDigests {
				cmd.Printf("  %-40s %10d  %s\n", a.Name, a.Size, a.Digest)
			} else {
				cmd.Printf("  %-40s %10d\n", a.Name, a.Size)
			}
		}
	}

	if cfg.Schedule != nil {
		next, desc := schedule.NextRun(cfg.Schedule, time.Now())
		cmd.Printf("Schedule: %s, next run %s\n", desc, next.Format(time.RFC3339))
	}
	return nil
}

func readListing(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}
