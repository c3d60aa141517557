package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rotar",
	Short: "Snapshot-rotation backup scheduler built on GNU tar incremental archives",
	Long:  "Rotar keeps a bounded hierarchy of full and incremental tar archives in a destination directory, rotating counters like a mixed-radix odometer and optionally mirroring the artifacts to S3-compatible storage.",
}

func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}
