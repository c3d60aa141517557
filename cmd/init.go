package cmd

import (
	"fmt"
	"os"

	"Rotar/internal/config"

	"github.com/spf13/cobra"
)

var (
	initPath  string
	initForce bool
)

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&initPath, "path", "", "Where to write the config file (default: "+config.DefaultConfigPath()+")")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration file",
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	path := initPath
	if path == "" {
		path = config.ResolveConfigPath()
	}
	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists; use --force to overwrite", path)
	}
	if err := config.Write(config.Default(), path); err != nil {
		return err
	}
	cmd.Printf("Wrote %s\n", path)
	return nil
}
