package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"Rotar/internal/systemd"

	"github.com/spf13/cobra"
)

var uninstallSystemdUnitDir string

func init() {
	rootCmd.AddCommand(uninstallSystemdCmd)
	uninstallSystemdCmd.Flags().StringVar(&uninstallSystemdUnitDir, "unit-dir", systemd.DefaultUnitDir, "Directory for systemd unit files")
}

var uninstallSystemdCmd = &cobra.Command{
	Use:   "uninstall-systemd <name>",
	Short: "Remove the systemd service and timer of a backup",
	Args:  cobra.ExactArgs(1),
	RunE:  runUninstallSystemd,
}

func runUninstallSystemd(cmd *cobra.Command, args []string) error {
	if runtime.GOOS != "linux" {
		return fmt.Errorf("uninstall-systemd is only supported on Linux")
	}
	name := args[0]

	base := systemd.UnitBaseName(name)
	svcPath := filepath.Join(uninstallSystemdUnitDir, base+".service")
	timerPath := filepath.Join(uninstallSystemdUnitDir, base+".timer")

	_ = exec.Command("systemctl", "disable", "--now", base+".timer").Run()

	if err := os.Remove(timerPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", timerPath, err)
	}
	if err := os.Remove(svcPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", svcPath, err)
	}
	cmd.Printf("Removed %s and %s\n", svcPath, timerPath)

	if err := exec.Command("systemctl", "daemon-reload").Run(); err != nil {
		return fmt.Errorf("systemctl daemon-reload: %w", err)
	}
	return nil
}
