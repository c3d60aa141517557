package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"Rotar/internal/config"
	"Rotar/internal/systemd"

	"github.com/spf13/cobra"
)

var installSystemdUnitDir string

func init() {
	rootCmd.AddCommand(installSystemdCmd)
	installSystemdCmd.Flags().StringVar(&installSystemdUnitDir, "unit-dir", systemd.DefaultUnitDir, "Directory for systemd unit files")
}

var installSystemdCmd = &cobra.Command{
	Use:   "install-systemd <name> <source-dir>",
	Short: "Install a systemd service and timer for a scheduled backup",
	Args:  cobra.ExactArgs(2),
	RunE:  runInstallSystemd,
}

func runInstallSystemd(cmd *cobra.Command, args []string) error {
	if runtime.GOOS != "linux" {
		return fmt.Errorf("install-systemd is only supported on Linux")
	}
	name, src := args[0], args[1]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Schedule == nil {
		return fmt.Errorf("no schedule configured; add a schedule section to %s", config.ResolveConfigPath())
	}

	binary, err := os.Executable()
	if err != nil {
		binary = systemd.DefaultBinary
	}
	units, err := systemd.Generate(name, src, cfg.Schedule, systemd.GeneratorOptions{
		Binary:     binary,
		ConfigPath: config.ResolveConfigPath(),
		Hardening:  true,
	})
	if err != nil {
		return err
	}

	base := systemd.UnitBaseName(name)
	svcPath := filepath.Join(installSystemdUnitDir, base+".service")
	timerPath := filepath.Join(installSystemdUnitDir, base+".timer")

	if err := os.WriteFile(svcPath, []byte(units.Service), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", svcPath, err)
	}
	if err := os.WriteFile(timerPath, []byte(units.Timer), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", timerPath, err)
	}
	cmd.Printf("Wrote %s and %s\n", svcPath, timerPath)

	if err := exec.Command("systemctl", "daemon-reload").Run(); err != nil {
		return fmt.Errorf("systemctl daemon-reload: %w", err)
	}
	if err := exec.Command("systemctl", "enable", "--now", base+".timer").Run(); err != nil {
		return fmt.Errorf("systemctl enable %s.timer: %w", base, err)
	}
	cmd.Printf("Enabled %s.timer\n", base)
	return nil
}
