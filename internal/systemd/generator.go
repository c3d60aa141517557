// Package systemd generates service and timer units that run scheduled
// backups through the rotar binary.
package systemd

import (
	"fmt"
	"strings"

	"Rotar/internal/config"
)

const (
	DefaultUnitDir    = "/etc/systemd/system"
	DefaultBinary     = "/usr/bin/rotar"
	DefaultConfigPath = "/etc/rotar/config.yaml"
)

type GeneratorOptions struct {
	Binary     string
	ConfigPath string
	UnitDir    string
	Hardening  bool
}

type GeneratedUnits struct {
	Service string
	Timer   string
}

// UnitBaseName is the stem both unit files share for a backup name.
func UnitBaseName(name string) string {
	return "rotar-backup-" + sanitizeUnitName(name)
}

// Generate renders the service and timer units for one backup name and
// source directory.
func Generate(name, sourceDir string, schedule *config.ScheduleConfig, opts GeneratorOptions) (*GeneratedUnits, error) {
	if schedule == nil {
		return nil, fmt.Errorf("schedule is required")
	}
	if name == "" || sourceDir == "" {
		return nil, fmt.Errorf("backup name and source dir are required")
	}
	if opts.Binary == "" {
		opts.Binary = DefaultBinary
	}
	if opts.ConfigPath == "" {
		opts.ConfigPath = DefaultConfigPath
	}

	execStart := fmt.Sprintf("%s backup %s %s --sync", opts.Binary, name, sourceDir)
	return &GeneratedUnits{
		Service: buildService(name, execStart, opts.ConfigPath, opts.Hardening),
		Timer:   buildTimer(name, schedule),
	}, nil
}

func buildService(name, execStart, configPath string, hardening bool) string {
	var b strings.Builder
	b.WriteString("[Unit]\n")
	fmt.Fprintf(&b, "Description=Rotar rotation backup for %s\n", name)
	b.WriteString("After=network-online.target\n")
	b.WriteString("Wants=network-online.target\n\n")

	b.WriteString("[Service]\n")
	b.WriteString("Type=oneshot\n")
	fmt.Fprintf(&b, "ExecStart=%s\n", execStart)
	b.WriteString("Environment=" + config.EnvConfigPath + "=" + configPath + "\n")

	if hardening {
		b.WriteString("ProtectSystem=full\n")
		b.WriteString("ProtectHome=read-only\n")
		b.WriteString("PrivateTmp=yes\n")
		b.WriteString("NoNewPrivileges=yes\n")
		b.WriteString("ProtectKernelTunables=yes\n")
		b.WriteString("ProtectKernelModules=yes\n")
		b.WriteString("ProtectControlGroups=yes\n")
		b.WriteString("RestrictRealtime=yes\n")
		b.WriteString("RestrictSUIDSGID=yes\n")
		b.WriteString("RestrictNamespaces=yes\n")
		b.WriteString("RestrictAddressFamilies=AF_UNIX AF_INET AF_INET6\n")
	}

	b.WriteString("\n[Install]\n")
	b.WriteString("WantedBy=multi-user.target\n")
	return b.String()
}

func buildTimer(name string, schedule *config.ScheduleConfig) string {
	var b strings.Builder
	b.WriteString("[Unit]\n")
	fmt.Fprintf(&b, "Description=Rotar backup timer for %s\n", name)
	b.WriteString("Requires=" + UnitBaseName(name) + ".service\n\n")

	b.WriteString("[Timer]\n")
	for _, c := range buildOnCalendar(schedule) {
		b.WriteString("OnCalendar=" + c + "\n")
	}
	if jitterSec := schedule.JitterMinutes * 60; jitterSec > 0 {
		fmt.Fprintf(&b, "RandomizedDelaySec=%d\n", jitterSec)
	}
	b.WriteString("Persistent=yes\n\n")

	b.WriteString("[Install]\n")
	b.WriteString("WantedBy=timers.target\n")
	return b.String()
}

func buildOnCalendar(s *config.ScheduleConfig) []string {
	times := s.Times
	if times < 1 {
		times = 1
	}
	if times > 5 {
		times = 5
	}

	switch s.Period {
	case "week":
		days := [][]int{{1}, {1, 4}, {1, 3, 5}, {1, 2, 4, 5}, {1, 2, 3, 4, 5}}
		names := []string{"", "Mon", "Tue", "Wed", "Thu", "Fri"}
		var out []string
		for _, d := range days[times-1] {
			out = append(out, fmt.Sprintf("%s *-*-* 02:00:00", names[d]))
		}
		return out
	case "month":
		days := [][]int{{1}, {1, 15}, {1, 10, 20}, {1, 8, 15, 22}, {1, 7, 14, 21, 28}}
		var out []string
		for _, d := range days[times-1] {
			out = append(out, fmt.Sprintf("*-*-%02d 02:00:00", d))
		}
		return out
	default:
		hours := [][]int{{2}, {2, 14}, {2, 10, 18}, {2, 8, 14, 20}, {2, 6, 12, 18, 22}}
		var out []string
		for _, h := range hours[times-1] {
			out = append(out, fmt.Sprintf("*-*-* %02d:00:00", h))
		}
		return out
	}
}

func sanitizeUnitName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_':
			b.WriteRune(r)
		case r == ' ' || r == '.':
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "default"
	}
	return b.String()
}
