package systemd

import (
	"strings"
	"testing"

	"Rotar/internal/config"
)

func TestGenerate_ServiceAndTimer(t *testing.T) {
	schedule := &config.ScheduleConfig{Period: "day", Times: 2, JitterMinutes: 5}
	opts := GeneratorOptions{
		Binary:     "/usr/local/bin/rotar",
		ConfigPath: "/etc/rotar/config.yaml",
		Hardening:  true,
	}

	units, err := Generate("web-data", "/srv/www", schedule, opts)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(units.Service, "[Service]") {
		t.Error("service missing [Service]")
	}
	if !strings.Contains(units.Service, "ExecStart=/usr/local/bin/rotar backup web-data /srv/www --sync") {
		t.Errorf("service ExecStart wrong:\n%s", units.Service)
	}
	if !strings.Contains(units.Service, "ProtectSystem=full") {
		t.Error("service missing hardening")
	}
	if !strings.Contains(units.Service, "ROTAR_CONFIG=/etc/rotar/config.yaml") {
		t.Error("service missing config env")
	}

	if !strings.Contains(units.Timer, "OnCalendar=*-*-* 02:00:00") ||
		!strings.Contains(units.Timer, "OnCalendar=*-*-* 14:00:00") {
		t.Errorf("timer calendars wrong:\n%s", units.Timer)
	}
	if !strings.Contains(units.Timer, "RandomizedDelaySec=300") {
		t.Error("timer missing jitter (5*60=300)")
	}
	if !strings.Contains(units.Timer, "Requires=rotar-backup-web-data.service") {
		t.Errorf("timer missing service dependency:\n%s", units.Timer)
	}
}

func TestGenerate_WeeklyCalendar(t *testing.T) {
	units, err := Generate("d", "/srv/d", &config.ScheduleConfig{Period: "week", Times: 2}, GeneratorOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(units.Timer, "OnCalendar=Mon *-*-* 02:00:00") ||
		!strings.Contains(units.Timer, "OnCalendar=Thu *-*-* 02:00:00") {
		t.Errorf("weekly calendars wrong:\n%s", units.Timer)
	}
}

func TestGenerate_NilSchedule(t *testing.T) {
	if _, err := Generate("d", "/srv/d", nil, GeneratorOptions{}); err == nil {
		t.Error("expected error for nil schedule")
	}
}

func TestGenerate_MissingArgs(t *testing.T) {
	s := &config.ScheduleConfig{Period: "day", Times: 1}
	if _, err := Generate("", "/srv/d", s, GeneratorOptions{}); err == nil {
		t.Error("expected error for empty name")
	}
	if _, err := Generate("d", "", s, GeneratorOptions{}); err == nil {
		t.Error("expected error for empty source dir")
	}
}

func TestUnitBaseName_Sanitized(t *testing.T) {
	if got := UnitBaseName("my data.set"); got != "rotar-backup-my-data-set" {
		t.Errorf("UnitBaseName = %q", got)
	}
}
