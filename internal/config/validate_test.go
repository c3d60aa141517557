package config

import "testing"

func validConfig() *Config {
	return Default()
}

func TestValidate_Defaults(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Errorf("Validate(default) = %v", err)
	}
}

func TestValidate_Nil(t *testing.T) {
	if err := Validate(nil); err == nil {
		t.Error("expected error for nil config")
	}
}

func TestValidate_Rotation(t *testing.T) {
	t.Run("levels zero", func(t *testing.T) {
		cfg := validConfig()
		cfg.Backup.Levels = 0
		if err := Validate(cfg); err == nil {
			t.Error("expected error for levels=0")
		}
	})
	t.Run("count one", func(t *testing.T) {
		cfg := validConfig()
		cfg.Backup.Count = 1
		if err := Validate(cfg); err == nil {
			t.Error("expected error for count=1")
		}
	})
	t.Run("count past encoding width", func(t *testing.T) {
		cfg := validConfig()
		cfg.Backup.Count = 101
		if err := Validate(cfg); err == nil {
			t.Error("expected error for count=101")
		}
	})
	t.Run("single level is allowed", func(t *testing.T) {
		cfg := validConfig()
		cfg.Backup.Levels = 1
		if err := Validate(cfg); err != nil {
			t.Errorf("levels=1: %v", err)
		}
	})
}

func TestValidate_S3(t *testing.T) {
	base := func() *Config {
		cfg := validConfig()
		cfg.S3 = &S3Config{
			Endpoint:  "http://minio:9000",
			Bucket:    "rotar",
			AccessKey: "ak",
			SecretKey: "sk",
		}
		return cfg
	}
	if err := Validate(base()); err != nil {
		t.Errorf("valid s3: %v", err)
	}
	t.Run("missing endpoint", func(t *testing.T) {
		cfg := base()
		cfg.S3.Endpoint = ""
		if err := Validate(cfg); err == nil {
			t.Error("expected error")
		}
	})
	t.Run("missing bucket", func(t *testing.T) {
		cfg := base()
		cfg.S3.Bucket = ""
		if err := Validate(cfg); err == nil {
			t.Error("expected error")
		}
	})
	t.Run("missing credentials", func(t *testing.T) {
		cfg := base()
		cfg.S3.SecretKey = ""
		if err := Validate(cfg); err == nil {
			t.Error("expected error")
		}
	})
}

func TestValidate_Schedule(t *testing.T) {
	cfg := validConfig()
	cfg.Schedule = &ScheduleConfig{Period: "fortnight", Times: 1}
	if err := Validate(cfg); err == nil {
		t.Error("expected error for unknown period")
	}
	cfg.Schedule = &ScheduleConfig{Period: "week", Times: 9}
	if err := Validate(cfg); err == nil {
		t.Error("expected error for times=9")
	}
	cfg.Schedule = &ScheduleConfig{Period: "week", Times: 2}
	if err := Validate(cfg); err != nil {
		t.Errorf("valid schedule: %v", err)
	}
}

func TestValidate_Discord(t *testing.T) {
	cfg := validConfig()
	cfg.Notifications = &NotificationsConfig{Discord: &DiscordConfig{Enabled: true}}
	if err := Validate(cfg); err == nil {
		t.Error("expected error for enabled discord without webhook_url")
	}
	cfg.Notifications.Discord.WebhookURL = "https://discord.example/hook"
	if err := Validate(cfg); err != nil {
		t.Errorf("valid discord: %v", err)
	}
}
