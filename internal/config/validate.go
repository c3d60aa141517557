package config

import "fmt"

func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if cfg.Backup.Levels < 1 {
		return fmt.Errorf("backup.levels must be >= 1, got %d", cfg.Backup.Levels)
	}
	if cfg.Backup.Count < 2 {
		return fmt.Errorf("backup.count must be >= 2, got %d", cfg.Backup.Count)
	}
	if cfg.Backup.Count > 100 {
		return fmt.Errorf("backup.count must be <= 100, got %d", cfg.Backup.Count)
	}
	if cfg.S3 != nil {
		if cfg.S3.Endpoint == "" {
			return fmt.Errorf("s3.endpoint is required when s3 is configured")
		}
		if cfg.S3.Bucket == "" {
			return fmt.Errorf("s3.bucket is required when s3 is configured")
		}
		if cfg.S3.AccessKey == "" || cfg.S3.SecretKey == "" {
			return fmt.Errorf("s3.access_key and s3.secret_key are required when s3 is configured")
		}
	}
	if s := cfg.Schedule; s != nil {
		switch s.Period {
		case "", "day", "week", "month":
		default:
			return fmt.Errorf("schedule.period must be day, week or month, got %q", s.Period)
		}
		if s.Times < 1 || s.Times > 5 {
			return fmt.Errorf("schedule.times must be 1..5, got %d", s.Times)
		}
	}
	if d := discordConfig(cfg); d != nil && d.Enabled && d.WebhookURL == "" {
		return fmt.Errorf("notifications.discord.webhook_url is required when discord is enabled")
	}
	return nil
}

func discordConfig(cfg *Config) *DiscordConfig {
	if cfg.Notifications == nil {
		return nil
	}
	return cfg.Notifications.Discord
}
