package config

import "github.com/spf13/viper"

const (
	// Rotation defaults, used when the config file and flags are silent.
	DefaultLevels = 3
	DefaultCount  = 10

	DefaultBackupDir = "/var/backups/rotar"
)

type Config struct {
	Backup        BackupConfig         `mapstructure:"backup" yaml:"backup"`
	S3            *S3Config            `mapstructure:"s3" yaml:"s3,omitempty"`
	Schedule      *ScheduleConfig      `mapstructure:"schedule" yaml:"schedule,omitempty"`
	Notifications *NotificationsConfig `mapstructure:"notifications" yaml:"notifications,omitempty"`
}

type BackupConfig struct {
	// Dir holds the archives and checkpoints; the default --dst/--src.
	Dir string `mapstructure:"dir" yaml:"dir"`
	// Levels bounds the rotation tree depth: a full backup plus up to
	// Levels-1 incremental levels.
	Levels int `mapstructure:"levels" yaml:"levels"`
	// Count is how many backups the deepest level takes before the
	// counter carries into its parent.
	Count int `mapstructure:"count" yaml:"count"`
}

type S3Config struct {
	Endpoint  string     `mapstructure:"endpoint" yaml:"endpoint"`
	Region    string     `mapstructure:"region" yaml:"region,omitempty"`
	AccessKey string     `mapstructure:"access_key" yaml:"access_key"`
	SecretKey string     `mapstructure:"secret_key" yaml:"secret_key"`
	Bucket    string     `mapstructure:"bucket" yaml:"bucket"`
	Prefix    string     `mapstructure:"prefix" yaml:"prefix,omitempty"`
	TLS       *TLSConfig `mapstructure:"tls" yaml:"tls,omitempty"`
}

type TLSConfig struct {
	InsecureSkipVerify bool `mapstructure:"insecure_skip_verify" yaml:"insecure_skip_verify"`
}

type ScheduleConfig struct {
	// Period is "day", "week" or "month".
	Period string `mapstructure:"period" yaml:"period"`
	// Times is how many runs per period (1..5).
	Times         int `mapstructure:"times" yaml:"times"`
	JitterMinutes int `mapstructure:"jitter_minutes" yaml:"jitter_minutes,omitempty"`
}

type NotificationsConfig struct {
	Discord *DiscordConfig `mapstructure:"discord" yaml:"discord,omitempty"`
}

type DiscordConfig struct {
	Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
	WebhookURL     string `mapstructure:"webhook_url" yaml:"webhook_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds,omitempty"`
}

func Unmarshal(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	applyDefaults(&c)
	return &c, nil
}

func applyDefaults(c *Config) {
	if c.Backup.Dir == "" {
		c.Backup.Dir = DefaultBackupDir
	}
	if c.Backup.Levels == 0 {
		c.Backup.Levels = DefaultLevels
	}
	if c.Backup.Count == 0 {
		c.Backup.Count = DefaultCount
	}
}

// Default is the config written by `rotar init`.
func Default() *Config {
	c := &Config{}
	applyDefaults(c)
	return c
}

func NotificationsEnabled(n *NotificationsConfig) bool {
	return n != nil && n.Discord != nil && n.Discord.Enabled
}
