package cmd

import (
	"context"
	"fmt"

	"Rotar/internal/config"
	"Rotar/internal/s3"
)

func loadConfig() (*config.Config, error) {
	v, err := config.Load(false)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Unmarshal(v)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func s3ClientFromConfig(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	if cfg.S3 == nil {
		return nil, fmt.Errorf("s3 is not configured; add an s3 section to %s", config.ResolveConfigPath())
	}
	return s3.New(ctx, s3.Options{
		Endpoint:           cfg.S3.Endpoint,
		Region:             cfg.S3.Region,
		AccessKey:          cfg.S3.AccessKey,
		SecretKey:          cfg.S3.SecretKey,
		Bucket:             cfg.S3.Bucket,
		Prefix:             cfg.S3.Prefix,
		InsecureSkipVerify: cfg.S3.TLS != nil && cfg.S3.TLS.InsecureSkipVerify,
	})
}
