package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"Rotar/internal/config"
)

type DiscordNotifier struct {
	webhookURL string
	host       string
	client     *http.Client
}

type discordEmbed struct {
	Title       string         `json:"title,omitempty"`
	Description string         `json:"description,omitempty"`
	Color       int            `json:"color,omitempty"`
	Timestamp   string         `json:"timestamp,omitempty"`
	Fields      []discordField `json:"fields,omitempty"`
}

type discordField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordPayload struct {
	Embeds []discordEmbed `json:"embeds,omitempty"`
}

func NewDiscordNotifier(cfg *config.DiscordConfig) (*DiscordNotifier, error) {
	if cfg == nil || !cfg.Enabled || cfg.WebhookURL == "" {
		return nil, fmt.Errorf("discord notifier disabled or missing webhook_url")
	}
	host, _ := os.Hostname()
	if host == "" {
		host = "unknown"
	}
	timeout := 10 * time.Second
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return &DiscordNotifier{
		webhookURL: cfg.WebhookURL,
		host:       host,
		client:     &http.Client{Timeout: timeout},
	}, nil
}

func (d *DiscordNotifier) send(ctx context.Context, embed discordEmbed) error {
	embed.Timestamp = time.Now().UTC().Format(time.RFC3339)
	body, err := json.Marshal(discordPayload{Embeds: []discordEmbed{embed}})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("discord webhook returned %s", resp.Status)
	}
	return nil
}

func (d *DiscordNotifier) NotifyStart(ctx context.Context, name string) error {
	return d.send(ctx, discordEmbed{
		Title: "Backup started",
		Color: 0x3498db,
		Fields: []discordField{
			{Name: "Host", Value: d.host, Inline: true},
			{Name: "Backup", Value: name, Inline: true},
		},
	})
}

func (d *DiscordNotifier) NotifySuccess(ctx context.Context, name, archive string, duration time.Duration, size int64) error {
	return d.send(ctx, discordEmbed{
		Title: "Backup success",
		Color: 0x2ecc71,
		Fields: []discordField{
			{Name: "Host", Value: d.host, Inline: true},
			{Name: "Backup", Value: name, Inline: true},
			{Name: "Archive", Value: archive, Inline: true},
			{Name: "Duration", Value: duration.Round(time.Millisecond).String(), Inline: true},
			{Name: "Size", Value: fmt.Sprintf("%d bytes", size), Inline: true},
		},
	})
}

func (d *DiscordNotifier) NotifyError(ctx context.Context, name string, err error) error {
	return d.send(ctx, discordEmbed{
		Title:       "Backup failed",
		Description: err.Error(),
		Color:       0xe74c3c,
		Fields: []discordField{
			{Name: "Host", Value: d.host, Inline: true},
			{Name: "Backup", Value: name, Inline: true},
		},
	})
}

func (d *DiscordNotifier) NotifyRestore(ctx context.Context, name, destDir string, steps int) error {
	return d.send(ctx, discordEmbed{
		Title: "Restore completed",
		Color: 0x1abc9c,
		Fields: []discordField{
			{Name: "Host", Value: d.host, Inline: true},
			{Name: "Backup", Value: name, Inline: true},
			{Name: "Archives replayed", Value: fmt.Sprintf("%d", steps), Inline: true},
			{Name: "Target", Value: destDir, Inline: false},
		},
	})
}

func (d *DiscordNotifier) NotifyPrune(ctx context.Context, name string, removed int) error {
	return d.send(ctx, discordEmbed{
		Title: "Prune completed",
		Color: 0x9b59b6,
		Fields: []discordField{
			{Name: "Host", Value: d.host, Inline: true},
			{Name: "Backup", Value: name, Inline: true},
			{Name: "Removed", Value: fmt.Sprintf("%d", removed), Inline: true},
		},
	})
}
