package cmd

import (
	"context"
	"fmt"
	"time"

	"Rotar/internal/config"
	"Rotar/internal/notifier"

	"github.com/spf13/cobra"
)

var notifyTest bool

func init() {
	rootCmd.AddCommand(notifyCmd)
	notifyCmd.Flags().BoolVar(&notifyTest, "test", false, "Send a test notification to the configured channel")
}

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Check the notification channel",
	RunE:  runNotify,
}

func runNotify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !config.NotificationsEnabled(cfg.Notifications) {
		return fmt.Errorf("no notification channel enabled")
	}
	n, err := notifier.NewDiscordNotifier(cfg.Notifications.Discord)
	if err != nil {
		return err
	}
	if !notifyTest {
		cmd.Println("Discord webhook configured. Use --test to send a test message.")
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := n.NotifyStart(ctx, "rotar-test"); err != nil {
		return fmt.Errorf("test notification failed: %w", err)
	}
	cmd.Println("Test notification sent.")
	return nil
}

// NotifierFromConfig builds a Notifier from cfg. When notifications are
// disabled it returns a no-op implementation; when Discord is enabled but
// misconfigured, warn receives the error and the no-op is returned so a
// backup never fails on its notification channel.
func NotifierFromConfig(cfg *config.Config, warn func(string)) notifier.Notifier {
	if cfg == nil || !config.NotificationsEnabled(cfg.Notifications) {
		return notifier.Nop{}
	}
	n, err := notifier.NewDiscordNotifier(cfg.Notifications.Discord)
	if err != nil {
		if warn != nil {
			warn("discord notification: " + err.Error())
		}
		return notifier.Nop{}
	}
	return n
}
