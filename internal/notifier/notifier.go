// Package notifier sends backup lifecycle events to external channels.
package notifier

import (
	"context"
	"time"
)

type Notifier interface {
	NotifyStart(ctx context.Context, name string) error
	NotifySuccess(ctx context.Context, name, archive string, duration time.Duration, size int64) error
	NotifyError(ctx context.Context, name string, err error) error
	NotifyRestore(ctx context.Context, name, destDir string, steps int) error
	NotifyPrune(ctx context.Context, name string, removed int) error
}

// Nop is used when no notification channel is configured.
type Nop struct{}

func (Nop) NotifyStart(context.Context, string) error { return nil }

func (Nop) NotifySuccess(context.Context, string, string, time.Duration, int64) error {
	return nil
}

func (Nop) NotifyError(context.Context, string, error) error { return nil }

func (Nop) NotifyRestore(context.Context, string, string, int) error { return nil }

func (Nop) NotifyPrune(context.Context, string, int) error { return nil }
