// Package notify sends desktop notifications when a run finishes.
package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

// Notifier sends a desktop notification.
type Notifier interface {
	Notify(title, message string) error
}

// Desktop posts notifications through the OS notification service.
type Desktop struct{}

func (Desktop) Notify(title, message string) error {
	if err := beeep.Notify(title, message, ""); err != nil {
		return fmt.Errorf("sending notification: %w", err)
	}
	return nil
}

// Noop drops every notification. Used when notifications are disabled.
type Noop struct{}

func (Noop) Notify(title, message string) error { return nil }

// New returns the Desktop notifier when enabled, Noop otherwise.
func New(enabled bool) Notifier {
	if enabled {
		return Desktop{}
	}
	return Noop{}
}

// InvoicesReady describes a finished run.
func InvoicesReady(n Notifier, folder string, written int) error {
	msg := fmt.Sprintf("%d invoices written for %s", written, folder)
	if written == 1 {
		msg = fmt.Sprintf("1 invoice written for %s", folder)
	}
	return n.Notify("billr", msg)
}
