// Package notify is the portal's fire-and-forget notification side channel.
// Messages are emitted after the triggering write has committed, on their
// own goroutine with their own error handling: a failed or slow send is
// logged and dropped, and can never roll back or block the lifecycle
// operation that produced it. At-most-once, best effort.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Message kinds.
const (
	KindManagerAlert = "manager_alert"
	KindDispatched   = "dispatched"
	KindLowStock     = "low_stock"
)

// ItemLine is one request line in a manager-alert or dispatched message.
type ItemLine struct {
	Name     string
	Quantity int
	Size     string
}

// LowStockLine is one item in a low-stock digest.
type LowStockLine struct {
	Name              string
	StockBalance      int
	LowStockThreshold *int
}

// Message is a single role-targeted notification.
type Message struct {
	ID           string
	Kind         string
	To           string
	EmployeeName string
	Items        []ItemLine
	LowStock     []LowStockLine
}

// Sender delivers a rendered message over some channel.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// SendTimeout bounds a single delivery attempt.
const SendTimeout = 15 * time.Second

// Dispatcher emits messages asynchronously through a Sender.
type Dispatcher struct {
	sender Sender
}

// NewDispatcher creates a dispatcher around the given sender.
func NewDispatcher(sender Sender) *Dispatcher {
	return &Dispatcher{sender: sender}
}

// Go sends the message on its own goroutine. It returns immediately and
// never reports failure to the caller; errors land in the log only.
func (d *Dispatcher) Go(msg *Message) {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("notification panicked", "id", msg.ID, "kind", msg.Kind, "panic", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), SendTimeout)
		defer cancel()

		if err := d.sender.Send(ctx, msg); err != nil {
			slog.Error("notification failed", "id", msg.ID, "kind", msg.Kind, "to", msg.To, "error", err)
			return
		}
		slog.Info("notification sent", "id", msg.ID, "kind", msg.Kind, "to", msg.To)
	}()
}
