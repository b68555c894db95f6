// Package notify carries user-facing notifications from the service layer to whatever is
// presenting results: the browser (as toasts in the JSON body) or the CLI (stderr).
package notify

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Level is the severity of a notification
type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notification is a transient message meant for the user
type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Notifier emits notifications
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Error is shorthand for an error-level notification
func Error(ctx context.Context, notifier Notifier, message string) {
	if notifier == nil {
		return
	}
	notifier.Notify(ctx, Notification{Level: LevelError, Message: message})
}

// Info is shorthand for an info-level notification
func Info(ctx context.Context, notifier Notifier, message string) {
	if notifier == nil {
		return
	}
	notifier.Notify(ctx, Notification{Level: LevelInfo, Message: message})
}

// Collector accumulates notifications for one request
type Collector struct {
	mu    sync.Mutex
	items []Notification
}

// Notify records the notification
func (c *Collector) Notify(_ context.Context, n Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, n)
}

// Drain returns the collected notifications and resets the collector
func (c *Collector) Drain() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := c.items
	c.items = nil
	if items == nil {
		return []Notification{}
	}
	return items
}

type collectorKey struct{}

// WithCollector attaches a collector to the context
func WithCollector(ctx context.Context, c *Collector) context.Context {
	return context.WithValue(ctx, collectorKey{}, c)
}

// CollectorFrom returns the collector attached to the context, if any
func CollectorFrom(ctx context.Context) *Collector {
	c, _ := ctx.Value(collectorKey{}).(*Collector)
	return c
}

// ContextNotifier logs every notification and forwards it to the collector in the context
type ContextNotifier struct {
	Logger zerolog.Logger
}

func (n ContextNotifier) Notify(ctx context.Context, notification Notification) {
	n.Logger.Info().Str("level", string(notification.Level)).Msg(notification.Message)
	if c := CollectorFrom(ctx); c != nil {
		c.Notify(ctx, notification)
	}
}
