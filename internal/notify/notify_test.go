package notify

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestContextNotifier(t *testing.T) {
	t.Run("forwards to the collector in the context", func(t *testing.T) {
		c := &Collector{}
		ctx := WithCollector(context.Background(), c)

		Error(ctx, ContextNotifier{Logger: zerolog.Nop()}, "boom")

		items := c.Drain()
		assert.Equal(t, []Notification{{Level: LevelError, Message: "boom"}}, items)
		assert.Empty(t, c.Drain())
	})

	t.Run("no collector is fine", func(t *testing.T) {
		assert.NotPanics(t, func() {
			Error(context.Background(), ContextNotifier{Logger: zerolog.Nop()}, "boom")
		})
	})

	t.Run("nil notifier is ignored", func(t *testing.T) {
		assert.NotPanics(t, func() {
			Error(context.Background(), nil, "boom")
		})
	})
}

func TestInfo(t *testing.T) {
	c := &Collector{}
	Info(context.Background(), c, "saved")
	assert.Equal(t, []Notification{{Level: LevelInfo, Message: "saved"}}, c.Drain())

	assert.NotPanics(t, func() { Info(context.Background(), nil, "saved") })
}
