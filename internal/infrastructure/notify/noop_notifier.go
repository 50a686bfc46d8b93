package notify

import (
	"context"

	"aiahub/internal/ports"
)

// NoopNotifier is the stand-in when no event feed is configured.
type NoopNotifier struct{}

func NewNoopNotifier() *NoopNotifier { return &NoopNotifier{} }

func (*NoopNotifier) Publish(context.Context, ports.RegisterEvent) error { return nil }
