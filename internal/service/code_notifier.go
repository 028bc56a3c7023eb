package service

import (
	"context"
	"log/slog"
	"time"
)

type CodeDelivery struct {
	Identifier string
	Code       string
	ExpiresAt  time.Time
}

// CodeNotifier hands an issued one-time code to its delivery channel. Delivery
// is best-effort; the challenge stands whether or not the send worked.
type CodeNotifier interface {
	DeliverCode(ctx context.Context, delivery CodeDelivery) error
}

// LogCodeNotifier writes the code to the log instead of sending it anywhere.
// It is the stand-in until a real SMS or email channel is configured.
type LogCodeNotifier struct {
	logger *slog.Logger
}

func NewLogCodeNotifier(logger *slog.Logger) *LogCodeNotifier {
	return &LogCodeNotifier{logger: logger}
}

func (n *LogCodeNotifier) DeliverCode(ctx context.Context, delivery CodeDelivery) error {
	n.logger.InfoContext(ctx, "one-time code issued",
		"identifier", delivery.Identifier,
		"code", delivery.Code,
		"expires_at", delivery.ExpiresAt,
	)
	return nil
}
