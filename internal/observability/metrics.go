package observability

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/teguholica/auth-with-otp-and-pin-api"

var (
	metricsOnce sync.Once
	repoOps     metric.Int64Counter
	authEvents  metric.Int64Counter
)

func initMetrics() {
	meter := otel.Meter(meterName)
	repoOps, _ = meter.Int64Counter("repository_operations_total",
		metric.WithDescription("Repository operations by entity, operation and outcome"))
	authEvents, _ = meter.Int64Counter("auth_events_total",
		metric.WithDescription("Authentication engine operations by outcome"))
}

// RecordRepositoryOperation counts one store round trip. No-op counters are
// used until an SDK registers a global meter provider.
func RecordRepositoryOperation(ctx context.Context, entity, operation, outcome string) {
	metricsOnce.Do(initMetrics)
	if repoOps == nil {
		return
	}
	repoOps.Add(ctx, 1, metric.WithAttributes(
		attribute.String("entity", entity),
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}

func RecordAuthEvent(ctx context.Context, operation, outcome string) {
	metricsOnce.Do(initMetrics)
	if authEvents == nil {
		return
	}
	authEvents.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}
