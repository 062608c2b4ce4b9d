package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the bot's instruments.
type Metrics struct {
	commands    metric.Int64Counter
	deriveTime  metric.Float64Histogram
	digestsSent metric.Int64Counter
}

// NewMetrics creates the instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	commands, err := meter.Int64Counter("bot.commands",
		metric.WithDescription("Telegram commands handled, by command name"))
	if err != nil {
		return nil, fmt.Errorf("failed to create bot.commands counter: %w", err)
	}

	deriveTime, err := meter.Float64Histogram("finance.derive.duration",
		metric.WithDescription("Time spent deriving a dashboard view"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, fmt.Errorf("failed to create finance.derive.duration histogram: %w", err)
	}

	digestsSent, err := meter.Int64Counter("bot.digests.sent",
		metric.WithDescription("Daily digest messages delivered"))
	if err != nil {
		return nil, fmt.Errorf("failed to create bot.digests.sent counter: %w", err)
	}

	return &Metrics{commands: commands, deriveTime: deriveTime, digestsSent: digestsSent}, nil
}

// RecordCommand counts one handled command.
func (m *Metrics) RecordCommand(ctx context.Context, command string) {
	if m == nil {
		return
	}
	m.commands.Add(ctx, 1, metric.WithAttributes(attribute.String("command", command)))
}

// RecordDerive records how long one Derive call took.
func (m *Metrics) RecordDerive(ctx context.Context, d time.Duration) {
	if m == nil {
		return
	}
	m.deriveTime.Record(ctx, float64(d.Microseconds())/1000)
}

// RecordDigest counts one delivered digest.
func (m *Metrics) RecordDigest(ctx context.Context) {
	if m == nil {
		return
	}
	m.digestsSent.Add(ctx, 1)
}
