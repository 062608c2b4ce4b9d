package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestSetupNone(t *testing.T) {
	t.Parallel()

	shutdown, err := Setup(context.Background(), "none", "test")
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestSetupUnknownExporter(t *testing.T) {
	t.Parallel()

	_, err := Setup(context.Background(), "zipkin", "test")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown telemetry exporter")
}

func TestNewExportersStdout(t *testing.T) {
	t.Parallel()

	spanExp, metricExp, err := newExporters(context.Background(), "stdout")
	require.NoError(t, err)
	require.NotNil(t, spanExp)
	require.NotNil(t, metricExp)
	require.NoError(t, spanExp.Shutdown(context.Background()))
	require.NoError(t, metricExp.Shutdown(context.Background()))
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestMetrics(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	m, err := NewMetrics(mp.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordCommand(ctx, "summary")
	m.RecordCommand(ctx, "summary")
	m.RecordCommand(ctx, "insights")
	m.RecordDerive(ctx, 3*time.Millisecond)
	m.RecordDigest(ctx)

	got := collect(t, reader)

	commands, ok := got["bot.commands"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	var total int64
	for _, dp := range commands.DataPoints {
		total += dp.Value
	}
	require.Equal(t, int64(3), total)
	require.Len(t, commands.DataPoints, 2)

	hist, ok := got["finance.derive.duration"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	require.Equal(t, uint64(1), hist.DataPoints[0].Count)

	digests, ok := got["bot.digests.sent"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Equal(t, int64(1), digests.DataPoints[0].Value)
}

func TestNilMetricsIsNoop(t *testing.T) {
	t.Parallel()

	var m *Metrics
	m.RecordCommand(context.Background(), "start")
	m.RecordDerive(context.Background(), time.Second)
	m.RecordDigest(context.Background())
}
