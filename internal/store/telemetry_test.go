package store

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/xenking/pizzeria/internal/domain/order"
)

func collectSums(t *testing.T, reader *sdkmetric.ManualReader) (map[string]int64, map[string]float64) {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	ints := make(map[string]int64)
	floats := make(map[string]float64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					ints[m.Name] += dp.Value
				}
			case metricdata.Sum[float64]:
				for _, dp := range data.DataPoints {
					floats[m.Name] += dp.Value
				}
			}
		}
	}
	return ints, floats
}

func TestTelemetry_Metrics(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	f := newFixture(t, WithMeterProvider(mp))

	ion, err := f.store.Register(ctx, "Ion", ionPhone)
	require.NoError(t, err)
	require.NoError(t, f.store.AddItem(ctx, f.admin, margherita()))
	_, err = f.store.PlaceOrderByName(ctx, ion, []string{"Margherita"}, order.Delivery)
	require.NoError(t, err)
	_, err = f.store.Menu(ctx, ion)
	require.Error(t, err)

	ints, floats := collectSums(t, reader)
	assert.Equal(t, int64(1), ints["pizzeria.customers.registered"])
	assert.Equal(t, int64(1), ints["pizzeria.orders.placed"])
	assert.Equal(t, int64(1), ints["pizzeria.access.denied"])
	assert.InDelta(t, 55.0, floats["pizzeria.orders.revenue"], 1e-9)
}

func TestTelemetry_Spans(t *testing.T) {
	ctx := context.Background()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	f := newFixture(t,
		WithTracerProvider(tp),
		WithMeterProvider(mp),
		WithStorage(&brokenStorage{err: errors.New("disk full")}),
	)

	require.Error(t, f.store.Save(ctx))
	require.Error(t, f.store.Load(ctx))

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "store.Save", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "store.Load", spans[1].Name())
	assert.Equal(t, codes.Error, spans[1].Status().Code)

	ints, _ := collectSums(t, reader)
	assert.Equal(t, int64(2), ints["pizzeria.snapshot.failures"])
}
