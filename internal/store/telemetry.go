package store

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/xenking/pizzeria/internal/store"

type telemetry struct {
	tracer trace.Tracer

	ordersPlaced     metric.Int64Counter
	revenue          metric.Float64Counter
	registrations    metric.Int64Counter
	accessDenied     metric.Int64Counter
	snapshotFailures metric.Int64Counter
}

func newTelemetry(mp metric.MeterProvider, tp trace.TracerProvider) (*telemetry, error) {
	meter := mp.Meter(instrumentationName)
	t := &telemetry{tracer: tp.Tracer(instrumentationName)}

	var err error
	if t.ordersPlaced, err = meter.Int64Counter("pizzeria.orders.placed",
		metric.WithDescription("Orders placed"),
	); err != nil {
		return nil, errors.Wrap(err, "orders placed counter")
	}
	if t.revenue, err = meter.Float64Counter("pizzeria.orders.revenue",
		metric.WithDescription("Order totals at placement time"),
		metric.WithUnit("RON"),
	); err != nil {
		return nil, errors.Wrap(err, "revenue counter")
	}
	if t.registrations, err = meter.Int64Counter("pizzeria.customers.registered",
		metric.WithDescription("Successful customer registrations"),
	); err != nil {
		return nil, errors.Wrap(err, "registrations counter")
	}
	if t.accessDenied, err = meter.Int64Counter("pizzeria.access.denied",
		metric.WithDescription("Administrator operations rejected for the actor"),
	); err != nil {
		return nil, errors.Wrap(err, "access denied counter")
	}
	if t.snapshotFailures, err = meter.Int64Counter("pizzeria.snapshot.failures",
		metric.WithDescription("Failed snapshot saves and loads"),
	); err != nil {
		return nil, errors.Wrap(err, "snapshot failures counter")
	}

	return t, nil
}

func (t *telemetry) orderPlaced(ctx context.Context, method string, total decimal.Decimal) {
	attrs := metric.WithAttributes(attribute.String("delivery_method", method))
	t.ordersPlaced.Add(ctx, 1, attrs)
	t.revenue.Add(ctx, total.InexactFloat64(), attrs)
}

func (t *telemetry) denied(ctx context.Context, op string) {
	t.accessDenied.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", op)))
}

func (t *telemetry) snapshotFailed(ctx context.Context, op string) {
	t.snapshotFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", op)))
}

func (t *telemetry) start(ctx context.Context, name, key string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("snapshot.key", key)))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
