// Package store is the pizzeria orchestrator. It owns the catalog, the
// customer registry and the order log, gates catalog changes behind the
// administrator, and persists the full state after every mutation.
//
// A Store is not safe for concurrent use.
package store

import (
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/xenking/pizzeria/internal/domain/catalog"
	"github.com/xenking/pizzeria/internal/domain/customer"
	"github.com/xenking/pizzeria/internal/domain/order"
	"github.com/xenking/pizzeria/internal/pricing"
	"github.com/xenking/pizzeria/internal/snapshot"
)

// DefaultSnapshotKey is used when Config.SnapshotKey is empty.
const DefaultSnapshotKey = "pizzeria.json"

// PriceUpdatePolicy selects which components SetComponentPrice changes when
// several catalog items share a component name.
type PriceUpdatePolicy string

const (
	// PriceUpdateFirst changes the first match in catalog order.
	PriceUpdateFirst PriceUpdatePolicy = "first"
	// PriceUpdateAll changes every match.
	PriceUpdateAll PriceUpdatePolicy = "all"
)

// ParsePriceUpdatePolicy parses a policy name. Empty means PriceUpdateFirst.
func ParsePriceUpdatePolicy(s string) (PriceUpdatePolicy, error) {
	switch PriceUpdatePolicy(s) {
	case "", PriceUpdateFirst:
		return PriceUpdateFirst, nil
	case PriceUpdateAll:
		return PriceUpdateAll, nil
	default:
		return "", errors.Errorf("unknown price update policy %q", s)
	}
}

// Config holds the store identity and behavior switches.
type Config struct {
	Name    string
	Address string
	// SnapshotKey is the storage key used by Save and Load.
	SnapshotKey string
	PriceUpdate PriceUpdatePolicy
	// Rules prices orders. The zero value means pricing.Default.
	Rules pricing.Rules
}

// Sink receives human-readable report lines.
type Sink interface {
	WriteLine(line string)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(line string)

// WriteLine calls f(line).
func (f SinkFunc) WriteLine(line string) { f(line) }

type discardSink struct{}

func (discardSink) WriteLine(string) {}

// Store is a single pizzeria.
type Store struct {
	name    string
	address string
	admin   *customer.Customer

	catalog   *catalog.Catalog
	customers *customer.Registry
	orders    []*order.Order
	byID      map[string]*order.Order

	key     string
	policy  PriceUpdatePolicy
	rules   pricing.Rules
	storage snapshot.Storage
	exports snapshot.Storage
	sink    Sink
	lg      *zap.Logger
	now     func() time.Time

	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider
	tel            *telemetry
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. Defaults to zap.NewNop().
func WithLogger(lg *zap.Logger) Option {
	return func(s *Store) { s.lg = lg }
}

// WithSink sets the report line sink. Defaults to discarding output.
func WithSink(sink Sink) Option {
	return func(s *Store) { s.sink = sink }
}

// WithStorage sets the snapshot storage. Defaults to an in-memory storage.
func WithStorage(storage snapshot.Storage) Option {
	return func(s *Store) { s.storage = storage }
}

// WithExportStorage sets where ExportOrders writes reports. Defaults to the
// snapshot storage.
func WithExportStorage(storage snapshot.Storage) Option {
	return func(s *Store) { s.exports = storage }
}

// WithMeterProvider sets the meter provider for store metrics.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(s *Store) { s.meterProvider = mp }
}

// WithTracerProvider sets the tracer provider for persistence spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Store) { s.tracerProvider = tp }
}

// WithClock overrides the clock used to stamp orders.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates an empty store administered by admin.
func New(cfg Config, admin *customer.Customer, opts ...Option) (*Store, error) {
	if !admin.IsAdministrator() {
		return nil, errors.New("store requires an administrator")
	}
	policy, err := ParsePriceUpdatePolicy(string(cfg.PriceUpdate))
	if err != nil {
		return nil, err
	}

	s := &Store{
		name:           cfg.Name,
		address:        cfg.Address,
		admin:          admin,
		catalog:        &catalog.Catalog{},
		customers:      customer.NewRegistry(),
		byID:           make(map[string]*order.Order),
		key:            cfg.SnapshotKey,
		policy:         policy,
		rules:          cfg.Rules,
		storage:        snapshot.NewMemory(),
		sink:           discardSink{},
		lg:             zap.NewNop(),
		now:            time.Now,
		meterProvider:  metricnoop.NewMeterProvider(),
		tracerProvider: tracenoop.NewTracerProvider(),
	}
	if s.key == "" {
		s.key = DefaultSnapshotKey
	}
	if s.rules == (pricing.Rules{}) {
		s.rules = pricing.Default
	}
	for _, o := range opts {
		o(s)
	}
	if s.exports == nil {
		s.exports = s.storage
	}

	tel, err := newTelemetry(s.meterProvider, s.tracerProvider)
	if err != nil {
		return nil, errors.Wrap(err, "init telemetry")
	}
	s.tel = tel

	return s, nil
}

// Name returns the store name.
func (s *Store) Name() string { return s.name }

// Address returns the store address.
func (s *Store) Address() string { return s.address }

// Admin returns the store administrator.
func (s *Store) Admin() *customer.Customer { return s.admin }

// Catalog returns the live catalog.
func (s *Store) Catalog() *catalog.Catalog { return s.catalog }

// Customers returns registered customers in registration order.
func (s *Store) Customers() []*customer.Customer { return s.customers.Customers() }

// Orders returns the order log in placement order.
func (s *Store) Orders() []*order.Order { return s.orders }

// Rules returns the pricing rules in effect.
func (s *Store) Rules() pricing.Rules { return s.rules }

// Quote prices o with the store rules.
func (s *Store) Quote(o *order.Order) pricing.Breakdown {
	return o.QuoteWith(s.rules)
}

func (s *Store) write(format string, args ...any) {
	if len(args) == 0 {
		s.sink.WriteLine(format)
		return
	}
	s.sink.WriteLine(fmt.Sprintf(format, args...))
}
