// Package app wires configuration, storage, telemetry and the store.
package app

import (
	"context"
	"io"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"go.uber.org/zap"

	"github.com/xenking/pizzeria/internal/console"
	"github.com/xenking/pizzeria/internal/domain/customer"
	"github.com/xenking/pizzeria/internal/pkg/errs"
	"github.com/xenking/pizzeria/internal/snapshot"
	"github.com/xenking/pizzeria/internal/storage/file"
	"github.com/xenking/pizzeria/internal/storage/postgres"
	"github.com/xenking/pizzeria/internal/store"
)

// App is a store loaded from its snapshot, together with the resources it
// holds open.
type App struct {
	Config *Config
	Store  *store.Store
	Sink   *console.Sink

	closers []func()
}

// Open creates all dependencies and loads the saved state. A missing or
// unreadable snapshot leaves the store empty. m may be nil, in which case
// telemetry is disabled.
func Open(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config, out io.Writer) (_ *App, rerr error) {
	a := &App{
		Config: cfg,
		Sink:   console.NewSink(out, lg.Named("console")),
	}
	defer func() {
		if rerr != nil {
			a.Close()
		}
	}()

	primary := file.New(cfg.Snapshot.Dir)
	storage, err := a.openStorage(ctx, lg, primary, cfg.Snapshot)
	if err != nil {
		return nil, err
	}

	policy, err := store.ParsePriceUpdatePolicy(cfg.Store.PriceUpdate)
	if err != nil {
		return nil, errors.Wrap(err, "price update policy")
	}

	opts := []store.Option{
		store.WithLogger(lg.Named("store")),
		store.WithSink(a.Sink),
		store.WithStorage(storage),
		store.WithExportStorage(primary),
	}
	if m != nil {
		opts = append(opts,
			store.WithMeterProvider(m.MeterProvider()),
			store.WithTracerProvider(m.TracerProvider()),
		)
	}

	admin := customer.NewAdministrator(cfg.Admin.Name, cfg.Admin.Phone)
	s, err := store.New(store.Config{
		Name:        cfg.Store.Name,
		Address:     cfg.Store.Address,
		SnapshotKey: cfg.Snapshot.Key,
		PriceUpdate: policy,
	}, admin, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "create store")
	}
	a.Store = s

	switch err := s.Load(ctx); {
	case err == nil:
	case errors.Is(err, errs.ErrNotFound):
		lg.Info("Starting with an empty store", zap.String("snapshot", cfg.Snapshot.Key))
	default:
		lg.Warn("Starting with an empty store", zap.Error(err))
	}

	return a, nil
}

func (a *App) openStorage(ctx context.Context, lg *zap.Logger, primary *file.Storage, cfg SnapshotConfig) (snapshot.Storage, error) {
	if cfg.MirrorDatabaseURL == "" {
		return primary, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.MirrorDatabaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "create db pool")
	}
	a.closers = append(a.closers, pool.Close)

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return nil, errors.Wrap(err, "run migrations")
	}

	lg.Info("Mirroring snapshots to PostgreSQL")
	return snapshot.Mirror(primary, postgres.NewSnapshotRepository(pool)), nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
