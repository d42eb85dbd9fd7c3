package app

import (
	"context"
	"fmt"
	"time"

	"career-insights/internal/config"
	"career-insights/internal/database"
	"career-insights/internal/database/migration"
	dbpostgres "career-insights/internal/database/postgres"
	"career-insights/internal/dataset"
	"career-insights/internal/domain/posting"
	"career-insights/internal/infrastructure/cache"
	"career-insights/internal/infrastructure/metrics"
	"career-insights/internal/loader"
	"career-insights/internal/repository"
	"career-insights/internal/usecase"
	"career-insights/migrations"

	"go.uber.org/zap"
)

type Container struct {
	Config    config.Config
	Logger    *zap.Logger
	DB        database.DB
	Cache     *cache.Redis
	Metrics   *metrics.Metrics
	Dataset   *posting.Dataset
	Dashboard *usecase.Dashboard
}

// NewContainer connects the configured record source, loads the dataset
// once and builds the dashboard over it.
func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics.New(),
		Cache:   cache.NewRedis(cfg.Redis, logger),
	}

	src, err := c.source(ctx)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	loadCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	var snapshots dataset.SnapshotCache
	if c.Cache.Available() {
		snapshots = c.Cache
	}

	ds, err := dataset.NewLoader(src, snapshots, logger).Load(loadCtx)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	c.Dataset = ds
	c.Metrics.SetDatasetRecords(ds.Len())
	c.Dashboard = usecase.NewDashboard(ds, cfg.View.MaxLimit, c.Metrics, logger)
	return c, nil
}

func (c *Container) source(ctx context.Context) (dataset.Source, error) {
	switch c.Config.Data.Source {
	case "", config.DataSourceCSV:
		return loader.NewCSVSource(c.Config.Data.CSVPath), nil
	case config.DataSourcePostgres:
		connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		db, err := dbpostgres.Connect(connCtx, c.Config.Database, c.Logger)
		if err != nil {
			return nil, err
		}
		c.DB = db

		runner := migration.Runner{FS: migrations.FS, Logger: c.Logger}
		if err := runner.Run(ctx, db); err != nil {
			return nil, err
		}
		return repository.NewPostgresPostingRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported data source %q", c.Config.Data.Source)
	}
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var firstErr error
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			firstErr = err
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
