package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"career-insights/internal/config"
	"career-insights/internal/database/migration"
	dbpostgres "career-insights/internal/database/postgres"
	"career-insights/internal/loader"
	"career-insights/internal/pkg/logger"
	"career-insights/internal/repository"
	"career-insights/migrations"

	goerrors "github.com/go-errors/errors"
	"go.uber.org/zap"
)

func main() {
	csvPath := flag.String("csv", "cleaned_data.csv", "path to the cleaned job postings CSV")
	truncate := flag.Bool("truncate", false, "delete existing postings before importing")
	flag.Parse()

	cfg, err := config.LoadImporter()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.App, cfg.Log)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	if err := run(lg, cfg, *csvPath, *truncate); err != nil {
		fields := []zap.Field{zap.Error(err)}
		var ge *goerrors.Error
		if errors.As(err, &ge) {
			fields = append(fields, zap.String("stack", string(ge.Stack())))
		}
		lg.Error("[Importer] import failed", fields...)
		_ = lg.Sync()
		os.Exit(1)
	}
}

func run(lg *zap.Logger, cfg config.Config, csvPath string, truncate bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	f, err := os.Open(csvPath)
	if err != nil {
		return err
	}
	defer f.Close()

	records, err := loader.ReadCSV(f)
	if err != nil {
		return err
	}
	lg.Info("[Importer] parsed CSV", zap.String("path", csvPath), zap.Int("records", len(records)))

	db, err := dbpostgres.Connect(ctx, cfg.Database, lg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	runner := migration.Runner{FS: migrations.FS, Logger: lg}
	if err := runner.Run(ctx, db); err != nil {
		return err
	}

	n, err := repository.NewPostgresPostingRepository(db).Import(ctx, records, truncate)
	if err != nil {
		return err
	}

	lg.Info("[Importer] import finished", zap.Int64("inserted", n), zap.Bool("truncated", truncate))
	return nil
}
