package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"hawker/cmd"
	"hawker/internal/adapters/out/postgres"
	"hawker/internal/migrations"
	"hawker/internal/pkg/logger"
	"hawker/internal/telemetry"

	"github.com/golang-migrate/migrate/v4"
)

const usage = "usage: migrate <up|down|version|seed>"

func main() {
	log := logger.New(logger.Options{ServiceName: "hawker-migrate", Format: "console"})
	ctx := context.Background()

	flag.Parse()
	args := flag.Args()
	if len(args) < 1 {
		log.Error(ctx, usage, nil)
		os.Exit(1)
	}

	dbConfig, err := cmd.LoadDBConfig()
	if err != nil {
		log.Error(ctx, "failed to load database config", err)
		os.Exit(1)
	}
	if dbConfig.Driver != postgres.DriverPostgres {
		log.Error(ctx, "migrations only run against postgres", fmt.Errorf("driver %q", dbConfig.Driver))
		os.Exit(1)
	}

	if args[0] == "seed" {
		if err = seed(ctx, dbConfig, log); err != nil {
			log.Error(ctx, "seed failed", err)
			os.Exit(1)
		}
		log.Info(ctx, "demo data seeded")
		return
	}

	sqlDB, err := telemetry.OpenDB(postgres.DriverPostgres, dbConfig.DSN)
	if err != nil {
		log.Error(ctx, "failed to open database", err)
		os.Exit(1)
	}

	m, err := migrations.New(sqlDB)
	if err != nil {
		log.Error(ctx, "failed to create migrate instance", err)
		os.Exit(1)
	}
	defer func() { _, _ = m.Close() }()

	switch args[0] {
	case "up":
		if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Error(ctx, "migration up failed", err)
			os.Exit(1)
		}
		log.Info(ctx, "migrations applied")
	case "down":
		if err = m.Steps(-1); err != nil {
			log.Error(ctx, "migration down failed", err)
			os.Exit(1)
		}
		log.Info(ctx, "rolled back one migration")
	case "version":
		version, dirty, vErr := m.Version()
		if vErr != nil && !errors.Is(vErr, migrate.ErrNilVersion) {
			log.Error(ctx, "failed to read version", vErr)
			os.Exit(1)
		}
		log.Info(ctx, fmt.Sprintf("version=%d dirty=%t", version, dirty))
	default:
		log.Error(ctx, usage, fmt.Errorf("unknown command %q", args[0]))
		os.Exit(1)
	}
}
