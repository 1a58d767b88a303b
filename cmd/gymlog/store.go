package main

import (
	"context"
	"fmt"

	"github.com/2beens/gymlog/internal/config"
	"github.com/2beens/gymlog/internal/db"
	"github.com/2beens/gymlog/internal/gymlog/repo"
	"github.com/2beens/gymlog/internal/gymlog/service"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

type gymLogStore interface {
	service.Store
	EnsureSchema(ctx context.Context) error
}

// openStore connects to the configured backend. Returned collectors expose
// the backend's own metrics.
func (a *app) openStore(ctx context.Context) ([]prometheus.Collector, error) {
	cfg := a.cfg
	switch cfg.DBDriver {
	case config.DBDriverPostgres:
		dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDBName,
			DBUser:         cfg.PostgresUser,
			DBPassword:     cfg.PostgresPassword,
			TracingEnabled: cfg.TracingEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}
		a.closers = append(a.closers, dbPool.Close)

		if err := dbPool.Ping(ctx); err != nil {
			log.Warnf("failed to ping db: %s", err)
		}

		a.store = repo.NewPsqlStore(dbPool, cfg.PasswordHashCost)
		return []prometheus.Collector{
			pgxpoolprometheus.NewCollector(dbPool, map[string]string{"db_name": cfg.PostgresDBName}),
		}, nil

	case config.DBDriverSqlite:
		sqliteDB, err := db.OpenSqlite(cfg.SqlitePath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() {
			if err := sqliteDB.Close(); err != nil {
				log.Errorf("close sqlite db: %s", err)
			}
		})

		store := repo.NewSqliteStore(sqliteDB, cfg.PasswordHashCost)
		// local file, nobody else manages its schema
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		a.store = store
		return []prometheus.Collector{
			prometheus.NewGaugeFunc(prometheus.GaugeOpts{
				Namespace: "gymlog",
				Subsystem: "sqlite",
				Name:      "open_connections",
				Help:      "Number of established sqlite connections",
			}, func() float64 {
				return float64(sqliteDB.Stats().OpenConnections)
			}),
		}, nil

	default:
		return nil, fmt.Errorf("unknown db driver: %s", cfg.DBDriver)
	}
}
