// Command petsd serves the pet directory over HTTP.
//
// Startup is strictly sequenced: load config, resolve the database
// credentials from Secret Manager, construct the connection pool, then
// start accepting connections. Any failure along the way aborts the
// process — there is no lazy initialization and no degraded mode.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cloudpets/petsvc/internal/config"
	"github.com/cloudpets/petsvc/internal/database"
	"github.com/cloudpets/petsvc/internal/database/mysql"
	"github.com/cloudpets/petsvc/internal/logger"
	"github.com/cloudpets/petsvc/internal/metrics"
	"github.com/cloudpets/petsvc/internal/pets"
	"github.com/cloudpets/petsvc/internal/secrets"
	"github.com/cloudpets/petsvc/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "petsd: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	if err := run(context.Background(), cfg, log); err != nil {
		log.Fatal("petsd failed", err)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	resolver, closeResolver, err := secrets.NewGoogleResolver(ctx, cfg.Secrets.Project)
	if err != nil {
		return err
	}
	creds, err := resolver.Resolve(ctx)
	_ = closeResolver()
	if err != nil {
		return err
	}
	log.With("component", "secrets").Infof("credentials resolved for %s", creds.ConnectionName)

	db, err := mysql.New(ctx, &database.Config{
		User:       creds.User,
		Password:   creds.Password,
		Database:   creds.Database,
		SocketPath: filepath.Join(cfg.Database.SocketDir, creds.ConnectionName),
	})
	if err != nil {
		return err
	}
	defer db.Close()
	log.With("component", "database").Info("connection pool ready")

	prometheus.MustRegister(metrics.NewPoolCollector(db))

	router := server.NewRouter(log, pets.NewStore(db), db)
	return server.New(cfg.HTTP.Addr, router, log).ListenAndServe(ctx)
}
