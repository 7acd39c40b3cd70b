// Command console runs the TrendRadar configuration console server.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/trend-ops/trendradar-console/internal/app"
)

func main() {
	configPath := flag.String("config", "", "path to the configuration file")
	migrate := flag.Bool("migrate", false, "run database migrations and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := app.Options{ConfigPath: *configPath}

	if *migrate {
		if errMigrate := app.Migrate(ctx, opts); errMigrate != nil {
			log.WithError(errMigrate).Error("migration failed")
			os.Exit(1)
		}
		log.Info("migrations applied")
		return
	}

	if errRun := app.RunServer(ctx, opts); errRun != nil {
		log.WithError(errRun).Error("server exited")
		os.Exit(1)
	}
}
