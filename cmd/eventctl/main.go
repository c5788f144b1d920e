package main

import (
	"log"
	"os"

	"github.com/SeaCloudHub/eventhandler/pkg/config"
	"github.com/SeaCloudHub/eventhandler/pkg/logger"
	"github.com/SeaCloudHub/eventhandler/pkg/sentry"
	sentrygo "github.com/getsentry/sentry-go"
)

func main() {
	applog, err := logger.NewAppLogger()
	if err != nil {
		log.Fatalf("cannot init logger: %v\n", err)
	}
	defer logger.Sync(applog)

	cfg, err := config.LoadConfig()
	if err != nil {
		applog.Fatal(err)
	}

	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		applog.Warnw("invalid log level, keeping info", "level", cfg.LogLevel)
	}

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		applog.Fatalf("cannot init sentry: %v", err)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	if err := newRootCmd(cfg, applog).Execute(); err != nil {
		applog.Errorw("command failed", "error", err)
		sentrygo.Flush(sentry.FlushTime)
		logger.Sync(applog)
		os.Exit(1)
	}
}
