package main

import (
	"context"
	"log"
	"os"

	"github.com/hetulpatel/mydata/internal/config"
	"github.com/hetulpatel/mydata/internal/inspector"
	"github.com/hetulpatel/mydata/internal/logging"
	"github.com/hetulpatel/mydata/internal/sinks"
)

func main() {
	cfg := config.Load()
	logging.InitFromEnv()
	ctx := context.Background()

	// The inspector only reads the cache; skip broker setup.
	cfg.KafkaBrokers = nil
	out, err := sinks.Open(ctx, cfg, sinks.DefaultBrokerWait)
	if err != nil {
		log.Fatalf("open report sinks: %v", err)
	}
	defer out.Close()

	err = inspector.Run(ctx, inspector.Config{
		Path:   cfg.Path,
		Driver: cfg.Driver,
		Schema: cfg.Schema,
		Table:  cfg.Table,
		Limit:  cfg.SampleLimit,
	}, os.Stdout, out.InspectorOptions()...)
	if err != nil {
		log.Fatalf("inspect %s: %v", cfg.Path, err)
	}
}
