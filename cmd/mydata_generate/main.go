package main

import (
	"context"
	"log"
	"os"

	"github.com/hetulpatel/mydata/internal/config"
	"github.com/hetulpatel/mydata/internal/generator"
	"github.com/hetulpatel/mydata/internal/logging"
	"github.com/hetulpatel/mydata/internal/sinks"
)

func main() {
	cfg := config.Load()
	logging.InitFromEnv()
	ctx := context.Background()

	out, err := sinks.Open(ctx, cfg, sinks.DefaultBrokerWait)
	if err != nil {
		log.Fatalf("open report sinks: %v", err)
	}
	defer out.Close()

	_, err = generator.Run(ctx, generator.Config{
		Path:   cfg.Path,
		Driver: cfg.Driver,
		Points: cfg.Points,
		Seed:   cfg.Seed,
		Seeded: cfg.Seeded,
	}, os.Stdout, out.GeneratorOptions()...)
	if err != nil {
		log.Fatalf("generate %s: %v", cfg.Path, err)
	}
}
