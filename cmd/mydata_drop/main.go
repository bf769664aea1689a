package main

import (
	"context"
	"log"

	"github.com/hetulpatel/mydata/internal/config"
	"github.com/hetulpatel/mydata/internal/logging"
	"github.com/hetulpatel/mydata/internal/storage/analytics"
)

func main() {
	cfg := config.Load()
	logging.InitFromEnv()
	store, err := analytics.OpenExisting(cfg.Path, cfg.Driver)
	if err != nil {
		log.Fatalf("open %s: %v", cfg.Driver, err)
	}
	defer store.Close()

	if err := store.DropTable(context.Background(), cfg.Table); err != nil {
		log.Fatalf("drop table: %v", err)
	}
	logging.Infof("[drop] table %s dropped at %s", cfg.Table, cfg.Path)
}
