// Command mydata_series prints every category's (x, y) series as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/hetulpatel/mydata/internal/config"
	"github.com/hetulpatel/mydata/internal/logging"
	"github.com/hetulpatel/mydata/internal/storage/analytics"
)

type series struct {
	Category string            `json:"category"`
	Points   []analytics.Point `json:"points"`
}

func main() {
	cfg := config.Load()
	logging.InitFromEnv()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := analytics.OpenExisting(cfg.Path, cfg.Driver)
	if err != nil {
		log.Fatalf("open %s: %v", cfg.Driver, err)
	}
	defer store.Close()

	cats, err := store.Categories(ctx, cfg.Table)
	if analytics.IsRelationNotFound(err) {
		fmt.Printf("Table '%s' does not exist in %s.\n", cfg.Table, cfg.Path)
		return
	}
	if err != nil {
		log.Fatalf("categories: %v", err)
	}

	out := make([]series, 0, len(cats))
	for _, c := range cats {
		points, err := store.Series(ctx, cfg.Table, c)
		if err != nil {
			log.Fatalf("series %s: %v", c, err)
		}
		out = append(out, series{Category: c, Points: points})
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Fatalf("encode series: %v", err)
	}
	fmt.Println(string(b))
}
