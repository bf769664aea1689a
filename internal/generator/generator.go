// Package generator populates the analytical database file with synthetic rows.
package generator

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"time"

	"github.com/hetulpatel/mydata/internal/cache"
	"github.com/hetulpatel/mydata/internal/dataset"
	"github.com/hetulpatel/mydata/internal/logging"
	"github.com/hetulpatel/mydata/internal/queue"
	"github.com/hetulpatel/mydata/internal/report"
	"github.com/hetulpatel/mydata/internal/storage/analytics"
)

// Config controls a generator run. Zero values fall back to the defaults.
type Config struct {
	Path       string
	Driver     string
	Categories []string
	Points     int
	Seed       int64
	Seeded     bool
}

type runner struct {
	publisher  queue.MessageWriter
	reports    cache.ReportCache
	now        func() time.Time
	synthesize func(src rand.Source, categories []string, points int) []dataset.Row
}

type Option func(*runner)

// WithPublisher publishes the run report after commit.
func WithPublisher(w queue.MessageWriter) Option {
	return func(r *runner) { r.publisher = w }
}

// WithReportCache records the run report as the latest for the path.
func WithReportCache(c cache.ReportCache) Option {
	return func(r *runner) { r.reports = c }
}

// WithClock overrides the report timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *runner) { r.now = now }
}

func (c Config) withDefaults() Config {
	if c.Path == "" {
		c.Path = analytics.DefaultPath
	}
	if c.Driver == "" {
		c.Driver = analytics.DriverDuckDB
	}
	if len(c.Categories) == 0 {
		c.Categories = dataset.DefaultCategories
	}
	if c.Points <= 0 {
		c.Points = dataset.PointsPerCategory
	}
	return c
}

// Run creates the data table at cfg.Path, fills it and prints the
// per-category counts to out. It fails if the table already exists. The
// connection is released on every return path.
func Run(ctx context.Context, cfg Config, out io.Writer, opts ...Option) (*report.Report, error) {
	cfg = cfg.withDefaults()
	rn := &runner{now: time.Now, synthesize: dataset.Synthesize}
	for _, opt := range opts {
		opt(rn)
	}

	store, err := analytics.Open(cfg.Path, cfg.Driver)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	logging.Debugf("[generator] opened %s (%s)", store.Path(), store.Driver())

	if err := store.CreateDataTable(ctx); err != nil {
		return nil, err
	}

	rows := rn.synthesize(dataset.NewSource(cfg.Seed, cfg.Seeded), cfg.Categories, cfg.Points)
	if err := store.InsertRows(ctx, rows); err != nil {
		return nil, err
	}

	counts, err := store.CategoryCounts(ctx)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(out, FormatCounts(counts))

	if err := store.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %w", cfg.Path, err)
	}
	fmt.Fprintf(out, "✅ %s created successfully!\n", filepath.Base(cfg.Path))

	rep := report.New(cfg.Path, cfg.Driver, analytics.DataTable, rows, counts, rn.now())
	rep.Seeded, rep.Seed = cfg.Seeded, cfg.Seed
	logging.Infof("[generator] committed %d rows into %s (run %s)", rep.Total(), analytics.DataTable, rep.RunID)
	rn.share(ctx, rep)
	return rep, nil
}

// share hands the report to the optional sinks. The data is already
// committed, so failures here are only logged.
func (rn *runner) share(ctx context.Context, rep *report.Report) {
	if rn.publisher != nil {
		if err := queue.PublishReport(ctx, rn.publisher, rep); err != nil {
			logging.Errorf("[generator] publish report %s: %v", rep.RunID, err)
		} else {
			logging.Debugf("[generator] published report %s", rep.RunID)
		}
	}
	if rn.reports != nil {
		if err := rn.reports.Store(ctx, rep); err != nil {
			logging.Errorf("[generator] cache report %s: %v", rep.RunID, err)
		}
	}
}

// FormatCounts renders counts as a list of tuples, e.g. [('A', 20), ('B', 20)].
func FormatCounts(counts []analytics.CategoryCount) string {
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = analytics.Record{c.Category, c.Count}.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
