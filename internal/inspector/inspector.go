// Package inspector reopens the analytical database file and prints its
// catalog and a sample of the data table.
package inspector

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/hetulpatel/mydata/internal/cache"
	"github.com/hetulpatel/mydata/internal/logging"
	"github.com/hetulpatel/mydata/internal/storage/analytics"
)

type Config struct {
	Path   string
	Driver string
	Schema string
	Table  string
	Limit  int
}

func (c Config) withDefaults() Config {
	if c.Path == "" {
		c.Path = analytics.DefaultPath
	}
	if c.Driver == "" {
		c.Driver = analytics.DriverDuckDB
	}
	if c.Schema == "" {
		c.Schema = analytics.DefaultSchema
	}
	if c.Table == "" {
		c.Table = analytics.DataTable
	}
	if c.Limit <= 0 {
		c.Limit = 10
	}
	return c
}

type runner struct {
	reports cache.ReportCache
}

type Option func(*runner)

// WithReportCache prints the last cached generation report for the path.
func WithReportCache(c cache.ReportCache) Option {
	return func(r *runner) { r.reports = c }
}

// Run lists the tables of cfg.Schema and prints up to cfg.Limit rows of
// cfg.Table. A missing table is reported on out and is not an error; a
// missing database file is.
func Run(ctx context.Context, cfg Config, out io.Writer, opts ...Option) error {
	cfg = cfg.withDefaults()
	rn := &runner{}
	for _, opt := range opts {
		opt(rn)
	}

	store, err := analytics.OpenExisting(cfg.Path, cfg.Driver)
	if err != nil {
		return err
	}
	defer store.Close()

	name := filepath.Base(cfg.Path)
	tables, err := store.ListTables(ctx, cfg.Schema)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Tables in %s:\n", name)
	for _, t := range tables {
		fmt.Fprintln(out, t.String())
	}

	rn.printLastReport(ctx, cfg.Path, out)

	rows, err := store.SampleRows(ctx, cfg.Table, cfg.Limit)
	if analytics.IsRelationNotFound(err) {
		logging.Debugf("[inspector] %v", err)
		fmt.Fprintf(out, "\nTable '%s' does not exist in %s.\n", cfg.Table, cfg.Path)
		return store.Close()
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nFirst %d rows from %s:\n", cfg.Limit, cfg.Table)
	for _, r := range rows {
		fmt.Fprintln(out, r.String())
	}
	return store.Close()
}

func (rn *runner) printLastReport(ctx context.Context, path string, out io.Writer) {
	if rn.reports == nil {
		return
	}
	rep, ok, err := rn.reports.Latest(ctx, path)
	if err != nil {
		logging.Errorf("[inspector] read cached report: %v", err)
		return
	}
	if !ok {
		return
	}
	fmt.Fprintf(out, "\nLast generation: run=%s rows=%d checksum=%s at=%s\n",
		rep.RunID, rep.Rows, rep.Checksum, rep.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"))
}
