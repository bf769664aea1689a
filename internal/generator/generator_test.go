package generator

import (
	"bytes"
	"context"
	"errors"
	"math/rand/v2"
	"path/filepath"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"github.com/hetulpatel/mydata/internal/dataset"
	"github.com/hetulpatel/mydata/internal/report"
	"github.com/hetulpatel/mydata/internal/storage/analytics"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return f.err
}

type fakeCache struct {
	stored []*report.Report
}

func (f *fakeCache) Latest(context.Context, string) (*report.Report, bool, error) {
	return nil, false, nil
}

func (f *fakeCache) Store(_ context.Context, r *report.Report) error {
	f.stored = append(f.stored, r)
	return nil
}

func (f *fakeCache) Close() error { return nil }

func tempPath(t *testing.T) string {
	return filepath.Join(t.TempDir(), "data", "mydata.db")
}

func TestRunFreshPath(t *testing.T) {
	for _, driver := range []string{analytics.DriverDuckDB, analytics.DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			path := tempPath(t)
			var out bytes.Buffer
			rep, err := Run(context.Background(), Config{Path: path, Driver: driver}, &out)
			require.NoError(t, err)
			require.Equal(t, "[('A', 20), ('B', 20), ('C', 20)]\n✅ mydata.db created successfully!\n", out.String())
			require.Equal(t, 60, rep.Rows)
			require.EqualValues(t, 60, rep.Total())

			store, err := analytics.OpenExisting(path, driver)
			require.NoError(t, err)
			defer store.Close()
			counts, err := store.CategoryCounts(context.Background())
			require.NoError(t, err)
			require.Equal(t, []analytics.CategoryCount{{Category: "A", Count: 20}, {Category: "B", Count: 20}, {Category: "C", Count: 20}}, counts)
		})
	}
}

func TestRunTwiceFails(t *testing.T) {
	for _, driver := range []string{analytics.DriverDuckDB, analytics.DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			cfg := Config{Path: tempPath(t), Driver: driver}
			_, err := Run(context.Background(), cfg, &bytes.Buffer{})
			require.NoError(t, err)

			var out bytes.Buffer
			_, err = Run(context.Background(), cfg, &out)
			require.ErrorIs(t, err, analytics.ErrRelationExists)
			require.Empty(t, out.String())

			requireWritable(t, cfg.Path, driver)
		})
	}
}

// requireWritable reopens path after a failed run and replaces the data table.
func requireWritable(t *testing.T, path, driver string) {
	t.Helper()
	ctx := context.Background()
	store, err := analytics.Open(path, driver)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.DropTable(ctx, analytics.DataTable))
	require.NoError(t, store.CreateDataTable(ctx))
	require.NoError(t, store.InsertRows(ctx, []dataset.Row{{Category: "A", X: 1, Y: 6.2}}))
	counts, err := store.CategoryCounts(ctx)
	require.NoError(t, err)
	require.Equal(t, []analytics.CategoryCount{{Category: "A", Count: 1}}, counts)
}

func TestRunInsertFailureReleasesConnection(t *testing.T) {
	for _, driver := range []string{analytics.DriverDuckDB, analytics.DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			path := tempPath(t)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			// Cancelling between table creation and the insert makes
			// InsertRows fail after the connection is open.
			cancelBeforeInsert := func(r *runner) {
				r.synthesize = func(src rand.Source, categories []string, points int) []dataset.Row {
					cancel()
					return dataset.Synthesize(src, categories, points)
				}
			}

			var out bytes.Buffer
			rep, err := Run(ctx, Config{Path: path, Driver: driver}, &out, cancelBeforeInsert)
			require.ErrorIs(t, err, context.Canceled)
			require.Nil(t, rep)
			require.Empty(t, out.String())

			requireWritable(t, path, driver)
		})
	}
}

func TestRunSeededIsReproducible(t *testing.T) {
	a, err := Run(context.Background(), Config{Path: tempPath(t), Driver: analytics.DriverSQLite, Seed: 11, Seeded: true}, &bytes.Buffer{})
	require.NoError(t, err)
	b, err := Run(context.Background(), Config{Path: tempPath(t), Driver: analytics.DriverSQLite, Seed: 11, Seeded: true}, &bytes.Buffer{})
	require.NoError(t, err)
	require.Equal(t, a.Checksum, b.Checksum)
	require.NotEqual(t, a.RunID, b.RunID)
	require.True(t, a.Seeded)
}

func TestRunSharesReport(t *testing.T) {
	w := &fakeWriter{}
	c := &fakeCache{}
	at := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	rep, err := Run(context.Background(), Config{Path: tempPath(t), Driver: analytics.DriverSQLite, Categories: []string{"A", "B"}, Points: 4},
		&bytes.Buffer{}, WithPublisher(w), WithReportCache(c), WithClock(func() time.Time { return at }))
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)
	require.Equal(t, rep.RunID, string(w.msgs[0].Key))
	require.Equal(t, []*report.Report{rep}, c.stored)
	require.Equal(t, at, rep.GeneratedAt)
	require.EqualValues(t, 8, rep.Total())
}

func TestRunPublishFailureIsNotFatal(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	_, err := Run(context.Background(), Config{Path: tempPath(t), Driver: analytics.DriverSQLite}, &bytes.Buffer{}, WithPublisher(w))
	require.NoError(t, err)
}

func TestFormatCounts(t *testing.T) {
	require.Equal(t, "[]", FormatCounts(nil))
	require.Equal(t, "[('A', 2)]", FormatCounts([]analytics.CategoryCount{{Category: "A", Count: 2}}))
}
