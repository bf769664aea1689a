package inspector

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hetulpatel/mydata/internal/generator"
	"github.com/hetulpatel/mydata/internal/report"
	"github.com/hetulpatel/mydata/internal/storage/analytics"
)

var drivers = []string{analytics.DriverDuckDB, analytics.DriverSQLite}

type fakeCache struct {
	rep *report.Report
	err error
}

func (f *fakeCache) Latest(context.Context, string) (*report.Report, bool, error) {
	return f.rep, f.rep != nil, f.err
}

func (f *fakeCache) Store(context.Context, *report.Report) error { return nil }

func (f *fakeCache) Close() error { return nil }

func TestRunAfterGenerate(t *testing.T) {
	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "data", "mydata.db")
			_, err := generator.Run(context.Background(), generator.Config{Path: path, Driver: driver}, &bytes.Buffer{})
			require.NoError(t, err)

			var out bytes.Buffer
			require.NoError(t, Run(context.Background(), Config{Path: path, Driver: driver}, &out))

			lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
			require.Equal(t, "Tables in mydata.db:", lines[0])
			require.Equal(t, "main.data", lines[1])
			require.Equal(t, "", lines[2])
			require.Equal(t, "First 10 rows from data:", lines[3])
			require.Len(t, lines[4:], 10)
			require.True(t, strings.HasPrefix(lines[4], "('A', 1, "), lines[4])
			require.True(t, strings.HasPrefix(lines[13], "('A', 10, "), lines[13])
		})
	}
}

func TestRunMissingTable(t *testing.T) {
	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "empty.db")
			store, err := analytics.Open(path, driver)
			require.NoError(t, err)
			require.NoError(t, store.CreateDataTable(context.Background()))
			require.NoError(t, store.DropTable(context.Background(), analytics.DataTable))
			require.NoError(t, store.Close())

			var out bytes.Buffer
			require.NoError(t, Run(context.Background(), Config{Path: path, Driver: driver}, &out))
			require.Equal(t, "Tables in empty.db:\n\nTable 'data' does not exist in "+path+".\n", out.String())
		})
	}
}

func TestRunMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.db")
	err := Run(context.Background(), Config{Path: path, Driver: analytics.DriverSQLite}, &bytes.Buffer{})
	require.ErrorIs(t, err, os.ErrNotExist)
	_, statErr := os.Stat(path)
	require.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestRunLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mydata.db")
	_, err := generator.Run(context.Background(), generator.Config{Path: path, Driver: analytics.DriverSQLite, Categories: []string{"B"}, Points: 2}, &bytes.Buffer{})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), Config{Path: path, Driver: analytics.DriverSQLite, Limit: 5}, &out))
	require.Contains(t, out.String(), "First 5 rows from data:\n('B', 1, ")
	require.Equal(t, 2, strings.Count(out.String(), "('B', "))
}

func TestRunPrintsCachedReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mydata.db")
	rep, err := generator.Run(context.Background(), generator.Config{Path: path, Driver: analytics.DriverSQLite}, &bytes.Buffer{},
		generator.WithClock(func() time.Time { return time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC) }))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), Config{Path: path, Driver: analytics.DriverSQLite}, &out, WithReportCache(&fakeCache{rep: rep})))
	require.Contains(t, out.String(), "Last generation: run="+rep.RunID+" rows=60 checksum="+rep.Checksum+" at=2026-10-19T00:00:00Z")

	out.Reset()
	require.NoError(t, Run(context.Background(), Config{Path: path, Driver: analytics.DriverSQLite}, &out, WithReportCache(&fakeCache{err: errors.New("down")})))
	require.NotContains(t, out.String(), "Last generation")
}
