package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/hetulpatel/mydata/internal/dataset"
	"github.com/hetulpatel/mydata/internal/hashutil"
	"github.com/hetulpatel/mydata/internal/storage/analytics"
)

// Report summarises one generator run. It is the payload placed on Kafka and
// cached in Redis.
type Report struct {
	RunID       string                    `json:"run_id"`
	Path        string                    `json:"path"`
	Driver      string                    `json:"driver"`
	Table       string                    `json:"table"`
	Counts      []analytics.CategoryCount `json:"counts"`
	Rows        int                       `json:"rows"`
	Checksum    string                    `json:"checksum"`
	Seeded      bool                      `json:"seeded"`
	Seed        int64                     `json:"seed,omitempty"`
	GeneratedAt time.Time                 `json:"generated_at"`
}

// New builds a report for rows that were committed to path.
func New(path, driver, table string, rows []dataset.Row, counts []analytics.CategoryCount, generatedAt time.Time) *Report {
	return &Report{
		RunID:       uuid.NewString(),
		Path:        path,
		Driver:      driver,
		Table:       table,
		Counts:      counts,
		Rows:        len(rows),
		Checksum:    hashutil.HashRows(rows),
		GeneratedAt: generatedAt.UTC(),
	}
}

// Total sums the per-category counts.
func (r *Report) Total() int64 {
	if r == nil {
		return 0
	}
	var n int64
	for _, c := range r.Counts {
		n += c.Count
	}
	return n
}
