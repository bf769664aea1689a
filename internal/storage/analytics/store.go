package analytics

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hetulpatel/mydata/internal/dataset"
)

const (
	DefaultPath   = "data/mydata.db"
	DefaultSchema = "main"
	DataTable     = "data"
)

const createDataTableSQL = `
CREATE TABLE data (
	category TEXT,
	x_value INTEGER,
	y_value DOUBLE
);
`

const insertRowSQL = `INSERT INTO data VALUES (?, ?, ?)`

// Store wraps a connection to the embedded analytical database file.
type Store struct {
	path    string
	dialect dialect
	db      *sql.DB
}

// TableRef names a table in the catalog.
type TableRef struct {
	Schema string
	Name   string
}

func (t TableRef) String() string {
	return t.Schema + "." + t.Name
}

// CategoryCount is one row of the per-category verification query.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// Point is one (x, y) pair of a category series.
type Point struct {
	X int64   `json:"x"`
	Y float64 `json:"y"`
}

// Open creates (if needed) and opens the database file with the given driver.
func Open(path, driver string) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	d, err := lookupDialect(driver)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}
	db, err := sql.Open(d.name, path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.name, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect %s at %s: %w", d.name, path, err)
	}
	return &Store{path: path, dialect: d, db: db}, nil
}

// OpenExisting opens a database file that must already exist.
func OpenExisting(path, driver string) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("database file %s: %w", path, err)
	}
	return Open(path, driver)
}

// Path returns the path backing the store.
func (s *Store) Path() string {
	return s.path
}

// Driver returns the engine name.
func (s *Store) Driver() string {
	return s.dialect.name
}

// Close closes the DB. Calling it more than once is harmless.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// CreateDataTable creates the data table. It is not idempotent: a second call
// against the same file fails with ErrRelationExists.
func (s *Store) CreateDataTable(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, createDataTableSQL)
	return wrap(s.dialect, "create table", DataTable, err)
}

// DropTable removes table if it exists.
func (s *Store) DropTable(ctx context.Context, table string) error {
	_, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(table)+";")
	return wrap(s.dialect, "drop table", table, err)
}

// InsertRows writes rows in a single transaction.
func (s *Store) InsertRows(ctx context.Context, rows []dataset.Row) error {
	if len(rows) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, insertRowSQL)
	if err != nil {
		tx.Rollback()
		return wrap(s.dialect, "prepare insert", DataTable, err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, r.Category, r.X, r.Y); err != nil {
			tx.Rollback()
			return wrap(s.dialect, fmt.Sprintf("insert row %s/%d into", r.Category, r.X), DataTable, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// CategoryCounts returns the number of rows per category, ordered by label.
func (s *Store) CategoryCounts(ctx context.Context) ([]CategoryCount, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT category, COUNT(*) FROM data GROUP BY category ORDER BY category`)
	if err != nil {
		return nil, wrap(s.dialect, "count", DataTable, err)
	}
	defer rows.Close()

	var out []CategoryCount
	for rows.Next() {
		var c CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListTables returns the tables registered under schema.
func (s *Store) ListTables(ctx context.Context, schema string) ([]TableRef, error) {
	if schema == "" {
		schema = DefaultSchema
	}
	var (
		rows *sql.Rows
		err  error
	)
	if s.dialect.singleSchema {
		if schema != DefaultSchema {
			return nil, nil
		}
		rows, err = s.db.QueryContext(ctx, s.dialect.listTables)
	} else {
		rows, err = s.db.QueryContext(ctx, s.dialect.listTables, schema)
	}
	if err != nil {
		return nil, wrap(s.dialect, "list tables", schema, err)
	}
	defer rows.Close()

	var out []TableRef
	for rows.Next() {
		var t TableRef
		if err := rows.Scan(&t.Schema, &t.Name); err != nil {
			return nil, fmt.Errorf("scan table: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SampleRows returns up to limit rows of table in storage order.
func (s *Store) SampleRows(ctx context.Context, table string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 10
	}
	query := fmt.Sprintf("SELECT * FROM %s LIMIT %d;", quoteIdent(table), limit)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrap(s.dialect, "select from", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}
	var out []Record
	for rows.Next() {
		rec := make(Record, len(cols))
		ptrs := make([]any, len(cols))
		for i := range rec {
			ptrs[i] = &rec[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(s.dialect, "select from", table, err)
	}
	return out, nil
}

// Categories returns the distinct category labels of table.
func (s *Store) Categories(ctx context.Context, table string) ([]string, error) {
	query := fmt.Sprintf("SELECT DISTINCT category FROM %s ORDER BY category;", quoteIdent(table))
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrap(s.dialect, "categories of", table, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Series returns the (x, y) points of one category ordered by x.
func (s *Store) Series(ctx context.Context, table, category string) ([]Point, error) {
	query := fmt.Sprintf("SELECT x_value, y_value FROM %s WHERE category = ? ORDER BY x_value;", quoteIdent(table))
	rows, err := s.db.QueryContext(ctx, query, category)
	if err != nil {
		return nil, wrap(s.dialect, "series of", table, err)
	}
	defer rows.Close()

	var out []Point
	for rows.Next() {
		var p Point
		if err := rows.Scan(&p.X, &p.Y); err != nil {
			return nil, fmt.Errorf("scan point: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// IsRelationNotFound reports whether err means the referenced table is absent.
func IsRelationNotFound(err error) bool {
	return errors.Is(err, ErrRelationNotFound)
}
