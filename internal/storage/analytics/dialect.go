package analytics

import (
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

const (
	DriverDuckDB = "duckdb"
	DriverSQLite = "sqlite"
)

// dialect holds the per-engine SQL that is not portable.
type dialect struct {
	name       string
	listTables string
	classify   func(error) Kind
	// singleSchema engines only expose "main".
	singleSchema bool
}

var dialects = map[string]dialect{
	DriverDuckDB: {
		name: DriverDuckDB,
		listTables: `
	SELECT table_schema, table_name
	FROM information_schema.tables
	WHERE table_schema = ?
	ORDER BY table_name;`,
		classify: classifyDuckDB,
	},
	DriverSQLite: {
		name: DriverSQLite,
		listTables: `
	SELECT 'main', name
	FROM sqlite_master
	WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
	ORDER BY name;`,
		classify:     classifySQLite,
		singleSchema: true,
	},
}

func lookupDialect(driver string) (dialect, error) {
	if driver == "" {
		driver = DriverDuckDB
	}
	d, ok := dialects[strings.ToLower(driver)]
	if !ok {
		return dialect{}, fmt.Errorf("unsupported driver %q", driver)
	}
	return d, nil
}

// quoteIdent quotes a table or column name for both engines.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
