// Package dialect captures everything about the target SQL engine that the
// pipeline must not hard-code: the driver, the catalog introspection query,
// the prompt rule block for generation, and the read-only deny-list. Both
// the deny-list and the rules are engine-specific and are derived per
// dialect rather than shared.
package dialect

import (
	"fmt"
	"strings"
)

type Dialect struct {
	// Name is the configuration value selecting this dialect.
	Name string
	// Driver is the database/sql driver name to open.
	Driver string
	// ColumnsQuery lists (table_name, column_name, data_type) for one owner,
	// ordered by table name then native column ordinal. It takes the owner
	// as its single bind parameter.
	ColumnsQuery string
	// Rules is the fixed rule block embedded in every generation prompt.
	Rules []string
	// DenyList holds the statement-leading keywords the safety gate rejects.
	DenyList []string
}

var Postgres = Dialect{
	Name:   "postgres",
	Driver: "pgx",
	ColumnsQuery: `
SELECT table_name, column_name, data_type
FROM information_schema.columns
WHERE table_schema = $1
ORDER BY table_name, ordinal_position`,
	Rules: []string{
		"Use PostgreSQL SQL syntax only.",
		"Use table aliases (employees e, departments d, jobs j).",
		"Always qualify columns with table aliases.",
		"Use LIMIT N to restrict the number of rows.",
		"For year extraction, use EXTRACT(YEAR FROM date_column).",
		"Use CURRENT_DATE for the current date.",
		"Return ONE valid PostgreSQL SELECT query only.",
		"NO explanation, NO markdown.",
		"SELECT queries ONLY (NO INSERT, UPDATE, DELETE, DROP, CREATE, ALTER).",
		"Write table and column names exactly as they appear in the schema.",
		"DO NOT end the SQL statement with a semicolon (;).",
	},
	DenyList: []string{
		"INSERT", "UPDATE", "DELETE", "DROP", "ALTER", "CREATE",
		"TRUNCATE", "GRANT", "REVOKE", "COMMENT", "MERGE", "CALL",
		"DO", "COPY", "LOCK", "SET", "LISTEN", "NOTIFY",
		"VACUUM", "ANALYZE", "REINDEX", "CLUSTER",
		"BEGIN", "COMMIT", "ROLLBACK", "SAVEPOINT",
		"PREPARE", "EXECUTE", "DEALLOCATE",
	},
}

var DuckDB = Dialect{
	Name:   "duckdb",
	Driver: "duckdb",
	ColumnsQuery: `
SELECT table_name, column_name, data_type
FROM information_schema.columns
WHERE table_schema = ?
ORDER BY table_name, ordinal_position`,
	Rules: []string{
		"Use DuckDB SQL syntax only.",
		"Use table aliases (employees e, departments d, jobs j).",
		"Always qualify columns with table aliases.",
		"Use LIMIT N to restrict the number of rows.",
		"For year extraction, use EXTRACT(YEAR FROM date_column).",
		"Use CURRENT_DATE for the current date.",
		"Return ONE valid DuckDB SELECT query only.",
		"NO explanation, NO markdown.",
		"SELECT queries ONLY (NO INSERT, UPDATE, DELETE, DROP, CREATE, ALTER).",
		"Write table and column names exactly as they appear in the schema.",
		"DO NOT end the SQL statement with a semicolon (;).",
	},
	DenyList: []string{
		"INSERT", "UPDATE", "DELETE", "DROP", "ALTER", "CREATE",
		"TRUNCATE", "ATTACH", "DETACH", "COPY", "EXPORT", "IMPORT",
		"INSTALL", "LOAD", "PRAGMA", "CALL", "SET",
		"VACUUM", "ANALYZE", "CHECKPOINT",
		"BEGIN", "COMMIT", "ROLLBACK",
	},
}

func ForName(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case Postgres.Name:
		return Postgres, nil
	case DuckDB.Name:
		return DuckDB, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported dialect: %q", name)
	}
}
