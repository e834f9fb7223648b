// Package schema introspects the target database's catalog once per
// session and renders it as the compact text block the SQL generation
// prompt consumes.
package schema

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/askdb/askdb/internal/dialect"
)

// Describe reads all columns of all tables owned by owner and renders one
// line per table as `TABLE (COL TYPE, COL TYPE, ...)`. Tables appear in
// first-seen catalog order, columns in the engine's native ordinal order.
// The rendered text is immutable for the session; a failure here is fatal
// to startup.
func Describe(ctx context.Context, db *sql.DB, d dialect.Dialect, owner string) (string, error) {
	rows, err := db.QueryContext(ctx, d.ColumnsQuery, owner)
	if err != nil {
		return "", fmt.Errorf("query %s catalog: %w", d.Name, err)
	}
	defer func() { _ = rows.Close() }()

	tableOrder := make([]string, 0)
	columnsByTable := make(map[string][]string)
	for rows.Next() {
		var table, column, dataType string
		if err := rows.Scan(&table, &column, &dataType); err != nil {
			return "", fmt.Errorf("scan catalog row: %w", err)
		}
		if _, seen := columnsByTable[table]; !seen {
			tableOrder = append(tableOrder, table)
		}
		columnsByTable[table] = append(columnsByTable[table], column+" "+dataType)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterate catalog rows: %w", err)
	}
	if len(tableOrder) == 0 {
		return "", fmt.Errorf("no tables found for owner %q", owner)
	}

	lines := make([]string, 0, len(tableOrder))
	for _, table := range tableOrder {
		lines = append(lines, fmt.Sprintf("%s (%s)", table, strings.Join(columnsByTable[table], ", ")))
	}
	return strings.Join(lines, "\n"), nil
}
