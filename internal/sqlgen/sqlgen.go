// Package sqlgen turns a normalized question into one candidate SQL
// statement via a schema-grounded prompt. It is a best-effort text-to-text
// transform: no parsing happens here, validation belongs to the safety gate
// and to actual execution.
package sqlgen

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/askdb/askdb/internal/dialect"
	"github.com/askdb/askdb/internal/llm"
	"github.com/askdb/askdb/internal/observability"
)

// keyTablesHint grounds the model on the HR domain's central tables even
// when the introspected schema is long.
const keyTablesHint = `- EMPLOYEES (EMPLOYEE_ID, FIRST_NAME, LAST_NAME, SALARY, DEPARTMENT_ID, JOB_ID, HIRE_DATE)
- DEPARTMENTS (DEPARTMENT_ID, DEPARTMENT_NAME, LOCATION_ID)
- JOBS (JOB_ID, JOB_TITLE, MIN_SALARY, MAX_SALARY)
- LOCATIONS (LOCATION_ID, CITY, COUNTRY_ID)
- COUNTRIES (COUNTRY_ID, COUNTRY_NAME, REGION_ID)
- REGIONS (REGION_ID, REGION_NAME)`

type Generator struct {
	client  llm.Client
	dialect dialect.Dialect
	logger  *slog.Logger
}

func NewGenerator(client llm.Client, d dialect.Dialect, logger *slog.Logger) *Generator {
	return &Generator{client: client, dialect: d, logger: logger}
}

// Generate asks the model for one SELECT statement grounded on the rendered
// schema and the dialect rule block. A model failure degrades to an empty
// statement, which the safety gate downstream rejects.
func (g *Generator) Generate(ctx context.Context, question, schemaText string) string {
	prompt := fmt.Sprintf(`You are an expert %s SQL assistant for the HR database.

SCHEMA:
%s

IMPORTANT TABLES:
%s

RULES:
%s

Question:
%s

SQL:
`, g.dialect.Name, schemaText, keyTablesHint, g.ruleBlock(), question)

	return g.completeAndClean(ctx, prompt)
}

// Repair asks for a corrected statement given the failed SQL and the raw
// database error.
func (g *Generator) Repair(ctx context.Context, failedSQL, dbError string) string {
	prompt := fmt.Sprintf(`You wrote this SQL:

%s

The %s database returned this error:
%s

Rewrite the query to fix the error.
Return ONLY valid %s SELECT SQL.
Do NOT use semicolons at the end.
`, failedSQL, g.dialect.Name, dbError, g.dialect.Name)

	return g.completeAndClean(ctx, prompt)
}

func (g *Generator) ruleBlock() string {
	lines := make([]string, 0, len(g.dialect.Rules))
	for _, rule := range g.dialect.Rules {
		lines = append(lines, "- "+rule)
	}
	return strings.Join(lines, "\n")
}

func (g *Generator) completeAndClean(ctx context.Context, prompt string) string {
	observability.IncrementGenerationCall()
	raw, err := g.client.Complete(ctx, prompt)
	if err != nil {
		if g.logger != nil {
			g.logger.WarnContext(ctx, "sql generation call failed", slog.Any("error", err))
		}
		return ""
	}
	return CleanStatement(raw)
}

// CleanStatement strips markdown fences, stray backticks, and trailing
// statement terminators from raw model output.
func CleanStatement(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```sql")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(trimmed, "```")
	}
	trimmed = strings.Trim(trimmed, "`")
	trimmed = strings.TrimSpace(trimmed)
	trimmed = strings.TrimRight(trimmed, ";")
	return strings.TrimSpace(trimmed)
}
