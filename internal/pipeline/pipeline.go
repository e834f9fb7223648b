// Package pipeline runs one question end to end: normalize, generate SQL,
// gate it to read-only, execute with one bounded repair retry, and
// normalize the result rows for transport.
package pipeline

import (
	"context"
	"database/sql"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/askdb/askdb/internal/locale"
	"github.com/askdb/askdb/internal/observability"
	"github.com/askdb/askdb/internal/safety"
)

// maxAttempts bounds the generate/execute loop. Attempt 0 is the first
// generation, attempt 1 the single repair. This is a hard invariant of the
// pipeline contract, not a tunable.
const maxAttempts = 2

type state int

const (
	stateGenerate state = iota
	stateValidate
	stateExecute
	stateRepair
	stateDone
)

// QuestionNormalizer prepares the raw question for generation (language
// detection and translation).
type QuestionNormalizer interface {
	Normalize(ctx context.Context, question string) string
}

// SQLGenerator produces candidate statements. Both methods degrade model
// failures to an empty statement.
type SQLGenerator interface {
	Generate(ctx context.Context, question, schemaText string) string
	Repair(ctx context.Context, failedSQL, dbError string) string
}

// Outcome is the externally visible result of one question. Exactly one of
// a populated Rows with the success status or empty Rows with a specific
// localized status holds.
type Outcome struct {
	SQL     string           `json:"sql"`
	Status  string           `json:"status"`
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

// Pipeline wires the per-session dependencies. All fields are read-only
// after construction; concurrent Answer calls share only the connection
// pool and the immutable schema text.
type Pipeline struct {
	DB         *sql.DB
	Generator  SQLGenerator
	Policy     safety.Policy
	Normalizer QuestionNormalizer
	SchemaText string
	Messages   *locale.Messages
	Logger     *slog.Logger
}

// Answer runs the state machine for one question. It never issues more
// than two generation calls nor two execution attempts, and always lands
// in exactly one terminal outcome: safety rejection, exhausted repair,
// or success (with its zero-row variant).
func (p *Pipeline) Answer(ctx context.Context, question string) Outcome {
	question = cleanQuestion(question)
	if p.Normalizer != nil {
		question = p.Normalizer.Normalize(ctx, question)
	}

	var (
		outcome Outcome
		sqlText string
		lastErr string
		attempt int
		current = stateGenerate
	)
	for current != stateDone {
		switch current {
		case stateGenerate:
			sqlText = p.Generator.Generate(ctx, question, p.SchemaText)
			current = stateValidate

		case stateValidate:
			if !p.Policy.IsSafe(sqlText) {
				observability.IncrementUnsafeRejection()
				observability.ObserveQuestion("unsafe")
				outcome = Outcome{SQL: sqlText, Status: p.Messages.UnsafeQuery, Rows: []map[string]any{}}
				current = stateDone
				break
			}
			current = stateExecute

		case stateExecute:
			start := time.Now()
			columns, rowMaps, err := p.execute(ctx, sqlText)
			observability.ObserveExecution(time.Since(start))
			if err != nil {
				lastErr = err.Error()
				if p.Logger != nil {
					p.Logger.WarnContext(ctx, "query execution failed",
						slog.Int("attempt", attempt),
						slog.String("error", lastErr),
					)
				}
				if attempt+1 < maxAttempts {
					current = stateRepair
					break
				}
				observability.ObserveQuestion("execution_failed")
				outcome = Outcome{SQL: sqlText, Status: p.Messages.ExecutionFailed, Rows: []map[string]any{}}
				current = stateDone
				break
			}
			if len(rowMaps) == 0 {
				observability.ObserveQuestion("no_data")
				outcome = Outcome{SQL: sqlText, Status: p.Messages.NoData, Columns: columns, Rows: []map[string]any{}}
			} else {
				observability.ObserveQuestion("success")
				outcome = Outcome{SQL: sqlText, Status: p.Messages.Success, Columns: columns, Rows: rowMaps}
			}
			current = stateDone

		case stateRepair:
			observability.IncrementRepairAttempt()
			sqlText = p.Generator.Repair(ctx, sqlText, lastErr)
			attempt++
			// The regenerated statement goes back through the safety gate.
			current = stateValidate
		}
	}
	return outcome
}

// execute runs one statement through the shared pool. The rows handle is
// closed on every exit path.
func (p *Pipeline) execute(ctx context.Context, sqlText string) ([]string, []map[string]any, error) {
	rows, err := p.DB.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = rows.Close() }()
	return normalizeRows(rows)
}

// normalizeRows converts driver values into transport-safe types:
// fixed-point decimal columns become float64 (lossy past float precision),
// byte slices become strings, everything else passes through. Column order
// is preserved alongside the row maps.
func normalizeRows(rows *sql.Rows) ([]string, []map[string]any, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, nil, err
	}
	decimal := make([]bool, len(columns))
	for i, columnType := range columnTypes {
		decimal[i] = isDecimalType(columnType.DatabaseTypeName())
	}

	rowMaps := make([]map[string]any, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		scanTargets := make([]any, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return nil, nil, err
		}
		rowMap := make(map[string]any, len(columns))
		for i, column := range columns {
			rowMap[column] = normalizeValue(values[i], decimal[i])
		}
		rowMaps = append(rowMaps, rowMap)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return columns, rowMaps, nil
}

func isDecimalType(databaseType string) bool {
	switch strings.ToUpper(databaseType) {
	case "NUMERIC", "DECIMAL", "NUMBER", "MONEY":
		return true
	default:
		return false
	}
}

func normalizeValue(value any, decimal bool) any {
	switch typed := value.(type) {
	case []byte:
		if decimal {
			if f, err := strconv.ParseFloat(string(typed), 64); err == nil {
				return f
			}
		}
		return string(typed)
	case string:
		if decimal {
			if f, err := strconv.ParseFloat(typed, 64); err == nil {
				return f
			}
		}
		return typed
	default:
		return typed
	}
}

// cleanQuestion strips the quoting and punctuation artifacts chat input
// tends to carry.
func cleanQuestion(question string) string {
	question = strings.TrimSpace(question)
	question = strings.Trim(question, "“”\"")
	question = strings.Trim(question, ".")
	return strings.TrimSpace(question)
}
