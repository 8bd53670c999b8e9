package ethdb

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/6529-Collections/airdrop-retention/internal/db"
)

const defaultBatchSize = 100

// insertRows writes rows in multi-value INSERT batches and returns how many
// rows were actually written. Columns come from T's fields in declaration
// order. With skipDuplicates, rows hitting a uniqueness constraint are dropped
// silently instead of failing the statement.
func insertRows[T any](ex db.Execer, dialect db.Dialect, table string, rows []T, skipDuplicates bool) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	elemType := reflect.TypeOf(rows[0])
	if elemType.Kind() != reflect.Struct {
		return 0, fmt.Errorf("rows must be structs, got %s", elemType)
	}
	numFields := elemType.NumField()
	columns := make([]string, numFields)
	for i := 0; i < numFields; i++ {
		columns[i] = snakeCase(elemType.Field(i).Name)
	}
	rowPlaceholders := "(" + db.Placeholders(numFields) + ")"

	suffix := ""
	if skipDuplicates {
		suffix = " ON CONFLICT DO NOTHING"
	}

	var inserted int64
	for i := 0; i < len(rows); i += defaultBatchSize {
		end := i + defaultBatchSize
		if end > len(rows) {
			end = len(rows)
		}

		values := make([]interface{}, 0, (end-i)*numFields)
		batchPlaceholders := make([]string, 0, end-i)
		for j := i; j < end; j++ {
			elem := reflect.ValueOf(rows[j])
			for k := 0; k < numFields; k++ {
				values = append(values, elem.Field(k).Interface())
			}
			batchPlaceholders = append(batchPlaceholders, rowPlaceholders)
		}

		query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s%s",
			table, strings.Join(columns, ", "), strings.Join(batchPlaceholders, ", "), suffix)

		res, err := ex.Exec(db.Rebind(dialect, query), values...)
		if err != nil {
			return inserted, fmt.Errorf("failed to insert into %s: %w", table, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return inserted, err
		}
		inserted += n
	}
	return inserted, nil
}

// snakeCase converts CamelCase to snake_case
func snakeCase(s string) string {
	var result strings.Builder
	for i, c := range s {
		if i > 0 && c >= 'A' && c <= 'Z' {
			result.WriteRune('_')
		}
		result.WriteRune(c)
	}
	return strings.ToLower(result.String())
}

func chunkStrings(values []string, size int) [][]string {
	var chunks [][]string
	for size < len(values) {
		values, chunks = values[size:], append(chunks, values[:size])
	}
	if len(values) > 0 {
		chunks = append(chunks, values)
	}
	return chunks
}
