package repository

import (
	"errors"
	"fmt"
	"strings"

	"beautyStore/models"

	"github.com/lib/pq"
)

// foreign_key_violation
const pqForeignKeyViolation = "23503"

type scanner interface {
	Scan(dest ...any) error
}

// buildInsert returns "INSERT INTO table (a, b) VALUES ($1, $2) RETURNING ..."
// and its parameters.
func buildInsert(table string, patch models.RowPatch, returning string) (query string, queryParams []any) {
	placeholders := make([]string, 0, patch.Len())
	for i := range patch.Columns {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
	}
	query = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table,
		strings.Join(patch.Columns, ", "), strings.Join(placeholders, ", "))
	if returning != "" {
		query = query + " RETURNING " + returning
	}
	queryParams = append(queryParams, patch.Values...)
	return
}

// buildUpdate returns "UPDATE table SET a = $1, b = $2 WHERE key = $3" and
// its parameters; the key value is always the last parameter.
func buildUpdate(table string, patch models.RowPatch, keyColumn string, key any) (query string, queryParams []any) {
	sets := make([]string, 0, patch.Len())
	for i, c := range patch.Columns {
		sets = append(sets, fmt.Sprintf("%s = $%d", c, i+1))
	}
	query = fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d", table,
		strings.Join(sets, ", "), keyColumn, patch.Len()+1)
	queryParams = append(queryParams, patch.Values...)
	queryParams = append(queryParams, key)
	return
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqForeignKeyViolation
	}
	return false
}
