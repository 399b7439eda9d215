package postgres

import (
	"errors"
	"fmt"
	"strings"

	xerrors "crm-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Foreign keys map back to the request field that named the missing row.
var foreignKeyFields = map[string]string{
	"leads_client_id_fkey":         "clientId",
	"jobs_client_id_fkey":          "clientId",
	"bookings_client_id_fkey":      "clientId",
	"bookings_job_id_fkey":         "jobId",
	"messages_client_id_fkey":      "clientId",
	"messages_sent_by_fkey":        "sentBy",
	"follow_ups_client_id_fkey":    "clientId",
	"follow_ups_lead_id_fkey":      "leadId",
	"follow_ups_assigned_to_fkey":  "assignedTo",
	"follow_ups_completed_by_fkey": "completedBy",
	"follow_ups_created_by_fkey":   "createdBy",
}

// translateError converts constraint violations into validation errors and
// wraps everything else with the failed action.
func translateError(err error, action string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return xerrors.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503":
			field := foreignKeyFields[pgErr.ConstraintName]
			if field == "" {
				field = "id"
			}
			return xerrors.Validation("Referenced record does not exist", xerrors.FieldError{
				Field:   field,
				Message: "No matching record",
			})
		case "23505":
			return fmt.Errorf("failed to %s: %s: %w", action, pgErr.ConstraintName, xerrors.ErrDuplicateEntry)
		}
	}

	return fmt.Errorf("failed to %s: %w", action, err)
}

// setBuilder accumulates "column = $n" assignments for partial updates.
type setBuilder struct {
	sets   []string
	args   []interface{}
	argPos int
}

func newSetBuilder() *setBuilder {
	return &setBuilder{argPos: 1}
}

func (b *setBuilder) add(column string, value interface{}) {
	b.sets = append(b.sets, fmt.Sprintf("%s = $%d", column, b.argPos))
	b.args = append(b.args, value)
	b.argPos++
}

// addExpr appends an assignment whose right side references the next
// placeholder through %s, e.g. "CASE WHEN %s = 'x' THEN ... END".
func (b *setBuilder) addExpr(column, expr string, value interface{}) {
	placeholder := fmt.Sprintf("$%d", b.argPos)
	b.sets = append(b.sets, fmt.Sprintf("%s = %s", column, strings.ReplaceAll(expr, "%s", placeholder)))
	b.args = append(b.args, value)
	b.argPos++
}

// raw appends an assignment with no argument.
func (b *setBuilder) raw(assignment string) {
	b.sets = append(b.sets, assignment)
}

// build renders "UPDATE table SET ... WHERE id = $n RETURNING columns".
func (b *setBuilder) build(table, id, returning string) (string, []interface{}) {
	b.raw("updated_at = NOW()")
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		table, strings.Join(b.sets, ", "), b.argPos, returning)
	return query, append(b.args, id)
}

// whereClause joins conditions with AND, or returns "" when there are none.
func whereClause(conditions []string) string {
	if len(conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conditions, " AND ")
}

// collect drains rows through scan into a non-nil slice.
func collect[T any](rows pgx.Rows, scan func(pgx.Row) (*T, error)) ([]T, error) {
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike quotes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// prefixed qualifies a comma-separated column list with alias.
func prefixed(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
