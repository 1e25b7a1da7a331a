package errors

import (
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// classes by SQLSTATE, anything else from postgres is ErrorCodeDB
var sqlStates = map[string]ErrorCode{
	"23505": ErrorCodeDuplicateKey,    // unique_violation
	"23503": ErrorCodeInvalidArgument, // foreign_key_violation
	"23502": ErrorCodeValidation,      // not_null_violation
	"23514": ErrorCodeValidation,      // check_violation
	"22001": ErrorCodeInvalidArgument, // string_data_right_truncation
	"22P02": ErrorCodeInvalidArgument, // invalid_text_representation
	"22007": ErrorCodeInvalidArgument, // invalid_datetime_format
	"25006": ErrorCodeUnavailable,     // read_only_sql_transaction
	"57P03": ErrorCodeUnavailable,     // cannot_connect_now
}

// PgError finds a postgres error in err's chain
func PgError(err error) (*pgconn.PgError, bool) {
	var pe *pgconn.PgError
	ok := stderrs.As(err, &pe)
	return pe, ok
}

// IsUniqueViolation reports a 23505, optionally only on the named constraint
func IsUniqueViolation(err error, constraint ...string) bool {
	pe, ok := PgError(err)
	if !ok || pe.Code != "23505" {
		return false
	}
	if len(constraint) == 0 {
		return true
	}
	for _, c := range constraint {
		if pe.ConstraintName == c {
			return true
		}
	}
	return false
}

// FromPostgres classifies err by SQLSTATE and names the field when the
// server reported a column or a conventional constraint name
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	pe, ok := PgError(err)
	if !ok {
		return Wrap(err, ErrorCodeDB, msg)
	}
	code, known := sqlStates[pe.Code]
	if !known {
		code = ErrorCodeDB
	}
	out := Wrap(err, code, msg)
	if f := pgField(pe); f != "" {
		out = WithField(out, f)
	}
	return out
}

// pgField prefers the column, then the constraint stripped of its table
// prefix and its kind suffix: residents_national_id_key is national_id
func pgField(pe *pgconn.PgError) string {
	if pe.ColumnName != "" {
		return pe.ColumnName
	}
	name := pe.ConstraintName
	if name == "" {
		return ""
	}
	if pe.TableName != "" {
		name = strings.TrimPrefix(name, pe.TableName+"_")
	}
	for _, suffix := range []string{"_pkey", "_fkey", "_key", "_check"} {
		if trimmed, found := strings.CutSuffix(name, suffix); found {
			return trimmed
		}
	}
	return ""
}
