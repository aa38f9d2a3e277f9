package store

import (
	"errors"
	"fmt"
	"strconv"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

// CommitError is returned by CommitBatch. Table is set when an insert failed;
// Code carries the SQLSTATE (Postgres) or error number (MySQL) if known.
type CommitError struct {
	Op       string
	Table    string
	TxDigest string
	Code     string
	Err      error
}

func newInsertError(table, txDigest string, err error) *CommitError {
	return &CommitError{Op: "insert", Table: table, TxDigest: txDigest, Code: errorCode(err), Err: err}
}

func (e *CommitError) Error() string {
	msg := e.Op
	if e.Table != "" {
		msg = fmt.Sprintf("%s into %s", msg, e.Table)
	}
	if e.TxDigest != "" {
		msg = fmt.Sprintf("%s (tx %s)", msg, e.TxDigest)
	}
	if e.Code != "" {
		msg = fmt.Sprintf("%s [%s]", msg, e.Code)
	}
	return fmt.Sprintf("failed to %s: %v", msg, e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}

func errorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		return strconv.Itoa(int(myErr.Number))
	}
	return ""
}
