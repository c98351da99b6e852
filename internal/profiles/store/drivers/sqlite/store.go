package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/profiles/internal/profiles/store/drivers/sqldb"
	modernc "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Dialect is the sqldb dialect for modernc.org/sqlite.
var Dialect = sqldb.Dialect{
	DriverName:        "sqlite",
	IsUniqueViolation: isUniqueViolation,
}

type Store struct {
	*sqldb.Store
}

// DSN builds a connection string for the database file at path with the
// pragmas the service relies on. Timestamps are written in SQLite's own text
// format so they sort correctly and parse back into time.Time.
func DSN(path string) string {
	return fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_time_format=sqlite",
		path,
	)
}

func NewStore(dsn string) (*Store, error) {
	base, err := sqldb.Open(context.Background(), Dialect, dsn)
	if err != nil {
		return nil, err
	}

	// SQLite allows a single writer. One pooled connection also keeps a
	// ":memory:" database alive for the lifetime of the store.
	base.DB().SetMaxOpenConns(1)

	return &Store{Store: base}, nil
}

func isUniqueViolation(err error) bool {
	var se *modernc.Error
	if !errors.As(err, &se) {
		return false
	}
	if se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return true
	}
	// Primary result code only; fall back to the message.
	return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(se.Error(), "UNIQUE")
}
