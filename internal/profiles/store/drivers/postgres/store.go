package postgres

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/profiles/internal/profiles/store/drivers/sqldb"
	"github.com/lib/pq"
)

// uniqueViolation is the SQLSTATE for unique_violation.
const uniqueViolation = pq.ErrorCode("23505")

// Dialect is the sqldb dialect for lib/pq.
var Dialect = sqldb.Dialect{
	DriverName:        "postgres",
	IsUniqueViolation: isUniqueViolation,
}

type Store struct {
	*sqldb.Store
}

func NewStore(dsn string) (*Store, error) {
	base, err := sqldb.Open(context.Background(), Dialect, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{Store: base}, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
