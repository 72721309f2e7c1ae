package allocation

import (
	"errors"

	allocationerrors "leavemgmt/internal/allocation/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return allocationerrors.ErrAllocationNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return allocationerrors.ErrDuplicateAllocation
	}

	return err
}
