package leavetype

import (
	"errors"

	leavetypeerrors "leavemgmt/internal/leavetype/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leavetypeerrors.ErrLeaveTypeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return leavetypeerrors.ErrLeaveTypeNameTaken
		case "23503":
			return leavetypeerrors.ErrLeaveTypeInUse
		}
	}

	return err
}
