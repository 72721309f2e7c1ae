package allocation

import (
	"context"
	"errors"

	"leavemgmt/internal/leavetype"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const ViolationLeaveTypeNotExists = "leave type does not exist"

// LeaveTypeReader is the read-only slice of the leave type repository the
// engine needs. The leavetype repository satisfies it directly.
type LeaveTypeReader interface {
	FindByID(ctx context.Context, id string) (*leavetype.LeaveType, error)
}

// ValidateCreate checks the candidate fan-out request. The only hard rule is
// that the leave type must resolve; duplicate allocations are skipped by the
// engine, not rejected here. Reads only, no writes.
func ValidateCreate(ctx context.Context, types LeaveTypeReader, leaveTypeID string) ([]string, error) {
	if _, err := uuid.Parse(leaveTypeID); err != nil {
		return []string{ViolationLeaveTypeNotExists}, nil
	}

	if _, err := types.FindByID(ctx, leaveTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []string{ViolationLeaveTypeNotExists}, nil
		}
		return nil, err
	}

	return nil, nil
}
