package leaverequest

import (
	"context"
	"errors"
	"time"

	"leavemgmt/internal/allocation"
	"leavemgmt/internal/leavetype"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ViolationEndBeforeStart      = "end date must be after start date"
	ViolationLeaveTypeNotExists  = "leave type does not exist"
	ViolationInsufficientBalance = "insufficient balance"
)

// LeaveTypeReader and BalanceReader are the read-only repository slices the
// validator touches. Validation never writes.
type LeaveTypeReader interface {
	FindByID(ctx context.Context, id string) (*leavetype.LeaveType, error)
}

type BalanceReader interface {
	FindForEmployee(ctx context.Context, employeeID, leaveTypeID string, period int) (*allocation.LeaveAllocation, error)
}

// Candidate holds the already-parsed fields of a leave request under
// validation.
type Candidate struct {
	EmployeeID  string
	LeaveTypeID string
	StartDate   time.Time
	EndDate     time.Time
	Period      int
}

type requestRule func(ctx context.Context, v *Validator, c Candidate) ([]string, error)

type Validator struct {
	types    LeaveTypeReader
	balances BalanceReader
	rules    []requestRule
}

func NewValidator(types LeaveTypeReader, balances BalanceReader) *Validator {
	return &Validator{
		types:    types,
		balances: balances,
		rules: []requestRule{
			ruleDateRange,
			ruleLeaveTypeExists,
			ruleSufficientBalance,
		},
	}
}

// Validate runs every rule in order and accumulates their violations; rules
// are independent and never short-circuit each other.
func (v *Validator) Validate(ctx context.Context, c Candidate) ([]string, error) {
	var violations []string
	for _, rule := range v.rules {
		found, err := rule(ctx, v, c)
		if err != nil {
			return nil, err
		}
		violations = append(violations, found...)
	}
	return violations, nil
}

func ruleDateRange(_ context.Context, _ *Validator, c Candidate) ([]string, error) {
	if c.StartDate.IsZero() || c.EndDate.IsZero() || c.EndDate.Before(c.StartDate) {
		return []string{ViolationEndBeforeStart}, nil
	}
	return nil, nil
}

func ruleLeaveTypeExists(ctx context.Context, v *Validator, c Candidate) ([]string, error) {
	if _, err := uuid.Parse(c.LeaveTypeID); err != nil {
		return []string{ViolationLeaveTypeNotExists}, nil
	}
	if _, err := v.types.FindByID(ctx, c.LeaveTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []string{ViolationLeaveTypeNotExists}, nil
		}
		return nil, err
	}
	return nil, nil
}

func ruleSufficientBalance(ctx context.Context, v *Validator, c Candidate) ([]string, error) {
	span := DaySpan(c.StartDate, c.EndDate)
	// The balance check needs a computable span and a well-formed type id;
	// the other rules report those problems.
	if c.StartDate.IsZero() || c.EndDate.IsZero() || span < 1 {
		return nil, nil
	}
	if _, err := uuid.Parse(c.LeaveTypeID); err != nil {
		return nil, nil
	}

	alloc, err := v.balances.FindForEmployee(ctx, c.EmployeeID, c.LeaveTypeID, c.Period)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No allocation yet means a zero balance: fail closed.
			return []string{ViolationInsufficientBalance}, nil
		}
		return nil, err
	}

	if span > alloc.NumberOfDays {
		return []string{ViolationInsufficientBalance}, nil
	}
	return nil, nil
}
