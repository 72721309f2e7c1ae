package allocation

import (
	"context"
	"database/sql"
	"fmt"

	allocationerrors "leavemgmt/internal/allocation/errors"
	"leavemgmt/internal/employee"
	"leavemgmt/internal/shared/clock"
	"leavemgmt/internal/shared/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EmployeeDirectory is the read-only identity collaborator supplying the
// cohort an allocation run fans out over.
type EmployeeDirectory interface {
	FindAll(ctx context.Context) ([]employee.Employee, error)
}

//go:generate mockgen -source=allocation_service.go -destination=mock/allocation_service_mock.go -package=mock
type Service interface {
	CreateForLeaveType(ctx context.Context, req CreateAllocationsRequest) (response.CommandResponse, error)
	GetAll(ctx context.Context) ([]AllocationResponse, error)
	GetByID(ctx context.Context, id string) (AllocationResponse, error)
	Update(ctx context.Context, id string, req UpdateAllocationRequest) (response.CommandResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db        *sql.DB
	repo      Repository
	types     LeaveTypeReader
	employees EmployeeDirectory
	clock     clock.Clock
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	types LeaveTypeReader,
	employees EmployeeDirectory,
	clk clock.Clock,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("allocation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("allocation.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		types:     types,
		employees: employees,
		clock:     clk,
		logger:    l,
	}
}

// CreateForLeaveType seeds one allocation per employee for the period.
// Employees that already hold an allocation for the triple are skipped, so
// re-running for the same period never duplicates or resets a balance, even
// if the type's DefaultDays changed in between. All new rows land in one
// commit; a crash before commit leaves nothing created.
func (s *service) CreateForLeaveType(ctx context.Context, req CreateAllocationsRequest) (response.CommandResponse, error) {
	s.logger.Debug("create allocations requested",
		zap.String("leave_type_id", req.LeaveTypeID),
		zap.Int("period", req.Period),
	)

	violations, err := ValidateCreate(ctx, s.types, req.LeaveTypeID)
	if err != nil {
		s.logger.Error("create allocations validation read failed", zap.Error(err))
		return response.CommandResponse{}, err
	}
	if len(violations) > 0 {
		s.logger.Warn("create allocations validation failed", zap.Strings("violations", violations))
		return response.CommandFailed("Allocation failed", violations), nil
	}

	leaveType, err := s.types.FindByID(ctx, req.LeaveTypeID)
	if err != nil {
		return response.CommandResponse{}, err
	}

	cohort, err := s.employees.FindAll(ctx)
	if err != nil {
		s.logger.Error("create allocations load cohort failed", zap.Error(err))
		return response.CommandResponse{}, err
	}

	period := req.Period
	if period == 0 {
		period = s.clock.Now().Year()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create allocations begin tx failed", zap.Error(err))
		return response.CommandResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	var allocations []LeaveAllocation
	for _, emp := range cohort {
		exists, err := qtx.Exists(ctx, emp.ID.String(), leaveType.ID.String(), period)
		if err != nil {
			return response.CommandResponse{}, err
		}
		if exists {
			continue
		}
		allocations = append(allocations, LeaveAllocation{
			ID:           uuid.New(),
			EmployeeID:   emp.ID,
			LeaveTypeID:  leaveType.ID,
			Period:       period,
			NumberOfDays: leaveType.DefaultDays,
		})
	}

	if err := qtx.CreateBatch(ctx, allocations); err != nil {
		s.logger.Error("create allocations persist failed", zap.Error(err))
		return response.CommandResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create allocations commit failed", zap.Error(err))
		return response.CommandResponse{}, err
	}

	s.logger.Info("create allocations success",
		zap.String("leave_type_id", leaveType.ID.String()),
		zap.Int("period", period),
		zap.Int("created", len(allocations)),
		zap.Int("skipped", len(cohort)-len(allocations)),
	)

	msg := fmt.Sprintf("Allocations created for %d of %d employees", len(allocations), len(cohort))
	return response.CommandOK(msg, leaveType.ID.String()), nil
}

func (s *service) GetAll(ctx context.Context) ([]AllocationResponse, error) {
	allocations, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(allocations), nil
}

func (s *service) GetByID(ctx context.Context, id string) (AllocationResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return AllocationResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*a), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateAllocationRequest) (response.CommandResponse, error) {
	if req.NumberOfDays < 0 {
		return response.CommandResponse{}, allocationerrors.ErrNegativeDays
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return response.CommandResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	a, err := qtx.FindByID(ctx, id)
	if err != nil {
		return response.CommandResponse{}, mapRepositoryError(err)
	}

	a.NumberOfDays = req.NumberOfDays

	if err := qtx.Update(ctx, a); err != nil {
		s.logger.Error("update allocation persist failed", zap.String("allocation_id", id), zap.Error(err))
		return response.CommandResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return response.CommandResponse{}, err
	}
	s.logger.Info("update allocation success", zap.String("allocation_id", id))

	return response.CommandOK("Update successful", a.ID.String()), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	return tx.Commit()
}

func mapToResponse(a LeaveAllocation) AllocationResponse {
	resp := AllocationResponse{
		ID:           a.ID.String(),
		EmployeeID:   a.EmployeeID.String(),
		LeaveTypeID:  a.LeaveTypeID.String(),
		Period:       a.Period,
		NumberOfDays: a.NumberOfDays,
	}
	if a.LeaveType != nil {
		resp.LeaveTypeName = a.LeaveType.Name
	}
	return resp
}

func mapToListResponse(allocations []LeaveAllocation) []AllocationResponse {
	resp := make([]AllocationResponse, len(allocations))
	for i, a := range allocations {
		resp[i] = mapToResponse(a)
	}
	return resp
}
