package allocation_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"leavemgmt/internal/allocation"
	allocationerrors "leavemgmt/internal/allocation/errors"
	"leavemgmt/internal/employee"
	"leavemgmt/internal/leavetype"
	"leavemgmt/internal/shared/clock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeAllocationRepository struct {
	withTxFn      func(tx *sql.Tx) allocation.Repository
	createBatchFn func(ctx context.Context, allocations []allocation.LeaveAllocation) error
	existsFn      func(ctx context.Context, employeeID, leaveTypeID string, period int) (bool, error)
	findAllFn     func(ctx context.Context) ([]allocation.LeaveAllocation, error)
	findByIDFn    func(ctx context.Context, id string) (*allocation.LeaveAllocation, error)
	updateFn      func(ctx context.Context, a *allocation.LeaveAllocation) error
	deleteFn      func(ctx context.Context, id string) error
}

func (f *fakeAllocationRepository) WithTx(tx *sql.Tx) allocation.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeAllocationRepository) CreateBatch(ctx context.Context, allocations []allocation.LeaveAllocation) error {
	if f.createBatchFn != nil {
		return f.createBatchFn(ctx, allocations)
	}
	return nil
}

func (f *fakeAllocationRepository) Exists(ctx context.Context, employeeID, leaveTypeID string, period int) (bool, error) {
	if f.existsFn != nil {
		return f.existsFn(ctx, employeeID, leaveTypeID, period)
	}
	return false, nil
}

func (f *fakeAllocationRepository) FindAll(ctx context.Context) ([]allocation.LeaveAllocation, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeAllocationRepository) FindByID(ctx context.Context, id string) (*allocation.LeaveAllocation, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAllocationRepository) FindForEmployee(ctx context.Context, employeeID, leaveTypeID string, period int) (*allocation.LeaveAllocation, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAllocationRepository) Update(ctx context.Context, a *allocation.LeaveAllocation) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, a)
	}
	return nil
}

func (f *fakeAllocationRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeAllocationRepository) ConsumeDays(ctx context.Context, employeeID, leaveTypeID string, period, days int) (bool, error) {
	return true, nil
}

func (f *fakeAllocationRepository) RestoreDays(ctx context.Context, employeeID, leaveTypeID string, period, days int) error {
	return nil
}

type fakeTypeReader struct {
	findByIDFn func(ctx context.Context, id string) (*leavetype.LeaveType, error)
}

func (f *fakeTypeReader) FindByID(ctx context.Context, id string) (*leavetype.LeaveType, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeEmployeeDirectory struct {
	findAllFn func(ctx context.Context) ([]employee.Employee, error)
}

func (f *fakeEmployeeDirectory) FindAll(ctx context.Context) ([]employee.Employee, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

type allocationServiceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   allocation.Service
	repo      *fakeAllocationRepository
	types     *fakeTypeReader
	employees *fakeEmployeeDirectory
}

var fixedNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func setupAllocationServiceTest(t *testing.T) *allocationServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeAllocationRepository{}
	types := &fakeTypeReader{}
	employees := &fakeEmployeeDirectory{}
	svc := allocation.NewService(db, repo, types, employees, clock.Fixed(fixedNow))

	return &allocationServiceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		types:     types,
		employees: employees,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func threeEmployees() []employee.Employee {
	return []employee.Employee{
		{ID: uuid.New(), FullName: "Ana Silva"},
		{ID: uuid.New(), FullName: "Budi Santoso"},
		{ID: uuid.New(), FullName: "Carla Wijaya"},
	}
}

func TestAllocationService_CreateForLeaveType(t *testing.T) {
	ctx := context.Background()
	leaveTypeID := uuid.New()

	annual := &leavetype.LeaveType{ID: leaveTypeID, Name: "Annual", DefaultDays: 20}

	t.Run("success one allocation per employee", func(t *testing.T) {
		deps := setupAllocationServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.types.findByIDFn = func(ctx context.Context, id string) (*leavetype.LeaveType, error) {
			return annual, nil
		}
		deps.employees.findAllFn = func(ctx context.Context) ([]employee.Employee, error) {
			return threeEmployees(), nil
		}

		var created []allocation.LeaveAllocation
		deps.repo.createBatchFn = func(ctx context.Context, allocations []allocation.LeaveAllocation) error {
			created = allocations
			return nil
		}

		resp, err := deps.service.CreateForLeaveType(ctx, allocation.CreateAllocationsRequest{
			LeaveTypeID: leaveTypeID.String(),
			Period:      2024,
		})

		assert.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, "Allocations created for 3 of 3 employees", resp.Message)
		assert.Len(t, created, 3)
		for _, a := range created {
			assert.Equal(t, leaveTypeID, a.LeaveTypeID)
			assert.Equal(t, 2024, a.Period)
			assert.Equal(t, 20, a.NumberOfDays)
		}
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success second run creates nothing", func(t *testing.T) {
		deps := setupAllocationServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.types.findByIDFn = func(ctx context.Context, id string) (*leavetype.LeaveType, error) {
			return annual, nil
		}
		deps.employees.findAllFn = func(ctx context.Context) ([]employee.Employee, error) {
			return threeEmployees(), nil
		}
		deps.repo.existsFn = func(ctx context.Context, employeeID, ltid string, period int) (bool, error) {
			return true, nil
		}

		var created []allocation.LeaveAllocation
		deps.repo.createBatchFn = func(ctx context.Context, allocations []allocation.LeaveAllocation) error {
			created = allocations
			return nil
		}

		resp, err := deps.service.CreateForLeaveType(ctx, allocation.CreateAllocationsRequest{
			LeaveTypeID: leaveTypeID.String(),
			Period:      2024,
		})

		assert.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, "Allocations created for 0 of 3 employees", resp.Message)
		assert.Empty(t, created)
	})

	t.Run("success period defaults to current year", func(t *testing.T) {
		deps := setupAllocationServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.types.findByIDFn = func(ctx context.Context, id string) (*leavetype.LeaveType, error) {
			return annual, nil
		}
		deps.employees.findAllFn = func(ctx context.Context) ([]employee.Employee, error) {
			return threeEmployees()[:1], nil
		}

		var created []allocation.LeaveAllocation
		deps.repo.createBatchFn = func(ctx context.Context, allocations []allocation.LeaveAllocation) error {
			created = allocations
			return nil
		}

		_, err := deps.service.CreateForLeaveType(ctx, allocation.CreateAllocationsRequest{
			LeaveTypeID: leaveTypeID.String(),
		})

		assert.NoError(t, err)
		assert.Len(t, created, 1)
		assert.Equal(t, 2024, created[0].Period)
	})

	t.Run("negative unknown leave type", func(t *testing.T) {
		deps := setupAllocationServiceTest(t)
		defer deps.db.Close()

		resp, err := deps.service.CreateForLeaveType(ctx, allocation.CreateAllocationsRequest{
			LeaveTypeID: uuid.New().String(),
			Period:      2024,
		})

		assert.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Errors, allocation.ViolationLeaveTypeNotExists)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestAllocationService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		deps := setupAllocationServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, targetID string) (*allocation.LeaveAllocation, error) {
			return &allocation.LeaveAllocation{ID: id, NumberOfDays: 20}, nil
		}
		deps.repo.updateFn = func(ctx context.Context, a *allocation.LeaveAllocation) error {
			assert.Equal(t, 15, a.NumberOfDays)
			return nil
		}

		resp, err := deps.service.Update(ctx, id.String(), allocation.UpdateAllocationRequest{NumberOfDays: 15})

		assert.NoError(t, err)
		assert.True(t, resp.Success)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative days rejected", func(t *testing.T) {
		deps := setupAllocationServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Update(ctx, id.String(), allocation.UpdateAllocationRequest{NumberOfDays: -1})

		assert.ErrorIs(t, err, allocationerrors.ErrNegativeDays)
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupAllocationServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Update(ctx, uuid.New().String(), allocation.UpdateAllocationRequest{NumberOfDays: 5})

		assert.ErrorIs(t, err, allocationerrors.ErrAllocationNotFound)
	})
}

func TestAllocationService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupAllocationServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		id := uuid.New()
		deps.repo.findByIDFn = func(ctx context.Context, targetID string) (*allocation.LeaveAllocation, error) {
			return &allocation.LeaveAllocation{ID: id}, nil
		}

		err := deps.service.Delete(ctx, id.String())

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupAllocationServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		err := deps.service.Delete(ctx, uuid.New().String())

		assert.ErrorIs(t, err, allocationerrors.ErrAllocationNotFound)
	})
}
