package allocation

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=allocation_repo.go -destination=mock/allocation_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateBatch(ctx context.Context, allocations []LeaveAllocation) error
	Exists(ctx context.Context, employeeID, leaveTypeID string, period int) (bool, error)
	FindAll(ctx context.Context) ([]LeaveAllocation, error)
	FindByID(ctx context.Context, id string) (*LeaveAllocation, error)
	FindForEmployee(ctx context.Context, employeeID, leaveTypeID string, period int) (*LeaveAllocation, error)
	Update(ctx context.Context, a *LeaveAllocation) error
	Delete(ctx context.Context, id string) error

	// ConsumeDays decrements the balance by days in a single conditional
	// statement; it reports false without touching the row when the
	// remaining balance is smaller than days or no allocation exists. Two
	// concurrent approvals can therefore never drive a balance below zero.
	ConsumeDays(ctx context.Context, employeeID, leaveTypeID string, period, days int) (bool, error)
	RestoreDays(ctx context.Context, employeeID, leaveTypeID string, period, days int) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db = db.Session(&gorm.Session{NewDB: true})
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) CreateBatch(ctx context.Context, allocations []LeaveAllocation) error {
	if len(allocations) == 0 {
		return nil
	}
	return r.conn(ctx).Omit("LeaveType").Create(&allocations).Error
}

func (r *repository) Exists(ctx context.Context, employeeID, leaveTypeID string, period int) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&LeaveAllocation{}).
		Where("employee_id = ?", employeeID).
		Where("leave_type_id = ?", leaveTypeID).
		Where("period = ?", period).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveAllocation, error) {
	var allocations []LeaveAllocation
	err := r.conn(ctx).
		Preload("LeaveType").
		Order("period DESC").
		Find(&allocations).Error
	return allocations, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveAllocation, error) {
	var a LeaveAllocation
	err := r.conn(ctx).
		Preload("LeaveType").
		First(&a, "id = ?", id).Error
	return &a, err
}

func (r *repository) FindForEmployee(ctx context.Context, employeeID, leaveTypeID string, period int) (*LeaveAllocation, error) {
	var a LeaveAllocation
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Where("leave_type_id = ?", leaveTypeID).
		Where("period = ?", period).
		First(&a).Error
	return &a, err
}

func (r *repository) Update(ctx context.Context, a *LeaveAllocation) error {
	return r.conn(ctx).Omit("LeaveType").Save(a).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.conn(ctx).Delete(&LeaveAllocation{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) ConsumeDays(ctx context.Context, employeeID, leaveTypeID string, period, days int) (bool, error) {
	res := r.conn(ctx).Exec(`
		UPDATE leave_allocations
		SET number_of_days = number_of_days - ?, updated_at = now()
		WHERE employee_id = ?
		  AND leave_type_id = ?
		  AND period = ?
		  AND number_of_days >= ?
	`, days, employeeID, leaveTypeID, period, days)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) RestoreDays(ctx context.Context, employeeID, leaveTypeID string, period, days int) error {
	res := r.conn(ctx).Exec(`
		UPDATE leave_allocations
		SET number_of_days = number_of_days + ?, updated_at = now()
		WHERE employee_id = ?
		  AND leave_type_id = ?
		  AND period = ?
	`, days, employeeID, leaveTypeID, period)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
