package leaverequest

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leaverequest_repo.go -destination=mock/leaverequest_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindAll(ctx context.Context) ([]LeaveRequest, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	// FindByID loads the request together with its leave type.
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	Update(ctx context.Context, l *LeaveRequest) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.conn(ctx).Omit("LeaveType").Create(l).Error
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.conn(ctx).
		Preload("LeaveType").
		Order("date_requested DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.conn(ctx).
		Preload("LeaveType").
		Where("employee_id = ?", employeeID).
		Order("date_requested DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.conn(ctx).
		Preload("LeaveType").
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) Update(ctx context.Context, l *LeaveRequest) error {
	return r.conn(ctx).Omit("LeaveType").Save(l).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.conn(ctx).Delete(&LeaveRequest{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
