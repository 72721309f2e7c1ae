package allocation

import (
	"time"

	"github.com/google/uuid"
)

// LeaveAllocation is an employee's day balance for one leave type in one
// yearly period. The composite unique index is the invariant: at most one
// allocation per (employee, leave type, period).
type LeaveAllocation struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_allocation_employee_type_period"`
	LeaveTypeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_allocation_employee_type_period"`
	Period       int       `gorm:"type:int;not null;uniqueIndex:uq_allocation_employee_type_period"`
	NumberOfDays int       `gorm:"type:int;not null"`

	LeaveType *AllocationLeaveType `gorm:"foreignKey:LeaveTypeID;references:ID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveAllocation) TableName() string {
	return "leave_allocations"
}

type AllocationLeaveType struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"column:name"`
	DefaultDays int       `gorm:"column:default_days"`
}

func (AllocationLeaveType) TableName() string {
	return "leave_types"
}
