package leaverequest

import (
	"time"

	"github.com/google/uuid"
)

// LeaveRequest is an employee's ask to consume days from an allocation.
// Approved is tri-state: nil while pending, true once approved, false once
// rejected. Balance moves only at approval; cancellation of an approved
// request puts the days back.
type LeaveRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null"`

	StartDate     time.Time `gorm:"type:date;not null"`
	EndDate       time.Time `gorm:"type:date;not null"`
	Comments      string    `gorm:"type:text"`
	DateRequested time.Time `gorm:"not null"`

	Approved     *bool `gorm:"type:boolean"`
	Cancelled    bool  `gorm:"type:boolean;not null;default:false"`
	DateActioned *time.Time

	LeaveType *RequestLeaveType `gorm:"foreignKey:LeaveTypeID;references:ID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

type RequestLeaveType struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"column:name"`
	DefaultDays int       `gorm:"column:default_days"`
}

func (RequestLeaveType) TableName() string {
	return "leave_types"
}

// DaySpan is the requested span in whole days, inclusive of both endpoints.
func (l LeaveRequest) DaySpan() int {
	return DaySpan(l.StartDate, l.EndDate)
}

func DaySpan(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}
