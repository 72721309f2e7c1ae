package leaverequest

type CreateLeaveRequestRequest struct {
	LeaveTypeID string `json:"leave_type_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Comments    string `json:"comments"`
}

type LeaveRequestResponse struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employee_id"`
	LeaveTypeID   string `json:"leave_type_id"`
	LeaveTypeName string `json:"leave_type_name,omitempty"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	TotalDays     int    `json:"total_days"`
	Comments      string `json:"comments,omitempty"`
	DateRequested string `json:"date_requested"`
	Status        string `json:"status"`
	Approved      *bool  `json:"approved"`
	Cancelled     bool   `json:"cancelled"`
	DateActioned  string `json:"date_actioned,omitempty"`
}
