package leavetype

type CreateLeaveTypeRequest struct {
	Name        string `json:"name"`
	DefaultDays int    `json:"default_days"`
}

type UpdateLeaveTypeRequest struct {
	Name        string `json:"name"`
	DefaultDays int    `json:"default_days"`
}

type LeaveTypeResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DefaultDays int    `json:"default_days"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}
