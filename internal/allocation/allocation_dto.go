package allocation

type CreateAllocationsRequest struct {
	LeaveTypeID string `json:"leave_type_id"`
	// Period defaults to the current calendar year when zero.
	Period int `json:"period,omitempty"`
}

type UpdateAllocationRequest struct {
	NumberOfDays int `json:"number_of_days"`
}

type AllocationResponse struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employee_id"`
	LeaveTypeID   string `json:"leave_type_id"`
	LeaveTypeName string `json:"leave_type_name,omitempty"`
	Period        int    `json:"period"`
	NumberOfDays  int    `json:"number_of_days"`
}
