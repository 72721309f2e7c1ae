package events

import "time"

const LeaveRequestTopic = "hr.leave.request.v1"

const (
	EventLeaveRequestSubmitted = "leave_request.submitted"
	EventLeaveRequestApproved  = "leave_request.approved"
	EventLeaveRequestRejected  = "leave_request.rejected"
	EventLeaveRequestCancelled = "leave_request.cancelled"
)

// LeaveRequestEvent is published on every lifecycle transition. Downstream
// consumers (e.g. the notification mailer) subscribe to the topic; sending
// mail is not this service's concern.
type LeaveRequestEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id"`
	EmployeeID  string    `json:"employee_id"`
	LeaveTypeID string    `json:"leave_type_id"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	OccurredAt  time.Time `json:"occurred_at"`
}
