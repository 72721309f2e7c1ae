package leavetype

import "strings"

const (
	ViolationNameRequired        = "name is required"
	ViolationDefaultDaysPositive = "default days must be greater than zero"
)

// Validation rules run in order and every rule runs; violations accumulate
// instead of short-circuiting. Rules never mutate anything.
type createRule func(req CreateLeaveTypeRequest) []string

var createRules = []createRule{
	ruleNameRequired,
	ruleDefaultDaysPositive,
}

func ruleNameRequired(req CreateLeaveTypeRequest) []string {
	if strings.TrimSpace(req.Name) == "" {
		return []string{ViolationNameRequired}
	}
	return nil
}

func ruleDefaultDaysPositive(req CreateLeaveTypeRequest) []string {
	// Negative or zero default days is rejected outright, never clamped.
	if req.DefaultDays <= 0 {
		return []string{ViolationDefaultDaysPositive}
	}
	return nil
}

func ValidateCreate(req CreateLeaveTypeRequest) (bool, []string) {
	var violations []string
	for _, rule := range createRules {
		violations = append(violations, rule(req)...)
	}
	return len(violations) == 0, violations
}

func ValidateUpdate(req UpdateLeaveTypeRequest) (bool, []string) {
	return ValidateCreate(CreateLeaveTypeRequest{
		Name:        req.Name,
		DefaultDays: req.DefaultDays,
	})
}
