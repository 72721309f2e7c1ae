package response

// CommandResponse is the outcome of a business-rule command. Validation
// failures come back with Success=false and the itemized rule violations;
// they are not errors in the Go sense. Not-found and infrastructure
// failures travel separately as errors.
type CommandResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
	ID      string   `json:"id,omitempty"`
}

func CommandOK(message, id string) CommandResponse {
	return CommandResponse{Success: true, Message: message, ID: id}
}

func CommandFailed(message string, errs []string) CommandResponse {
	return CommandResponse{Success: false, Message: message, Errors: errs}
}
