package allocationerrors

import (
	"net/http"

	"leavemgmt/internal/shared/apperror"
)

var (
	ErrInvalidAllocationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid allocation id",
		http.StatusBadRequest,
	)
	ErrAllocationNotFound = apperror.New(
		apperror.CodeNotFound,
		"allocation not found",
		http.StatusNotFound,
	)
	ErrDuplicateAllocation = apperror.New(
		apperror.CodeConflict,
		"an allocation already exists for this employee, leave type and period",
		http.StatusConflict,
	)
	ErrNegativeDays = apperror.New(
		apperror.CodeInvalidInput,
		"number of days must not be negative",
		http.StatusBadRequest,
	)
)
