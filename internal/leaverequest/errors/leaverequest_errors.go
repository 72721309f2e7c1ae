package leaverequesterrors

import (
	"net/http"

	"leavemgmt/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrLeaveRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrRequestNotPending = apperror.New(
		apperror.CodeInvalidState,
		"leave request has already been actioned",
		http.StatusBadRequest,
	)
	ErrCannotCancel = apperror.New(
		apperror.CodeInvalidState,
		"leave request cannot be cancelled",
		http.StatusBadRequest,
	)
	ErrNotRequestOwner = apperror.New(
		apperror.CodeForbidden,
		"only the requesting employee may cancel this request",
		http.StatusForbidden,
	)
)
