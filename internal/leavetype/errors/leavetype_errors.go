package leavetypeerrors

import (
	"net/http"

	"leavemgmt/internal/shared/apperror"
)

var (
	ErrInvalidLeaveTypeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave type id",
		http.StatusBadRequest,
	)
	ErrLeaveTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave type not found",
		http.StatusNotFound,
	)
	ErrLeaveTypeNameTaken = apperror.New(
		apperror.CodeConflict,
		"a leave type with this name already exists",
		http.StatusConflict,
	)
	ErrLeaveTypeInUse = apperror.New(
		apperror.CodeConflict,
		"leave type is referenced by allocations or requests",
		http.StatusConflict,
	)
)
