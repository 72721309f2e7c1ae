package autherrors

import (
	"net/http"

	"leavemgmt/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New("AUTH_FAILED", "Invalid email or password", http.StatusUnauthorized)

	ErrInvalidToken        = apperror.New("INVALID_TOKEN", "Invalid token", http.StatusUnauthorized)
	ErrTokenExpired        = apperror.New("TOKEN_EXPIRED", "Token has expired", http.StatusUnauthorized)
	ErrInvalidRefreshToken = apperror.New("INVALID_REFRESH_TOKEN", "Invalid refresh token", http.StatusUnauthorized)

	ErrInvalidUserID = apperror.New(apperror.CodeInvalidInput, "Invalid user id", http.StatusBadRequest)
	ErrUserNotFound  = apperror.New(apperror.CodeNotFound, "User not found", http.StatusNotFound)

	ErrTokenGenerationFailed  = apperror.New(apperror.CodeInternalError, "Failed to generate token", http.StatusInternalServerError)
	ErrEmailAlreadyRegistered = apperror.New(apperror.CodeConflict, "Email is already registered", http.StatusConflict)
)
