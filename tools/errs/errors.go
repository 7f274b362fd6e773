package errs

import "net/http"

// API error taxonomy. Codes double as HTTP status codes for the REST layer.
var (
	ErrBadRequest         = NewCodeError(http.StatusBadRequest, "bad request")
	ErrMissingFields      = NewCodeError(http.StatusBadRequest, "all fields are required")
	ErrPasswordTooShort   = NewCodeError(http.StatusBadRequest, "password must be at least 6 characters")
	ErrEmailTaken         = NewCodeError(http.StatusBadRequest, "email already exists")
	ErrInvalidCredentials = NewCodeError(http.StatusBadRequest, "invalid credentials")
	ErrUnauthorized       = NewCodeError(http.StatusUnauthorized, "unauthorized - no token provided")
	ErrInvalidToken       = NewCodeError(http.StatusUnauthorized, "unauthorized - invalid token")
	ErrUserNotFound       = NewCodeError(http.StatusNotFound, "user not found")
	ErrInternal           = NewCodeError(http.StatusInternalServerError, "internal server error")
)
