package utils

import "net/http"

// AppError is an error that already knows the HTTP status it should surface as.
type AppError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func ErrorHandler(status int, message string) *AppError {
	return &AppError{Status: status, Message: message}
}

func NotFound(message string) *AppError {
	return ErrorHandler(http.StatusNotFound, message)
}

func Unauthorized(message string) *AppError {
	return ErrorHandler(http.StatusUnauthorized, message)
}

func BadRequest(message string) *AppError {
	return ErrorHandler(http.StatusBadRequest, message)
}

func Conflict(message string) *AppError {
	return ErrorHandler(http.StatusConflict, message)
}
