package web

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/adboard/internal/common"
	"github.com/gin-gonic/gin"
)

// Response is the JSON envelope of the /api routes.
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func failure(c *gin.Context, status int, code, message string) {
	c.JSON(status, Response{Success: false, Error: &ErrorInfo{Code: code, Message: message}})
}

// StatusFor maps an operation error to its HTTP status and error code.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, "BAD_REQUEST"
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict, "CONFLICT"
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrorInvalidCredentials):
		return http.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}
