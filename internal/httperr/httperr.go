package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// StatusOf maps an error kind to its HTTP status. Unclassified errors
// are internal.
func StatusOf(err error) int {
	kind, ok := apperr.KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindSession:
		return http.StatusUnauthorized
	case apperr.KindRemote:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// FromError writes err as an HTTPError and aborts the chain.
func FromError(c *gin.Context, err error) {
	status := StatusOf(err)
	code := apperr.CodeOf(err)
	if code == "" {
		code = "internal_error"
	}

	msg := code
	var ae *apperr.Error
	if errors.As(err, &ae) && ae.Err != nil && status != http.StatusInternalServerError {
		msg = ae.Err.Error()
	}
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}

	c.AbortWithStatusJSON(status, HTTPError{Code: code, Message: msg})
}
