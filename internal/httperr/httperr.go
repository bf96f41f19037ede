package httperr

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
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

// Abort escreve o erro do catálogo e interrompe a cadeia de handlers.
func Abort(c *gin.Context, code string) {
	status, msg := Lookup(code)
	c.AbortWithStatusJSON(status, HTTPError{Code: code, Message: msg})
}

// Respond traduz err para a resposta padrão. Erros de negócio usam o
// catálogo; qualquer outro vira internal_error e é registrado em log.
func Respond(c *gin.Context, log *zap.Logger, err error) {
	if code, ok := CodeOf(err); ok {
		status, msg := Lookup(code)
		Write(c, status, code, msg)
		return
	}

	if errors.Is(err, context.DeadlineExceeded) {
		status, msg := Lookup(CodeNetwork)
		Write(c, status, CodeNetwork, msg)
		return
	}

	if log != nil {
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	status, msg := Lookup(CodeInternal)
	Write(c, status, CodeInternal, msg)
}
