package app_errors

import (
	"errors"
	"net/http"

	"taskboard/internal/util/logger"

	"github.com/gin-gonic/gin"
)

var statusByKind = map[Kind]int{
	KindNotFound:        http.StatusNotFound,
	KindForbidden:       http.StatusForbidden,
	KindUnauthenticated: http.StatusUnauthorized,
	KindConflict:        http.StatusConflict,
	KindValidation:      http.StatusBadRequest,
}

func StatusCode(err error) int {
	if status, ok := statusByKind[KindOf(err)]; ok {
		return status
	}

	return http.StatusInternalServerError
}

// RespondWithError writes err to the response. Internal errors are logged
// and replaced with a generic message.
func RespondWithError(ctx *gin.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		logger.GetLogger().Error(
			"request failed",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"error", err,
		)

		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
			"kind":  KindInternal,
		})
		return
	}

	ctx.JSON(StatusCode(appErr), gin.H{
		"error": appErr.Message,
		"kind":  appErr.Kind,
	})
}

func RespondWithValidationError(ctx *gin.Context, message string) {
	RespondWithError(ctx, Validation("%s", message))
}
