package admin

import (
	"errors"

	handlershared "github.com/recycle-link/internal/http/handlers/shared"
	"github.com/recycle-link/internal/http/response"
	"github.com/recycle-link/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func normalizePagination(page, pageSize int) (int, int) {
	return handlershared.NormalizePagination(page, pageSize)
}

// respondPickupError 管理端回收单操作的统一错误映射。
func respondPickupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		respondError(c, response.CodeBadRequest, "error.validation_failed", nil)
	case errors.Is(err, service.ErrPermissionDenied):
		respondError(c, response.CodeForbidden, "error.forbidden", nil)
	case errors.Is(err, service.ErrPickupNotFound):
		respondError(c, response.CodeNotFound, "error.pickup_not_found", nil)
	case errors.Is(err, service.ErrRecyclerNotFound):
		respondError(c, response.CodeNotFound, "error.recycler_not_found", nil)
	case errors.Is(err, service.ErrInvalidTransition):
		respondError(c, response.CodeConflict, "error.pickup_invalid_status", nil)
	default:
		respondError(c, response.CodeInternal, "error.pickup_fetch_failed", err)
	}
}
