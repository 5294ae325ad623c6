package admin

import (
	"github.com/recycle-link/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetDashboardOverview 管理端运营总览，支持 force_refresh 跳过缓存
func (h *Handler) GetDashboardOverview(c *gin.Context) {
	forceRefresh := c.Query("force_refresh") == "true"

	overview, err := h.DashboardService.GetOverview(c.Request.Context(), forceRefresh)
	if err != nil {
		respondError(c, response.CodeInternal, "error.dashboard_fetch_failed", err)
		return
	}

	response.Success(c, overview)
}
