package public

import (
	"time"

	"github.com/recycle-link/internal/cache"
	"github.com/recycle-link/internal/http/response"
	"github.com/recycle-link/internal/models"

	"github.com/gin-gonic/gin"
)

// TrackPickup 公开追踪查询：按追踪号返回只读快照，不要求登录
func (h *Handler) TrackPickup(c *gin.Context) {
	trackingNumber := c.Param("tracking_number")

	if view, ok := cache.GetTrackView(c.Request.Context(), trackingNumber); ok {
		response.Success(c, view)
		return
	}

	pickup, err := h.PickupService.GetByTrackingNumber(trackingNumber)
	if err != nil {
		respondWithMappedError(c, err, pickupCommonErrorRules, response.CodeInternal, "error.pickup_fetch_failed")
		return
	}

	view := buildTrackView(pickup)
	cache.SetTrackView(c.Request.Context(), pickup.TrackingNumber, view, h.Config.Pickup.TrackCacheSeconds)
	response.Success(c, view)
}

// buildTrackView 只暴露可公开字段，避免泄露请求者信息
func buildTrackView(pickup *models.Pickup) *cache.TrackView {
	view := &cache.TrackView{
		TrackingNumber: pickup.TrackingNumber,
		Status:         pickup.Status,
		City:           pickup.City,
		State:          pickup.State,
		ScheduledSlot:  pickup.ScheduledSlot,
		UpdatedAt:      pickup.UpdatedAt.Format(time.RFC3339),
	}
	if pickup.ScheduledDate != nil {
		date := pickup.ScheduledDate.Format("2006-01-02")
		view.ScheduledDate = &date
	}
	if pickup.CompletedAt != nil {
		completed := pickup.CompletedAt.Format(time.RFC3339)
		view.CompletedAt = &completed
	}
	return view
}
