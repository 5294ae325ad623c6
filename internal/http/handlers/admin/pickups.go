package admin

import (
	"strconv"
	"strings"
	"time"

	"github.com/recycle-link/internal/constants"
	"github.com/recycle-link/internal/http/response"
	"github.com/recycle-link/internal/repository"
	"github.com/recycle-link/internal/service"

	"github.com/gin-gonic/gin"
)

// SchedulePickupRequest 调度回收单请求
type SchedulePickupRequest struct {
	RecyclerID    uint   `json:"recycler_id" binding:"required"`
	ScheduledDate string `json:"scheduled_date" binding:"required"`
	ScheduledSlot string `json:"scheduled_slot"`
}

// UpdatePickupStatusRequest 管理端状态流转请求
type UpdatePickupStatusRequest struct {
	Status          string  `json:"status" binding:"required"`
	Reason          string  `json:"reason"`
	ActualWeight    float64 `json:"actual_weight"`
	ActualValue     float64 `json:"actual_value"`
	CompletionNotes string  `json:"completion_notes"`
}

// CompletePickupRequest 管理端代为完成请求，称重与价值缺省取预估值
type CompletePickupRequest struct {
	ActualWeight    float64 `json:"actual_weight" binding:"omitempty,gt=0"`
	ActualValue     float64 `json:"actual_value" binding:"omitempty,gt=0"`
	CompletionNotes string  `json:"completion_notes"`
}

func parsePickupID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(id), true
}

func parseScheduleDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// ListPickups 管理端回收单列表
func (h *Handler) ListPickups(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.PickupListFilter{
		Page:           page,
		PageSize:       pageSize,
		Status:         strings.TrimSpace(c.Query("status")),
		City:           strings.TrimSpace(c.Query("city")),
		Priority:       strings.TrimSpace(c.Query("priority")),
		TrackingNumber: strings.TrimSpace(c.Query("tracking_number")),
		WithItems:      c.Query("with_items") == "true",
	}
	if userID, err := strconv.ParseUint(c.Query("user_id"), 10, 64); err == nil {
		filter.UserID = uint(userID)
	}
	if recyclerID, err := strconv.ParseUint(c.Query("recycler_id"), 10, 64); err == nil {
		filter.RecyclerID = uint(recyclerID)
	}

	pickups, total, err := h.PickupService.ListAdmin(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.pickup_fetch_failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, pickups, pagination)
}

// GetPickup 管理端回收单详情
func (h *Handler) GetPickup(c *gin.Context) {
	actor, ok := getAdminActor(c)
	if !ok {
		return
	}
	id, ok := parsePickupID(c)
	if !ok {
		return
	}

	pickup, err := h.PickupService.GetForActor(actor, id)
	if err != nil {
		respondPickupError(c, err)
		return
	}

	response.Success(c, pickup)
}

// SchedulePickup 调度回收单并指派回收员（pending -> scheduled）
func (h *Handler) SchedulePickup(c *gin.Context) {
	actor, ok := getAdminActor(c)
	if !ok {
		return
	}
	id, ok := parsePickupID(c)
	if !ok {
		return
	}

	var req SchedulePickupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	scheduledDate, err := parseScheduleDate(req.ScheduledDate)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	pickup, err := h.PickupService.Schedule(actor, id, service.ScheduleInput{
		RecyclerID:    req.RecyclerID,
		ScheduledDate: scheduledDate,
		ScheduledSlot: req.ScheduledSlot,
	}, time.Now())
	if err != nil {
		respondPickupError(c, err)
		return
	}

	response.Success(c, pickup)
}

// UpdatePickupStatus 管理端状态流转：按目标状态路由到对应操作
func (h *Handler) UpdatePickupStatus(c *gin.Context) {
	actor, ok := getAdminActor(c)
	if !ok {
		return
	}
	id, ok := parsePickupID(c)
	if !ok {
		return
	}

	var req UpdatePickupStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	now := time.Now()
	switch strings.TrimSpace(req.Status) {
	case constants.PickupStatusInProgress:
		pickup, err := h.PickupService.Start(actor, id, now)
		if err != nil {
			respondPickupError(c, err)
			return
		}
		response.Success(c, pickup)
	case constants.PickupStatusCompleted:
		pickup, err := h.PickupService.Complete(c.Request.Context(), actor, id, service.CompleteInput{
			ActualWeight:    req.ActualWeight,
			ActualValue:     req.ActualValue,
			CompletionNotes: req.CompletionNotes,
		}, now)
		if err != nil {
			respondPickupError(c, err)
			return
		}
		response.Success(c, pickup)
	case constants.PickupStatusCancelled:
		pickup, err := h.PickupService.Cancel(actor, id, req.Reason, now)
		if err != nil {
			respondPickupError(c, err)
			return
		}
		response.Success(c, pickup)
	default:
		respondError(c, response.CodeBadRequest, "error.pickup_invalid_status", nil)
	}
}

// CompletePickup 管理端代为完成回收单
func (h *Handler) CompletePickup(c *gin.Context) {
	actor, ok := getAdminActor(c)
	if !ok {
		return
	}
	id, ok := parsePickupID(c)
	if !ok {
		return
	}

	// 称重与价值可选，空请求体也允许（缺省取预估值）
	var req CompletePickupRequest
	_ = c.ShouldBindJSON(&req)

	pickup, err := h.PickupService.Complete(c.Request.Context(), actor, id, service.CompleteInput{
		ActualWeight:    req.ActualWeight,
		ActualValue:     req.ActualValue,
		CompletionNotes: req.CompletionNotes,
	}, time.Now())
	if err != nil {
		respondPickupError(c, err)
		return
	}

	response.Success(c, pickup)
}
