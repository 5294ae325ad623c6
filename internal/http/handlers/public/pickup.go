package public

import (
	"strconv"
	"strings"
	"time"

	"github.com/recycle-link/internal/http/response"
	"github.com/recycle-link/internal/models"
	"github.com/recycle-link/internal/repository"
	"github.com/recycle-link/internal/service"

	"github.com/gin-gonic/gin"
)

// PickupItemRequest 回收条目请求
type PickupItemRequest struct {
	DeviceType     string      `json:"device_type" binding:"required"`
	Brand          string      `json:"brand"`
	Model          string      `json:"model"`
	Condition      string      `json:"condition"`
	Quantity       int         `json:"quantity"`
	Weight         float64     `json:"weight"`
	Materials      models.JSON `json:"materials"`
	HazardousParts []string    `json:"hazardous_parts"`
	Notes          string      `json:"notes"`
}

// CreatePickupRequest 创建回收单请求
type CreatePickupRequest struct {
	Address         string              `json:"address" binding:"required"`
	City            string              `json:"city" binding:"required"`
	State           string              `json:"state" binding:"required"`
	Pincode         string              `json:"pincode" binding:"required"`
	ContactPerson   string              `json:"contact_person"`
	ContactPhone    string              `json:"contact_phone"`
	Priority        string              `json:"priority"`
	PreferredDate   string              `json:"preferred_date"`
	PreferredSlot   string              `json:"preferred_slot"`
	EstimatedWeight float64             `json:"estimated_weight"`
	EstimatedValue  float64             `json:"estimated_value"`
	Notes           string              `json:"notes"`
	Items           []PickupItemRequest `json:"items" binding:"required"`
}

// UpdatePickupRequest 更新回收单请求（指针字段区分未填与清空）
type UpdatePickupRequest struct {
	Address       *string `json:"address"`
	City          *string `json:"city"`
	State         *string `json:"state"`
	Pincode       *string `json:"pincode"`
	ContactPerson *string `json:"contact_person"`
	ContactPhone  *string `json:"contact_phone"`
	Priority      *string `json:"priority"`
	PreferredDate *string `json:"preferred_date"`
	PreferredSlot *string `json:"preferred_slot"`
	Notes         *string `json:"notes"`
}

// CancelPickupRequest 取消回收单请求
type CancelPickupRequest struct {
	Reason string `json:"reason"`
}

// RatePickupRequest 评价回收单请求
type RatePickupRequest struct {
	Rating   int    `json:"rating" binding:"required"`
	Feedback string `json:"feedback"`
}

// CompletePickupRequest 完成回收单请求，称重与价值缺省取预估值
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

// parseDate 接受 RFC3339 或 YYYY-MM-DD 两种日期格式。
func parseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func pickupItemInputs(items []PickupItemRequest) []service.PickupItemInput {
	inputs := make([]service.PickupItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, service.PickupItemInput{
			DeviceType:     item.DeviceType,
			Brand:          item.Brand,
			Model:          item.Model,
			Condition:      item.Condition,
			Quantity:       item.Quantity,
			Weight:         item.Weight,
			Materials:      item.Materials,
			HazardousParts: item.HazardousParts,
			Notes:          item.Notes,
		})
	}
	return inputs
}

// CreatePickup 创建回收单
func (h *Handler) CreatePickup(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var req CreatePickupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	preferredDate, err := parseDate(req.PreferredDate)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	pickup, err := h.PickupService.Create(c.Request.Context(), actor, service.CreatePickupInput{
		Address:         req.Address,
		City:            req.City,
		State:           req.State,
		Pincode:         req.Pincode,
		ContactPerson:   req.ContactPerson,
		ContactPhone:    req.ContactPhone,
		Priority:        req.Priority,
		PreferredDate:   preferredDate,
		PreferredSlot:   req.PreferredSlot,
		EstimatedWeight: req.EstimatedWeight,
		EstimatedValue:  req.EstimatedValue,
		Notes:           req.Notes,
		Items:           pickupItemInputs(req.Items),
	})
	if err != nil {
		respondPickupCreateError(c, err)
		return
	}

	response.Success(c, pickup)
}

// ListMyPickups 请求者自己的回收单列表
func (h *Handler) ListMyPickups(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	filter := bindPickupListFilter(c)
	pickups, total, err := h.PickupService.ListForUser(actor, filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.pickup_fetch_failed", err)
		return
	}

	pagination := response.BuildPagination(filter.Page, filter.PageSize, total)
	response.SuccessWithPage(c, pickups, pagination)
}

// ListAssignedPickups 回收员被指派的回收单列表
func (h *Handler) ListAssignedPickups(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	filter := bindPickupListFilter(c)
	pickups, total, err := h.PickupService.ListForRecycler(actor, filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.pickup_fetch_failed", err)
		return
	}

	pagination := response.BuildPagination(filter.Page, filter.PageSize, total)
	response.SuccessWithPage(c, pickups, pagination)
}

func bindPickupListFilter(c *gin.Context) repository.PickupListFilter {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	return repository.PickupListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
		City:     strings.TrimSpace(c.Query("city")),
		Priority: strings.TrimSpace(c.Query("priority")),
	}
}

// GetPickup 回收单详情
func (h *Handler) GetPickup(c *gin.Context) {
	actor, ok := getActor(c)
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

// UpdatePickup 更新回收单可编辑字段
func (h *Handler) UpdatePickup(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parsePickupID(c)
	if !ok {
		return
	}

	var req UpdatePickupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	input := service.UpdatePickupInput{
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		Pincode:       req.Pincode,
		ContactPerson: req.ContactPerson,
		ContactPhone:  req.ContactPhone,
		Priority:      req.Priority,
		PreferredSlot: req.PreferredSlot,
		Notes:         req.Notes,
	}
	if req.PreferredDate != nil {
		date, err := parseDate(*req.PreferredDate)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		input.PreferredDate = date
	}

	pickup, err := h.PickupService.Update(actor, id, input)
	if err != nil {
		respondPickupError(c, err)
		return
	}

	response.Success(c, pickup)
}

// CancelPickup 取消回收单（仅 pending 状态）
func (h *Handler) CancelPickup(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parsePickupID(c)
	if !ok {
		return
	}

	// 取消原因可选，空请求体也允许
	var req CancelPickupRequest
	_ = c.ShouldBindJSON(&req)

	pickup, err := h.PickupService.Cancel(actor, id, req.Reason, time.Now())
	if err != nil {
		respondPickupError(c, err)
		return
	}

	response.Success(c, pickup)
}

// DeletePickup 删除回收单（仅 pending 状态，软删除）
func (h *Handler) DeletePickup(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parsePickupID(c)
	if !ok {
		return
	}

	if err := h.PickupService.Delete(actor, id); err != nil {
		respondPickupError(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

// RatePickup 请求者评价已完成的回收单
func (h *Handler) RatePickup(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parsePickupID(c)
	if !ok {
		return
	}

	var req RatePickupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	pickup, err := h.PickupService.Rate(actor, id, req.Rating, req.Feedback)
	if err != nil {
		respondPickupError(c, err)
		return
	}

	response.Success(c, pickup)
}

// AddPickupItem 向回收单追加条目
func (h *Handler) AddPickupItem(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parsePickupID(c)
	if !ok {
		return
	}

	var req PickupItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	item, err := h.PickupService.AddItem(actor, id, pickupItemInputs([]PickupItemRequest{req})[0])
	if err != nil {
		respondPickupError(c, err)
		return
	}

	response.Success(c, item)
}

// SchedulePickupRequest 回收员接单请求（调度即指派自己）
type SchedulePickupRequest struct {
	ScheduledDate string `json:"scheduled_date" binding:"required"`
	ScheduledSlot string `json:"scheduled_slot"`
}

// SchedulePickup 回收员调度待处理回收单并指派给自己（pending -> scheduled）
func (h *Handler) SchedulePickup(c *gin.Context) {
	actor, ok := getActor(c)
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
	scheduledDate, err := parseDate(req.ScheduledDate)
	if err != nil || scheduledDate == nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	pickup, err := h.PickupService.Schedule(actor, id, service.ScheduleInput{
		ScheduledDate: *scheduledDate,
		ScheduledSlot: req.ScheduledSlot,
	}, time.Now())
	if err != nil {
		respondPickupError(c, err)
		return
	}

	response.Success(c, pickup)
}

// StartPickup 回收员开始上门（scheduled -> in_progress）
func (h *Handler) StartPickup(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parsePickupID(c)
	if !ok {
		return
	}

	pickup, err := h.PickupService.Start(actor, id, time.Now())
	if err != nil {
		respondPickupError(c, err)
		return
	}

	response.Success(c, pickup)
}

// CompletePickup 回收员完成回收并触发奖励发放
func (h *Handler) CompletePickup(c *gin.Context) {
	actor, ok := getActor(c)
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
