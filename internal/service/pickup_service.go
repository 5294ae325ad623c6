package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/recycle-link/internal/cache"
	"github.com/recycle-link/internal/constants"
	"github.com/recycle-link/internal/geocode"
	"github.com/recycle-link/internal/logger"
	"github.com/recycle-link/internal/models"
	"github.com/recycle-link/internal/queue"
	"github.com/recycle-link/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	trackingNumberRetries = 3
	reminderLeadTime      = 2 * time.Hour
)

var pincodePattern = regexp.MustCompile(`^[0-9]{6}$`)

// PickupService 回收单服务
type PickupService struct {
	pickupRepo    repository.PickupRepository
	itemRepo      repository.EWasteItemRepository
	userRepo      repository.UserRepository
	rewardService *RewardService
	geocoder      geocode.Geocoder
	queueClient   *queue.Client
}

// NewPickupService 创建回收单服务
func NewPickupService(
	pickupRepo repository.PickupRepository,
	itemRepo repository.EWasteItemRepository,
	userRepo repository.UserRepository,
	rewardService *RewardService,
	geocoder geocode.Geocoder,
	queueClient *queue.Client,
) *PickupService {
	if geocoder == nil {
		geocoder = geocode.Noop{}
	}
	return &PickupService{
		pickupRepo:    pickupRepo,
		itemRepo:      itemRepo,
		userRepo:      userRepo,
		rewardService: rewardService,
		geocoder:      geocoder,
		queueClient:   queueClient,
	}
}

// PickupItemInput 电子废弃物条目输入
type PickupItemInput struct {
	DeviceType     string
	Brand          string
	Model          string
	Condition      string
	Quantity       int
	Weight         float64
	Materials      models.JSON
	HazardousParts []string
	Notes          string
}

// CreatePickupInput 创建回收单输入
type CreatePickupInput struct {
	Address         string
	City            string
	State           string
	Pincode         string
	ContactPerson   string
	ContactPhone    string
	Priority        string
	PreferredDate   *time.Time
	PreferredSlot   string
	EstimatedWeight float64
	EstimatedValue  float64
	Notes           string
	Items           []PickupItemInput
}

// UpdatePickupInput 更新回收单输入（nil 字段表示不修改）
type UpdatePickupInput struct {
	Address       *string
	City          *string
	State         *string
	Pincode       *string
	ContactPerson *string
	ContactPhone  *string
	Priority      *string
	PreferredDate *time.Time
	PreferredSlot *string
	Notes         *string
}

// ScheduleInput 调度输入
type ScheduleInput struct {
	RecyclerID    uint
	ScheduledDate time.Time
	ScheduledSlot string
}

// CompleteInput 完成输入：重量与价值缺省取回收单的预估值
type CompleteInput struct {
	ActualWeight    float64
	ActualValue     float64
	CompletionNotes string
}

// Create 创建回收单：地理编码失败只降级不阻断
func (s *PickupService) Create(ctx context.Context, actor Actor, input CreatePickupInput) (*models.Pickup, error) {
	if err := validateCreateInput(&input); err != nil {
		return nil, err
	}

	pickup := &models.Pickup{
		UserID:          actor.ID,
		Status:          constants.PickupStatusPending,
		Priority:        input.Priority,
		Address:         input.Address,
		City:            input.City,
		State:           input.State,
		Pincode:         input.Pincode,
		ContactPerson:   input.ContactPerson,
		ContactPhone:    input.ContactPhone,
		ScheduledDate:   input.PreferredDate,
		ScheduledSlot:   input.PreferredSlot,
		EstimatedWeight: models.NewQuantityFromFloat(input.EstimatedWeight),
		EstimatedValue:  models.NewMoneyFromDecimal(decimal.NewFromFloat(input.EstimatedValue)),
		Notes:           input.Notes,
	}

	for attempt := 0; attempt < trackingNumberRetries; attempt++ {
		pickup.TrackingNumber = generateTrackingNumber()
		conflict, err := s.pickupRepo.GetByTrackingNumber(pickup.TrackingNumber)
		if err != nil {
			return nil, err
		}
		if conflict == nil {
			break
		}
	}

	// 地理编码尽力而为：失败记录日志后继续，坐标留空
	coords, err := s.geocoder.Geocode(ctx, geocode.Address{
		Line:    input.Address,
		City:    input.City,
		State:   input.State,
		Pincode: input.Pincode,
	})
	if err != nil {
		logger.Warnw("pickup_geocode_failed_degraded",
			"tracking_number", pickup.TrackingNumber,
			"city", input.City,
			"error", err,
		)
	} else if coords != nil {
		pickup.Latitude = &coords.Latitude
		pickup.Longitude = &coords.Longitude
	}

	items := buildItems(input.Items)
	if err := models.DB.Transaction(func(tx *gorm.DB) error {
		return s.pickupRepo.WithTx(tx).Create(pickup, items)
	}); err != nil {
		return nil, err
	}

	s.notifyStatus(pickup.ID, pickup.Status)
	logger.Infow("pickup_created",
		"pickup_id", pickup.ID,
		"tracking_number", pickup.TrackingNumber,
		"user_id", actor.ID,
		"items", len(items),
	)
	return s.pickupRepo.GetByID(pickup.ID)
}

// GetForActor 获取回收单详情（请求者、指派回收员、管理员可见）
func (s *PickupService) GetForActor(actor Actor, id uint) (*models.Pickup, error) {
	pickup, err := s.pickupRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if pickup == nil {
		return nil, ErrPickupNotFound
	}
	if !actor.CanViewPickup(pickup) {
		return nil, ErrPermissionDenied
	}
	return pickup, nil
}

// GetByTrackingNumber 公开追踪查询
func (s *PickupService) GetByTrackingNumber(trackingNumber string) (*models.Pickup, error) {
	trackingNumber = strings.ToUpper(strings.TrimSpace(trackingNumber))
	if trackingNumber == "" {
		return nil, ErrPickupNotFound
	}
	pickup, err := s.pickupRepo.GetByTrackingNumber(trackingNumber)
	if err != nil {
		return nil, err
	}
	if pickup == nil {
		return nil, ErrPickupNotFound
	}
	return pickup, nil
}

// ListForUser 请求者自己的回收单列表
func (s *PickupService) ListForUser(actor Actor, filter repository.PickupListFilter) ([]models.Pickup, int64, error) {
	filter.UserID = actor.ID
	filter.WithItems = true
	return s.pickupRepo.ListByUser(filter)
}

// ListForRecycler 回收员被指派的回收单列表
func (s *PickupService) ListForRecycler(actor Actor, filter repository.PickupListFilter) ([]models.Pickup, int64, error) {
	filter.RecyclerID = actor.ID
	filter.WithItems = true
	return s.pickupRepo.ListByRecycler(filter)
}

// ListAdmin 管理端回收单列表
func (s *PickupService) ListAdmin(filter repository.PickupListFilter) ([]models.Pickup, int64, error) {
	return s.pickupRepo.ListAdmin(filter)
}

// Update 更新可编辑字段；终态回收单不可更新
func (s *PickupService) Update(actor Actor, id uint, input UpdatePickupInput) (*models.Pickup, error) {
	pickup, err := s.pickupRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if pickup == nil {
		return nil, ErrPickupNotFound
	}
	if !actor.CanUpdatePickup(pickup) {
		return nil, ErrPermissionDenied
	}
	if pickup.IsTerminal() {
		return nil, ErrInvalidTransition
	}

	updates := map[string]interface{}{}
	if input.Address != nil {
		if strings.TrimSpace(*input.Address) == "" {
			return nil, fmt.Errorf("%w: address is required", ErrValidation)
		}
		updates["address"] = strings.TrimSpace(*input.Address)
	}
	if input.City != nil {
		updates["city"] = strings.TrimSpace(*input.City)
	}
	if input.State != nil {
		updates["state"] = strings.TrimSpace(*input.State)
	}
	if input.Pincode != nil {
		if !pincodePattern.MatchString(*input.Pincode) {
			return nil, fmt.Errorf("%w: pincode must be 6 digits", ErrValidation)
		}
		updates["pincode"] = *input.Pincode
	}
	if input.ContactPerson != nil {
		updates["contact_person"] = strings.TrimSpace(*input.ContactPerson)
	}
	if input.ContactPhone != nil {
		updates["contact_phone"] = strings.TrimSpace(*input.ContactPhone)
	}
	if input.Priority != nil {
		if !isValidPriority(*input.Priority) {
			return nil, fmt.Errorf("%w: unknown priority", ErrValidation)
		}
		updates["priority"] = *input.Priority
	}
	if input.PreferredDate != nil {
		updates["scheduled_date"] = *input.PreferredDate
	}
	if input.PreferredSlot != nil {
		updates["scheduled_slot"] = strings.TrimSpace(*input.PreferredSlot)
	}
	if input.Notes != nil {
		updates["notes"] = strings.TrimSpace(*input.Notes)
	}
	if len(updates) == 0 {
		return pickup, nil
	}
	updates["updated_at"] = time.Now()

	if err := s.pickupRepo.Updates(pickup.ID, updates); err != nil {
		return nil, err
	}
	return s.pickupRepo.GetByID(pickup.ID)
}

// Schedule 调度回收单：pending -> scheduled，乐观并发只允许一个赢家
// 回收员调度即指派自己；管理员可显式指派任意回收员
func (s *PickupService) Schedule(actor Actor, id uint, input ScheduleInput, now time.Time) (*models.Pickup, error) {
	pickup, err := s.pickupRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if pickup == nil {
		return nil, ErrPickupNotFound
	}
	if !actor.CanSchedulePickup(pickup) {
		return nil, ErrPermissionDenied
	}
	recyclerID := input.RecyclerID
	if !actor.IsAdmin() {
		if recyclerID != 0 && recyclerID != actor.ID {
			return nil, ErrPermissionDenied
		}
		recyclerID = actor.ID
	}
	if recyclerID == 0 {
		return nil, fmt.Errorf("%w: recycler is required", ErrValidation)
	}
	if !input.ScheduledDate.After(now) {
		return nil, fmt.Errorf("%w: scheduled date must be in the future", ErrValidation)
	}

	recycler, err := s.userRepo.GetByIDAndRole(recyclerID, constants.RoleRecycler)
	if err != nil {
		return nil, err
	}
	if recycler == nil {
		return nil, ErrRecyclerNotFound
	}

	updated, err := s.pickupRepo.UpdateStatusFrom(pickup.ID, constants.PickupStatusPending, constants.PickupStatusScheduled, map[string]interface{}{
		"recycler_id":    recyclerID,
		"scheduled_date": input.ScheduledDate,
		"scheduled_slot": strings.TrimSpace(input.ScheduledSlot),
		"updated_at":     now,
	})
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrInvalidTransition
	}

	s.afterStatusChange(pickup, constants.PickupStatusScheduled)
	if delay := time.Until(input.ScheduledDate.Add(-reminderLeadTime)); delay > 0 && s.queueClient.Enabled() {
		if err := s.queueClient.EnqueuePickupReminder(queue.PickupReminderPayload{PickupID: pickup.ID}, delay); err != nil {
			logger.Warnw("pickup_enqueue_reminder_failed", "pickup_id", pickup.ID, "error", err)
		}
	}
	logger.Infow("pickup_scheduled",
		"pickup_id", pickup.ID,
		"tracking_number", pickup.TrackingNumber,
		"recycler_id", recyclerID,
	)
	return s.pickupRepo.GetByID(pickup.ID)
}

// Start 回收员开始上门处理：scheduled -> in_progress
func (s *PickupService) Start(actor Actor, id uint, now time.Time) (*models.Pickup, error) {
	pickup, err := s.pickupRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if pickup == nil {
		return nil, ErrPickupNotFound
	}
	if !actor.CanCompletePickup(pickup) {
		return nil, ErrPermissionDenied
	}

	updated, err := s.pickupRepo.UpdateStatusFrom(pickup.ID, constants.PickupStatusScheduled, constants.PickupStatusInProgress, map[string]interface{}{
		"updated_at": now,
	})
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrInvalidTransition
	}

	s.afterStatusChange(pickup, constants.PickupStatusInProgress)
	return s.pickupRepo.GetByID(pickup.ID)
}

// Complete 完成回收单并发放奖励
// 未提供实际称重/价值时取回收单的预估值；预测调用在事务外完成，
// 状态迁移、称重与价值写入、用户计数和奖励落库在同一事务内完成
func (s *PickupService) Complete(ctx context.Context, actor Actor, id uint, input CompleteInput, now time.Time) (*models.Pickup, error) {
	pickup, err := s.pickupRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if pickup == nil {
		return nil, ErrPickupNotFound
	}
	if !actor.CanCompletePickup(pickup) {
		return nil, ErrPermissionDenied
	}
	if input.ActualWeight < 0 {
		return nil, fmt.Errorf("%w: actual weight must not be negative", ErrValidation)
	}
	if input.ActualValue < 0 {
		return nil, fmt.Errorf("%w: actual value must not be negative", ErrValidation)
	}
	fromStatus := pickup.Status
	if !CanTransition(fromStatus, constants.PickupStatusCompleted) {
		return nil, ErrInvalidTransition
	}

	user, err := s.userRepo.GetByID(pickup.UserID)
	if err != nil {
		return nil, err
	}
	items, err := s.itemRepo.ListByPickup(pickup.ID)
	if err != nil {
		return nil, err
	}

	weight := pickup.EstimatedWeight.Decimal
	if input.ActualWeight > 0 {
		weight = decimal.NewFromFloat(input.ActualWeight).Round(2)
	}
	value := pickup.EstimatedValue.Decimal
	if input.ActualValue > 0 {
		value = decimal.NewFromFloat(input.ActualValue).Round(2)
	}

	rewardValue, rewardSource := s.rewardService.ComputeValue(ctx, pickup, user, items, weight)

	var reward *models.Reward
	if err := models.DB.Transaction(func(tx *gorm.DB) error {
		updated, err := s.pickupRepo.WithTx(tx).UpdateStatusFrom(pickup.ID, fromStatus, constants.PickupStatusCompleted, map[string]interface{}{
			"actual_weight":    weight,
			"actual_value":     value,
			"completion_notes": strings.TrimSpace(input.CompletionNotes),
			"completed_at":     now,
			"updated_at":       now,
		})
		if err != nil {
			return err
		}
		if !updated {
			return ErrInvalidTransition
		}
		if err := s.userRepo.WithTx(tx).IncrementTotalPickups(pickup.UserID); err != nil {
			return err
		}
		reward, err = s.rewardService.IssueForPickup(tx, pickup, rewardValue, rewardSource, now)
		return err
	}); err != nil {
		return nil, err
	}

	s.rewardService.ScheduleExpiry(reward)
	s.afterStatusChange(pickup, constants.PickupStatusCompleted)
	logger.Infow("pickup_completed",
		"pickup_id", pickup.ID,
		"tracking_number", pickup.TrackingNumber,
		"actual_weight", weight.StringFixed(2),
		"reward_id", reward.ID,
		"reward_value", reward.Value.String(),
		"reward_source", reward.Source,
	)
	return s.pickupRepo.GetByID(pickup.ID)
}

// Cancel 取消回收单：仅 pending 可取消
func (s *PickupService) Cancel(actor Actor, id uint, reason string, now time.Time) (*models.Pickup, error) {
	pickup, err := s.pickupRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if pickup == nil {
		return nil, ErrPickupNotFound
	}
	if !actor.CanCancelPickup(pickup) {
		return nil, ErrPermissionDenied
	}

	updated, err := s.pickupRepo.UpdateStatusFrom(pickup.ID, constants.PickupStatusPending, constants.PickupStatusCancelled, map[string]interface{}{
		"cancel_reason": strings.TrimSpace(reason),
		"cancelled_at":  now,
		"updated_at":    now,
	})
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrInvalidTransition
	}

	s.afterStatusChange(pickup, constants.PickupStatusCancelled)
	logger.Infow("pickup_cancelled", "pickup_id", pickup.ID, "tracking_number", pickup.TrackingNumber)
	return s.pickupRepo.GetByID(pickup.ID)
}

// Delete 删除回收单：仅 pending 可删除（软删除）
func (s *PickupService) Delete(actor Actor, id uint) error {
	pickup, err := s.pickupRepo.GetByID(id)
	if err != nil {
		return err
	}
	if pickup == nil {
		return ErrPickupNotFound
	}
	if !actor.CanDeletePickup(pickup) {
		return ErrPermissionDenied
	}
	if pickup.Status != constants.PickupStatusPending {
		return ErrPickupNotPending
	}
	if err := s.pickupRepo.Delete(pickup.ID); err != nil {
		return err
	}
	cache.InvalidateTrackView(context.Background(), pickup.TrackingNumber)
	logger.Infow("pickup_deleted", "pickup_id", pickup.ID, "tracking_number", pickup.TrackingNumber)
	return nil
}

// Rate 评分：仅请求者、仅已完成、不可重复评分
func (s *PickupService) Rate(actor Actor, id uint, rating int, feedback string) (*models.Pickup, error) {
	pickup, err := s.pickupRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if pickup == nil {
		return nil, ErrPickupNotFound
	}
	if !actor.CanRatePickup(pickup) {
		return nil, ErrPermissionDenied
	}
	if pickup.Status != constants.PickupStatusCompleted {
		return nil, ErrPickupNotCompleted
	}
	if pickup.Rating != nil {
		return nil, ErrPickupAlreadyRated
	}
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}

	if err := s.pickupRepo.Updates(pickup.ID, map[string]interface{}{
		"rating":     rating,
		"feedback":   strings.TrimSpace(feedback),
		"updated_at": time.Now(),
	}); err != nil {
		return nil, err
	}
	return s.pickupRepo.GetByID(pickup.ID)
}

// AddItem 向未进入终态的回收单追加条目
func (s *PickupService) AddItem(actor Actor, pickupID uint, input PickupItemInput) (*models.EWasteItem, error) {
	pickup, err := s.pickupRepo.GetByID(pickupID)
	if err != nil {
		return nil, err
	}
	if pickup == nil {
		return nil, ErrPickupNotFound
	}
	if !actor.CanUpdatePickup(pickup) {
		return nil, ErrPermissionDenied
	}
	if pickup.IsTerminal() {
		return nil, ErrInvalidTransition
	}
	if err := validateItemInput(&input); err != nil {
		return nil, err
	}

	items := buildItems([]PickupItemInput{input})
	item := &items[0]
	item.PickupID = pickup.ID
	if err := s.itemRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *PickupService) afterStatusChange(pickup *models.Pickup, status string) {
	if pickup == nil {
		return
	}
	cache.InvalidateTrackView(context.Background(), pickup.TrackingNumber)
	s.notifyStatus(pickup.ID, status)
}

func (s *PickupService) notifyStatus(pickupID uint, status string) {
	if !s.queueClient.Enabled() {
		return
	}
	if err := s.queueClient.EnqueuePickupStatusNotify(queue.PickupStatusNotifyPayload{
		PickupID: pickupID,
		Status:   status,
	}); err != nil {
		logger.Warnw("pickup_enqueue_status_notify_failed", "pickup_id", pickupID, "status", status, "error", err)
	}
}

func validateCreateInput(input *CreatePickupInput) error {
	input.Address = strings.TrimSpace(input.Address)
	input.City = strings.TrimSpace(input.City)
	input.State = strings.TrimSpace(input.State)
	input.Pincode = strings.TrimSpace(input.Pincode)
	if input.Address == "" || input.City == "" || input.State == "" {
		return fmt.Errorf("%w: address, city and state are required", ErrValidation)
	}
	if !pincodePattern.MatchString(input.Pincode) {
		return fmt.Errorf("%w: pincode must be 6 digits", ErrValidation)
	}
	if input.EstimatedWeight < 0 {
		return fmt.Errorf("%w: estimated weight cannot be negative", ErrValidation)
	}
	if input.EstimatedValue < 0 {
		return fmt.Errorf("%w: estimated value cannot be negative", ErrValidation)
	}
	if input.Priority == "" {
		input.Priority = constants.PickupPriorityMedium
	}
	if !isValidPriority(input.Priority) {
		return fmt.Errorf("%w: unknown priority", ErrValidation)
	}
	if len(input.Items) == 0 {
		return fmt.Errorf("%w: at least one e-waste item is required", ErrValidation)
	}
	for i := range input.Items {
		if err := validateItemInput(&input.Items[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateItemInput(input *PickupItemInput) error {
	if !isValidDeviceType(input.DeviceType) {
		return fmt.Errorf("%w: unsupported device type %q", ErrValidation, input.DeviceType)
	}
	if !isValidCondition(input.Condition) {
		return fmt.Errorf("%w: unknown item condition %q", ErrValidation, input.Condition)
	}
	if input.Quantity <= 0 {
		input.Quantity = 1
	}
	if input.Weight < 0 {
		return fmt.Errorf("%w: item weight cannot be negative", ErrValidation)
	}
	return nil
}

func buildItems(inputs []PickupItemInput) []models.EWasteItem {
	items := make([]models.EWasteItem, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, models.EWasteItem{
			DeviceType:     in.DeviceType,
			Brand:          strings.TrimSpace(in.Brand),
			Model:          strings.TrimSpace(in.Model),
			Condition:      in.Condition,
			Quantity:       in.Quantity,
			Weight:         models.NewQuantityFromFloat(in.Weight),
			Materials:      in.Materials,
			HazardousParts: in.HazardousParts,
			Notes:          strings.TrimSpace(in.Notes),
		})
	}
	return items
}

func isValidDeviceType(deviceType string) bool {
	for _, known := range constants.DeviceTypes {
		if deviceType == known {
			return true
		}
	}
	return false
}

func isValidCondition(condition string) bool {
	switch condition {
	case constants.ItemConditionWorking,
		constants.ItemConditionPartiallyWorking,
		constants.ItemConditionNotWorking,
		constants.ItemConditionScrap:
		return true
	}
	return false
}

func isValidPriority(priority string) bool {
	switch priority {
	case constants.PickupPriorityLow,
		constants.PickupPriorityMedium,
		constants.PickupPriorityHigh,
		constants.PickupPriorityUrgent:
		return true
	}
	return false
}
