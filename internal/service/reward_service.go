package service

import (
	"context"
	"fmt"
	"time"

	"github.com/recycle-link/internal/config"
	"github.com/recycle-link/internal/constants"
	"github.com/recycle-link/internal/logger"
	"github.com/recycle-link/internal/models"
	"github.com/recycle-link/internal/predictor"
	"github.com/recycle-link/internal/queue"
	"github.com/recycle-link/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const redemptionCodeRetries = 3

// IncentivePredictor 激励预测接口（便于测试替换实现）
type IncentivePredictor interface {
	PredictIncentive(ctx context.Context, input predictor.Input) (*predictor.Result, error)
}

// RewardService 奖励服务：预测优先、兜底公式保证计算永不失败
type RewardService struct {
	rewardRepo  repository.RewardRepository
	userRepo    repository.UserRepository
	predictor   IncentivePredictor
	queueClient *queue.Client
	ratePerKG   decimal.Decimal
	currency    string
	expiryDays  int
}

// NewRewardService 创建奖励服务
func NewRewardService(
	rewardRepo repository.RewardRepository,
	userRepo repository.UserRepository,
	incentivePredictor IncentivePredictor,
	queueClient *queue.Client,
	cfg config.RewardConfig,
) *RewardService {
	rate, err := decimal.NewFromString(cfg.RatePerKG)
	if err != nil || rate.IsNegative() {
		rate = decimal.NewFromInt(constants.RewardFallbackRatePerKG)
	}
	currency := cfg.Currency
	if currency == "" {
		currency = constants.RewardCurrencyDefault
	}
	expiryDays := cfg.ExpiryDays
	if expiryDays <= 0 {
		expiryDays = constants.RewardExpiryDays
	}
	return &RewardService{
		rewardRepo:  rewardRepo,
		userRepo:    userRepo,
		predictor:   incentivePredictor,
		queueClient: queueClient,
		ratePerKG:   rate,
		currency:    currency,
		expiryDays:  expiryDays,
	}
}

// ComputeValue 计算奖励金额：预测服务可用则采用预测值，任何失败都回退公式
// 回退公式：实际重量 × 每公斤单价。返回金额与计算来源。
func (s *RewardService) ComputeValue(ctx context.Context, pickup *models.Pickup, user *models.User, items []models.EWasteItem, weight decimal.Decimal) (decimal.Decimal, string) {
	fallback := weight.Mul(s.ratePerKG).Round(2)

	if s.predictor == nil {
		return fallback, constants.RewardSourceFallback
	}

	deviceTypes := make([]string, 0, len(items))
	for _, item := range items {
		deviceTypes = append(deviceTypes, item.DeviceType)
	}
	frequency := 0
	if user != nil {
		frequency = user.TotalPickups
	}
	input := predictor.Input{
		WeightKG:      weight.InexactFloat64(),
		DeviceTypes:   deviceTypes,
		City:          pickup.City,
		State:         pickup.State,
		UserFrequency: frequency,
	}

	result, err := s.predictor.PredictIncentive(ctx, input)
	if err != nil {
		logger.Warnw("reward_predictor_unavailable_fallback",
			"pickup_id", pickup.ID,
			"tracking_number", pickup.TrackingNumber,
			"error", err,
		)
		return fallback, constants.RewardSourceFallback
	}
	return decimal.NewFromFloat(result.PredictedValue).Round(2), constants.RewardSourcePredictor
}

// IssueForPickup 在完成回收单的事务内落库奖励记录
// 金额与来源须在事务外预先算好（ComputeValue），事务内不做任何外部调用
// 回收单唯一约束保证至多一条；重复调用返回已存在记录
func (s *RewardService) IssueForPickup(tx *gorm.DB, pickup *models.Pickup, value decimal.Decimal, source string, now time.Time) (*models.Reward, error) {
	repo := s.rewardRepo
	if tx != nil {
		repo = s.rewardRepo.WithTx(tx)
	}

	existing, err := repo.GetByPickupID(pickup.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	expiresAt := now.AddDate(0, 0, s.expiryDays)

	reward := &models.Reward{
		UserID:      pickup.UserID,
		PickupID:    pickup.ID,
		Type:        constants.RewardTypePoints,
		Status:      constants.RewardStatusActive,
		Value:       models.NewMoneyFromDecimal(value.Round(2)),
		Currency:    s.currency,
		Source:      source,
		Description: fmt.Sprintf("Recycling reward for pickup %s", pickup.TrackingNumber),
		IssuedAt:    now,
		ExpiresAt:   &expiresAt,
	}

	for attempt := 0; attempt < redemptionCodeRetries; attempt++ {
		reward.RedemptionCode = generateRedemptionCode()
		conflict, err := repo.GetByRedemptionCode(reward.RedemptionCode)
		if err != nil {
			return nil, err
		}
		if conflict == nil {
			break
		}
	}

	if err := repo.Create(reward); err != nil {
		return nil, err
	}
	return reward, nil
}

// ScheduleExpiry 提交异步到期任务（事务提交后调用）
func (s *RewardService) ScheduleExpiry(reward *models.Reward) {
	if reward == nil || reward.ExpiresAt == nil || !s.queueClient.Enabled() {
		return
	}
	delay := time.Until(*reward.ExpiresAt)
	if err := s.queueClient.EnqueueRewardExpire(queue.RewardExpirePayload{RewardID: reward.ID}, delay); err != nil {
		logger.Warnw("reward_enqueue_expire_failed", "reward_id", reward.ID, "error", err)
	}
}

// GetForUser 获取用户自己的奖励
func (s *RewardService) GetForUser(actor Actor, rewardID uint) (*models.Reward, error) {
	if actor.IsAdmin() {
		reward, err := s.rewardRepo.GetByID(rewardID)
		if err != nil {
			return nil, err
		}
		if reward == nil {
			return nil, ErrRewardNotFound
		}
		return reward, nil
	}
	reward, err := s.rewardRepo.GetByIDAndUser(rewardID, actor.ID)
	if err != nil {
		return nil, err
	}
	if reward == nil {
		return nil, ErrRewardNotFound
	}
	return reward, nil
}

// ListForUser 用户奖励列表
func (s *RewardService) ListForUser(actor Actor, filter repository.RewardListFilter) ([]models.Reward, int64, error) {
	filter.UserID = actor.ID
	return s.rewardRepo.ListByUser(filter)
}

// Redeem 兑换奖励：仅受益用户、仅 active、未过期
// 已过期的 active 奖励在兑换时惰性转为 expired
func (s *RewardService) Redeem(actor Actor, rewardID uint, now time.Time) (*models.Reward, error) {
	reward, err := s.rewardRepo.GetByID(rewardID)
	if err != nil {
		return nil, err
	}
	if reward == nil {
		return nil, ErrRewardNotFound
	}
	if !actor.CanRedeemReward(reward) {
		return nil, ErrPermissionDenied
	}
	if reward.Status != constants.RewardStatusActive {
		if reward.Status == constants.RewardStatusExpired {
			return nil, ErrRewardExpired
		}
		return nil, ErrRewardNotActive
	}
	if reward.IsExpiredAt(now) {
		if _, err := s.rewardRepo.UpdateStatusFrom(reward.ID, constants.RewardStatusActive, constants.RewardStatusExpired, map[string]interface{}{
			"updated_at": now,
		}); err != nil {
			return nil, err
		}
		return nil, ErrRewardExpired
	}

	updated, err := s.rewardRepo.UpdateStatusFrom(reward.ID, constants.RewardStatusActive, constants.RewardStatusRedeemed, map[string]interface{}{
		"redeemed_at": now,
		"updated_at":  now,
	})
	if err != nil {
		return nil, err
	}
	if !updated {
		// 并发兑换只允许一个赢家
		return nil, ErrRewardNotActive
	}

	logger.Infow("reward_redeemed",
		"reward_id", reward.ID,
		"user_id", reward.UserID,
		"redemption_code", reward.RedemptionCode,
	)
	return s.rewardRepo.GetByID(reward.ID)
}

// Expire 到期失效：仅对已过期的 active 奖励生效（worker 调用）
func (s *RewardService) Expire(rewardID uint, now time.Time) error {
	reward, err := s.rewardRepo.GetByID(rewardID)
	if err != nil {
		return err
	}
	if reward == nil || reward.Status != constants.RewardStatusActive {
		return nil
	}
	if !reward.IsExpiredAt(now) {
		return nil
	}
	updated, err := s.rewardRepo.UpdateStatusFrom(reward.ID, constants.RewardStatusActive, constants.RewardStatusExpired, map[string]interface{}{
		"updated_at": now,
	})
	if err != nil {
		return err
	}
	if updated {
		logger.Infow("reward_expired", "reward_id", reward.ID, "user_id", reward.UserID)
	}
	return nil
}

// ExpireDue 批量处理已过期的 active 奖励（worker 周期巡检调用）
// 兜底惰性过期与定时任务之间的缝隙，保证过期状态最终一致
func (s *RewardService) ExpireDue(now time.Time) error {
	ids, err := s.rewardRepo.ListExpiredActiveIDs(now, 200)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := s.Expire(id, now); err != nil {
			logger.Warnw("reward_expire_due_failed", "reward_id", id, "error", err)
		}
	}
	if len(ids) > 0 {
		logger.Infow("reward_expire_due_processed", "count", len(ids))
	}
	return nil
}

// SummaryForUser 用户奖励汇总
func (s *RewardService) SummaryForUser(actor Actor) (map[string]float64, error) {
	earned, err := s.rewardRepo.SumValueByUser(actor.ID, []string{
		constants.RewardStatusActive,
		constants.RewardStatusRedeemed,
	})
	if err != nil {
		return nil, err
	}
	available, err := s.rewardRepo.SumValueByUser(actor.ID, []string{constants.RewardStatusActive})
	if err != nil {
		return nil, err
	}
	redeemed, err := s.rewardRepo.SumValueByUser(actor.ID, []string{constants.RewardStatusRedeemed})
	if err != nil {
		return nil, err
	}
	return map[string]float64{
		"total_earned": earned,
		"available":    available,
		"redeemed":     redeemed,
	}, nil
}
