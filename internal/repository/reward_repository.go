package repository

import (
	"errors"
	"time"

	"github.com/recycle-link/internal/constants"
	"github.com/recycle-link/internal/models"

	"gorm.io/gorm"
)

// RewardRepository 奖励数据访问接口
type RewardRepository interface {
	Create(reward *models.Reward) error
	GetByID(id uint) (*models.Reward, error)
	GetByIDAndUser(id uint, userID uint) (*models.Reward, error)
	GetByPickupID(pickupID uint) (*models.Reward, error)
	GetByRedemptionCode(code string) (*models.Reward, error)
	ListByUser(filter RewardListFilter) ([]models.Reward, int64, error)
	UpdateStatusFrom(id uint, fromStatus, toStatus string, updates map[string]interface{}) (bool, error)
	SumValueByUser(userID uint, statuses []string) (float64, error)
	ListExpiredActiveIDs(now time.Time, limit int) ([]uint, error)
	WithTx(tx *gorm.DB) *GormRewardRepository
}

// GormRewardRepository GORM 实现
type GormRewardRepository struct {
	db *gorm.DB
}

// NewRewardRepository 创建奖励仓库
func NewRewardRepository(db *gorm.DB) *GormRewardRepository {
	return &GormRewardRepository{db: db}
}

// WithTx 绑定事务
func (r *GormRewardRepository) WithTx(tx *gorm.DB) *GormRewardRepository {
	if tx == nil {
		return r
	}
	return &GormRewardRepository{db: tx}
}

// Create 创建奖励记录
func (r *GormRewardRepository) Create(reward *models.Reward) error {
	return r.db.Create(reward).Error
}

// GetByID 根据 ID 获取奖励
func (r *GormRewardRepository) GetByID(id uint) (*models.Reward, error) {
	var reward models.Reward
	if err := r.db.First(&reward, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reward, nil
}

// GetByIDAndUser 获取用户自己的奖励
func (r *GormRewardRepository) GetByIDAndUser(id uint, userID uint) (*models.Reward, error) {
	var reward models.Reward
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&reward).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reward, nil
}

// GetByPickupID 根据回收单获取奖励
func (r *GormRewardRepository) GetByPickupID(pickupID uint) (*models.Reward, error) {
	var reward models.Reward
	if err := r.db.Where("pickup_id = ?", pickupID).First(&reward).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reward, nil
}

// GetByRedemptionCode 根据兑换码获取奖励
func (r *GormRewardRepository) GetByRedemptionCode(code string) (*models.Reward, error) {
	var reward models.Reward
	if err := r.db.Where("redemption_code = ?", code).First(&reward).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reward, nil
}

// ListByUser 用户奖励列表
func (r *GormRewardRepository) ListByUser(filter RewardListFilter) ([]models.Reward, int64, error) {
	query := r.db.Model(&models.Reward{}).Where("user_id = ?", filter.UserID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var rewards []models.Reward
	if err := query.Order("id desc").Find(&rewards).Error; err != nil {
		return nil, 0, err
	}
	return rewards, total, nil
}

// UpdateStatusFrom 仅当当前状态匹配时更新状态（乐观并发控制），返回是否命中
func (r *GormRewardRepository) UpdateStatusFrom(id uint, fromStatus, toStatus string, updates map[string]interface{}) (bool, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = toStatus
	result := r.db.Model(&models.Reward{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// SumValueByUser 统计用户在给定状态下的奖励总金额
func (r *GormRewardRepository) SumValueByUser(userID uint, statuses []string) (float64, error) {
	query := r.db.Model(&models.Reward{}).Where("user_id = ?", userID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	var total float64
	if err := query.Select("COALESCE(SUM(value), 0)").Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// ListExpiredActiveIDs 查询已过期但仍为 active 的奖励 ID（巡检任务用）
func (r *GormRewardRepository) ListExpiredActiveIDs(now time.Time, limit int) ([]uint, error) {
	if limit <= 0 {
		limit = 100
	}
	var ids []uint
	err := r.db.Model(&models.Reward{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", constants.RewardStatusActive, now).
		Order("expires_at ASC").
		Limit(limit).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
