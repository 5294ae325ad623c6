package repository

import (
	"errors"

	"github.com/recycle-link/internal/models"

	"gorm.io/gorm"
)

// PickupRepository 回收单数据访问接口
type PickupRepository interface {
	Create(pickup *models.Pickup, items []models.EWasteItem) error
	GetByID(id uint) (*models.Pickup, error)
	GetByTrackingNumber(trackingNumber string) (*models.Pickup, error)
	ListByUser(filter PickupListFilter) ([]models.Pickup, int64, error)
	ListByRecycler(filter PickupListFilter) ([]models.Pickup, int64, error)
	ListAdmin(filter PickupListFilter) ([]models.Pickup, int64, error)
	Updates(id uint, updates map[string]interface{}) error
	UpdateStatusFrom(id uint, fromStatus, toStatus string, updates map[string]interface{}) (bool, error)
	Delete(id uint) error
	CountByStatus() (map[string]int64, error)
	SumActualWeightCompleted() (float64, error)
	WithTx(tx *gorm.DB) *GormPickupRepository
}

// GormPickupRepository GORM 实现
type GormPickupRepository struct {
	db *gorm.DB
}

// NewPickupRepository 创建回收单仓库
func NewPickupRepository(db *gorm.DB) *GormPickupRepository {
	return &GormPickupRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPickupRepository) WithTx(tx *gorm.DB) *GormPickupRepository {
	if tx == nil {
		return r
	}
	return &GormPickupRepository{db: tx}
}

func (r *GormPickupRepository) withDetail(query *gorm.DB) *gorm.DB {
	return query.Preload("Items").Preload("Reward").Preload("User").Preload("Recycler")
}

// Create 创建回收单与电子废弃物条目
func (r *GormPickupRepository) Create(pickup *models.Pickup, items []models.EWasteItem) error {
	if err := r.db.Create(pickup).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].PickupID = pickup.ID
	}
	if len(items) > 0 {
		if err := r.db.Create(&items).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetByID 根据 ID 获取回收单
func (r *GormPickupRepository) GetByID(id uint) (*models.Pickup, error) {
	var pickup models.Pickup
	if err := r.withDetail(r.db).First(&pickup, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pickup, nil
}

// GetByTrackingNumber 根据追踪号获取回收单
func (r *GormPickupRepository) GetByTrackingNumber(trackingNumber string) (*models.Pickup, error) {
	var pickup models.Pickup
	if err := r.withDetail(r.db).Where("tracking_number = ?", trackingNumber).First(&pickup).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pickup, nil
}

// ListByUser 获取请求者的回收单列表
func (r *GormPickupRepository) ListByUser(filter PickupListFilter) ([]models.Pickup, int64, error) {
	query := r.db.Model(&models.Pickup{}).Where("user_id = ?", filter.UserID)
	return r.list(query, filter)
}

// ListByRecycler 获取回收员被指派的回收单列表
func (r *GormPickupRepository) ListByRecycler(filter PickupListFilter) ([]models.Pickup, int64, error) {
	query := r.db.Model(&models.Pickup{}).Where("recycler_id = ?", filter.RecyclerID)
	return r.list(query, filter)
}

// ListAdmin 管理端回收单列表
func (r *GormPickupRepository) ListAdmin(filter PickupListFilter) ([]models.Pickup, int64, error) {
	query := r.db.Model(&models.Pickup{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.RecyclerID != 0 {
		query = query.Where("recycler_id = ?", filter.RecyclerID)
	}
	if filter.TrackingNumber != "" {
		query = query.Where("tracking_number = ?", filter.TrackingNumber)
	}
	return r.list(query, filter)
}

func (r *GormPickupRepository) list(query *gorm.DB, filter PickupListFilter) ([]models.Pickup, int64, error) {
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if filter.WithItems {
		query = query.Preload("Items").Preload("Reward")
	}

	var pickups []models.Pickup
	if err := query.Order("id desc").Find(&pickups).Error; err != nil {
		return nil, 0, err
	}
	return pickups, total, nil
}

// Updates 更新回收单字段
func (r *GormPickupRepository) Updates(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.Pickup{}).Where("id = ?", id).Updates(updates).Error
}

// UpdateStatusFrom 仅当当前状态匹配时更新状态（乐观并发控制），返回是否命中
func (r *GormPickupRepository) UpdateStatusFrom(id uint, fromStatus, toStatus string, updates map[string]interface{}) (bool, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = toStatus
	result := r.db.Model(&models.Pickup{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete 软删除回收单
func (r *GormPickupRepository) Delete(id uint) error {
	return r.db.Delete(&models.Pickup{}, id).Error
}

// CountByStatus 按状态统计回收单数量
func (r *GormPickupRepository) CountByStatus() (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	if err := r.db.Model(&models.Pickup{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// SumActualWeightCompleted 统计已完成回收单的实际总重量
func (r *GormPickupRepository) SumActualWeightCompleted() (float64, error) {
	var total float64
	if err := r.db.Model(&models.Pickup{}).
		Where("status = ?", "completed").
		Select("COALESCE(SUM(actual_weight), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
