package repository

import (
	"errors"

	"github.com/recycle-link/internal/models"

	"gorm.io/gorm"
)

// EWasteItemRepository 电子废弃物条目数据访问接口
type EWasteItemRepository interface {
	Create(item *models.EWasteItem) error
	GetByID(id uint) (*models.EWasteItem, error)
	ListByPickup(pickupID uint) ([]models.EWasteItem, error)
	Update(item *models.EWasteItem) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormEWasteItemRepository
}

// GormEWasteItemRepository GORM 实现
type GormEWasteItemRepository struct {
	db *gorm.DB
}

// NewEWasteItemRepository 创建条目仓库
func NewEWasteItemRepository(db *gorm.DB) *GormEWasteItemRepository {
	return &GormEWasteItemRepository{db: db}
}

// WithTx 绑定事务
func (r *GormEWasteItemRepository) WithTx(tx *gorm.DB) *GormEWasteItemRepository {
	if tx == nil {
		return r
	}
	return &GormEWasteItemRepository{db: tx}
}

// Create 创建条目
func (r *GormEWasteItemRepository) Create(item *models.EWasteItem) error {
	return r.db.Create(item).Error
}

// GetByID 根据 ID 获取条目
func (r *GormEWasteItemRepository) GetByID(id uint) (*models.EWasteItem, error) {
	var item models.EWasteItem
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// ListByPickup 获取回收单下的全部条目
func (r *GormEWasteItemRepository) ListByPickup(pickupID uint) ([]models.EWasteItem, error) {
	var items []models.EWasteItem
	if err := r.db.Where("pickup_id = ?", pickupID).Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Update 更新条目
func (r *GormEWasteItemRepository) Update(item *models.EWasteItem) error {
	return r.db.Save(item).Error
}

// Delete 软删除条目
func (r *GormEWasteItemRepository) Delete(id uint) error {
	return r.db.Delete(&models.EWasteItem{}, id).Error
}
