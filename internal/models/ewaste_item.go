package models

import (
	"time"

	"gorm.io/gorm"
)

// EWasteItem 电子废弃物条目表
type EWasteItem struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                   // 主键
	PickupID        uint           `gorm:"index;not null" json:"pickup_id"`                        // 所属回收单ID
	DeviceType      string         `gorm:"type:varchar(30);index;not null" json:"device_type"`     // 设备类型
	Brand           string         `gorm:"type:varchar(100)" json:"brand,omitempty"`               // 品牌
	Model           string         `gorm:"type:varchar(100)" json:"model,omitempty"`               // 型号
	Condition       string         `gorm:"type:varchar(30);not null" json:"condition"`             // 成色
	Quantity        int            `gorm:"not null;default:1" json:"quantity"`                     // 数量
	Weight          Quantity       `gorm:"type:decimal(10,2);not null;default:0" json:"weight"`    // 重量（公斤）
	Materials       JSON           `gorm:"type:json" json:"materials,omitempty"`                   // 材料构成（金属/塑料/玻璃等占比）
	HazardousParts  StringArray    `gorm:"type:json" json:"hazardous_parts,omitempty"`             // 危险部件（电池/制冷剂等）
	Notes           string         `gorm:"type:varchar(500)" json:"notes,omitempty"`               // 备注
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                // 创建时间
	UpdatedAt       time.Time      `json:"updated_at"`                                             // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                         // 软删除时间
}

// TableName 指定表名
func (EWasteItem) TableName() string {
	return "ewaste_items"
}
