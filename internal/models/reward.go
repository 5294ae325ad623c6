package models

import (
	"time"

	"gorm.io/gorm"
)

// Reward 奖励表（每个回收单至多一条）
type Reward struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                  // 主键
	RedemptionCode string         `gorm:"uniqueIndex;not null" json:"redemption_code"`           // 兑换码（对外标识）
	UserID         uint           `gorm:"index;not null" json:"user_id"`                         // 受益用户ID
	PickupID       uint           `gorm:"uniqueIndex;not null" json:"pickup_id"`                 // 回收单ID（唯一约束保证至多一条）
	Type           string         `gorm:"type:varchar(20);not null" json:"type"`                 // 奖励类型
	Status         string         `gorm:"type:varchar(20);index;not null" json:"status"`         // 奖励状态
	Value          Money          `gorm:"type:decimal(20,2);not null;default:0" json:"value"`    // 奖励金额
	Currency       string         `gorm:"type:varchar(10);not null" json:"currency"`             // 币种
	Source         string         `gorm:"type:varchar(20);not null" json:"source"`               // 计算来源（predictor/fallback）
	Description    string         `gorm:"type:varchar(500)" json:"description,omitempty"`        // 描述
	IssuedAt       time.Time      `gorm:"index" json:"issued_at"`                                // 发放时间
	ExpiresAt      *time.Time     `gorm:"index" json:"expires_at"`                               // 过期时间
	RedeemedAt     *time.Time     `json:"redeemed_at"`                                           // 兑换时间
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                               // 创建时间
	UpdatedAt      time.Time      `json:"updated_at"`                                            // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                        // 软删除时间
}

// TableName 指定表名
func (Reward) TableName() string {
	return "rewards"
}

// IsExpiredAt 在给定时间点是否已过期
func (r *Reward) IsExpiredAt(now time.Time) bool {
	if r == nil || r.ExpiresAt == nil {
		return false
	}
	return now.After(*r.ExpiresAt)
}
