package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/recycle-link/internal/constants"
)

// Pickup 回收单表
type Pickup struct {
	ID               uint           `gorm:"primarykey" json:"id"`                                            // 主键
	TrackingNumber   string         `gorm:"uniqueIndex;not null" json:"tracking_number"`                     // 追踪号（对外标识）
	UserID           uint           `gorm:"index;not null" json:"user_id"`                                   // 请求者ID
	RecyclerID       *uint          `gorm:"index" json:"recycler_id,omitempty"`                              // 回收员ID（调度后填写）
	Status           string         `gorm:"type:varchar(20);index;not null" json:"status"`                   // 回收单状态
	Priority         string         `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`      // 优先级
	Address          string         `gorm:"type:varchar(500);not null" json:"address"`                       // 取件地址
	City             string         `gorm:"type:varchar(100);not null" json:"city"`                          // 城市
	State            string         `gorm:"type:varchar(100);not null" json:"state"`                         // 邦/州
	Pincode          string         `gorm:"type:varchar(10);not null" json:"pincode"`                        // 邮政编码（6 位）
	Latitude         *float64       `json:"latitude,omitempty"`                                              // 纬度（地理编码成功时填写）
	Longitude        *float64       `json:"longitude,omitempty"`                                             // 经度（地理编码成功时填写）
	ContactPerson    string         `gorm:"type:varchar(100)" json:"contact_person,omitempty"`               // 联系人
	ContactPhone     string         `gorm:"type:varchar(20)" json:"contact_phone,omitempty"`                 // 联系电话
	ScheduledDate    *time.Time     `gorm:"index" json:"scheduled_date"`                                     // 预约上门日期
	ScheduledSlot    string         `gorm:"type:varchar(50)" json:"scheduled_slot,omitempty"`                // 预约时间段
	EstimatedWeight  Quantity       `gorm:"type:decimal(10,2);not null;default:0" json:"estimated_weight"`   // 预估重量（公斤）
	ActualWeight     *Quantity      `gorm:"type:decimal(10,2)" json:"actual_weight,omitempty"`               // 实际称重（公斤，完成时填写）
	EstimatedValue   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"estimated_value"`    // 预估价值
	ActualValue      *Money         `gorm:"type:decimal(20,2)" json:"actual_value,omitempty"`                // 实际价值（完成时填写，缺省取预估值）
	Notes            string         `gorm:"type:varchar(1000)" json:"notes,omitempty"`                       // 备注
	CompletionNotes  string         `gorm:"type:varchar(1000)" json:"completion_notes,omitempty"`            // 完成备注
	CancelReason     string         `gorm:"type:varchar(500)" json:"cancel_reason,omitempty"`                // 取消原因
	Rating           *int           `json:"rating,omitempty"`                                                // 用户评分（1-5）
	Feedback         string         `gorm:"type:varchar(1000)" json:"feedback,omitempty"`                    // 用户反馈
	CompletedAt      *time.Time     `gorm:"index" json:"completed_at"`                                       // 完成时间
	CancelledAt      *time.Time     `gorm:"index" json:"cancelled_at"`                                       // 取消时间
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`                                         // 创建时间
	UpdatedAt        time.Time      `gorm:"index" json:"updated_at"`                                         // 更新时间
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`                                                  // 软删除时间

	// 关联
	User     *User        `gorm:"foreignKey:UserID" json:"user,omitempty"`         // 请求者
	Recycler *User        `gorm:"foreignKey:RecyclerID" json:"recycler,omitempty"` // 回收员
	Items    []EWasteItem `gorm:"foreignKey:PickupID" json:"items,omitempty"`      // 电子废弃物条目
	Reward   *Reward      `gorm:"foreignKey:PickupID" json:"reward,omitempty"`     // 奖励记录
}

// TableName 指定表名
func (Pickup) TableName() string {
	return "pickups"
}

// IsTerminal 是否处于终态（完成/取消后不可再变更）
func (p *Pickup) IsTerminal() bool {
	if p == nil {
		return false
	}
	return p.Status == constants.PickupStatusCompleted || p.Status == constants.PickupStatusCancelled
}
