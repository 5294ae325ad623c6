package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表（请求者 / 回收员 / 管理员共用一张表，按 role 区分）
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`                            // 主键
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`               // 邮箱
	PasswordHash string         `gorm:"not null" json:"-"`                               // 密码哈希（不返回给前端）
	Name         string         `gorm:"type:varchar(100);not null" json:"name"`          // 姓名
	Phone        string         `gorm:"type:varchar(20)" json:"phone,omitempty"`         // 联系电话
	Role         string         `gorm:"type:varchar(20);index;not null" json:"role"`     // 角色（user/recycler/admin）
	Status       string         `gorm:"type:varchar(20);default:'active'" json:"status"` // 账号状态
	City         string         `gorm:"type:varchar(100)" json:"city,omitempty"`         // 所在城市
	State        string         `gorm:"type:varchar(100)" json:"state,omitempty"`        // 所在邦/州
	Pincode      string         `gorm:"type:varchar(10)" json:"pincode,omitempty"`       // 邮政编码
	Locale       string         `gorm:"default:'en-US'" json:"locale"`                   // 语言偏好
	TotalPickups int            `gorm:"not null;default:0" json:"total_pickups"`         // 累计完成回收单数
	LastLoginAt  *time.Time     `json:"last_login_at"`                                   // 最后登录时间
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                         // 创建时间
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`                         // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                  // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// IsRecycler 是否为回收员
func (u *User) IsRecycler() bool {
	return u != nil && u.Role == "recycler"
}

// IsAdmin 是否为管理员
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == "admin"
}
