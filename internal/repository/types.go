package repository

import "time"

// PickupListFilter 查询回收单列表的过滤条件
type PickupListFilter struct {
	Page           int
	PageSize       int
	UserID         uint
	RecyclerID     uint
	Status         string
	City           string
	Priority       string
	TrackingNumber string
	CreatedFrom    *time.Time
	CreatedTo      *time.Time
	WithItems      bool
}

// RewardListFilter 查询奖励列表的过滤条件
type RewardListFilter struct {
	Page     int
	PageSize int
	UserID   uint
	Status   string
	Type     string
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	Role        string
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
