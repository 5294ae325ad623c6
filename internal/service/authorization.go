package service

import (
	"github.com/recycle-link/internal/constants"
	"github.com/recycle-link/internal/models"
)

// Actor 发起操作的主体（从已验证的 JWT 声明构造）
type Actor struct {
	ID   uint
	Role string
}

// IsAdmin 是否管理员
func (a Actor) IsAdmin() bool {
	return a.Role == constants.RoleAdmin
}

// IsRecycler 是否回收员
func (a Actor) IsRecycler() bool {
	return a.Role == constants.RoleRecycler
}

// IsOwnerOf 是否回收单的请求者
func (a Actor) IsOwnerOf(pickup *models.Pickup) bool {
	return pickup != nil && a.ID != 0 && pickup.UserID == a.ID
}

// IsAssignedTo 是否回收单指派的回收员
func (a Actor) IsAssignedTo(pickup *models.Pickup) bool {
	if pickup == nil || pickup.RecyclerID == nil || a.ID == 0 {
		return false
	}
	return a.IsRecycler() && *pickup.RecyclerID == a.ID
}

// CanViewPickup 请求者、指派回收员与管理员可查看
func (a Actor) CanViewPickup(pickup *models.Pickup) bool {
	return a.IsAdmin() || a.IsOwnerOf(pickup) || a.IsAssignedTo(pickup)
}

// CanUpdatePickup 请求者与管理员可更新
func (a Actor) CanUpdatePickup(pickup *models.Pickup) bool {
	return a.IsAdmin() || a.IsOwnerOf(pickup)
}

// CanCancelPickup 请求者与管理员可取消
func (a Actor) CanCancelPickup(pickup *models.Pickup) bool {
	return a.IsAdmin() || a.IsOwnerOf(pickup)
}

// CanDeletePickup 请求者与管理员可删除（状态校验在服务层做）
func (a Actor) CanDeletePickup(pickup *models.Pickup) bool {
	return a.IsAdmin() || a.IsOwnerOf(pickup)
}

// CanSchedulePickup 回收员与管理员可调度；回收员只能指派自己（服务层校验）
func (a Actor) CanSchedulePickup(pickup *models.Pickup) bool {
	return a.IsAdmin() || a.IsRecycler()
}

// CanCompletePickup 指派的回收员与管理员可完成
func (a Actor) CanCompletePickup(pickup *models.Pickup) bool {
	return a.IsAdmin() || a.IsAssignedTo(pickup)
}

// CanRatePickup 仅请求者可评分
func (a Actor) CanRatePickup(pickup *models.Pickup) bool {
	return a.IsOwnerOf(pickup)
}

// CanRedeemReward 仅受益用户可兑换
func (a Actor) CanRedeemReward(reward *models.Reward) bool {
	return reward != nil && a.ID != 0 && reward.UserID == a.ID
}
