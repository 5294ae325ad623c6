package queue

import (
	"encoding/json"

	"github.com/recycle-link/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskPickupStatusNotify 回收单状态通知任务
	TaskPickupStatusNotify = constants.TaskPickupStatusNotify
	// TaskRewardExpire 奖励到期失效任务
	TaskRewardExpire = constants.TaskRewardExpire
	// TaskPickupReminderNudge 上门前提醒任务
	TaskPickupReminderNudge = constants.TaskPickupReminderNudge
)

// PickupStatusNotifyPayload 回收单状态通知任务载荷
type PickupStatusNotifyPayload struct {
	PickupID uint   `json:"pickup_id"`
	Status   string `json:"status"`
}

// RewardExpirePayload 奖励到期任务载荷
type RewardExpirePayload struct {
	RewardID uint `json:"reward_id"`
}

// PickupReminderPayload 上门前提醒任务载荷
type PickupReminderPayload struct {
	PickupID uint `json:"pickup_id"`
}

// NewPickupStatusNotifyTask 创建回收单状态通知任务
func NewPickupStatusNotifyTask(payload PickupStatusNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPickupStatusNotify, body), nil
}

// NewRewardExpireTask 创建奖励到期任务
func NewRewardExpireTask(payload RewardExpirePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskRewardExpire, body), nil
}

// NewPickupReminderTask 创建上门前提醒任务
func NewPickupReminderTask(payload PickupReminderPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPickupReminderNudge, body), nil
}
