package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/recycle-link/internal/constants"
	"github.com/recycle-link/internal/logger"
	"github.com/recycle-link/internal/provider"
	"github.com/recycle-link/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskPickupStatusNotify, c.handlePickupStatusNotify)
	mux.HandleFunc(queue.TaskRewardExpire, c.handleRewardExpire)
	mux.HandleFunc(queue.TaskPickupReminderNudge, c.handlePickupReminder)
}

func (c *Consumer) handlePickupStatusNotify(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_pickup_status_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.PickupStatusNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_pickup_status_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.PickupID == 0 {
		logger.Debugw("worker_pickup_status_notify_skip_invalid_payload", "pickup_id", payload.PickupID)
		return nil
	}
	pickup, err := c.PickupRepo.GetByID(payload.PickupID)
	if err != nil {
		logger.Warnw("worker_pickup_status_notify_fetch_failed", "pickup_id", payload.PickupID, "error", err)
		return err
	}
	if pickup == nil {
		logger.Debugw("worker_pickup_status_notify_skip_not_found", "pickup_id", payload.PickupID)
		return nil
	}
	user, err := c.UserRepo.GetByID(pickup.UserID)
	if err != nil {
		logger.Warnw("worker_pickup_status_notify_fetch_user_failed", "pickup_id", pickup.ID, "user_id", pickup.UserID, "error", err)
		return err
	}
	if user == nil {
		logger.Debugw("worker_pickup_status_notify_skip_user_not_found", "pickup_id", pickup.ID, "user_id", pickup.UserID)
		return nil
	}
	status := payload.Status
	if status == "" {
		status = pickup.Status
	}
	// 目前通知通道是结构化日志，后续可挂接短信或邮件渠道
	logger.Infow("pickup_status_notification",
		"pickup_id", pickup.ID,
		"tracking_number", pickup.TrackingNumber,
		"status", status,
		"user_id", user.ID,
		"user_email", user.Email,
		"locale", user.Locale,
	)
	return nil
}

func (c *Consumer) handleRewardExpire(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_reward_expire_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.RewardExpirePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_reward_expire_unmarshal_failed", "error", err)
		return err
	}
	if payload.RewardID == 0 {
		logger.Debugw("worker_reward_expire_skip_invalid_payload", "reward_id", payload.RewardID)
		return nil
	}
	if c.RewardService == nil {
		logger.Warnw("worker_reward_expire_skip_service_nil", "reward_id", payload.RewardID)
		return nil
	}
	if err := c.RewardService.Expire(payload.RewardID, time.Now()); err != nil {
		logger.Warnw("worker_reward_expire_failed", "reward_id", payload.RewardID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handlePickupReminder(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_pickup_reminder_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.PickupReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_pickup_reminder_unmarshal_failed", "error", err)
		return err
	}
	if payload.PickupID == 0 {
		logger.Debugw("worker_pickup_reminder_skip_invalid_payload", "pickup_id", payload.PickupID)
		return nil
	}
	pickup, err := c.PickupRepo.GetByID(payload.PickupID)
	if err != nil {
		logger.Warnw("worker_pickup_reminder_fetch_failed", "pickup_id", payload.PickupID, "error", err)
		return err
	}
	if pickup == nil {
		logger.Debugw("worker_pickup_reminder_skip_not_found", "pickup_id", payload.PickupID)
		return nil
	}
	// 已不在待上门状态的回收单不再提醒
	if pickup.Status != constants.PickupStatusScheduled {
		logger.Debugw("worker_pickup_reminder_skip_status", "pickup_id", pickup.ID, "status", pickup.Status)
		return nil
	}
	logger.Infow("pickup_schedule_reminder",
		"pickup_id", pickup.ID,
		"tracking_number", pickup.TrackingNumber,
		"recycler_id", pickup.RecyclerID,
		"scheduled_date", pickup.ScheduledDate,
		"scheduled_slot", pickup.ScheduledSlot,
	)
	return nil
}
