package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/recycle-link/internal/config"
	"github.com/recycle-link/internal/constants"
	"github.com/recycle-link/internal/models"
	"github.com/recycle-link/internal/provider"
	"github.com/recycle-link/internal/queue"
	"github.com/recycle-link/internal/repository"
	"github.com/recycle-link/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupWorkerTestConsumer(t *testing.T, name string) (*Consumer, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Pickup{}, &models.EWasteItem{}, &models.Reward{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	pickupRepo := repository.NewPickupRepository(db)
	rewardRepo := repository.NewRewardRepository(db)
	queueClient, _ := queue.NewClient(nil)
	rewardService := service.NewRewardService(rewardRepo, userRepo, nil, queueClient,
		config.RewardConfig{RatePerKG: "10", Currency: "INR", ExpiryDays: 180})

	container := &provider.Container{
		UserRepo:      userRepo,
		PickupRepo:    pickupRepo,
		RewardRepo:    rewardRepo,
		RewardService: rewardService,
	}
	return NewConsumer(container), db
}

func newTaskForTest(t *testing.T, name string, payload interface{}) *asynq.Task {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload failed: %v", err)
	}
	return asynq.NewTask(name, data)
}

func TestHandleRewardExpire(t *testing.T) {
	consumer, db := setupWorkerTestConsumer(t, "worker_reward_expire")

	user := &models.User{Email: "user@example.com", PasswordHash: "x", Name: "User", Role: constants.RoleUser, Status: constants.UserStatusActive}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	expiredAt := time.Now().Add(-time.Hour)
	reward := &models.Reward{
		RedemptionCode: "RWWORKERTEST01",
		UserID:         user.ID,
		PickupID:       1,
		Type:           constants.RewardTypePoints,
		Status:         constants.RewardStatusActive,
		Value:          models.NewMoneyFromDecimal(decimal.NewFromInt(45)),
		Currency:       "INR",
		Source:         constants.RewardSourceFallback,
		IssuedAt:       time.Now().AddDate(0, 0, -181),
		ExpiresAt:      &expiredAt,
	}
	if err := db.Create(reward).Error; err != nil {
		t.Fatalf("create reward failed: %v", err)
	}

	task := newTaskForTest(t, queue.TaskRewardExpire, queue.RewardExpirePayload{RewardID: reward.ID})
	if err := consumer.handleRewardExpire(context.Background(), task); err != nil {
		t.Fatalf("handle reward expire failed: %v", err)
	}

	var stored models.Reward
	if err := db.First(&stored, reward.ID).Error; err != nil {
		t.Fatalf("load reward failed: %v", err)
	}
	if stored.Status != constants.RewardStatusExpired {
		t.Fatalf("expected expired, got %s", stored.Status)
	}
}

func TestHandleRewardExpireUnknownID(t *testing.T) {
	consumer, _ := setupWorkerTestConsumer(t, "worker_reward_expire_missing")
	task := newTaskForTest(t, queue.TaskRewardExpire, queue.RewardExpirePayload{RewardID: 999})
	if err := consumer.handleRewardExpire(context.Background(), task); err != nil {
		t.Fatalf("missing reward must not fail the task: %v", err)
	}
}

func TestHandlePickupStatusNotifyMissingPickup(t *testing.T) {
	consumer, _ := setupWorkerTestConsumer(t, "worker_notify_missing")
	task := newTaskForTest(t, queue.TaskPickupStatusNotify, queue.PickupStatusNotifyPayload{PickupID: 42, Status: constants.PickupStatusScheduled})
	if err := consumer.handlePickupStatusNotify(context.Background(), task); err != nil {
		t.Fatalf("missing pickup must not fail the task: %v", err)
	}
}

func TestHandlePickupReminderSkipsNonScheduled(t *testing.T) {
	consumer, db := setupWorkerTestConsumer(t, "worker_reminder_status")

	user := &models.User{Email: "user@example.com", PasswordHash: "x", Name: "User", Role: constants.RoleUser, Status: constants.UserStatusActive}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	pickup := &models.Pickup{
		TrackingNumber: "RLWORKERTEST01",
		UserID:         user.ID,
		Status:         constants.PickupStatusCancelled,
		Address:        "12 MG Road",
		City:           "Pune",
		State:          "Maharashtra",
		Pincode:        "411001",
	}
	if err := db.Create(pickup).Error; err != nil {
		t.Fatalf("create pickup failed: %v", err)
	}

	task := newTaskForTest(t, queue.TaskPickupReminderNudge, queue.PickupReminderPayload{PickupID: pickup.ID})
	if err := consumer.handlePickupReminder(context.Background(), task); err != nil {
		t.Fatalf("reminder for cancelled pickup must not fail: %v", err)
	}
}

func TestHandleBadPayload(t *testing.T) {
	consumer, _ := setupWorkerTestConsumer(t, "worker_bad_payload")
	task := asynq.NewTask(queue.TaskRewardExpire, []byte("{not-json"))
	if err := consumer.handleRewardExpire(context.Background(), task); err == nil {
		t.Fatalf("expected error for malformed payload")
	}
}
