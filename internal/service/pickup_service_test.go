package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/recycle-link/internal/config"
	"github.com/recycle-link/internal/constants"
	"github.com/recycle-link/internal/geocode"
	"github.com/recycle-link/internal/models"
	"github.com/recycle-link/internal/predictor"
	"github.com/recycle-link/internal/queue"
	"github.com/recycle-link/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type stubGeocoder struct {
	coords *geocode.Coordinates
	err    error
	calls  int
}

func (g *stubGeocoder) Geocode(ctx context.Context, address geocode.Address) (*geocode.Coordinates, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.coords, nil
}

type pickupTestEnv struct {
	db       *gorm.DB
	svc      *PickupService
	geocoder *stubGeocoder
	owner    *models.User
	recycler *models.User
	admin    *models.User
}

func (e *pickupTestEnv) ownerActor() Actor    { return Actor{ID: e.owner.ID, Role: e.owner.Role} }
func (e *pickupTestEnv) recyclerActor() Actor { return Actor{ID: e.recycler.ID, Role: e.recycler.Role} }
func (e *pickupTestEnv) adminActor() Actor    { return Actor{ID: e.admin.ID, Role: e.admin.Role} }

func setupPickupTestEnv(t *testing.T, name string) *pickupTestEnv {
	t.Helper()
	return setupPickupTestEnvWithPredictor(t, name, nil)
}

func setupPickupTestEnvWithPredictor(t *testing.T, name string, p IncentivePredictor) *pickupTestEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Pickup{}, &models.EWasteItem{}, &models.Reward{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	owner := &models.User{Email: "owner@example.com", PasswordHash: "x", Name: "Owner", Role: constants.RoleUser, Status: constants.UserStatusActive}
	recycler := &models.User{Email: "recycler@example.com", PasswordHash: "x", Name: "Recycler", Role: constants.RoleRecycler, Status: constants.UserStatusActive}
	admin := &models.User{Email: "admin@example.com", PasswordHash: "x", Name: "Admin", Role: constants.RoleAdmin, Status: constants.UserStatusActive}
	for _, u := range []*models.User{owner, recycler, admin} {
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("create user failed: %v", err)
		}
	}

	pickupRepo := repository.NewPickupRepository(db)
	itemRepo := repository.NewEWasteItemRepository(db)
	userRepo := repository.NewUserRepository(db)
	rewardRepo := repository.NewRewardRepository(db)
	queueClient, _ := queue.NewClient(nil)
	rewardService := NewRewardService(rewardRepo, userRepo, p, queueClient,
		config.RewardConfig{RatePerKG: "10", Currency: "INR", ExpiryDays: 180})

	geocoder := &stubGeocoder{coords: &geocode.Coordinates{Latitude: 18.5204, Longitude: 73.8567}}
	svc := NewPickupService(pickupRepo, itemRepo, userRepo, rewardService, geocoder, queueClient)

	return &pickupTestEnv{db: db, svc: svc, geocoder: geocoder, owner: owner, recycler: recycler, admin: admin}
}

func validCreateInput() CreatePickupInput {
	return CreatePickupInput{
		Address:         "12 MG Road",
		City:            "Pune",
		State:           "Maharashtra",
		Pincode:         "411001",
		ContactPerson:   "Asha",
		ContactPhone:    "9876543210",
		EstimatedWeight: 5,
		EstimatedValue:  120,
		Items: []PickupItemInput{
			{DeviceType: constants.DeviceTypeLaptop, Condition: constants.ItemConditionNotWorking, Quantity: 1, Weight: 2.5},
			{DeviceType: constants.DeviceTypeSmartphone, Condition: constants.ItemConditionScrap, Quantity: 2, Weight: 0.4},
		},
	}
}

func TestCreatePickup(t *testing.T) {
	env := setupPickupTestEnv(t, "pickup_create")
	pickup, err := env.svc.Create(context.Background(), env.ownerActor(), validCreateInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if pickup.Status != constants.PickupStatusPending {
		t.Fatalf("expected pending, got %s", pickup.Status)
	}
	if !strings.HasPrefix(pickup.TrackingNumber, constants.TrackingNumberPrefix) {
		t.Fatalf("unexpected tracking number: %s", pickup.TrackingNumber)
	}
	if pickup.Priority != constants.PickupPriorityMedium {
		t.Fatalf("expected default medium priority, got %s", pickup.Priority)
	}
	if pickup.Latitude == nil || pickup.Longitude == nil {
		t.Fatalf("expected coordinates from geocoder")
	}
	if len(pickup.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(pickup.Items))
	}
}

func TestCreatePickupGeocoderDownStillCreates(t *testing.T) {
	env := setupPickupTestEnv(t, "pickup_create_geo_down")
	env.geocoder.err = geocode.ErrUnavailable

	pickup, err := env.svc.Create(context.Background(), env.ownerActor(), validCreateInput())
	if err != nil {
		t.Fatalf("create must not fail when geocoding is down: %v", err)
	}
	if pickup.Latitude != nil || pickup.Longitude != nil {
		t.Fatalf("expected no coordinates when geocoding failed")
	}
	if env.geocoder.calls != 1 {
		t.Fatalf("expected one geocode attempt, got %d", env.geocoder.calls)
	}
}

func TestCreatePickupValidation(t *testing.T) {
	env := setupPickupTestEnv(t, "pickup_create_validation")
	actor := env.ownerActor()

	input := validCreateInput()
	input.Pincode = "41100"
	if _, err := env.svc.Create(context.Background(), actor, input); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for short pincode, got %v", err)
	}

	input = validCreateInput()
	input.Items = nil
	if _, err := env.svc.Create(context.Background(), actor, input); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for empty items, got %v", err)
	}

	input = validCreateInput()
	input.Items[0].DeviceType = "typewriter"
	if _, err := env.svc.Create(context.Background(), actor, input); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for unknown device type, got %v", err)
	}

	input = validCreateInput()
	input.Priority = "extreme"
	if _, err := env.svc.Create(context.Background(), actor, input); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for unknown priority, got %v", err)
	}
}

func TestSchedulePickup(t *testing.T) {
	env := setupPickupTestEnv(t, "pickup_schedule")
	pickup, err := env.svc.Create(context.Background(), env.ownerActor(), validCreateInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	now := time.Now()
	input := ScheduleInput{RecyclerID: env.recycler.ID, ScheduledDate: now.Add(24 * time.Hour), ScheduledSlot: "10:00-12:00"}

	if _, err := env.svc.Schedule(env.ownerActor(), pickup.ID, input, now); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected permission denied for owner, got %v", err)
	}

	// 回收员不能把单子派给别人
	otherRecycler := input
	otherRecycler.RecyclerID = env.recycler.ID + 100
	if _, err := env.svc.Schedule(env.recyclerActor(), pickup.ID, otherRecycler, now); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected permission denied for foreign assignment, got %v", err)
	}

	badRecycler := input
	badRecycler.RecyclerID = env.owner.ID
	if _, err := env.svc.Schedule(env.adminActor(), pickup.ID, badRecycler, now); !errors.Is(err, ErrRecyclerNotFound) {
		t.Fatalf("expected recycler-not-found for plain user id, got %v", err)
	}

	pastDate := input
	pastDate.ScheduledDate = now.Add(-time.Hour)
	if _, err := env.svc.Schedule(env.adminActor(), pickup.ID, pastDate, now); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for past date, got %v", err)
	}

	scheduled, err := env.svc.Schedule(env.adminActor(), pickup.ID, input, now)
	if err != nil {
		t.Fatalf("schedule failed: %v", err)
	}
	if scheduled.Status != constants.PickupStatusScheduled {
		t.Fatalf("expected scheduled, got %s", scheduled.Status)
	}
	if scheduled.RecyclerID == nil || *scheduled.RecyclerID != env.recycler.ID {
		t.Fatalf("expected recycler assignment, got %+v", scheduled.RecyclerID)
	}
}

func TestRecyclerSchedulesSelf(t *testing.T) {
	env := setupPickupTestEnv(t, "pickup_schedule_self")
	pickup, err := env.svc.Create(context.Background(), env.ownerActor(), validCreateInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	now := time.Now()

	// 回收员调度无需指定 recycler_id，即指派自己
	scheduled, err := env.svc.Schedule(env.recyclerActor(), pickup.ID, ScheduleInput{
		ScheduledDate: now.Add(24 * time.Hour),
		ScheduledSlot: "14:00-16:00",
	}, now)
	if err != nil {
		t.Fatalf("recycler self-schedule failed: %v", err)
	}
	if scheduled.Status != constants.PickupStatusScheduled {
		t.Fatalf("expected scheduled, got %s", scheduled.Status)
	}
	if scheduled.RecyclerID == nil || *scheduled.RecyclerID != env.recycler.ID {
		t.Fatalf("expected self assignment, got %+v", scheduled.RecyclerID)
	}
}

func TestScheduleConcurrentOneWinner(t *testing.T) {
	env := setupPickupTestEnv(t, "pickup_schedule_race")
	pickup, err := env.svc.Create(context.Background(), env.ownerActor(), validCreateInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	now := time.Now()
	input := ScheduleInput{RecyclerID: env.recycler.ID, ScheduledDate: now.Add(24 * time.Hour)}

	// 两个并发请求都读到 pending；条件更新保证只有第一个生效
	if _, err := env.svc.Schedule(env.adminActor(), pickup.ID, input, now); err != nil {
		t.Fatalf("first schedule failed: %v", err)
	}
	if _, err := env.svc.Schedule(env.adminActor(), pickup.ID, input, now); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition for second schedule, got %v", err)
	}
}

func scheduleForTest(t *testing.T, env *pickupTestEnv, pickupID uint) {
	t.Helper()
	now := time.Now()
	if _, err := env.svc.Schedule(env.adminActor(), pickupID, ScheduleInput{
		RecyclerID:    env.recycler.ID,
		ScheduledDate: now.Add(24 * time.Hour),
	}, now); err != nil {
		t.Fatalf("schedule failed: %v", err)
	}
}

func TestCompletePickupIssuesReward(t *testing.T) {
	env := setupPickupTestEnv(t, "pickup_complete")
	pickup, err := env.svc.Create(context.Background(), env.ownerActor(), validCreateInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	scheduleForTest(t, env, pickup.ID)

	now := time.Now()
	completed, err := env.svc.Complete(context.Background(), env.recyclerActor(), pickup.ID, CompleteInput{
		ActualWeight:    4.5,
		CompletionNotes: "collected at door",
	}, now)
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if completed.Status != constants.PickupStatusCompleted {
		t.Fatalf("expected completed, got %s", completed.Status)
	}
	if completed.ActualWeight == nil || !completed.ActualWeight.Equal(decimal.NewFromFloat(4.5)) {
		t.Fatalf("unexpected actual weight: %+v", completed.ActualWeight)
	}
	if completed.CompletedAt == nil {
		t.Fatalf("expected completed_at to be set")
	}
	if !completed.IsTerminal() {
		t.Fatalf("completed pickup must be terminal")
	}

	var reward models.Reward
	if err := env.db.Where("pickup_id = ?", pickup.ID).First(&reward).Error; err != nil {
		t.Fatalf("load reward failed: %v", err)
	}
	if !reward.Value.Equal(decimal.NewFromInt(45)) {
		t.Fatalf("expected fallback reward 45.00 for 4.5kg, got %s", reward.Value.String())
	}
	if reward.Source != constants.RewardSourceFallback {
		t.Fatalf("expected fallback source, got %s", reward.Source)
	}
	if !strings.HasPrefix(reward.RedemptionCode, constants.RedemptionCodePrefix) {
		t.Fatalf("unexpected redemption code: %s", reward.RedemptionCode)
	}

	var user models.User
	if err := env.db.First(&user, env.owner.ID).Error; err != nil {
		t.Fatalf("load user failed: %v", err)
	}
	if user.TotalPickups != 1 {
		t.Fatalf("expected total pickups 1, got %d", user.TotalPickups)
	}
}

func TestCompletePickupDefaultsToEstimates(t *testing.T) {
	env := setupPickupTestEnv(t, "pickup_complete_defaults")
	pickup, err := env.svc.Create(context.Background(), env.ownerActor(), validCreateInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	scheduleForTest(t, env, pickup.ID)

	// 未提供称重与价值：取预估值完成
	completed, err := env.svc.Complete(context.Background(), env.recyclerActor(), pickup.ID, CompleteInput{}, time.Now())
	if err != nil {
		t.Fatalf("complete without measurements failed: %v", err)
	}
	if completed.Status != constants.PickupStatusCompleted {
		t.Fatalf("expected completed, got %s", completed.Status)
	}
	if completed.ActualWeight == nil || !completed.ActualWeight.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("expected actual weight defaulted to estimated 5, got %+v", completed.ActualWeight)
	}
	if completed.ActualValue == nil || !completed.ActualValue.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("expected actual value defaulted to estimated 120, got %+v", completed.ActualValue)
	}

	var reward models.Reward
	if err := env.db.Where("pickup_id = ?", pickup.ID).First(&reward).Error; err != nil {
		t.Fatalf("load reward failed: %v", err)
	}
	if !reward.Value.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected fallback reward 50.00 for estimated 5kg, got %s", reward.Value.String())
	}
}

// 预测在状态写入前完成：预测器观察到的回收单仍是 scheduled
type statusObservingPredictor struct {
	db        *gorm.DB
	value     float64
	sawStatus string
}

func (p *statusObservingPredictor) PredictIncentive(ctx context.Context, input predictor.Input) (*predictor.Result, error) {
	var pickup models.Pickup
	if err := p.db.Order("id desc").First(&pickup).Error; err != nil {
		return nil, err
	}
	p.sawStatus = pickup.Status
	return &predictor.Result{PredictedValue: p.value}, nil
}

func TestCompletePredictsBeforeStatusWrite(t *testing.T) {
	spy := &statusObservingPredictor{value: 88}
	env := setupPickupTestEnvWithPredictor(t, "pickup_complete_predict_order", spy)
	spy.db = env.db

	pickup, err := env.svc.Create(context.Background(), env.ownerActor(), validCreateInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	scheduleForTest(t, env, pickup.ID)

	completed, err := env.svc.Complete(context.Background(), env.recyclerActor(), pickup.ID, CompleteInput{ActualWeight: 3}, time.Now())
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if completed.Status != constants.PickupStatusCompleted {
		t.Fatalf("expected completed, got %s", completed.Status)
	}
	if spy.sawStatus != constants.PickupStatusScheduled {
		t.Fatalf("predictor must run before the status write, saw %q", spy.sawStatus)
	}

	var reward models.Reward
	if err := env.db.Where("pickup_id = ?", pickup.ID).First(&reward).Error; err != nil {
		t.Fatalf("load reward failed: %v", err)
	}
	if reward.Source != constants.RewardSourcePredictor || !reward.Value.Equal(decimal.NewFromInt(88)) {
		t.Fatalf("expected predictor reward 88.00, got %s from %s", reward.Value.String(), reward.Source)
	}
}

func TestCompletePickupGuards(t *testing.T) {
	env := setupPickupTestEnv(t, "pickup_complete_guards")
	pickup, err := env.svc.Create(context.Background(), env.ownerActor(), validCreateInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	now := time.Now()

	// pending 不能直接完成
	if _, err := env.svc.Complete(context.Background(), env.adminActor(), pickup.ID, CompleteInput{ActualWeight: 1}, now); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition from pending, got %v", err)
	}

	scheduleForTest(t, env, pickup.ID)

	if _, err := env.svc.Complete(context.Background(), env.ownerActor(), pickup.ID, CompleteInput{ActualWeight: 1}, now); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected permission denied for owner, got %v", err)
	}
	if _, err := env.svc.Complete(context.Background(), env.recyclerActor(), pickup.ID, CompleteInput{ActualWeight: -2}, now); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for negative weight, got %v", err)
	}
	if _, err := env.svc.Complete(context.Background(), env.recyclerActor(), pickup.ID, CompleteInput{ActualValue: -1}, now); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for negative value, got %v", err)
	}

	if _, err := env.svc.Complete(context.Background(), env.recyclerActor(), pickup.ID, CompleteInput{ActualWeight: 3}, now); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	// 重复完成必须失败
	if _, err := env.svc.Complete(context.Background(), env.recyclerActor(), pickup.ID, CompleteInput{ActualWeight: 3}, now); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition on double complete, got %v", err)
	}
}

func TestStartPickup(t *testing.T) {
	env := setupPickupTestEnv(t, "pickup_start")
	pickup, err := env.svc.Create(context.Background(), env.ownerActor(), validCreateInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	now := time.Now()

	if _, err := env.svc.Start(env.recyclerActor(), pickup.ID, now); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected permission denied before assignment, got %v", err)
	}

	scheduleForTest(t, env, pickup.ID)
	started, err := env.svc.Start(env.recyclerActor(), pickup.ID, now)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if started.Status != constants.PickupStatusInProgress {
		t.Fatalf("expected in_progress, got %s", started.Status)
	}

	// in_progress 仍可完成
	if _, err := env.svc.Complete(context.Background(), env.recyclerActor(), pickup.ID, CompleteInput{ActualWeight: 2}, now); err != nil {
		t.Fatalf("complete from in_progress failed: %v", err)
	}
}

func TestCancelOnlyFromPending(t *testing.T) {
	env := setupPickupTestEnv(t, "pickup_cancel")
	pickup, err := env.svc.Create(context.Background(), env.ownerActor(), validCreateInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	now := time.Now()

	stranger := Actor{ID: env.owner.ID + 100, Role: constants.RoleUser}
	if _, err := env.svc.Cancel(stranger, pickup.ID, "mistake", now); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected permission denied for stranger, got %v", err)
	}

	cancelled, err := env.svc.Cancel(env.ownerActor(), pickup.ID, "changed my mind", now)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != constants.PickupStatusCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}
	if cancelled.CancelReason != "changed my mind" {
		t.Fatalf("unexpected cancel reason: %s", cancelled.CancelReason)
	}
	if !cancelled.IsTerminal() {
		t.Fatalf("cancelled pickup must be terminal")
	}

	other, err := env.svc.Create(context.Background(), env.ownerActor(), validCreateInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	scheduleForTest(t, env, other.ID)
	if _, err := env.svc.Cancel(env.ownerActor(), other.ID, "too late", now); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition for scheduled cancel, got %v", err)
	}
}

func TestRatePickup(t *testing.T) {
	env := setupPickupTestEnv(t, "pickup_rate")
	pickup, err := env.svc.Create(context.Background(), env.ownerActor(), validCreateInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// 未完成评分属于非法状态迁移一类
	if _, err := env.svc.Rate(env.ownerActor(), pickup.ID, 5, "great"); !errors.Is(err, ErrPickupNotCompleted) {
		t.Fatalf("expected not-completed error, got %v", err)
	}
	if _, err := env.svc.Rate(env.ownerActor(), pickup.ID, 5, "great"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid-transition class, got %v", err)
	}

	scheduleForTest(t, env, pickup.ID)
	if _, err := env.svc.Complete(context.Background(), env.recyclerActor(), pickup.ID, CompleteInput{ActualWeight: 2}, time.Now()); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	if _, err := env.svc.Rate(env.adminActor(), pickup.ID, 5, "great"); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected permission denied for admin rating, got %v", err)
	}
	if _, err := env.svc.Rate(env.ownerActor(), pickup.ID, 6, ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for rating out of range, got %v", err)
	}

	rated, err := env.svc.Rate(env.ownerActor(), pickup.ID, 4, "prompt and polite")
	if err != nil {
		t.Fatalf("rate failed: %v", err)
	}
	if rated.Rating == nil || *rated.Rating != 4 {
		t.Fatalf("unexpected rating: %+v", rated.Rating)
	}
	if _, err := env.svc.Rate(env.ownerActor(), pickup.ID, 3, "second thoughts"); !errors.Is(err, ErrPickupAlreadyRated) {
		t.Fatalf("expected already-rated error, got %v", err)
	}
}

func TestDeleteOnlyPending(t *testing.T) {
	env := setupPickupTestEnv(t, "pickup_delete")
	pickup, err := env.svc.Create(context.Background(), env.ownerActor(), validCreateInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := env.svc.Delete(env.ownerActor(), pickup.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := env.svc.GetForActor(env.ownerActor(), pickup.ID); !errors.Is(err, ErrPickupNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}

	other, err := env.svc.Create(context.Background(), env.ownerActor(), validCreateInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	scheduleForTest(t, env, other.ID)
	if err := env.svc.Delete(env.ownerActor(), other.ID); !errors.Is(err, ErrPickupNotPending) {
		t.Fatalf("expected not-pending error, got %v", err)
	}
}

func TestTrackByNumber(t *testing.T) {
	env := setupPickupTestEnv(t, "pickup_track")
	pickup, err := env.svc.Create(context.Background(), env.ownerActor(), validCreateInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	found, err := env.svc.GetByTrackingNumber(strings.ToLower(pickup.TrackingNumber))
	if err != nil {
		t.Fatalf("track lookup failed: %v", err)
	}
	if found.ID != pickup.ID {
		t.Fatalf("unexpected pickup: %d", found.ID)
	}

	if _, err := env.svc.GetByTrackingNumber("RLDOESNOTEXIST"); !errors.Is(err, ErrPickupNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdatePickupGuards(t *testing.T) {
	env := setupPickupTestEnv(t, "pickup_update")
	pickup, err := env.svc.Create(context.Background(), env.ownerActor(), validCreateInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	newAddress := "45 FC Road"
	updated, err := env.svc.Update(env.ownerActor(), pickup.ID, UpdatePickupInput{Address: &newAddress})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Address != newAddress {
		t.Fatalf("unexpected address: %s", updated.Address)
	}

	badPin := "12"
	if _, err := env.svc.Update(env.ownerActor(), pickup.ID, UpdatePickupInput{Pincode: &badPin}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for bad pincode, got %v", err)
	}

	if _, err := env.svc.Cancel(env.ownerActor(), pickup.ID, "", time.Now()); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if _, err := env.svc.Update(env.ownerActor(), pickup.ID, UpdatePickupInput{Address: &newAddress}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition on cancelled update, got %v", err)
	}
}
