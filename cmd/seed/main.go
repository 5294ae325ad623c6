package main

import (
	"fmt"
	"time"

	"github.com/recycle-link/internal/config"
	"github.com/recycle-link/internal/constants"
	"github.com/recycle-link/internal/logger"
	"github.com/recycle-link/internal/models"
	"github.com/recycle-link/internal/repository"
	"github.com/recycle-link/internal/service"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// 开发环境演示数据：用户/回收员/管理员各一名，外加几张处于不同状态的回收单。
func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 演示账号（密码统一为 demo1234）
	passwordHash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		stdLog.Fatalf("Failed to hash demo password: %v", err)
	}

	users := []models.User{
		{
			Email:        "asha@example.com",
			PasswordHash: string(passwordHash),
			Name:         "Asha Nair",
			Phone:        "+919800000001",
			Role:         constants.RoleUser,
			Status:       constants.UserStatusActive,
			City:         "Pune",
			State:        "Maharashtra",
			Pincode:      "411001",
		},
		{
			Email:        "recycler@example.com",
			PasswordHash: string(passwordHash),
			Name:         "Vikram Patil",
			Phone:        "+919800000002",
			Role:         constants.RoleRecycler,
			Status:       constants.UserStatusActive,
			City:         "Pune",
			State:        "Maharashtra",
			Pincode:      "411002",
		},
		{
			Email:        "admin@example.com",
			PasswordHash: string(passwordHash),
			Name:         "Operations Admin",
			Role:         constants.RoleAdmin,
			Status:       constants.UserStatusActive,
		},
	}

	userIDs := map[string]uint{}
	for _, user := range users {
		var existing models.User
		if err := models.DB.Where("email = ?", user.Email).First(&existing).Error; err != nil {
			if err := models.DB.Create(&user).Error; err != nil {
				stdLog.Printf("Failed to create user %s: %v", user.Email, err)
				continue
			}
			stdLog.Printf("Created user: %s (%s)", user.Email, user.Role)
			userIDs[user.Role] = user.ID
		} else {
			stdLog.Printf("User already exists: %s", existing.Email)
			userIDs[existing.Role] = existing.ID
		}
	}

	requesterID := userIDs[constants.RoleUser]
	recyclerID := userIDs[constants.RoleRecycler]
	if requesterID == 0 || recyclerID == 0 {
		stdLog.Fatalf("Seed users missing, aborting pickup seed")
	}

	tomorrow := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	completedAt := time.Now().Add(-48 * time.Hour)

	pickups := []struct {
		pickup models.Pickup
		items  []models.EWasteItem
	}{
		{
			pickup: models.Pickup{
				TrackingNumber:  "RLDEMO1PENDING",
				UserID:          requesterID,
				Status:          constants.PickupStatusPending,
				Priority:        constants.PickupPriorityMedium,
				Address:         "14 MG Road",
				City:            "Pune",
				State:           "Maharashtra",
				Pincode:         "411001",
				ContactPerson:   "Asha Nair",
				ContactPhone:    "+919800000001",
				EstimatedWeight: models.NewQuantityFromFloat(6.5),
				Notes:           "Old office laptops",
			},
			items: []models.EWasteItem{
				{DeviceType: constants.DeviceTypeLaptop, Brand: "Lenovo", Condition: constants.ItemConditionNotWorking, Quantity: 2, Weight: models.NewQuantityFromFloat(2.2)},
				{DeviceType: constants.DeviceTypeAccessory, Condition: constants.ItemConditionScrap, Quantity: 5, Weight: models.NewQuantityFromFloat(0.4)},
			},
		},
		{
			pickup: models.Pickup{
				TrackingNumber:  "RLDEMO2SCHED",
				UserID:          requesterID,
				RecyclerID:      &recyclerID,
				Status:          constants.PickupStatusScheduled,
				Priority:        constants.PickupPriorityHigh,
				Address:         "7 FC Road",
				City:            "Pune",
				State:           "Maharashtra",
				Pincode:         "411004",
				ScheduledDate:   &tomorrow,
				ScheduledSlot:   "10:00-12:00",
				EstimatedWeight: models.NewQuantityFromFloat(30),
			},
			items: []models.EWasteItem{
				{DeviceType: constants.DeviceTypeRefrigerator, Brand: "Samsung", Condition: constants.ItemConditionPartiallyWorking, Quantity: 1, Weight: models.NewQuantityFromFloat(30), HazardousParts: models.StringArray{"refrigerant"}},
			},
		},
		{
			pickup: models.Pickup{
				TrackingNumber:  "RLDEMO3DONE",
				UserID:          requesterID,
				RecyclerID:      &recyclerID,
				Status:          constants.PickupStatusCompleted,
				Priority:        constants.PickupPriorityMedium,
				Address:         "22 Koregaon Park",
				City:            "Pune",
				State:           "Maharashtra",
				Pincode:         "411001",
				EstimatedWeight: models.NewQuantityFromFloat(4),
				ActualWeight:    quantityPtr(4.5),
				ActualValue:     moneyPtr(45),
				CompletedAt:     &completedAt,
			},
			items: []models.EWasteItem{
				{DeviceType: constants.DeviceTypeSmartphone, Brand: "Xiaomi", Condition: constants.ItemConditionNotWorking, Quantity: 3, Weight: models.NewQuantityFromFloat(0.5), HazardousParts: models.StringArray{"battery"}},
			},
		},
	}

	for _, entry := range pickups {
		var existing models.Pickup
		if err := models.DB.Where("tracking_number = ?", entry.pickup.TrackingNumber).First(&existing).Error; err == nil {
			stdLog.Printf("Pickup already exists: %s", existing.TrackingNumber)
			continue
		}
		pickup := entry.pickup
		if err := models.DB.Create(&pickup).Error; err != nil {
			stdLog.Printf("Failed to create pickup %s: %v", pickup.TrackingNumber, err)
			continue
		}
		for _, item := range entry.items {
			item.PickupID = pickup.ID
			if err := models.DB.Create(&item).Error; err != nil {
				stdLog.Printf("Failed to create item for %s: %v", pickup.TrackingNumber, err)
			}
		}
		stdLog.Printf("Created pickup: %s (%s)", pickup.TrackingNumber, pickup.Status)

		// 已完成的回收单按兜底公式补一条奖励
		if pickup.Status == constants.PickupStatusCompleted && pickup.ActualWeight != nil {
			expiresAt := completedAt.AddDate(0, 0, 180)
			value := pickup.ActualWeight.Decimal.Mul(decimal.RequireFromString(cfg.Reward.RatePerKG))
			reward := models.Reward{
				RedemptionCode: "RWDEMO1CASH",
				UserID:         pickup.UserID,
				PickupID:       pickup.ID,
				Type:           constants.RewardTypeCashback,
				Status:         constants.RewardStatusActive,
				Value:          models.NewMoneyFromDecimal(value),
				Currency:       cfg.Reward.Currency,
				Source:         constants.RewardSourceFallback,
				IssuedAt:       completedAt,
				ExpiresAt:      &expiresAt,
			}
			if err := models.DB.Create(&reward).Error; err != nil {
				stdLog.Printf("Failed to create reward for %s: %v", pickup.TrackingNumber, err)
			} else {
				stdLog.Printf("Created reward: %s (%s %s)", reward.RedemptionCode, reward.Value, reward.Currency)
			}
		}
	}

	// 打印开发用 JWT，便于直接调用 API
	authService := service.NewAuthService(cfg, repository.NewUserRepository(models.DB))
	for _, email := range []string{"asha@example.com", "recycler@example.com", "admin@example.com"} {
		var user models.User
		if err := models.DB.Where("email = ?", email).First(&user).Error; err != nil {
			continue
		}
		token, expiresAt, err := authService.GenerateJWT(&user)
		if err != nil {
			stdLog.Printf("Failed to generate token for %s: %v", email, err)
			continue
		}
		fmt.Printf("\n%s (%s)\n  token: %s\n  expires: %s\n", email, user.Role, token, expiresAt.Format(time.RFC3339))
	}

	stdLog.Printf("Seed complete")
}

func quantityPtr(value float64) *models.Quantity {
	q := models.NewQuantityFromFloat(value)
	return &q
}

func moneyPtr(value int64) *models.Money {
	m := models.NewMoneyFromDecimal(decimal.NewFromInt(value))
	return &m
}
