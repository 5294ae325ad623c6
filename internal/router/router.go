package router

import (
	"fmt"
	"strings"

	"github.com/recycle-link/internal/cache"
	"github.com/recycle-link/internal/config"
	"github.com/recycle-link/internal/constants"
	adminhandlers "github.com/recycle-link/internal/http/handlers/admin"
	publichandlers "github.com/recycle-link/internal/http/handlers/public"
	"github.com/recycle-link/internal/logger"
	"github.com/recycle-link/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按用户侧/管理端分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "rl"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}
	trackRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:track", redisPrefix),
		WindowSeconds: cfg.Security.TrackRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.TrackRateLimit.MaxAttempts,
		MessageKey:    "error.track_too_many",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口（无需登录）
		public := apiV1.Group("/public")
		{
			public.GET("/track/:tracking_number", RateLimitMiddleware(redisClient, trackRule, KeyByIP), publicHandler.TrackPickup)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(JWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.GetCurrentUser)
			user.PUT("/me/profile", publicHandler.UpdateProfile)
			user.GET("/me/stats", publicHandler.GetMyStats)

			user.POST("/pickups", publicHandler.CreatePickup)
			user.GET("/pickups", publicHandler.ListMyPickups)
			user.GET("/pickups/:id", publicHandler.GetPickup)
			user.PUT("/pickups/:id", publicHandler.UpdatePickup)
			user.POST("/pickups/:id/cancel", publicHandler.CancelPickup)
			user.DELETE("/pickups/:id", publicHandler.DeletePickup)
			user.POST("/pickups/:id/rate", publicHandler.RatePickup)
			user.POST("/pickups/:id/items", publicHandler.AddPickupItem)

			user.GET("/rewards", publicHandler.ListMyRewards)
			user.GET("/rewards/summary", publicHandler.GetRewardSummary)
			user.GET("/rewards/:id", publicHandler.GetReward)
			user.POST("/rewards/:id/redeem", publicHandler.RedeemReward)

			// 回收员接口
			recycler := user.Group("/recycler")
			recycler.Use(RequireRoles(constants.RoleRecycler, constants.RoleAdmin))
			{
				recycler.GET("/pickups", publicHandler.ListAssignedPickups)
				recycler.POST("/pickups/:id/schedule", publicHandler.SchedulePickup)
				recycler.POST("/pickups/:id/start", publicHandler.StartPickup)
				recycler.POST("/pickups/:id/complete", publicHandler.CompletePickup)
			}

			// 管理员接口
			admin := user.Group("/admin")
			admin.Use(RequireRoles(constants.RoleAdmin))
			{
				admin.GET("/dashboard/overview", adminHandler.GetDashboardOverview)

				admin.GET("/pickups", adminHandler.ListPickups)
				admin.GET("/pickups/:id", adminHandler.GetPickup)
				admin.POST("/pickups/:id/schedule", adminHandler.SchedulePickup)
				admin.PATCH("/pickups/:id/status", adminHandler.UpdatePickupStatus)
				admin.POST("/pickups/:id/complete", adminHandler.CompletePickup)

				admin.GET("/users", adminHandler.ListUsers)
				admin.GET("/recyclers", adminHandler.ListRecyclers)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
