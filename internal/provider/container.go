package provider

import (
	"github.com/recycle-link/internal/cache"
	"github.com/recycle-link/internal/config"
	"github.com/recycle-link/internal/geocode"
	"github.com/recycle-link/internal/logger"
	"github.com/recycle-link/internal/models"
	"github.com/recycle-link/internal/predictor"
	"github.com/recycle-link/internal/queue"
	"github.com/recycle-link/internal/repository"
	"github.com/recycle-link/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Geocoder    geocode.Geocoder

	// Repositories
	UserRepo   repository.UserRepository
	PickupRepo repository.PickupRepository
	ItemRepo   repository.EWasteItemRepository
	RewardRepo repository.RewardRepository

	// Services
	AuthService      *service.AuthService
	PickupService    *service.PickupService
	RewardService    *service.RewardService
	UserService      *service.UserService
	DashboardService *service.DashboardService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化外部适配器
	c.initAdapters()

	// 3. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.PickupRepo = repository.NewPickupRepository(db)
	c.ItemRepo = repository.NewEWasteItemRepository(db)
	c.RewardRepo = repository.NewRewardRepository(db)
}

// initAdapters 初始化地理编码与激励预测客户端
// 两者都是可选依赖，配置缺失或初始化失败时降级为空实现
func (c *Container) initAdapters() {
	c.Geocoder = geocode.Noop{}
	if c.Config.Geocode.Enabled {
		geocoder, err := geocode.NewGoogleGeocoder(geocode.GoogleConfig{
			APIKey:    c.Config.Geocode.APIKey,
			Region:    c.Config.Geocode.Region,
			TimeoutMS: c.Config.Geocode.TimeoutMS,
		})
		if err != nil {
			logger.Warnw("provider_init_geocoder_failed_degraded", "error", err)
		} else {
			c.Geocoder = geocoder
		}
	}
}

func (c *Container) initServices() {
	var incentivePredictor service.IncentivePredictor
	if c.Config.Predictor.Enabled {
		client, err := predictor.NewClient(predictor.Config{
			BaseURL:   c.Config.Predictor.BaseURL,
			TimeoutMS: c.Config.Predictor.TimeoutMS,
		})
		if err != nil {
			logger.Warnw("provider_init_predictor_failed_fallback", "error", err)
		} else {
			incentivePredictor = client
		}
	}

	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.RewardService = service.NewRewardService(c.RewardRepo, c.UserRepo, incentivePredictor, c.QueueClient, c.Config.Reward)
	c.PickupService = service.NewPickupService(c.PickupRepo, c.ItemRepo, c.UserRepo, c.RewardService, c.Geocoder, c.QueueClient)
	c.UserService = service.NewUserService(c.UserRepo, c.RewardService)
	c.DashboardService = service.NewDashboardService(c.PickupRepo, c.UserRepo)
}
