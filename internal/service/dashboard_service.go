package service

import (
	"context"
	"fmt"
	"time"

	"github.com/recycle-link/internal/cache"
	"github.com/recycle-link/internal/constants"
	"github.com/recycle-link/internal/repository"
)

const dashboardCacheTTL = 45 * time.Second

// DashboardService 管理端统计服务
type DashboardService struct {
	pickupRepo repository.PickupRepository
	userRepo   repository.UserRepository
}

// NewDashboardService 创建统计服务
func NewDashboardService(pickupRepo repository.PickupRepository, userRepo repository.UserRepository) *DashboardService {
	return &DashboardService{pickupRepo: pickupRepo, userRepo: userRepo}
}

// DashboardOverviewResponse 管理端概览响应
type DashboardOverviewResponse struct {
	PickupsTotal      int64            `json:"pickups_total"`
	PickupsByStatus   map[string]int64 `json:"pickups_by_status"`
	PendingPickups    int64            `json:"pending_pickups"`
	ScheduledPickups  int64            `json:"scheduled_pickups"`
	InProgressPickups int64            `json:"in_progress_pickups"`
	CompletedPickups  int64            `json:"completed_pickups"`
	CancelledPickups  int64            `json:"cancelled_pickups"`
	CompletionRate    string           `json:"completion_rate"`
	TotalWeightKG     string           `json:"total_weight_kg"`
}

// GetOverview 获取概览：各状态回收单数量与累计回收重量
func (s *DashboardService) GetOverview(ctx context.Context, forceRefresh bool) (*DashboardOverviewResponse, error) {
	const cacheKey = "dashboard:overview"
	if !forceRefresh {
		var cached DashboardOverviewResponse
		hit, cacheErr := cache.GetJSON(ctx, cacheKey, &cached)
		if cacheErr == nil && hit {
			return &cached, nil
		}
	}

	byStatus, err := s.pickupRepo.CountByStatus()
	if err != nil {
		return nil, err
	}
	totalWeight, err := s.pickupRepo.SumActualWeightCompleted()
	if err != nil {
		return nil, err
	}

	var total int64
	for _, count := range byStatus {
		total += count
	}
	completionRate := 0.0
	if total > 0 {
		completionRate = float64(byStatus[constants.PickupStatusCompleted]) / float64(total) * 100
	}

	response := &DashboardOverviewResponse{
		PickupsTotal:      total,
		PickupsByStatus:   byStatus,
		PendingPickups:    byStatus[constants.PickupStatusPending],
		ScheduledPickups:  byStatus[constants.PickupStatusScheduled],
		InProgressPickups: byStatus[constants.PickupStatusInProgress],
		CompletedPickups:  byStatus[constants.PickupStatusCompleted],
		CancelledPickups:  byStatus[constants.PickupStatusCancelled],
		CompletionRate:    fmt.Sprintf("%.2f", completionRate),
		TotalWeightKG:     fmt.Sprintf("%.2f", totalWeight),
	}

	_ = cache.SetJSON(ctx, cacheKey, response, dashboardCacheTTL)
	return response, nil
}
