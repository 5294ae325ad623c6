package cache

import (
	"context"
	"fmt"
	"time"
)

const defaultTrackViewTTL = 60 * time.Second

// TrackView 公开追踪接口的只读快照
// 仅暴露可公开字段，避免把请求者信息泄露给未登录的查询方
type TrackView struct {
	TrackingNumber string  `json:"tracking_number"`
	Status         string  `json:"status"`
	City           string  `json:"city"`
	State          string  `json:"state"`
	ScheduledDate  *string `json:"scheduled_date,omitempty"`
	ScheduledSlot  string  `json:"scheduled_slot,omitempty"`
	CompletedAt    *string `json:"completed_at,omitempty"`
	UpdatedAt      string  `json:"updated_at"`
}

func trackViewKey(trackingNumber string) string {
	return fmt.Sprintf("track:%s", trackingNumber)
}

// GetTrackView 读取追踪快照缓存
func GetTrackView(ctx context.Context, trackingNumber string) (*TrackView, bool) {
	var view TrackView
	found, err := GetJSON(ctx, trackViewKey(trackingNumber), &view)
	if err != nil || !found {
		return nil, false
	}
	return &view, true
}

// SetTrackView 写入追踪快照缓存
func SetTrackView(ctx context.Context, trackingNumber string, view *TrackView, ttlSeconds int) {
	if view == nil {
		return
	}
	ttl := defaultTrackViewTTL
	if ttlSeconds > 0 {
		ttl = time.Duration(ttlSeconds) * time.Second
	}
	_ = SetJSON(ctx, trackViewKey(trackingNumber), view, ttl)
}

// InvalidateTrackView 状态变更后删除追踪快照缓存
func InvalidateTrackView(ctx context.Context, trackingNumber string) {
	if trackingNumber == "" {
		return
	}
	_ = Del(ctx, trackViewKey(trackingNumber))
}
