package geocode

import (
	"context"
	"fmt"
	"strings"
	"time"

	"googlemaps.github.io/maps"
)

const defaultTimeout = 3 * time.Second

// GoogleConfig Google 地理编码配置
type GoogleConfig struct {
	APIKey    string
	Region    string
	TimeoutMS int
}

// GoogleGeocoder 基于 Google Geocoding API 的实现
type GoogleGeocoder struct {
	client  *maps.Client
	region  string
	timeout time.Duration
}

// NewGoogleGeocoder 创建 Google 地理编码客户端
func NewGoogleGeocoder(cfg GoogleConfig) (*GoogleGeocoder, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrConfigInvalid
	}
	client, err := maps.NewClient(maps.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create maps client failed: %w", err)
	}
	timeout := defaultTimeout
	if cfg.TimeoutMS > 0 {
		timeout = time.Duration(cfg.TimeoutMS) * time.Millisecond
	}
	return &GoogleGeocoder{
		client:  client,
		region:  strings.TrimSpace(cfg.Region),
		timeout: timeout,
	}, nil
}

// Geocode 将取件地址解析为经纬度
func (g *GoogleGeocoder) Geocode(ctx context.Context, address Address) (*Coordinates, error) {
	if g == nil || g.client == nil {
		return nil, ErrConfigInvalid
	}
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	request := &maps.GeocodingRequest{
		Address: formatAddress(address),
		Region:  g.region,
	}
	results, err := g.client.Geocode(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}

	location := results[0].Geometry.Location
	return &Coordinates{
		Latitude:  location.Lat,
		Longitude: location.Lng,
	}, nil
}

func formatAddress(address Address) string {
	parts := make([]string, 0, 4)
	for _, part := range []string{address.Line, address.City, address.State, address.Pincode} {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, ", ")
}
