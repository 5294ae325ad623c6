package geocode

import (
	"context"
	"errors"
)

// 地理编码错误
var (
	ErrConfigInvalid = errors.New("geocode config invalid")
	ErrNotFound      = errors.New("geocode no result")
	ErrUnavailable   = errors.New("geocode service unavailable")
)

// Address 待编码的地址
type Address struct {
	Line    string
	City    string
	State   string
	Pincode string
}

// Coordinates 编码结果
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Geocoder 地理编码接口
type Geocoder interface {
	Geocode(ctx context.Context, address Address) (*Coordinates, error)
}

// Noop 空实现：未配置地理编码时使用，始终返回服务不可用
type Noop struct{}

// Geocode 始终返回 ErrUnavailable
func (Noop) Geocode(ctx context.Context, address Address) (*Coordinates, error) {
	return nil, ErrUnavailable
}
