package predictor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	ErrConfigInvalid   = errors.New("predictor config invalid")
	ErrRequestFailed   = errors.New("predictor request failed")
	ErrResponseInvalid = errors.New("predictor response invalid")
)

const defaultTimeout = 2 * time.Second

// Config 激励预测服务配置
type Config struct {
	BaseURL   string // 服务地址，如 http://127.0.0.1:8000
	TimeoutMS int
}

// Input 预测输入
type Input struct {
	WeightKG      float64  `json:"weight"`
	DeviceTypes   []string `json:"device_types"`
	City          string   `json:"-"`
	State         string   `json:"-"`
	UserFrequency int      `json:"user_frequency"`
}

// Result 预测结果
type Result struct {
	PredictedValue float64 `json:"predicted_value"`
}

// Client 激励预测服务客户端
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient 创建预测服务客户端
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, ErrConfigInvalid
	}
	timeout := defaultTimeout
	if cfg.TimeoutMS > 0 {
		timeout = time.Duration(cfg.TimeoutMS) * time.Millisecond
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// PredictIncentive 请求预测奖励金额
func (c *Client) PredictIncentive(ctx context.Context, input Input) (*Result, error) {
	if c == nil || c.httpClient == nil {
		return nil, ErrConfigInvalid
	}

	payload := map[string]interface{}{
		"weight":       input.WeightKG,
		"device_types": input.DeviceTypes,
		"location": map[string]string{
			"city":  input.City,
			"state": input.State,
		},
		"user_frequency": input.UserFrequency,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	endpoint := c.baseURL + "/predict-incentive"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: http status %d", ErrRequestFailed, resp.StatusCode)
	}

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}

	var result Result
	if err := json.Unmarshal(respBytes, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if result.PredictedValue < 0 {
		return nil, fmt.Errorf("%w: negative predicted value", ErrResponseInvalid)
	}
	return &result, nil
}
