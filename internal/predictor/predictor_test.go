package predictor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient(Config{}); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid, got %v", err)
	}
}

func TestPredictIncentiveSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/predict-incentive" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		var payload map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request failed: %v", err)
		}
		if payload["weight"].(float64) != 4.5 {
			t.Fatalf("unexpected weight: %v", payload["weight"])
		}
		location, ok := payload["location"].(map[string]interface{})
		if !ok || location["city"] != "Pune" {
			t.Fatalf("unexpected location payload: %v", payload["location"])
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"predicted_value": 87.5})
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("create client failed: %v", err)
	}

	result, err := client.PredictIncentive(context.Background(), Input{
		WeightKG:      4.5,
		DeviceTypes:   []string{"laptop"},
		City:          "Pune",
		State:         "Maharashtra",
		UserFrequency: 3,
	})
	if err != nil {
		t.Fatalf("predict failed: %v", err)
	}
	if result.PredictedValue != 87.5 {
		t.Fatalf("unexpected predicted value: %v", result.PredictedValue)
	}
}

func TestPredictIncentiveHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("create client failed: %v", err)
	}

	if _, err := client.PredictIncentive(context.Background(), Input{WeightKG: 1}); !errors.Is(err, ErrRequestFailed) {
		t.Fatalf("expected ErrRequestFailed, got %v", err)
	}
}

func TestPredictIncentiveInvalidBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not-json"))
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("create client failed: %v", err)
	}

	if _, err := client.PredictIncentive(context.Background(), Input{WeightKG: 1}); !errors.Is(err, ErrResponseInvalid) {
		t.Fatalf("expected ErrResponseInvalid, got %v", err)
	}
}
