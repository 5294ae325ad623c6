package service

import (
	"strings"
	"testing"

	"github.com/recycle-link/internal/constants"
)

func TestGenerateTrackingNumberFormat(t *testing.T) {
	code := generateTrackingNumber()
	if !strings.HasPrefix(code, constants.TrackingNumberPrefix) {
		t.Fatalf("expected prefix %s, got %s", constants.TrackingNumberPrefix, code)
	}
	if len(code) < len(constants.TrackingNumberPrefix)+10 {
		t.Fatalf("tracking number too short: %s", code)
	}
	for _, r := range code {
		if !strings.ContainsRune(base36Alphabet, r) {
			t.Fatalf("unexpected character %q in tracking number %s", r, code)
		}
	}
}

func TestGenerateRedemptionCodeFormat(t *testing.T) {
	code := generateRedemptionCode()
	if !strings.HasPrefix(code, constants.RedemptionCodePrefix) {
		t.Fatalf("expected prefix %s, got %s", constants.RedemptionCodePrefix, code)
	}
	if len(code) < len(constants.RedemptionCodePrefix)+11 {
		t.Fatalf("redemption code too short: %s", code)
	}
}

func TestGenerateTrackingNumberUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		code := generateTrackingNumber()
		if seen[code] {
			t.Fatalf("duplicate tracking number generated: %s", code)
		}
		seen[code] = true
	}
}
