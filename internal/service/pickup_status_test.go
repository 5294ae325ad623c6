package service

import (
	"testing"

	"github.com/recycle-link/internal/constants"
)

func TestCanTransitionAllowed(t *testing.T) {
	cases := []struct {
		from string
		to   string
	}{
		{constants.PickupStatusPending, constants.PickupStatusScheduled},
		{constants.PickupStatusPending, constants.PickupStatusCancelled},
		{constants.PickupStatusScheduled, constants.PickupStatusInProgress},
		{constants.PickupStatusScheduled, constants.PickupStatusCompleted},
		{constants.PickupStatusScheduled, constants.PickupStatusCancelled},
		{constants.PickupStatusInProgress, constants.PickupStatusCompleted},
	}
	for _, tc := range cases {
		if !CanTransition(tc.from, tc.to) {
			t.Fatalf("expected transition %s -> %s to be allowed", tc.from, tc.to)
		}
	}
}

func TestCanTransitionRejected(t *testing.T) {
	cases := []struct {
		from string
		to   string
	}{
		{constants.PickupStatusPending, constants.PickupStatusCompleted},
		{constants.PickupStatusPending, constants.PickupStatusInProgress},
		{constants.PickupStatusInProgress, constants.PickupStatusCancelled},
		{constants.PickupStatusCompleted, constants.PickupStatusCancelled},
		{constants.PickupStatusCompleted, constants.PickupStatusPending},
		{constants.PickupStatusCancelled, constants.PickupStatusScheduled},
		{constants.PickupStatusPending, constants.PickupStatusPending},
		{"unknown", constants.PickupStatusScheduled},
	}
	for _, tc := range cases {
		if CanTransition(tc.from, tc.to) {
			t.Fatalf("expected transition %s -> %s to be rejected", tc.from, tc.to)
		}
	}
}

func TestIsTerminalStatus(t *testing.T) {
	if !IsTerminalStatus(constants.PickupStatusCompleted) {
		t.Fatalf("completed should be terminal")
	}
	if !IsTerminalStatus(constants.PickupStatusCancelled) {
		t.Fatalf("cancelled should be terminal")
	}
	for _, status := range []string{
		constants.PickupStatusPending,
		constants.PickupStatusScheduled,
		constants.PickupStatusInProgress,
	} {
		if IsTerminalStatus(status) {
			t.Fatalf("%s should not be terminal", status)
		}
	}
}
