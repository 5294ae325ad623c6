package service

import (
	"strings"

	"github.com/recycle-link/internal/constants"
)

// allowedTransitions 回收单状态机：仅表内迁移合法，终态不再迁移
var allowedTransitions = map[string]map[string]bool{
	constants.PickupStatusPending: {
		constants.PickupStatusScheduled: true,
		constants.PickupStatusCancelled: true,
	},
	constants.PickupStatusScheduled: {
		constants.PickupStatusInProgress: true,
		constants.PickupStatusCompleted:  true,
		constants.PickupStatusCancelled:  true,
	},
	constants.PickupStatusInProgress: {
		constants.PickupStatusCompleted: true,
	},
}

// CanTransition 判断状态迁移是否合法
func CanTransition(current, target string) bool {
	nexts, ok := allowedTransitions[normalizeStatus(current)]
	if !ok {
		return false
	}
	return nexts[normalizeStatus(target)]
}

// IsTerminalStatus 是否终态
func IsTerminalStatus(status string) bool {
	switch normalizeStatus(status) {
	case constants.PickupStatusCompleted, constants.PickupStatusCancelled:
		return true
	}
	return false
}

// IsValidStatus 是否已知状态
func IsValidStatus(status string) bool {
	switch normalizeStatus(status) {
	case constants.PickupStatusPending,
		constants.PickupStatusScheduled,
		constants.PickupStatusInProgress,
		constants.PickupStatusCompleted,
		constants.PickupStatusCancelled:
		return true
	}
	return false
}

func normalizeStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}
