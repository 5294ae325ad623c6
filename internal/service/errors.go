package service

import (
	"errors"
	"fmt"
)

// 服务层统一错误
var (
	ErrValidation        = errors.New("validation failed")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrInvalidTransition = errors.New("invalid status transition")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserDisabled       = errors.New("user account disabled")

	ErrPickupNotFound   = errors.New("pickup not found")
	ErrItemNotFound     = errors.New("ewaste item not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrRecyclerNotFound = errors.New("recycler not found")

	ErrPickupNotPending = errors.New("pickup not in pending status")
	// ErrPickupNotCompleted 属于非法状态迁移一类，errors.Is 同时命中 ErrInvalidTransition
	ErrPickupNotCompleted = fmt.Errorf("%w: pickup not completed", ErrInvalidTransition)
	ErrPickupAlreadyRated = errors.New("pickup already rated")

	ErrRewardNotFound      = errors.New("reward not found")
	ErrRewardNotActive     = errors.New("reward not active")
	ErrRewardExpired       = errors.New("reward expired")
	ErrRewardAlreadyExists = errors.New("reward already issued for pickup")
)
