package service

import (
	"fmt"
	"strings"

	"github.com/recycle-link/internal/constants"
	"github.com/recycle-link/internal/models"
	"github.com/recycle-link/internal/repository"
)

// UserService 用户服务
type UserService struct {
	userRepo      repository.UserRepository
	rewardService *RewardService
}

// NewUserService 创建用户服务
func NewUserService(userRepo repository.UserRepository, rewardService *RewardService) *UserService {
	return &UserService{userRepo: userRepo, rewardService: rewardService}
}

// UpdateProfileInput 更新个人资料输入（nil 字段表示不修改）
type UpdateProfileInput struct {
	Name    *string
	Phone   *string
	City    *string
	State   *string
	Pincode *string
	Locale  *string
}

// GetProfile 获取当前用户资料
func (s *UserService) GetProfile(actor Actor) (*models.User, error) {
	user, err := s.userRepo.GetByID(actor.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile 更新当前用户资料
func (s *UserService) UpdateProfile(actor Actor, input UpdateProfileInput) (*models.User, error) {
	user, err := s.GetProfile(actor)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name is required", ErrValidation)
		}
		updates["name"] = name
	}
	if input.Phone != nil {
		updates["phone"] = strings.TrimSpace(*input.Phone)
	}
	if input.City != nil {
		updates["city"] = strings.TrimSpace(*input.City)
	}
	if input.State != nil {
		updates["state"] = strings.TrimSpace(*input.State)
	}
	if input.Pincode != nil {
		if *input.Pincode != "" && !pincodePattern.MatchString(*input.Pincode) {
			return nil, fmt.Errorf("%w: pincode must be 6 digits", ErrValidation)
		}
		updates["pincode"] = *input.Pincode
	}
	if input.Locale != nil {
		updates["locale"] = *input.Locale
	}
	if len(updates) == 0 {
		return user, nil
	}

	if err := s.userRepo.Updates(user.ID, updates); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(user.ID)
}

// Stats 当前用户的回收与奖励统计
func (s *UserService) Stats(actor Actor) (map[string]interface{}, error) {
	user, err := s.GetProfile(actor)
	if err != nil {
		return nil, err
	}
	rewardSummary, err := s.rewardService.SummaryForUser(actor)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"total_pickups": user.TotalPickups,
		"rewards":       rewardSummary,
	}, nil
}

// ListRecyclers 管理端回收员列表（调度时选择指派对象）
func (s *UserService) ListRecyclers(filter repository.UserListFilter) ([]models.User, int64, error) {
	filter.Role = constants.RoleRecycler
	return s.userRepo.List(filter)
}

// ListUsers 管理端用户列表
func (s *UserService) ListUsers(filter repository.UserListFilter) ([]models.User, int64, error) {
	return s.userRepo.List(filter)
}
