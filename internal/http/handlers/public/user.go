package public

import (
	"github.com/recycle-link/internal/http/response"
	"github.com/recycle-link/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateProfileRequest 更新个人资料请求（指针字段区分未填与清空）
type UpdateProfileRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	Pincode *string `json:"pincode"`
	Locale  *string `json:"locale"`
}

// GetCurrentUser 当前用户资料
func (h *Handler) GetCurrentUser(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	user, err := h.UserService.GetProfile(actor)
	if err != nil {
		respondWithMappedError(c, err, userProfileErrorRules, response.CodeInternal, "error.user_fetch_failed")
		return
	}

	response.Success(c, userProfileResponse(user))
}

// UpdateProfile 更新当前用户资料
func (h *Handler) UpdateProfile(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, err := h.UserService.UpdateProfile(actor, service.UpdateProfileInput{
		Name:    req.Name,
		Phone:   req.Phone,
		City:    req.City,
		State:   req.State,
		Pincode: req.Pincode,
		Locale:  req.Locale,
	})
	if err != nil {
		respondWithMappedError(c, err, userProfileErrorRules, response.CodeInternal, "error.save_failed")
		return
	}

	response.Success(c, userProfileResponse(user))
}

// GetMyStats 当前用户的回收与奖励统计
func (h *Handler) GetMyStats(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	stats, err := h.UserService.Stats(actor)
	if err != nil {
		respondWithMappedError(c, err, userProfileErrorRules, response.CodeInternal, "error.user_fetch_failed")
		return
	}

	response.Success(c, stats)
}
