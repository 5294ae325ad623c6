package public

import (
	"github.com/recycle-link/internal/http/response"
	"github.com/recycle-link/internal/models"
	"github.com/recycle-link/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register 用户注册
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, err := h.AuthService.Register(service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
		City:     req.City,
		State:    req.State,
		Pincode:  req.Pincode,
	})
	if err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "error.register_failed")
		return
	}

	response.Success(c, userProfileResponse(user))
}

// Login 用户登录，返回 JWT
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, token, expiresAt, err := h.AuthService.Login(req.Email, req.Password)
	if err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "error.login_failed")
		return
	}

	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"user":       userProfileResponse(user),
	})
}

// userProfileResponse 用户侧可见的用户字段
func userProfileResponse(user *models.User) gin.H {
	if user == nil {
		return gin.H{}
	}
	return gin.H{
		"id":            user.ID,
		"email":         user.Email,
		"name":          user.Name,
		"phone":         user.Phone,
		"role":          user.Role,
		"status":        user.Status,
		"city":          user.City,
		"state":         user.State,
		"pincode":       user.Pincode,
		"locale":        user.Locale,
		"total_pickups": user.TotalPickups,
		"created_at":    user.CreatedAt,
	}
}
