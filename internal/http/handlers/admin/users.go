package admin

import (
	"strconv"
	"strings"

	"github.com/recycle-link/internal/http/response"
	"github.com/recycle-link/internal/repository"

	"github.com/gin-gonic/gin"
)

func bindUserListFilter(c *gin.Context) repository.UserListFilter {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	return repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
		Status:   strings.TrimSpace(c.Query("status")),
	}
}

// ListUsers 管理端用户列表
func (h *Handler) ListUsers(c *gin.Context) {
	filter := bindUserListFilter(c)
	filter.Role = strings.TrimSpace(c.Query("role"))

	users, total, err := h.UserService.ListUsers(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.user_fetch_failed", err)
		return
	}

	pagination := response.BuildPagination(filter.Page, filter.PageSize, total)
	response.SuccessWithPage(c, users, pagination)
}

// ListRecyclers 管理端回收员列表（调度时选择指派对象）
func (h *Handler) ListRecyclers(c *gin.Context) {
	filter := bindUserListFilter(c)

	recyclers, total, err := h.UserService.ListRecyclers(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.user_fetch_failed", err)
		return
	}

	pagination := response.BuildPagination(filter.Page, filter.PageSize, total)
	response.SuccessWithPage(c, recyclers, pagination)
}
