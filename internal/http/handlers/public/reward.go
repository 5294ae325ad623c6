package public

import (
	"strconv"
	"strings"
	"time"

	"github.com/recycle-link/internal/http/response"
	"github.com/recycle-link/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListMyRewards 当前用户的奖励列表
func (h *Handler) ListMyRewards(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	rewards, total, err := h.RewardService.ListForUser(actor, repository.RewardListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
		Type:     strings.TrimSpace(c.Query("type")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.reward_fetch_failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, rewards, pagination)
}

// GetReward 奖励详情（仅受益人可见）
func (h *Handler) GetReward(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	rewardID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || rewardID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	reward, err := h.RewardService.GetForUser(actor, uint(rewardID))
	if err != nil {
		respondRewardError(c, err)
		return
	}

	response.Success(c, reward)
}

// RedeemReward 兑换奖励（仅受益人，active 且未过期）
func (h *Handler) RedeemReward(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	rewardID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || rewardID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	reward, err := h.RewardService.Redeem(actor, uint(rewardID), time.Now())
	if err != nil {
		respondRewardError(c, err)
		return
	}

	response.Success(c, reward)
}

// GetRewardSummary 当前用户的奖励汇总（累计/已兑换/生效中）
func (h *Handler) GetRewardSummary(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	summary, err := h.RewardService.SummaryForUser(actor)
	if err != nil {
		respondError(c, response.CodeInternal, "error.reward_fetch_failed", err)
		return
	}

	response.Success(c, summary)
}
