package public

import (
	"errors"

	"github.com/recycle-link/internal/http/response"
	"github.com/recycle-link/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	merged := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		merged = append(merged, group...)
	}
	return merged
}

var pickupCommonErrorRules = []mappedHandlerError{
	{target: service.ErrValidation, code: response.CodeBadRequest, key: "error.validation_failed"},
	{target: service.ErrPermissionDenied, code: response.CodeForbidden, key: "error.forbidden"},
	{target: service.ErrPickupNotFound, code: response.CodeNotFound, key: "error.pickup_not_found"},
	{target: service.ErrInvalidTransition, code: response.CodeConflict, key: "error.pickup_invalid_status"},
}

var pickupLifecycleErrorRules = []mappedHandlerError{
	{target: service.ErrRecyclerNotFound, code: response.CodeNotFound, key: "error.recycler_not_found"},
	{target: service.ErrPickupNotPending, code: response.CodeBadRequest, key: "error.pickup_delete_forbidden"},
	{target: service.ErrPickupNotCompleted, code: response.CodeConflict, key: "error.pickup_not_completed"},
	{target: service.ErrPickupAlreadyRated, code: response.CodeBadRequest, key: "error.pickup_already_rated"},
	{target: service.ErrItemNotFound, code: response.CodeNotFound, key: "error.item_not_found"},
}

var rewardErrorRules = []mappedHandlerError{
	{target: service.ErrPermissionDenied, code: response.CodeForbidden, key: "error.forbidden"},
	{target: service.ErrRewardNotFound, code: response.CodeNotFound, key: "error.reward_not_found"},
	{target: service.ErrRewardNotActive, code: response.CodeBadRequest, key: "error.reward_not_active"},
	{target: service.ErrRewardExpired, code: response.CodeBadRequest, key: "error.reward_expired"},
}

var authErrorRules = []mappedHandlerError{
	{target: service.ErrValidation, code: response.CodeBadRequest, key: "error.validation_failed"},
	{target: service.ErrEmailTaken, code: response.CodeBadRequest, key: "error.email_taken"},
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, key: "error.invalid_credentials"},
	{target: service.ErrUserDisabled, code: response.CodeUnauthorized, key: "error.user_disabled"},
}

var userProfileErrorRules = []mappedHandlerError{
	{target: service.ErrValidation, code: response.CodeBadRequest, key: "error.validation_failed"},
	{target: service.ErrUserNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
}

// 生命周期规则在前，包装了 ErrInvalidTransition 的具体错误优先匹配到更精确的提示。
func respondPickupError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(pickupLifecycleErrorRules, pickupCommonErrorRules), response.CodeInternal, "error.pickup_fetch_failed")
}

func respondPickupCreateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, pickupCommonErrorRules, response.CodeInternal, "error.pickup_create_failed")
}

func respondRewardError(c *gin.Context, err error) {
	respondWithMappedError(c, err, rewardErrorRules, response.CodeInternal, "error.reward_fetch_failed")
}
