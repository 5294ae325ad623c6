package public

import (
	handlershared "github.com/recycle-link/internal/http/handlers/shared"
	"github.com/recycle-link/internal/service"

	"github.com/gin-gonic/gin"
)

func getContextUintWithKeys(c *gin.Context, key, invalidKey, typeInvalidKey string) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, key, invalidKey, typeInvalidKey)
}

func getUserID(c *gin.Context) (uint, bool) {
	return getContextUintWithKeys(c, "user_id", "error.user_id_invalid", "error.user_id_type_invalid")
}

// getActor 从认证中间件写入的上下文键构造操作主体。
func getActor(c *gin.Context) (service.Actor, bool) {
	uid, ok := getUserID(c)
	if !ok {
		return service.Actor{}, false
	}
	role := ""
	if value, exists := c.Get("user_role"); exists {
		if s, ok := value.(string); ok {
			role = s
		}
	}
	return service.Actor{ID: uid, Role: role}, true
}
