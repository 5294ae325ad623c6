package admin

import (
	handlershared "github.com/recycle-link/internal/http/handlers/shared"
	"github.com/recycle-link/internal/service"

	"github.com/gin-gonic/gin"
)

func getContextUintWithKeys(c *gin.Context, key, invalidKey, typeInvalidKey string) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, key, invalidKey, typeInvalidKey)
}

func getAdminID(c *gin.Context) (uint, bool) {
	return getContextUintWithKeys(c, "user_id", "error.user_id_invalid", "error.user_id_type_invalid")
}

// getAdminActor 管理端路由已由角色中间件把关，这里只负责取身份。
func getAdminActor(c *gin.Context) (service.Actor, bool) {
	uid, ok := getAdminID(c)
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
