package public

import "github.com/recycle-link/internal/provider"

// Handler 用户/回收员/公开接口处理器入口
// 说明：该处理器用于公开追踪、认证与用户侧 API。
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
