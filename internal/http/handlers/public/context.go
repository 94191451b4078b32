package public

import (
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// getOwner 从上下文提取购物车归属者。
// 登录用户以 user_id 归属，匿名访客以 session_id 归属，两者由中间件注入。
func getOwner(c *gin.Context) (service.Owner, bool) {
	owner := service.Owner{}
	if value, exists := c.Get("user_id"); exists {
		if uid, ok := value.(uint); ok && uid > 0 {
			owner.UserID = uid
			return owner, true
		}
	}
	if value, exists := c.Get("session_id"); exists {
		if sid, ok := value.(string); ok && sid != "" {
			owner.SessionID = sid
			return owner, true
		}
	}
	respondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
	return owner, false
}
