package fulfillment

import (
	handlershared "github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// Handler 履约侧接口处理器入口
// 说明：订单状态推进与库存维护仅面向履约人员使用。
type Handler struct {
	*provider.Container
}

// New 创建履约处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}
