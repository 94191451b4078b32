package service

import (
	"fmt"
	"strings"

	"github.com/storefront-next/internal/constants"
)

// Owner 购物车与订单的归属标识。
// 登录用户以 UserID 标识，匿名访客以 SessionID 标识，二者必居其一。
type Owner struct {
	UserID    uint
	SessionID string
}

// Valid 归属标识是否有效
func (o Owner) Valid() bool {
	return o.UserID > 0 || strings.TrimSpace(o.SessionID) != ""
}

// Anonymous 是否匿名访客
func (o Owner) Anonymous() bool {
	return o.UserID == 0
}

// normalized 统一归属字段：登录用户不携带会话，匿名访客 UserID 固定为 0。
func (o Owner) normalized() Owner {
	if o.UserID > 0 {
		return Owner{UserID: o.UserID}
	}
	return Owner{SessionID: strings.TrimSpace(o.SessionID)}
}

// ActorLabel 归属者在库存流水中的操作者标识
func (o Owner) ActorLabel() string {
	if o.UserID > 0 {
		return fmt.Sprintf("user:%d", o.UserID)
	}
	if sessionID := strings.TrimSpace(o.SessionID); sessionID != "" {
		return fmt.Sprintf("session:%s", sessionID)
	}
	return constants.InventoryActorSystem
}
