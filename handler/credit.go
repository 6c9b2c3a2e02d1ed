package handler

import (
	"naikkelas/config"
	"naikkelas/middleware"
	"naikkelas/pkg/context"
	"naikkelas/pkg/response"
	"naikkelas/service"
	"naikkelas/types"

	"github.com/gin-gonic/gin"
)

type Credit struct {
	Config        *config.Config
	CreditService service.ICreditService
}

func (h *Credit) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	r.GET("/v1/user/credits", authorize, context.Wrap(h.Credits))
}

// Credits 我的积分余额，首次触达自动开户
func (h *Credit) Credits(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(401, "未登录")
	}

	credits, err := h.CreditService.GetOrCreateBalance(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	response.Success(c, types.CreditsResp{
		Credits: credits,
		UserID:  userID,
	})
	return nil
}
