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

type Topup struct {
	Config       *config.Config
	TopupService service.ITopupService
}

func (h *Topup) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	topup := r.Group("/v1/topup")
	{
		topup.POST("/create", authorize, context.Wrap(h.Create))
		topup.POST("/callback", context.Wrap(h.Callback)) // 支付回调，无鉴权
		topup.GET("/history", authorize, context.Wrap(h.History))
	}
}

func (h *Topup) Create(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(401, "未登录")
	}

	var req types.CreateTopupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(400, "参数错误: "+err.Error())
	}

	resp, err := h.TopupService.CreateTopup(c.Request.Context(), userID, context.GetEmail(c), req.PackageID)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

// Callback Flip 回调入口，token + data 表单字段
func (h *Topup) Callback(c *gin.Context) error {
	token := c.PostForm("token")
	data := c.PostForm("data")

	result, err := h.TopupService.HandleCallback(c.Request.Context(), token, data)
	if err != nil {
		return err
	}
	response.Success(c, result)
	return nil
}

func (h *Topup) History(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(401, "未登录")
	}

	resp, err := h.TopupService.History(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}
