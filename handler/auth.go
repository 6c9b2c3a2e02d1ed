package handler

import (
	"naikkelas/pkg/context"
	"naikkelas/pkg/response"
	"naikkelas/service"
	"naikkelas/types"

	"github.com/gin-gonic/gin"
)

type Auth struct {
	UserService service.IUserService
}

func (h *Auth) RegisterRouter(r gin.IRouter) {
	auth := r.Group("/v1/auth")
	auth.POST("/signin", context.Wrap(h.SignIn))
}

// SignIn 身份提供方回调换本地会话，可携带邀请码
func (h *Auth) SignIn(c *gin.Context) error {
	var req types.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(400, "参数错误: "+err.Error())
	}

	resp, err := h.UserService.SignIn(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}
