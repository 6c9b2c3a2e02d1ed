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

type Reward struct {
	Config        *config.Config
	RewardService service.IRewardService
}

func (h *Reward) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	rewards := r.Group("/v1/rewards", authorize)
	{
		rewards.GET("/balance", context.Wrap(h.Balance))
		rewards.GET("/history", context.Wrap(h.History))
	}
}

func (h *Reward) Balance(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(401, "未登录")
	}

	balance, err := h.RewardService.GetBalance(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	response.Success(c, types.RewardBalanceResp{
		Balance: balance,
		UserID:  userID,
	})
	return nil
}

func (h *Reward) History(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(401, "未登录")
	}

	resp, err := h.RewardService.History(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}
