package handler

import (
	"naikkelas/config"
	"naikkelas/middleware"
	"naikkelas/pkg/context"
	"naikkelas/pkg/response"
	"naikkelas/service"

	"github.com/gin-gonic/gin"
)

type Referral struct {
	Config          *config.Config
	ReferralService service.IReferralService
	RewardService   service.IRewardService
}

func (h *Referral) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	referral := r.Group("/v1/referral", authorize)
	{
		referral.GET("/code", context.Wrap(h.Code))
		referral.GET("/stats", context.Wrap(h.Stats))
	}
}

// Code 我的邀请码（不存在则生成）
func (h *Referral) Code(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(401, "未登录")
	}

	resp, err := h.ReferralService.CodeResp(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

// Stats 我的邀请统计
func (h *Referral) Stats(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(401, "未登录")
	}

	stats, err := h.RewardService.GetStats(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	response.Success(c, stats)
	return nil
}
