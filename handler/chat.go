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

type Chat struct {
	Config      *config.Config
	ChatService service.IChatService
	OssService  service.IOssService
}

func (h *Chat) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	v1 := r.Group("/v1", authorize)
	{
		v1.POST("/chat", context.Wrap(h.Send))
		v1.GET("/chats", context.Wrap(h.Chats))
		v1.GET("/messages", context.Wrap(h.Messages))
		v1.POST("/upload", context.Wrap(h.Upload))
	}
}

func (h *Chat) Send(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(401, "未登录")
	}

	var req types.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(400, "参数错误: "+err.Error())
	}

	resp, err := h.ChatService.SendMessage(c.Request.Context(), userID, &req)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (h *Chat) Chats(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(401, "未登录")
	}

	chats, err := h.ChatService.ListChats(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	response.Success(c, chats)
	return nil
}

func (h *Chat) Messages(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(401, "未登录")
	}

	msgs, err := h.ChatService.ListMessages(c.Request.Context(), userID, c.Query("chat_id"))
	if err != nil {
		return err
	}
	response.Success(c, msgs)
	return nil
}

// Upload 对话附件上传，返回公开 URL
func (h *Chat) Upload(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(401, "未登录")
	}

	header, err := c.FormFile("file")
	if err != nil {
		return response.NewError(400, "缺少文件")
	}

	resp, err := h.OssService.UploadAttachment(c.Request.Context(), userID, header)
	if err != nil {
		return response.NewError(500, "上传失败: "+err.Error())
	}
	response.Success(c, resp)
	return nil
}
