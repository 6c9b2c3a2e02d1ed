package service

import (
	"context"
	"fmt"

	"naikkelas/dao"
	"naikkelas/models"
	"naikkelas/pkg/flip"
	"naikkelas/pkg/llm"
	"naikkelas/pkg/log"
	"naikkelas/pkg/response"
	"naikkelas/pkg/utils"
	"naikkelas/types"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 带进上下文的历史消息条数
const chatHistoryLimit = 10

type ChatService struct {
	DB            *gorm.DB
	ChatDAO       *dao.Chat
	MessageDAO    *dao.Message
	CreditService ICreditService
	LLM           *llm.Client
}

var _ IChatService = (*ChatService)(nil)

type IChatService interface {
	SendMessage(ctx context.Context, userID string, req *types.ChatRequest) (*types.ChatResponse, error)
	ListChats(ctx context.Context, userID string) ([]types.ChatItem, error)
	ListMessages(ctx context.Context, userID, chatID string) ([]types.MessageItem, error)
}

// SendMessage 一轮对话：门槛检查 -> 生成 -> 落消息 -> 按实际用量扣积分
// 扣减只发生在生成成功之后，失败的生成不消耗积分
func (s *ChatService) SendMessage(ctx context.Context, userID string, req *types.ChatRequest) (*types.ChatResponse, error) {
	balance, allowed, err := s.CreditService.RequireMinimum(ctx, userID, flip.MinimumCreditsThreshold)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, response.NewError(403,
			fmt.Sprintf("积分不足，发起对话至少需要 %d 积分", flip.MinimumCreditsThreshold))
	}

	chat, err := s.ensureChat(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	history, err := s.loadHistory(ctx, chat.ID, userID)
	if err != nil {
		return nil, err
	}

	result, err := s.LLM.Generate(ctx, history, req.Message)
	if err != nil {
		return nil, response.NewError(500, "生成失败，请稍后重试")
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		messageDAO := dao.NewMessage(tx)
		if err := messageDAO.Create(ctx, &models.Message{
			ID:      utils.GenRowID("msg"),
			ChatID:  chat.ID,
			UserID:  userID,
			Role:    models.MessageRoleUser,
			Content: req.Message,
		}); err != nil {
			return err
		}
		if err := messageDAO.Create(ctx, &models.Message{
			ID:      utils.GenRowID("msg"),
			ChatID:  chat.ID,
			UserID:  userID,
			Role:    models.MessageRoleAI,
			Content: result.Content,
		}); err != nil {
			return err
		}
		return dao.NewChat(tx).Touch(ctx, chat.ID)
	})
	if err != nil {
		return nil, response.NewError(500, "保存消息失败")
	}

	// 生成已成功，按实际 token 用量结算
	if err := s.CreditService.Debit(ctx, userID, result.UsedTokens); err != nil {
		log.L.Error("debit after generation failed",
			zap.String("user_id", userID),
			zap.Int64("used_tokens", result.UsedTokens),
			zap.Error(err))
	}

	return &types.ChatResponse{
		ChatID:      chat.ID,
		Reply:       result.Content,
		Suggestions: result.Suggestions,
		UsedTokens:  result.UsedTokens,
		Credits:     balance - result.UsedTokens,
	}, nil
}

func (s *ChatService) ensureChat(ctx context.Context, userID string, req *types.ChatRequest) (*models.Chat, error) {
	if req.ChatID != "" {
		chat, err := s.ChatDAO.FindByIDAndUser(ctx, req.ChatID, userID)
		if err != nil {
			return nil, response.NewError(404, "会话不存在")
		}
		return chat, nil
	}

	title := req.Message
	if len(title) > 50 {
		title = title[:50]
	}
	chat := &models.Chat{
		ID:     utils.GenRowID("chat"),
		UserID: userID,
		Title:  title,
	}
	if err := s.ChatDAO.Create(ctx, chat); err != nil {
		return nil, response.NewError(500, "创建会话失败")
	}
	return chat, nil
}

func (s *ChatService) loadHistory(ctx context.Context, chatID, userID string) ([]llm.HistoryMessage, error) {
	msgs, err := s.MessageDAO.ListRecent(ctx, chatID, userID, chatHistoryLimit)
	if err != nil {
		return nil, response.NewError(500, "加载会话历史失败")
	}

	// 倒序查出的，翻转成时间正序
	history := make([]llm.HistoryMessage, 0, len(msgs))
	for i := len(msgs) - 1; i >= 0; i-- {
		history = append(history, llm.HistoryMessage{
			Role:    msgs[i].Role,
			Content: msgs[i].Content,
		})
	}
	return history, nil
}

func (s *ChatService) ListChats(ctx context.Context, userID string) ([]types.ChatItem, error) {
	chats, err := s.ChatDAO.ListByUser(ctx, userID)
	if err != nil {
		return nil, response.NewError(500, "查询会话列表失败")
	}
	items := make([]types.ChatItem, 0, len(chats))
	for _, c := range chats {
		items = append(items, types.ChatItem{
			ID:        c.ID,
			Title:     c.Title,
			CreatedAt: c.CreatedAt.Format("2006-01-02 15:04:05"),
			UpdatedAt: c.UpdatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return items, nil
}

func (s *ChatService) ListMessages(ctx context.Context, userID, chatID string) ([]types.MessageItem, error) {
	if chatID == "" {
		return nil, response.NewError(400, "chat_id 不能为空")
	}
	msgs, err := s.MessageDAO.ListByChat(ctx, chatID, userID)
	if err != nil {
		return nil, response.NewError(500, "查询消息失败")
	}
	items := make([]types.MessageItem, 0, len(msgs))
	for _, m := range msgs {
		items = append(items, types.MessageItem{
			ID:        m.ID,
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return items, nil
}
