package dao

import (
	"context"

	"naikkelas/models"

	"gorm.io/gorm"
)

type Message struct {
	Repo[models.Message]
}

func NewMessage(db *gorm.DB) *Message {
	return &Message{
		Repo: NewRepo[models.Message](db),
	}
}

// ListRecent 取会话最近 N 条做上下文，倒序查出，调用方自己翻转
func (m *Message) ListRecent(ctx context.Context, chatID, userID string, limit int) ([]models.Message, error) {
	var msgs []models.Message
	err := m.Db.WithContext(ctx).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&msgs).Error
	return msgs, err
}

func (m *Message) ListByChat(ctx context.Context, chatID, userID string) ([]models.Message, error) {
	var msgs []models.Message
	err := m.Db.WithContext(ctx).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Order("created_at ASC").
		Find(&msgs).Error
	return msgs, err
}
