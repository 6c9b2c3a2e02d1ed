package dao

import (
	"context"

	"naikkelas/models"

	"gorm.io/gorm"
)

type Chat struct {
	Repo[models.Chat]
}

func NewChat(db *gorm.DB) *Chat {
	return &Chat{
		Repo: NewRepo[models.Chat](db),
	}
}

func (c *Chat) FindByIDAndUser(ctx context.Context, chatID, userID string) (*models.Chat, error) {
	return c.Repo.FindByWhere(ctx, "id = ? AND user_id = ?", chatID, userID)
}

func (c *Chat) ListByUser(ctx context.Context, userID string) ([]models.Chat, error) {
	var chats []models.Chat
	err := c.Db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&chats).Error
	return chats, err
}

func (c *Chat) Touch(ctx context.Context, chatID string) error {
	return c.Db.WithContext(ctx).Model(&models.Chat{}).
		Where("id = ?", chatID).
		Update("updated_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}
