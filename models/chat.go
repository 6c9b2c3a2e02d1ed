package models

import (
	"time"

	"gorm.io/datatypes"
)

type Chat struct {
	ID        string    `gorm:"primaryKey;column:id;size:64"`
	UserID    string    `gorm:"column:user_id;size:64;index:idx_chats_user_id"`
	Title     string    `gorm:"column:title;size:255"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Chat) TableName() string {
	return "chats"
}

const (
	MessageRoleUser = "user"
	MessageRoleAI   = "ai"
)

type Message struct {
	ID          string         `gorm:"primaryKey;column:id;size:64"`
	ChatID      string         `gorm:"column:chat_id;size:64;index:idx_chat_id"`
	UserID      string         `gorm:"column:user_id;size:64;index:idx_messages_user_id"`
	Role        string         `gorm:"column:role;size:16"` // user / ai
	Content     string         `gorm:"column:content;type:text"`
	Attachments datatypes.JSON `gorm:"column:attachments"` // [{type, url}]
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (Message) TableName() string {
	return "messages"
}
