package models

import "time"

// Users 本地镜像的用户表，id 来自身份提供方（首登时落库）
type Users struct {
	ID        string    `gorm:"primaryKey;column:id;size:64"`
	Name      *string   `gorm:"column:name;size:128"`
	Email     string    `gorm:"column:email;size:255;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Users) TableName() string {
	return "users"
}
