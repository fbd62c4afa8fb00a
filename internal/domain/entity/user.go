// Package entity 定义领域实体
package entity

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Preferences 用户偏好，原样存储为 jsonb
type Preferences map[string]any

// User 用户实体
type User struct {
	ID           string      `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string      `json:"username" gorm:"type:varchar(100);not null"`
	Email        string      `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string      `json:"-" gorm:"column:password;type:varchar(255);not null"`
	Preferences  Preferences `json:"preferences" gorm:"type:jsonb;serializer:json"`
	CreatedAt    time.Time   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time   `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// NewUser 创建新用户
func NewUser(username, email string, preferences Preferences) *User {
	if preferences == nil {
		preferences = Preferences{}
	}
	now := time.Now()
	return &User{
		Username:    username,
		Email:       email,
		Preferences: preferences,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// SetPassword 设置并散列密码
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword 校验密码
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}
