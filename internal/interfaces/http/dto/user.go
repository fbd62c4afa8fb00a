package dto

import (
	"bytes"
	"encoding/json"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"

	"storyverse-api/internal/domain/entity"
	apperrors "storyverse-api/pkg/errors"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username    string             `json:"username" binding:"max=100"`
	Email       string             `json:"email" binding:"omitempty,email,max=255"`
	Password    string             `json:"password" binding:"max=72"`
	Preferences entity.Preferences `json:"preferences"`
}

// Validate 校验必填字段
func (r *RegisterRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	if r.Username == "" || r.Email == "" || r.Password == "" {
		return apperrors.New(apperrors.CodeInvalidParam, "Username, email and password are required")
	}
	return nil
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate 校验必填字段
func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if r.Email == "" || r.Password == "" {
		return apperrors.New(apperrors.CodeInvalidParam, "Email and password are required")
	}
	return nil
}

// UpdatePreferencesRequest 更新偏好请求
type UpdatePreferencesRequest struct {
	Preferences entity.Preferences `json:"preferences"`
}

// MergePreferences 将 merge patch 应用到现有偏好
func MergePreferences(current entity.Preferences, patch []byte) (entity.Preferences, error) {
	if len(bytes.TrimSpace(patch)) == 0 || bytes.TrimSpace(patch)[0] != '{' {
		return nil, apperrors.New(apperrors.CodeInvalidParam, "Preferences patch must be a JSON object")
	}
	if current == nil {
		current = entity.Preferences{}
	}
	doc, err := json.Marshal(current)
	if err != nil {
		return nil, err
	}
	merged, err := jsonpatch.MergePatch(doc, patch)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInvalidParam, "Invalid preferences patch")
	}
	out := entity.Preferences{}
	if err := json.Unmarshal(merged, &out); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInvalidParam, "Invalid preferences patch")
	}
	return out, nil
}

// UserResponse 用户响应
type UserResponse struct {
	ID          string             `json:"id"`
	Username    string             `json:"username"`
	Email       string             `json:"email"`
	Preferences entity.Preferences `json:"preferences"`
	CreatedAt   string             `json:"created_at,omitempty"`
}

// AuthResponse 注册/登录响应
type AuthResponse struct {
	User      *UserResponse `json:"user"`
	Token     string        `json:"token"`
	ExpiresIn int           `json:"expires_in"`
}

// ToUserResponse 实体转换为响应
func ToUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	resp := &UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Preferences: u.Preferences,
	}
	if resp.Preferences == nil {
		resp.Preferences = entity.Preferences{}
	}
	if !u.CreatedAt.IsZero() {
		resp.CreatedAt = formatTime(u.CreatedAt)
	}
	return resp
}

// ProfileResponse 用户资料响应
type ProfileResponse struct {
	User *UserResponse `json:"user"`
}
