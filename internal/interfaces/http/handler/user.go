// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"storyverse-api/internal/domain/entity"
	"storyverse-api/internal/domain/repository"
	"storyverse-api/internal/interfaces/http/dto"
	"storyverse-api/internal/interfaces/http/middleware"
	apperrors "storyverse-api/pkg/errors"
	"storyverse-api/pkg/logger"
	"storyverse-api/pkg/utils"
)

// UserHandler 用户处理器
type UserHandler struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
}

// NewUserHandler 创建用户处理器
func NewUserHandler(userRepo repository.UserRepository, jwtManager *utils.JWTManager) *UserHandler {
	return &UserHandler{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// Register 注册
// @Summary 用户注册
// @Tags Users
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "注册信息"
// @Success 201 {object} dto.Response[dto.AuthResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		dto.Fail(c, err)
		return
	}

	existing, err := h.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		logger.Error(ctx, "failed to check email", err)
		dto.InternalError(c, "Failed to register user")
		return
	}
	if existing != nil {
		dto.Fail(c, apperrors.New(apperrors.CodeEmailRegistered, "Email already registered"))
		return
	}

	user := entity.NewUser(req.Username, req.Email, req.Preferences)
	if err := user.SetPassword(req.Password); err != nil {
		logger.Error(ctx, "failed to hash password", err)
		dto.InternalError(c, "Failed to register user")
		return
	}
	if err := h.userRepo.Create(ctx, user); err != nil {
		logger.Error(ctx, "failed to create user", err)
		dto.InternalError(c, "Failed to register user")
		return
	}

	resp, err := h.authResponse(user)
	if err != nil {
		logger.Error(ctx, "failed to generate token", err)
		dto.InternalError(c, "Failed to register user")
		return
	}

	logger.Info(ctx, "user registered", "user_id", user.ID)
	dto.Created(c, "User registered successfully", resp)
}

// Login 登录
// @Summary 用户登录
// @Tags Users
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "登录凭证"
// @Success 200 {object} dto.Response[dto.AuthResponse]
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		dto.Fail(c, err)
		return
	}

	user, err := h.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		logger.Error(ctx, "failed to get user by email", err)
		dto.InternalError(c, "Failed to login")
		return
	}
	// 用户不存在与密码错误返回相同信息
	if user == nil || !user.CheckPassword(req.Password) {
		dto.Unauthorized(c, "Invalid credentials")
		return
	}

	resp, err := h.authResponse(user)
	if err != nil {
		logger.Error(ctx, "failed to generate token", err)
		dto.InternalError(c, "Failed to login")
		return
	}

	dto.Success(c, "Login successful", resp)
}

// Profile 获取当前用户信息
// @Summary 获取当前用户信息
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Response[dto.ProfileResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/users/profile [get]
func (h *UserHandler) Profile(c *gin.Context) {
	ctx := c.Request.Context()

	user, err := h.userRepo.GetByID(ctx, middleware.UserID(c))
	if err != nil {
		logger.Error(ctx, "failed to get user", err)
		dto.InternalError(c, "Failed to get profile")
		return
	}
	if user == nil {
		dto.NotFound(c, "User not found")
		return
	}

	dto.Success(c, "", &dto.ProfileResponse{User: dto.ToUserResponse(user)})
}

// UpdatePreferences 更新偏好
// @Summary 更新当前用户偏好
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.UpdatePreferencesRequest true "偏好"
// @Success 200 {object} dto.Response[dto.ProfileResponse]
// @Router /api/users/preferences [put]
func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	user, err := h.userRepo.UpdatePreferences(ctx, middleware.UserID(c), req.Preferences)
	if err != nil {
		logger.Error(ctx, "failed to update preferences", err)
		dto.InternalError(c, "Failed to update preferences")
		return
	}
	if user == nil {
		dto.NotFound(c, "User not found")
		return
	}

	dto.Success(c, "Preferences updated", &dto.ProfileResponse{User: dto.ToUserResponse(user)})
}

// PatchPreferences 以 JSON Merge Patch (RFC 7396) 局部更新偏好
// 值为 null 的键被删除，未出现的键保持不变
// @Summary 局部更新当前用户偏好
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Response[dto.ProfileResponse]
// @Router /api/users/preferences [patch]
func (h *UserHandler) PatchPreferences(c *gin.Context) {
	ctx := c.Request.Context()

	patch, err := c.GetRawData()
	if err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	user, err := h.userRepo.GetByID(ctx, middleware.UserID(c))
	if err != nil {
		logger.Error(ctx, "failed to get user", err)
		dto.InternalError(c, "Failed to update preferences")
		return
	}
	if user == nil {
		dto.NotFound(c, "User not found")
		return
	}

	prefs, err := dto.MergePreferences(user.Preferences, patch)
	if err != nil {
		dto.Fail(c, err)
		return
	}

	user, err = h.userRepo.UpdatePreferences(ctx, user.ID, prefs)
	if err != nil {
		logger.Error(ctx, "failed to update preferences", err)
		dto.InternalError(c, "Failed to update preferences")
		return
	}
	if user == nil {
		dto.NotFound(c, "User not found")
		return
	}

	dto.Success(c, "Preferences updated", &dto.ProfileResponse{User: dto.ToUserResponse(user)})
}

func (h *UserHandler) authResponse(user *entity.User) (*dto.AuthResponse, error) {
	token, err := h.jwtManager.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		User:      dto.ToUserResponse(user),
		Token:     token,
		ExpiresIn: int(h.jwtManager.TTL().Seconds()),
	}, nil
}
