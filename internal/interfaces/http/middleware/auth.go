package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"storyverse-api/internal/interfaces/http/dto"
	apperrors "storyverse-api/pkg/errors"
	"storyverse-api/pkg/logger"
	"storyverse-api/pkg/utils"
)

// gin.Context 中的认证信息键
const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
)

// Auth 认证中间件，要求有效的 Bearer 访问令牌
func Auth(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, apperrors.CodeTokenMissing, "Access token required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			abortUnauthorized(c, apperrors.CodeTokenInvalid, "invalid authorization format")
			return
		}

		claims, err := jwtManager.ParseToken(strings.TrimSpace(parts[1]))
		if err != nil {
			if errors.Is(err, utils.ErrExpiredToken) {
				abortUnauthorized(c, apperrors.CodeTokenExpired, "token expired")
				return
			}
			abortUnauthorized(c, apperrors.CodeTokenInvalid, "invalid token")
			return
		}

		if claims.Type != utils.TokenTypeAccess || claims.UserID == "" {
			abortUnauthorized(c, apperrors.CodeTokenInvalid, "invalid token type")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)

		ctx := logger.WithContext(c.Request.Context(), logger.UserIDKey, claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// abortUnauthorized 终止请求并返回 401
func abortUnauthorized(c *gin.Context, code apperrors.ErrorCode, msg string) {
	dto.Fail(c, apperrors.New(code, msg))
}

// UserID 读取当前登录用户 ID
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
