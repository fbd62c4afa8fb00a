// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "storyverse-api/pkg/errors"
	"storyverse-api/pkg/logger"
)

// Response 统一响应结构
type Response[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

// ErrorDetail 错误详情
type ErrorDetail struct {
	ErrorCode string `json:"error_code,omitempty"`
	Details   string `json:"details,omitempty"`
}

// ErrorResponse 错误响应结构
type ErrorResponse struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Error   *ErrorDetail `json:"error,omitempty"`
	TraceID string       `json:"trace_id,omitempty"`
}

// Success 返回成功响应
func Success[T any](c *gin.Context, message string, data T) {
	if message == "" {
		message = "success"
	}
	c.JSON(http.StatusOK, Response[T]{
		Code:    http.StatusOK,
		Message: message,
		Data:    data,
		TraceID: c.GetString("trace_id"),
	})
}

// Created 返回创建成功响应 (201)
func Created[T any](c *gin.Context, message string, data T) {
	if message == "" {
		message = "created"
	}
	c.JSON(http.StatusCreated, Response[T]{
		Code:    http.StatusCreated,
		Message: message,
		Data:    data,
		TraceID: c.GetString("trace_id"),
	})
}

// ErrorWithDetail 返回带错误码的错误响应并终止后续处理
func ErrorWithDetail(c *gin.Context, httpCode int, message string, detail *ErrorDetail) {
	c.AbortWithStatusJSON(httpCode, ErrorResponse{
		Code:    httpCode,
		Message: message,
		Error:   detail,
		TraceID: c.GetString("trace_id"),
	})
}

// Fail 按 AppError 写出错误响应
// 非 AppError 或未归类错误记录日志后返回 500，不暴露内部信息
func Fail(c *gin.Context, err error) {
	appErr := apperrors.AsAppError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "request failed", err,
			"path", c.FullPath(),
			"method", c.Request.Method,
		)
		ErrorWithDetail(c, http.StatusInternalServerError, "internal server error", &ErrorDetail{
			ErrorCode: string(apperrors.CodeInternalError),
		})
		return
	}
	ErrorWithDetail(c, appErr.HTTPStatus, appErr.Message, &ErrorDetail{
		ErrorCode: string(appErr.Code),
	})
}

// BadRequest 返回 400 错误
func BadRequest(c *gin.Context, message string) {
	Fail(c, apperrors.New(apperrors.CodeInvalidParam, message))
}

// Unauthorized 返回 401 错误
func Unauthorized(c *gin.Context, message string) {
	Fail(c, apperrors.New(apperrors.CodeUnauthorized, message))
}

// Forbidden 返回 403 错误
func Forbidden(c *gin.Context, message string) {
	Fail(c, apperrors.New(apperrors.CodeForbidden, message))
}

// NotFound 返回 404 错误
func NotFound(c *gin.Context, message string) {
	Fail(c, apperrors.New(apperrors.CodeNotFound, message))
}

// InternalError 返回 500 错误，调用方负责记录日志
func InternalError(c *gin.Context, message string) {
	ErrorWithDetail(c, http.StatusInternalServerError, message, &ErrorDetail{
		ErrorCode: string(apperrors.CodeInternalError),
	})
}
