package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"storyverse-api/internal/application/generation"
	"storyverse-api/internal/interfaces/http/dto"
	"storyverse-api/pkg/logger"
)

// AIHandler 生成接口处理器
// 提供商不可用时网关返回兜底内容，这里只会看到参数错误
type AIHandler struct {
	gateway *generation.Gateway
}

// NewAIHandler 创建生成处理器
func NewAIHandler(gateway *generation.Gateway) *AIHandler {
	return &AIHandler{gateway: gateway}
}

// GenerateStory 生成故事
// @Summary 生成故事
// @Tags AI
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body generation.StoryRequest true "生成参数"
// @Success 200 {object} dto.Response[dto.GeneratedStoryResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /api/ai/generate-story [post]
func (h *AIHandler) GenerateStory(c *gin.Context) {
	ctx := c.Request.Context()

	var req generation.StoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	content, err := h.gateway.GenerateStory(ctx, req)
	if err != nil {
		dto.Fail(c, err)
		return
	}

	logger.Debug(ctx, "story generated", "genre", req.Genre, "length", len(content))
	dto.Success(c, "Story generated successfully", dto.NewGeneratedStoryResponse(content, &req))
}

// EnhanceStory 润色故事
// @Summary 润色故事
// @Tags AI
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body generation.EnhancementRequest true "润色参数"
// @Success 200 {object} dto.Response[dto.EnhancedStoryResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/ai/enhance-story [post]
func (h *AIHandler) EnhanceStory(c *gin.Context) {
	ctx := c.Request.Context()

	var req generation.EnhancementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	content, err := h.gateway.EnhanceStory(ctx, req.Content, req.Enhancement)
	if err != nil {
		dto.Fail(c, err)
		return
	}

	dto.Success(c, "Story enhanced successfully", &dto.EnhancedStoryResponse{Content: content})
}

// GenerateCharacter 生成角色档案
// @Summary 生成角色
// @Tags AI
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body generation.CharacterRequest false "角色线索"
// @Success 200 {object} dto.Response[dto.CharacterResponse]
// @Router /api/ai/generate-character [post]
func (h *AIHandler) GenerateCharacter(c *gin.Context) {
	ctx := c.Request.Context()

	var req generation.CharacterRequest
	// 所有字段可选，空请求体也合法
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	profile, err := h.gateway.GenerateCharacter(ctx, req)
	if err != nil {
		dto.Fail(c, err)
		return
	}

	dto.Success(c, "Character generated successfully", &dto.CharacterResponse{Character: profile})
}
