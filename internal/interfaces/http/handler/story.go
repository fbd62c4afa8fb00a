package handler

import (
	"github.com/gin-gonic/gin"

	"storyverse-api/internal/domain/entity"
	"storyverse-api/internal/domain/repository"
	"storyverse-api/internal/interfaces/http/dto"
	"storyverse-api/internal/interfaces/http/middleware"
	"storyverse-api/pkg/logger"
	"storyverse-api/pkg/metrics"
)

// StoryHandler 故事与章节处理器
type StoryHandler struct {
	storyRepo repository.StoryRepository
}

// NewStoryHandler 创建故事处理器
func NewStoryHandler(storyRepo repository.StoryRepository) *StoryHandler {
	return &StoryHandler{storyRepo: storyRepo}
}

// CreateStory 创建故事
// @Summary 创建故事
// @Tags Stories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateStoryRequest true "故事内容"
// @Success 201 {object} dto.Response[dto.StoryEnvelope]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /api/stories [post]
func (h *StoryHandler) CreateStory(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		dto.Fail(c, err)
		return
	}

	story := req.ToEntity(middleware.UserID(c))
	if err := h.storyRepo.Create(ctx, story); err != nil {
		logger.Error(ctx, "failed to create story", err)
		dto.InternalError(c, "Failed to create story")
		return
	}
	metrics.StoriesCreatedTotal.WithLabelValues(string(story.Status)).Inc()

	logger.Info(ctx, "story created", "story_id", story.ID, "status", string(story.Status))
	dto.Created(c, "Story created successfully", &dto.StoryEnvelope{Story: dto.ToStoryResponse(story)})
}

// ListStories 列出已发布的故事
// @Summary 已发布故事列表
// @Tags Stories
// @Produce json
// @Param limit query int false "条数" default(20)
// @Param offset query int false "偏移量" default(0)
// @Param genre query string false "类型"
// @Success 200 {object} dto.Response[dto.StoryListResponse]
// @Router /api/stories [get]
func (h *StoryHandler) ListStories(c *gin.Context) {
	ctx := c.Request.Context()
	q := dto.BindList(c)

	stories, err := h.storyRepo.List(ctx, entity.StoryFilter{
		Genre:  q.Genre,
		Status: entity.StoryStatusPublished,
		Limit:  q.Limit,
		Offset: q.Offset,
	})
	if err != nil {
		logger.Error(ctx, "failed to list stories", err)
		dto.InternalError(c, "Failed to get stories")
		return
	}

	dto.Success(c, "", dto.ToStoryListResponse(stories))
}

// ListMyStories 列出当前用户的故事（含草稿）
// @Summary 我的故事
// @Tags Stories
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Response[dto.StoryListResponse]
// @Router /api/stories/my-stories [get]
func (h *StoryHandler) ListMyStories(c *gin.Context) {
	ctx := c.Request.Context()

	stories, err := h.storyRepo.ListByUser(ctx, middleware.UserID(c))
	if err != nil {
		logger.Error(ctx, "failed to list user stories", err)
		dto.InternalError(c, "Failed to get user stories")
		return
	}

	dto.Success(c, "", dto.ToStoryListResponse(stories))
}

// GetStory 获取故事详情
// @Summary 故事详情
// @Tags Stories
// @Produce json
// @Param id path string true "故事 ID"
// @Success 200 {object} dto.Response[dto.StoryEnvelope]
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/stories/{id} [get]
func (h *StoryHandler) GetStory(c *gin.Context) {
	story, ok := h.loadStory(c)
	if !ok {
		return
	}
	dto.Success(c, "", &dto.StoryEnvelope{Story: dto.ToStoryResponse(story)})
}

// UpdateStory 更新故事，仅作者可操作
// @Summary 更新故事
// @Tags Stories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "故事 ID"
// @Param body body dto.UpdateStoryRequest true "更新内容"
// @Success 200 {object} dto.Response[dto.StoryEnvelope]
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/stories/{id} [put]
func (h *StoryHandler) UpdateStory(c *gin.Context) {
	ctx := c.Request.Context()

	story, ok := h.loadStory(c)
	if !ok {
		return
	}
	if !story.IsOwnedBy(middleware.UserID(c)) {
		dto.Forbidden(c, "Not authorized to update this story")
		return
	}

	var req dto.UpdateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	updates, err := req.ToUpdates()
	if err != nil {
		dto.Fail(c, err)
		return
	}

	updated, err := h.storyRepo.Update(ctx, story.ID, updates)
	if err != nil {
		logger.Error(ctx, "failed to update story", err, "story_id", story.ID)
		dto.InternalError(c, "Failed to update story")
		return
	}
	if updated == nil {
		dto.NotFound(c, "Story not found")
		return
	}

	dto.Success(c, "Story updated successfully", &dto.StoryEnvelope{Story: dto.ToStoryResponse(updated)})
}

// DeleteStory 删除故事，仅作者可操作
// @Summary 删除故事
// @Tags Stories
// @Produce json
// @Security BearerAuth
// @Param id path string true "故事 ID"
// @Success 200 {object} dto.Response[any]
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/stories/{id} [delete]
func (h *StoryHandler) DeleteStory(c *gin.Context) {
	ctx := c.Request.Context()

	story, ok := h.loadStory(c)
	if !ok {
		return
	}
	if !story.IsOwnedBy(middleware.UserID(c)) {
		dto.Forbidden(c, "Not authorized to delete this story")
		return
	}

	if err := h.storyRepo.Delete(ctx, story.ID); err != nil {
		logger.Error(ctx, "failed to delete story", err, "story_id", story.ID)
		dto.InternalError(c, "Failed to delete story")
		return
	}

	logger.Info(ctx, "story deleted", "story_id", story.ID)
	dto.Success[any](c, "Story deleted successfully", nil)
}

// AddChapter 添加章节，仅作者可操作
// @Summary 添加章节
// @Tags Stories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "故事 ID"
// @Param body body dto.CreateChapterRequest true "章节内容"
// @Success 201 {object} dto.Response[dto.ChapterEnvelope]
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/stories/{id}/chapters [post]
func (h *StoryHandler) AddChapter(c *gin.Context) {
	ctx := c.Request.Context()

	story, ok := h.loadStory(c)
	if !ok {
		return
	}
	if !story.IsOwnedBy(middleware.UserID(c)) {
		dto.Forbidden(c, "Not authorized to add chapters to this story")
		return
	}

	var req dto.CreateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	chapter := req.ToEntity(story.ID)
	if err := h.storyRepo.AddChapter(ctx, chapter); err != nil {
		logger.Error(ctx, "failed to add chapter", err, "story_id", story.ID)
		dto.InternalError(c, "Failed to add chapter")
		return
	}

	dto.Created(c, "Chapter added successfully", &dto.ChapterEnvelope{Chapter: dto.ToChapterResponse(chapter)})
}

// ListChapters 获取章节列表
// @Summary 章节列表
// @Tags Stories
// @Produce json
// @Param id path string true "故事 ID"
// @Success 200 {object} dto.Response[dto.ChapterListResponse]
// @Router /api/stories/{id}/chapters [get]
func (h *StoryHandler) ListChapters(c *gin.Context) {
	ctx := c.Request.Context()

	storyID, ok := dto.BindStoryID(c)
	if !ok {
		dto.NotFound(c, "Story not found")
		return
	}

	chapters, err := h.storyRepo.ListChapters(ctx, storyID)
	if err != nil {
		logger.Error(ctx, "failed to list chapters", err, "story_id", storyID)
		dto.InternalError(c, "Failed to get chapters")
		return
	}

	dto.Success(c, "", dto.ToChapterListResponse(chapters))
}

// loadStory 读取路径中的故事，不存在时写出 404
func (h *StoryHandler) loadStory(c *gin.Context) (*entity.Story, bool) {
	return loadStory(c, h.storyRepo)
}

func loadStory(c *gin.Context, storyRepo repository.StoryRepository) (*entity.Story, bool) {
	ctx := c.Request.Context()

	storyID, ok := dto.BindStoryID(c)
	if !ok {
		dto.NotFound(c, "Story not found")
		return nil, false
	}

	story, err := storyRepo.GetByID(ctx, storyID)
	if err != nil {
		logger.Error(ctx, "failed to get story", err, "story_id", storyID)
		dto.InternalError(c, "Failed to get story")
		return nil, false
	}
	if story == nil {
		dto.NotFound(c, "Story not found")
		return nil, false
	}
	return story, true
}
