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

// SocialHandler 点赞与评论处理器
type SocialHandler struct {
	storyRepo  repository.StoryRepository
	socialRepo repository.SocialRepository
}

// NewSocialHandler 创建社交处理器
func NewSocialHandler(storyRepo repository.StoryRepository, socialRepo repository.SocialRepository) *SocialHandler {
	return &SocialHandler{
		storyRepo:  storyRepo,
		socialRepo: socialRepo,
	}
}

// LikeStory 点赞，重复点赞返回已有记录
// @Summary 点赞故事
// @Tags Social
// @Produce json
// @Security BearerAuth
// @Param id path string true "故事 ID"
// @Success 200 {object} dto.Response[dto.LikeEnvelope]
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/stories/{id}/like [post]
func (h *SocialHandler) LikeStory(c *gin.Context) {
	ctx := c.Request.Context()

	story, ok := loadStory(c, h.storyRepo)
	if !ok {
		return
	}

	like, created, err := h.socialRepo.AddLike(ctx, middleware.UserID(c), story.ID)
	if err != nil {
		logger.Error(ctx, "failed to like story", err, "story_id", story.ID)
		dto.InternalError(c, "Failed to like story")
		return
	}
	if created {
		metrics.SocialActionsTotal.WithLabelValues("like").Inc()
	}

	dto.Success(c, "Story liked successfully", &dto.LikeEnvelope{
		Like:    dto.ToLikeResponse(like),
		Created: created,
	})
}

// UnlikeStory 取消点赞，未点赞时同样成功
// @Summary 取消点赞
// @Tags Social
// @Produce json
// @Security BearerAuth
// @Param id path string true "故事 ID"
// @Success 200 {object} dto.Response[any]
// @Router /api/stories/{id}/like [delete]
func (h *SocialHandler) UnlikeStory(c *gin.Context) {
	ctx := c.Request.Context()

	storyID, ok := dto.BindStoryID(c)
	if !ok {
		dto.NotFound(c, "Story not found")
		return
	}

	removed, err := h.socialRepo.RemoveLike(ctx, middleware.UserID(c), storyID)
	if err != nil {
		logger.Error(ctx, "failed to unlike story", err, "story_id", storyID)
		dto.InternalError(c, "Failed to unlike story")
		return
	}
	if removed {
		metrics.SocialActionsTotal.WithLabelValues("unlike").Inc()
	}

	dto.Success[any](c, "Story unliked successfully", nil)
}

// ListLikes 获取点赞用户列表
// @Summary 点赞列表
// @Tags Social
// @Produce json
// @Param id path string true "故事 ID"
// @Success 200 {object} dto.Response[dto.LikeListResponse]
// @Router /api/stories/{id}/likes [get]
func (h *SocialHandler) ListLikes(c *gin.Context) {
	ctx := c.Request.Context()

	storyID, ok := dto.BindStoryID(c)
	if !ok {
		dto.NotFound(c, "Story not found")
		return
	}

	likes, err := h.socialRepo.ListLikes(ctx, storyID)
	if err != nil {
		logger.Error(ctx, "failed to list likes", err, "story_id", storyID)
		dto.InternalError(c, "Failed to get likes")
		return
	}

	dto.Success(c, "", dto.ToLikeListResponse(likes))
}

// AddComment 发表评论
// @Summary 发表评论
// @Tags Social
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "故事 ID"
// @Param body body dto.CreateCommentRequest true "评论内容"
// @Success 201 {object} dto.Response[dto.CommentEnvelope]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/stories/{id}/comments [post]
func (h *SocialHandler) AddComment(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		dto.Fail(c, err)
		return
	}

	story, ok := loadStory(c, h.storyRepo)
	if !ok {
		return
	}

	comment := &entity.Comment{
		UserID:  middleware.UserID(c),
		StoryID: story.ID,
		Content: req.Content,
	}
	if err := h.socialRepo.AddComment(ctx, comment); err != nil {
		logger.Error(ctx, "failed to add comment", err, "story_id", story.ID)
		dto.InternalError(c, "Failed to add comment")
		return
	}
	metrics.SocialActionsTotal.WithLabelValues("comment").Inc()

	dto.Created(c, "Comment added successfully", &dto.CommentEnvelope{Comment: dto.ToCommentResponse(comment)})
}

// ListComments 获取评论列表，最新在前
// @Summary 评论列表
// @Tags Social
// @Produce json
// @Param id path string true "故事 ID"
// @Success 200 {object} dto.Response[dto.CommentListResponse]
// @Router /api/stories/{id}/comments [get]
func (h *SocialHandler) ListComments(c *gin.Context) {
	ctx := c.Request.Context()

	storyID, ok := dto.BindStoryID(c)
	if !ok {
		dto.NotFound(c, "Story not found")
		return
	}

	comments, err := h.socialRepo.ListComments(ctx, storyID)
	if err != nil {
		logger.Error(ctx, "failed to list comments", err, "story_id", storyID)
		dto.InternalError(c, "Failed to get comments")
		return
	}

	dto.Success(c, "", dto.ToCommentListResponse(comments))
}

// DeleteComment 删除自己的评论
// @Summary 删除评论
// @Tags Social
// @Produce json
// @Security BearerAuth
// @Param id path string true "故事 ID"
// @Param cid path string true "评论 ID"
// @Success 200 {object} dto.Response[any]
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/stories/{id}/comments/{cid} [delete]
func (h *SocialHandler) DeleteComment(c *gin.Context) {
	ctx := c.Request.Context()

	storyID, ok := dto.BindStoryID(c)
	if !ok {
		dto.NotFound(c, "Comment not found")
		return
	}
	commentID, ok := dto.BindCommentID(c)
	if !ok {
		dto.NotFound(c, "Comment not found")
		return
	}

	deleted, err := h.socialRepo.DeleteComment(ctx, storyID, commentID, middleware.UserID(c))
	if err != nil {
		logger.Error(ctx, "failed to delete comment", err, "story_id", storyID, "comment_id", commentID)
		dto.InternalError(c, "Failed to delete comment")
		return
	}
	// 不存在、不在该故事下或不属于当前用户均返回 404
	if !deleted {
		dto.NotFound(c, "Comment not found")
		return
	}
	metrics.SocialActionsTotal.WithLabelValues("uncomment").Inc()

	dto.Success[any](c, "Comment deleted successfully", nil)
}
