package router

import (
	"github.com/gin-gonic/gin"

	"storyverse-api/internal/application/admission"
)

// RegisterAPIRoutes 注册 /api 下的业务路由
// 需要按用户计数的类别放在 auth 之后
func RegisterAPIRoutes(
	api *gin.RouterGroup,
	h *Handlers,
	auth gin.HandlerFunc,
	limit func(admission.RouteClass) gin.HandlerFunc,
) {
	// 用户
	users := api.Group("/users")
	{
		users.POST("/register", limit(admission.ClassAuth), h.User.Register)
		users.POST("/login", limit(admission.ClassAuth), h.User.Login)
		users.GET("/profile", auth, h.User.Profile)
		users.PUT("/preferences", auth, h.User.UpdatePreferences)
		users.PATCH("/preferences", auth, h.User.PatchPreferences)
	}

	// 故事
	stories := api.Group("/stories")
	{
		stories.POST("", auth, limit(admission.ClassStoryCreation), h.Story.CreateStory)
		stories.GET("", h.Story.ListStories)
		stories.GET("/my-stories", auth, h.Story.ListMyStories)
		stories.GET("/:id", h.Story.GetStory)
		stories.PUT("/:id", auth, h.Story.UpdateStory)
		stories.DELETE("/:id", auth, h.Story.DeleteStory)

		stories.POST("/:id/chapters", auth, h.Story.AddChapter)
		stories.GET("/:id/chapters", h.Story.ListChapters)

		// 点赞与评论
		stories.POST("/:id/like", auth, h.Social.LikeStory)
		stories.DELETE("/:id/like", auth, h.Social.UnlikeStory)
		stories.GET("/:id/likes", h.Social.ListLikes)
		stories.POST("/:id/comments", auth, h.Social.AddComment)
		stories.GET("/:id/comments", h.Social.ListComments)
		stories.DELETE("/:id/comments/:cid", auth, h.Social.DeleteComment)
	}

	// 生成
	ai := api.Group("/ai", auth, limit(admission.ClassAI))
	{
		ai.POST("/generate-story", h.AI.GenerateStory)
		ai.POST("/enhance-story", h.AI.EnhanceStory)
		ai.POST("/generate-character", h.AI.GenerateCharacter)
	}
}
