package dto

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// 列表默认与最大条数
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ListRequest 列表查询参数
type ListRequest struct {
	Limit  int
	Offset int
	Genre  string
}

// BindList 从查询参数绑定 limit/offset/genre，非法值回落到默认值
func BindList(c *gin.Context) ListRequest {
	req := ListRequest{
		Limit:  parseIntWithDefault(c.Query("limit"), DefaultLimit),
		Offset: parseIntWithDefault(c.Query("offset"), 0),
		Genre:  c.Query("genre"),
	}
	if req.Limit < 1 {
		req.Limit = DefaultLimit
	}
	if req.Limit > MaxLimit {
		req.Limit = MaxLimit
	}
	if req.Offset < 0 {
		req.Offset = 0
	}
	return req
}

// parseIntWithDefault 解析整数，失败时返回默认值
func parseIntWithDefault(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

// BindStoryID 从 URI 绑定故事 ID，非法 UUID 返回 false
func BindStoryID(c *gin.Context) (string, bool) {
	return bindUUID(c, "id")
}

// BindCommentID 从 URI 绑定评论 ID
func BindCommentID(c *gin.Context) (string, bool) {
	return bindUUID(c, "cid")
}

func bindUUID(c *gin.Context, name string) (string, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return "", false
	}
	return id.String(), true
}
