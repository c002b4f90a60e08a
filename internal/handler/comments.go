package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/user/eazybee/internal/middleware"
	"github.com/user/eazybee/internal/model"
	"github.com/user/eazybee/internal/utils"
)

type commentRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
}

func commentTarget(c *gin.Context) (string, int64, bool) {
	mediaType := c.Param("mediaType")
	switch mediaType {
	case model.MediaTypeMovie, model.MediaTypeTV, model.MediaTypeLocal:
	default:
		utils.BadRequest(c, "Invalid media type")
		return "", 0, false
	}
	id, ok := paramID(c, "mediaId")
	return mediaType, id, ok
}

// Comments 评论列表，新的在前
func (h *Handler) Comments(c *gin.Context) {
	mediaType, mediaID, ok := commentTarget(c)
	if !ok {
		return
	}
	utils.Success(c, h.repos(c).Comments.List(mediaType, mediaID))
}

// AddComment 发表评论，作者取当前登录用户
func (h *Handler) AddComment(c *gin.Context) {
	mediaType, mediaID, ok := commentTarget(c)
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Please enter a comment and select a rating")
		return
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		utils.BadRequest(c, "Please enter a comment and select a rating")
		return
	}

	user := middleware.CurrentUser(c)
	if user == nil {
		utils.Unauthorized(c, "")
		return
	}
	comment := model.CommentEntry{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		UserName:  user.Name,
		UserImage: user.ProfileImage,
		Content:   content,
		Rating:    req.Rating,
		Timestamp: model.ISOTime(time.Now()),
	}
	respondWrite(c, h.repos(c).Comments.Add(mediaType, mediaID, comment), "Comment added", comment)
}
