package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"reelfeed/models"
)

// Engager is the engagement state machine the handlers drive.
type Engager interface {
	ToggleLike(ctx context.Context, postID, callerID string) (bool, int64, error)
	ToggleSave(ctx context.Context, postID, callerID string) (bool, int64, error)
	AddComment(ctx context.Context, postID, callerID, text string) (*models.Comment, int64, error)
	ListComments(ctx context.Context, postID string) ([]models.CommentView, error)
	IncrementShare(ctx context.Context, postID string) (int64, error)
}

type EngagementHandlers struct {
	engage Engager
}

func NewEngagementHandlers(engage Engager) *EngagementHandlers {
	return &EngagementHandlers{engage: engage}
}

// ToggleLike handles POST /posts/:id/like.
func (h *EngagementHandlers) ToggleLike(c *gin.Context) {
	liked, count, err := h.engage.ToggleLike(c.Request.Context(), c.Param("id"), callerID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "liked": liked, "likesCount": count})
}

// ToggleSave handles POST /posts/:id/save.
func (h *EngagementHandlers) ToggleSave(c *gin.Context) {
	saved, count, err := h.engage.ToggleSave(c.Request.Context(), c.Param("id"), callerID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "saved": saved, "savesCount": count})
}

// AddComment handles POST /posts/:id/comment.
func (h *EngagementHandlers) AddComment(c *gin.Context) {
	var input struct {
		Text string `json:"text"`
	}
	// Text is validated (trimmed non-empty) by the service; a malformed body
	// just means empty text here.
	_ = c.ShouldBindJSON(&input)

	comment, count, err := h.engage.AddComment(c.Request.Context(), c.Param("id"), callerID(c), input.Text)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success":       true,
		"message":       "Comment added",
		"comment":       comment,
		"commentsCount": count,
	})
}

// GetComments handles GET /posts/:id/comments, newest first.
func (h *EngagementHandlers) GetComments(c *gin.Context) {
	comments, err := h.engage.ListComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "comments": comments})
}

// Share handles POST /posts/:id/share. No login required.
func (h *EngagementHandlers) Share(c *gin.Context) {
	count, err := h.engage.IncrementShare(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "shareCount": count})
}
