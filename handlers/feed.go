package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"reelfeed/feed"
	"reelfeed/models"
)

// FeedLister assembles a feed for the given criteria.
type FeedLister interface {
	ListPosts(ctx context.Context, c feed.Criteria) ([]models.PostView, error)
}

type FeedHandlers struct {
	feeds FeedLister
}

func NewFeedHandlers(feeds FeedLister) *FeedHandlers {
	return &FeedHandlers{feeds: feeds}
}

// GetFeed handles GET /feed?username=&userId=. Both parameters absent means
// the global feed; an unknown creator yields an empty successful feed.
func (h *FeedHandlers) GetFeed(c *gin.Context) {
	criteria := feed.Criteria{
		Username: c.Query("username"),
		UserID:   c.Query("userId"),
	}
	posts, err := h.feeds.ListPosts(c.Request.Context(), criteria)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "posts": posts})
}

// GetSavedFeed handles GET /feed/saved for the authenticated caller.
func (h *FeedHandlers) GetSavedFeed(c *gin.Context) {
	posts, err := h.feeds.ListPosts(c.Request.Context(), feed.Criteria{SavedBy: callerID(c)})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "posts": posts})
}
