package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reelfeed/apperr"
	"reelfeed/feed"
)

type CreatorHandlers struct {
	accounts AccountReader
	feeds    FeedLister
}

func NewCreatorHandlers(accounts AccountReader, feeds FeedLister) *CreatorHandlers {
	return &CreatorHandlers{accounts: accounts, feeds: feeds}
}

// GetCreator handles GET /creator/:id: the creator's public profile plus
// everything they uploaded, assembled with the same union filter and
// identity enrichment as the by-creator feed.
func (h *CreatorHandlers) GetCreator(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	account, err := h.accounts.ByID(ctx, id)
	if err != nil {
		fail(c, apperr.Internal("failed to load account", err))
		return
	}
	if account == nil {
		fail(c, apperr.NotFound("Creator profile not found"))
		return
	}

	posts, err := h.feeds.ListPosts(ctx, feed.Criteria{UserID: id})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"account": account,
		"posts":   posts,
	})
}
