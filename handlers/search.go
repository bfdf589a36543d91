package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"reelfeed/search"
)

// Searcher runs one query across accounts and posts.
type Searcher interface {
	Search(ctx context.Context, query string) (*search.Result, error)
}

type SearchHandlers struct {
	searcher Searcher
}

func NewSearchHandlers(searcher Searcher) *SearchHandlers {
	return &SearchHandlers{searcher: searcher}
}

// Search handles GET /search?q=.
func (h *SearchHandlers) Search(c *gin.Context) {
	result, err := h.searcher.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"accounts": result.Accounts,
		"posts":    result.Posts,
	})
}
