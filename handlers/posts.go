package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"reelfeed/apperr"
	"reelfeed/models"
	"reelfeed/storage"
)

// PostCreator persists a new post.
type PostCreator interface {
	Create(ctx context.Context, p *models.Post) error
}

// AccountReader resolves the uploader for the creation response.
type AccountReader interface {
	ByID(ctx context.Context, id string) (*models.Account, error)
}

type PostHandlers struct {
	posts    PostCreator
	accounts AccountReader
	media    storage.Uploader
}

func NewPostHandlers(posts PostCreator, accounts AccountReader, media storage.Uploader) *PostHandlers {
	return &PostHandlers{posts: posts, accounts: accounts, media: media}
}

// Create handles POST /posts: a multipart clip upload plus title and
// optional description. The stored post carries both the legacy uploader
// reference (the caller's id as a string) and the proper uploader link.
func (h *PostHandlers) Create(c *gin.Context) {
	caller := callerID(c)

	title := c.PostForm("title")
	if title == "" {
		fail(c, apperr.Invalid("Title is required"))
		return
	}

	file, err := c.FormFile("reel")
	if err != nil {
		fail(c, apperr.Invalid("A media file is required"))
		return
	}
	src, err := file.Open()
	if err != nil {
		fail(c, apperr.Invalid("Failed to open uploaded file"))
		return
	}
	defer src.Close()

	ctx := c.Request.Context()
	url, err := h.media.Upload(ctx, file.Filename, file.Header.Get("Content-Type"), src, file.Size)
	if err != nil {
		fail(c, apperr.Internal("failed to store media", err))
		return
	}

	post := &models.Post{
		ID:          models.NewID(),
		Title:       title,
		Description: c.PostForm("description"),
		MediaURL:    url,
		UploadedBy:  caller,
		UploaderID:  &caller,
	}
	if err := h.posts.Create(ctx, post); err != nil {
		fail(c, apperr.Internal("failed to create post", err))
		return
	}

	view := models.PostView{Post: *post}
	if account, err := h.accounts.ByID(ctx, caller); err == nil && account != nil {
		view.UploadedByUsername = &account.Username
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Post uploaded successfully",
		"post":    view,
	})
}
