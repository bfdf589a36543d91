package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reelfeed/apperr"
	"reelfeed/feed"
	"reelfeed/middleware"
	"reelfeed/models"
)

const (
	bobID   = "68b1c2d3e4f5a6b7c8d9e0f1"
	otherID = "68b1c2d3e4f5a6b7c8d9e0f2"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeEngager struct {
	liked      bool
	likesCount int64
	saved      bool
	savesCount int64
	comment    *models.Comment
	comments   []models.CommentView
	shareCount int64
	err        error

	gotPostID string
	gotCaller string
	gotText   string
}

func (f *fakeEngager) ToggleLike(_ context.Context, postID, callerID string) (bool, int64, error) {
	f.gotPostID, f.gotCaller = postID, callerID
	return f.liked, f.likesCount, f.err
}

func (f *fakeEngager) ToggleSave(_ context.Context, postID, callerID string) (bool, int64, error) {
	f.gotPostID, f.gotCaller = postID, callerID
	return f.saved, f.savesCount, f.err
}

func (f *fakeEngager) AddComment(_ context.Context, postID, callerID, text string) (*models.Comment, int64, error) {
	f.gotPostID, f.gotCaller, f.gotText = postID, callerID, text
	return f.comment, int64(len(f.comments) + 1), f.err
}

func (f *fakeEngager) ListComments(_ context.Context, postID string) ([]models.CommentView, error) {
	f.gotPostID = postID
	return f.comments, f.err
}

func (f *fakeEngager) IncrementShare(_ context.Context, postID string) (int64, error) {
	f.gotPostID = postID
	return f.shareCount, f.err
}

type fakeFeedLister struct {
	views       []models.PostView
	err         error
	gotCriteria feed.Criteria
}

func (f *fakeFeedLister) ListPosts(_ context.Context, c feed.Criteria) ([]models.PostView, error) {
	f.gotCriteria = c
	return f.views, f.err
}

func doRequest(r *gin.Engine, method, target, body string, authAs string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authAs != "" {
		token, err := middleware.IssueToken([]byte("test-secret"), authAs)
		if err != nil {
			panic(err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func newEngagementRouter(engage Engager) *gin.Engine {
	r := gin.New()
	h := NewEngagementHandlers(engage)
	secret := []byte("test-secret")
	r.POST("/posts/:id/like", middleware.RequireAuth(secret), h.ToggleLike)
	r.POST("/posts/:id/save", middleware.RequireAuth(secret), h.ToggleSave)
	r.POST("/posts/:id/comment", middleware.RequireAuth(secret), h.AddComment)
	r.GET("/posts/:id/comments", h.GetComments)
	r.POST("/posts/:id/share", h.Share)
	return r
}

func TestToggleLikeRoute(t *testing.T) {
	engage := &fakeEngager{liked: true, likesCount: 1}
	r := newEngagementRouter(engage)

	w := doRequest(r, http.MethodPost, "/posts/p1/like", "", otherID)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, true, body["liked"])
	assert.Equal(t, float64(1), body["likesCount"])
	assert.Equal(t, "p1", engage.gotPostID)
	assert.Equal(t, otherID, engage.gotCaller)
}

func TestToggleLikeRoute_RequiresAuth(t *testing.T) {
	r := newEngagementRouter(&fakeEngager{})

	w := doRequest(r, http.MethodPost, "/posts/p1/like", "", "")

	require.Equal(t, http.StatusUnauthorized, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["message"])
}

func TestToggleSaveRoute(t *testing.T) {
	engage := &fakeEngager{saved: true, savesCount: 3}
	r := newEngagementRouter(engage)

	w := doRequest(r, http.MethodPost, "/posts/p1/save", "", otherID)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["saved"])
	assert.Equal(t, float64(3), body["savesCount"])
}

func TestCommentRoute(t *testing.T) {
	engage := &fakeEngager{comment: &models.Comment{ID: "c1", PostID: "p1", AccountID: otherID, Text: "nice"}}
	r := newEngagementRouter(engage)

	w := doRequest(r, http.MethodPost, "/posts/p1/comment", `{"text":"nice"}`, otherID)

	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "nice", engage.gotText)
	comment := body["comment"].(map[string]interface{})
	assert.Equal(t, "c1", comment["id"])
}

func TestCommentRoute_ValidationEnvelope(t *testing.T) {
	engage := &fakeEngager{err: apperr.Invalid("Comment text is required")}
	r := newEngagementRouter(engage)

	w := doRequest(r, http.MethodPost, "/posts/p1/comment", `{"text":"  "}`, otherID)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Comment text is required", body["message"])
}

func TestShareRoute_NoAuthNeeded(t *testing.T) {
	engage := &fakeEngager{shareCount: 4}
	r := newEngagementRouter(engage)

	w := doRequest(r, http.MethodPost, "/posts/p1/share", "", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(4), body["shareCount"])
}

func TestShareRoute_NotFoundEnvelope(t *testing.T) {
	engage := &fakeEngager{err: apperr.NotFound("Post not found")}
	r := newEngagementRouter(engage)

	w := doRequest(r, http.MethodPost, "/posts/missing/share", "", "")

	require.Equal(t, http.StatusNotFound, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Post not found", body["message"])
}

func TestFeedRoute_CriteriaFromQuery(t *testing.T) {
	name := "bob"
	lister := &fakeFeedLister{views: []models.PostView{
		{Post: models.Post{ID: "p1", Title: "Sunset", UploadedBy: bobID}, UploadedByUsername: &name},
	}}
	r := gin.New()
	h := NewFeedHandlers(lister)
	r.GET("/feed", middleware.OptionalAuth([]byte("test-secret")), h.GetFeed)

	w := doRequest(r, http.MethodGet, "/feed?username=bob", "", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, feed.Criteria{Username: "bob"}, lister.gotCriteria)
	body := decode(t, w)
	posts := body["posts"].([]interface{})
	require.Len(t, posts, 1)
	first := posts[0].(map[string]interface{})
	assert.Equal(t, "Sunset", first["title"])
	assert.Equal(t, "bob", first["uploadedByUsername"])
}

func TestSavedFeedRoute_UsesCaller(t *testing.T) {
	lister := &fakeFeedLister{views: []models.PostView{}}
	r := gin.New()
	h := NewFeedHandlers(lister)
	r.GET("/feed/saved", middleware.RequireAuth([]byte("test-secret")), h.GetSavedFeed)

	w := doRequest(r, http.MethodGet, "/feed/saved", "", otherID)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, feed.Criteria{SavedBy: otherID}, lister.gotCriteria)
}

func TestInternalFaultEnvelopeHidesCause(t *testing.T) {
	engage := &fakeEngager{err: apperr.Internal("failed to load post", assert.AnError)}
	r := newEngagementRouter(engage)

	w := doRequest(r, http.MethodPost, "/posts/p1/share", "", "")

	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Server error", body["message"])
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}
