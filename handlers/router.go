package handlers

import (
	"github.com/gin-gonic/gin"

	"reelfeed/middleware"
)

// Router bundles the handler groups for route registration.
type Router struct {
	Auth    *AuthHandlers
	Posts   *PostHandlers
	Feed    *FeedHandlers
	Engage  *EngagementHandlers
	Search  *SearchHandlers
	Creator *CreatorHandlers
	Secret  []byte
}

// Register mounts every route on r. Reads that only personalize on login
// use optional auth; mutations on caller-owned state require it. Comment
// listing and sharing are deliberately open.
func (rt *Router) Register(r *gin.Engine) {
	requireAuth := middleware.RequireAuth(rt.Secret)
	optionalAuth := middleware.OptionalAuth(rt.Secret)

	r.POST("/auth/register", rt.Auth.Register)
	r.POST("/auth/login", rt.Auth.Login)
	r.POST("/auth/logout", rt.Auth.Logout)
	r.GET("/auth/me", requireAuth, rt.Auth.Me)
	r.PUT("/auth/profile", requireAuth, rt.Auth.UpdateProfile)

	r.GET("/feed", optionalAuth, rt.Feed.GetFeed)
	r.GET("/feed/saved", requireAuth, rt.Feed.GetSavedFeed)

	r.POST("/posts", requireAuth, rt.Posts.Create)
	r.POST("/posts/:id/like", requireAuth, rt.Engage.ToggleLike)
	r.POST("/posts/:id/save", requireAuth, rt.Engage.ToggleSave)
	r.POST("/posts/:id/comment", requireAuth, rt.Engage.AddComment)
	r.GET("/posts/:id/comments", rt.Engage.GetComments)
	r.POST("/posts/:id/share", rt.Engage.Share)

	r.GET("/search", rt.Search.Search)
	r.GET("/creator/:id", rt.Creator.GetCreator)
}
