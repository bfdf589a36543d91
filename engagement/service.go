// Package engagement owns the per-post engagement state: like and save
// toggles, the append-only comment log, and the share counter.
package engagement

import (
	"context"
	"strings"
	"time"

	"reelfeed/apperr"
	"reelfeed/feed"
	"reelfeed/models"
	"reelfeed/store"
)

// PostSource fetches a post by id, nil when absent.
type PostSource interface {
	ByID(ctx context.Context, id string) (*models.Post, error)
}

// Sets flips set membership atomically and reports the new state and size.
type Sets interface {
	Toggle(ctx context.Context, kind store.SetKind, postID, accountID string) (bool, int64, error)
}

// CommentLog appends to and reads a post's comment log.
type CommentLog interface {
	AddComment(ctx context.Context, c *models.Comment) error
	Comments(ctx context.Context, postID string) ([]models.Comment, error)
	CountComments(ctx context.Context, postID string) (int64, error)
}

// ShareCounter bumps a post's share count, reporting whether the post exists.
type ShareCounter interface {
	IncrementShare(ctx context.Context, postID string) (int64, bool, error)
}

// Service applies the engagement state transitions. Toggles are idempotent
// pairs: calling the same toggle twice restores the prior state and count.
type Service struct {
	posts    PostSource
	sets     Sets
	comments CommentLog
	shares   ShareCounter
	resolver *feed.Resolver

	now func() time.Time
}

func NewService(posts PostSource, sets Sets, comments CommentLog, shares ShareCounter, resolver *feed.Resolver) *Service {
	return &Service{
		posts:    posts,
		sets:     sets,
		comments: comments,
		shares:   shares,
		resolver: resolver,
		now:      time.Now,
	}
}

// ToggleLike flips callerID's membership in the post's like set and returns
// the new state plus the set's new cardinality.
func (s *Service) ToggleLike(ctx context.Context, postID, callerID string) (bool, int64, error) {
	return s.toggle(ctx, store.SetLikes, postID, callerID)
}

// ToggleSave is ToggleLike's counterpart for the save set.
func (s *Service) ToggleSave(ctx context.Context, postID, callerID string) (bool, int64, error) {
	return s.toggle(ctx, store.SetSaves, postID, callerID)
}

func (s *Service) toggle(ctx context.Context, kind store.SetKind, postID, callerID string) (bool, int64, error) {
	if callerID == "" {
		return false, 0, apperr.Unauthorized("Unauthorized")
	}
	post, err := s.posts.ByID(ctx, postID)
	if err != nil {
		return false, 0, apperr.Internal("failed to load post", err)
	}
	if post == nil {
		return false, 0, apperr.NotFound("Post not found")
	}

	member, count, err := s.sets.Toggle(ctx, kind, postID, callerID)
	if err != nil {
		return false, 0, apperr.Internal("failed to update engagement set", err)
	}
	return member, count, nil
}

// AddComment appends a trimmed, non-empty comment to the post's log and
// returns the new entry plus the log's new length. Prior entries are never
// touched.
func (s *Service) AddComment(ctx context.Context, postID, callerID, text string) (*models.Comment, int64, error) {
	if callerID == "" {
		return nil, 0, apperr.Unauthorized("Unauthorized")
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, 0, apperr.Invalid("Comment text is required")
	}

	post, err := s.posts.ByID(ctx, postID)
	if err != nil {
		return nil, 0, apperr.Internal("failed to load post", err)
	}
	if post == nil {
		return nil, 0, apperr.NotFound("Post not found")
	}

	comment := &models.Comment{
		ID:        models.NewID(),
		PostID:    postID,
		AccountID: callerID,
		Text:      trimmed,
		CreatedAt: s.now(),
	}
	if err := s.comments.AddComment(ctx, comment); err != nil {
		return nil, 0, apperr.Internal("failed to add comment", err)
	}

	count, err := s.comments.CountComments(ctx, postID)
	if err != nil {
		return nil, 0, apperr.Internal("failed to count comments", err)
	}
	return comment, count, nil
}

// ListComments returns the post's comment log newest first, each entry
// carrying the commenter's username resolved through one batched lookup.
// Commenters that no longer resolve fall back to their raw account id.
func (s *Service) ListComments(ctx context.Context, postID string) ([]models.CommentView, error) {
	post, err := s.posts.ByID(ctx, postID)
	if err != nil {
		return nil, apperr.Internal("failed to load post", err)
	}
	if post == nil {
		return nil, apperr.NotFound("Post not found")
	}

	comments, err := s.comments.Comments(ctx, postID)
	if err != nil {
		return nil, apperr.Internal("failed to load comments", err)
	}

	ids := make([]string, 0, len(comments))
	seen := make(map[string]struct{}, len(comments))
	for _, c := range comments {
		if _, ok := seen[c.AccountID]; ok {
			continue
		}
		seen[c.AccountID] = struct{}{}
		ids = append(ids, c.AccountID)
	}
	names, err := s.resolver.UsernamesByID(ctx, ids)
	if err != nil {
		return nil, apperr.Internal("failed to resolve commenters", err)
	}

	views := make([]models.CommentView, 0, len(comments))
	for _, c := range comments {
		username := c.AccountID
		if name, ok := names[c.AccountID]; ok {
			username = name
		}
		views = append(views, models.CommentView{Comment: c, Username: username})
	}
	return views, nil
}

// IncrementShare bumps the post's share counter. Sharing is not gated by
// login and is not deduplicated per caller; the counter only ever grows.
func (s *Service) IncrementShare(ctx context.Context, postID string) (int64, error) {
	count, found, err := s.shares.IncrementShare(ctx, postID)
	if err != nil {
		return 0, apperr.Internal("failed to increment share count", err)
	}
	if !found {
		return 0, apperr.NotFound("Post not found")
	}
	return count, nil
}
