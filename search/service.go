// Package search implements cross-entity substring search over accounts and
// posts.
package search

import (
	"context"
	"strings"

	"reelfeed/apperr"
	"reelfeed/feed"
	"reelfeed/models"
)

// resultCap bounds each result list per query.
const resultCap = 20

// AccountSearcher matches accounts by username, display name or email.
type AccountSearcher interface {
	SearchAccounts(ctx context.Context, q string, limit int) ([]models.Account, error)
}

// PostSearcher matches posts by title or description, newest first.
type PostSearcher interface {
	SearchPosts(ctx context.Context, q string, limit int) ([]models.Post, error)
}

// Result carries both halves of a search response.
type Result struct {
	Accounts []models.AccountView
	Posts    []PostResult
}

// PostResult is the slim post projection search returns.
type PostResult struct {
	ID                 string  `json:"id"`
	Title              string  `json:"title"`
	Description        string  `json:"description"`
	MediaURL           string  `json:"mediaUrl"`
	UploadedByUsername *string `json:"uploadedByUsername"`
}

// Service runs one query against both entity kinds. Matching is
// case-insensitive and literal: the stores escape the query before using it
// as a pattern, so metacharacters never act as wildcards.
type Service struct {
	accounts AccountSearcher
	posts    PostSearcher
	resolver *feed.Resolver
}

func NewService(accounts AccountSearcher, posts PostSearcher, resolver *feed.Resolver) *Service {
	return &Service{accounts: accounts, posts: posts, resolver: resolver}
}

// Search returns matching accounts and posts, each capped at 20. An empty
// or whitespace-only query yields two empty lists, not an error.
func (s *Service) Search(ctx context.Context, query string) (*Result, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return &Result{Accounts: []models.AccountView{}, Posts: []PostResult{}}, nil
	}

	accounts, err := s.accounts.SearchAccounts(ctx, q, resultCap)
	if err != nil {
		return nil, apperr.Internal("search failed", err)
	}
	posts, err := s.posts.SearchPosts(ctx, q, resultCap)
	if err != nil {
		return nil, apperr.Internal("search failed", err)
	}

	names, err := s.resolver.ResolveUploaderNames(ctx, posts)
	if err != nil {
		return nil, apperr.Internal("search failed", err)
	}

	result := &Result{
		Accounts: make([]models.AccountView, 0, len(accounts)),
		Posts:    make([]PostResult, 0, len(posts)),
	}
	for _, a := range accounts {
		result.Accounts = append(result.Accounts, models.AccountView{
			Username:  a.Username,
			Name:      a.Name,
			AvatarURL: a.AvatarURL,
		})
	}
	for _, p := range posts {
		result.Posts = append(result.Posts, PostResult{
			ID:                 p.ID,
			Title:              p.Title,
			Description:        p.Description,
			MediaURL:           p.MediaURL,
			UploadedByUsername: names[p.ID],
		})
	}
	return result, nil
}
