package feed

import (
	"context"

	"reelfeed/apperr"
	"reelfeed/models"
	"reelfeed/store"
)

// Criteria selects which feed to assemble. At most one field may be set;
// the zero value is the global feed.
type Criteria struct {
	Username string
	UserID   string
	SavedBy  string
}

// PostSource lists posts matching a filter, newest first.
type PostSource interface {
	List(ctx context.Context, f store.PostFilter) ([]models.Post, error)
}

// AccountFinder resolves a username to its account, nil when absent.
type AccountFinder interface {
	ByUsername(ctx context.Context, username string) (*models.Account, error)
}

// SavedIndex lists the post ids an account has saved.
type SavedIndex interface {
	SavedPostIDs(ctx context.Context, accountID string) ([]string, error)
}

// Assembler builds the filtered, sorted, identity-enriched post feeds.
type Assembler struct {
	posts    PostSource
	accounts AccountFinder
	saved    SavedIndex
	resolver *Resolver
}

func NewAssembler(posts PostSource, accounts AccountFinder, saved SavedIndex, resolver *Resolver) *Assembler {
	return &Assembler{posts: posts, accounts: accounts, saved: saved, resolver: resolver}
}

// ListPosts returns the feed for the given criteria. An unknown creator is
// an empty feed, not a fault; the same criteria against the same store state
// always comes back in the same order.
func (a *Assembler) ListPosts(ctx context.Context, c Criteria) ([]models.PostView, error) {
	var filter store.PostFilter

	switch {
	case c.Username != "":
		acct, err := a.accounts.ByUsername(ctx, c.Username)
		if err != nil {
			return nil, apperr.Internal("failed to fetch posts", err)
		}
		if acct == nil {
			return []models.PostView{}, nil
		}
		// Historical posts may carry the id as a string, the username
		// literal, or the proper link; union all three.
		filter.UploadedByAny = []string{acct.ID, c.Username}
		filter.UploaderIDAny = []string{acct.ID}

	case c.UserID != "":
		filter.UploadedByAny = []string{c.UserID}
		filter.UploaderIDAny = []string{c.UserID}

	case c.SavedBy != "":
		ids, err := a.saved.SavedPostIDs(ctx, c.SavedBy)
		if err != nil {
			return nil, apperr.Internal("failed to fetch saved posts", err)
		}
		if len(ids) == 0 {
			return []models.PostView{}, nil
		}
		filter.IDs = ids
	}

	posts, err := a.posts.List(ctx, filter)
	if err != nil {
		return nil, apperr.Internal("failed to fetch posts", err)
	}

	names, err := a.resolver.ResolveUploaderNames(ctx, posts)
	if err != nil {
		return nil, apperr.Internal("failed to resolve uploader names", err)
	}

	views := make([]models.PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, models.PostView{Post: p, UploadedByUsername: names[p.ID]})
	}
	return views, nil
}
