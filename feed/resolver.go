// Package feed assembles post feeds and resolves uploader identities.
package feed

import (
	"context"

	"reelfeed/models"
)

// Directory is the read-only account lookup the resolver batches against.
type Directory interface {
	AccountsByIDs(ctx context.Context, ids []string) ([]models.Account, error)
	AccountsByUsernames(ctx context.Context, names []string) ([]models.Account, error)
}

// Resolver turns the dual uploader representation (legacy free-form
// reference vs. proper account link) into a display username per post.
type Resolver struct {
	dir Directory
}

func NewResolver(dir Directory) *Resolver {
	return &Resolver{dir: dir}
}

// ResolveUploaderNames maps each post id to its uploader's display name, or
// nil when nothing resolves. Precedence per post: populated uploader link,
// then the reference looked up as an account id, then as a legacy username,
// then the raw reference itself when it is not id-shaped.
//
// However many posts are passed, at most two directory lookups are issued:
// one batched by-id and one batched by-username. A reference that finds no
// account degrades to the raw-string/nil fallback, never to an error.
func (r *Resolver) ResolveUploaderNames(ctx context.Context, posts []models.Post) (map[string]*string, error) {
	idSet := make(map[string]struct{})
	nameSet := make(map[string]struct{})
	for _, p := range posts {
		if p.Uploader != nil && p.Uploader.Username != "" {
			continue
		}
		if models.IsAccountID(p.UploadedBy) {
			idSet[p.UploadedBy] = struct{}{}
		} else if p.UploadedBy != "" {
			nameSet[p.UploadedBy] = struct{}{}
		}
	}

	byID := make(map[string]string)
	if len(idSet) > 0 {
		accounts, err := r.dir.AccountsByIDs(ctx, keys(idSet))
		if err != nil {
			return nil, err
		}
		for _, a := range accounts {
			byID[a.ID] = a.Username
		}
	}
	byName := make(map[string]string)
	if len(nameSet) > 0 {
		accounts, err := r.dir.AccountsByUsernames(ctx, keys(nameSet))
		if err != nil {
			return nil, err
		}
		for _, a := range accounts {
			byName[a.Username] = a.Username
		}
	}

	out := make(map[string]*string, len(posts))
	for _, p := range posts {
		out[p.ID] = uploaderName(p, byID, byName)
	}
	return out, nil
}

func uploaderName(p models.Post, byID, byName map[string]string) *string {
	if p.Uploader != nil && p.Uploader.Username != "" {
		name := p.Uploader.Username
		return &name
	}
	if name, ok := byID[p.UploadedBy]; ok {
		return &name
	}
	if name, ok := byName[p.UploadedBy]; ok {
		return &name
	}
	if p.UploadedBy != "" && !models.IsAccountID(p.UploadedBy) {
		// Not id-shaped, so the reference is already a usable display name.
		name := p.UploadedBy
		return &name
	}
	return nil
}

// UsernamesByID resolves account ids to usernames in one batched lookup.
// Ids that resolve to nothing are simply absent from the result.
func (r *Resolver) UsernamesByID(ctx context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	accounts, err := r.dir.AccountsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		out[a.ID] = a.Username
	}
	return out, nil
}

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}
