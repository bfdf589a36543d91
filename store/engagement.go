package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"
)

// SetKind selects which engagement set a mutation targets.
type SetKind string

const (
	SetLikes SetKind = "likes"
	SetSaves SetKind = "saves"
)

// EngagementStore keeps like and save membership in Redis sets, one set per
// post per kind, plus a per-account reverse index of saved posts. Toggles
// are single set mutations keyed by account id, so two racing toggles from
// the same account can never duplicate a member or lose the final state the
// way a read-modify-write cycle can.
type EngagementStore struct {
	rdb *redis.Client
}

func NewEngagementStore(rdb *redis.Client) *EngagementStore {
	return &EngagementStore{rdb: rdb}
}

func setKey(kind SetKind, postID string) string {
	return fmt.Sprintf("post:%s:%s", kind, postID)
}

func savedIndexKey(accountID string) string {
	return "user:saves:" + accountID
}

// Toggle flips accountID's membership in the post's set and returns the new
// membership plus the set's new cardinality. SADD doubles as the membership
// probe: a zero result means the member already existed, so it is removed
// instead. The removal, the saved-index update and the cardinality read run
// in one MULTI/EXEC pipeline so the reverse index cannot drift from the set
// it mirrors.
func (s *EngagementStore) Toggle(ctx context.Context, kind SetKind, postID, accountID string) (bool, int64, error) {
	key := setKey(kind, postID)

	added, err := s.rdb.SAdd(ctx, key, accountID).Result()
	if err != nil {
		return false, 0, err
	}
	member := added > 0

	pipe := s.rdb.TxPipeline()
	if !member {
		pipe.SRem(ctx, key, accountID)
	}
	if kind == SetSaves {
		idx := savedIndexKey(accountID)
		if member {
			pipe.SAdd(ctx, idx, postID)
		} else {
			pipe.SRem(ctx, idx, postID)
		}
	}
	card := pipe.SCard(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, err
	}
	return member, card.Val(), nil
}

func (s *EngagementStore) Count(ctx context.Context, kind SetKind, postID string) (int64, error) {
	return s.rdb.SCard(ctx, setKey(kind, postID)).Result()
}

// SavedPostIDs returns the ids of every post the account has saved.
func (s *EngagementStore) SavedPostIDs(ctx context.Context, accountID string) ([]string, error) {
	return s.rdb.SMembers(ctx, savedIndexKey(accountID)).Result()
}

// CounterWriter receives the synced cardinalities; satisfied by PostStore.
type CounterWriter interface {
	SetCounts(ctx context.Context, postID string, likes, saves int64) error
	PostIDsWithCounts(ctx context.Context) ([]string, error)
}

// SyncCounts scans the like and save sets and writes their cardinalities
// into the posts table's denormalized columns. Posts whose stored counters
// are nonzero are swept even when their Redis keys are gone: emptying a set
// deletes its key, so a key scan alone would never zero the last member's
// worth of counter. Per-post failures are logged and skipped; the next tick
// retries them.
func (s *EngagementStore) SyncCounts(ctx context.Context, w CounterWriter) (int, error) {
	posts := make(map[string]struct{})
	for _, kind := range []SetKind{SetLikes, SetSaves} {
		prefix := fmt.Sprintf("post:%s:", kind)
		iter := s.rdb.Scan(ctx, 0, prefix+"*", 0).Iterator()
		for iter.Next(ctx) {
			posts[strings.TrimPrefix(iter.Val(), prefix)] = struct{}{}
		}
		if err := iter.Err(); err != nil {
			return 0, err
		}
	}

	counted, err := w.PostIDsWithCounts(ctx)
	if err != nil {
		return 0, err
	}
	for _, id := range counted {
		posts[id] = struct{}{}
	}

	synced := 0
	for postID := range posts {
		likes, err := s.Count(ctx, SetLikes, postID)
		if err != nil {
			slog.Error("counter sync: like count failed", "post", postID, "error", err)
			continue
		}
		saves, err := s.Count(ctx, SetSaves, postID)
		if err != nil {
			slog.Error("counter sync: save count failed", "post", postID, "error", err)
			continue
		}
		if err := w.SetCounts(ctx, postID, likes, saves); err != nil {
			slog.Error("counter sync: write failed", "post", postID, "error", err)
			continue
		}
		synced++
	}
	return synced, nil
}
