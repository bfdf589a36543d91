package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"reelfeed/models"
)

// PostFilter restricts a post listing. Zero value means the global feed.
// UploadedByAny and UploaderIDAny are OR-combined: a post matches when its
// legacy uploader reference is any of the former or its uploader link is any
// of the latter. IDs, when set, restricts to an explicit post id set.
type PostFilter struct {
	UploadedByAny []string
	UploaderIDAny []string
	IDs           []string
}

// PostStore persists posts and their comment logs in MySQL through gorm.
type PostStore struct {
	db *gorm.DB
}

func NewPostStore(db *gorm.DB) *PostStore {
	return &PostStore{db: db}
}

func (s *PostStore) Create(ctx context.Context, p *models.Post) error {
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *PostStore) ByID(ctx context.Context, id string) (*models.Post, error) {
	var p models.Post
	err := s.db.WithContext(ctx).Preload("Uploader").Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns posts matching the filter, newest first with id as the
// tiebreak so repeated calls over the same state order identically.
func (s *PostStore) List(ctx context.Context, f PostFilter) ([]models.Post, error) {
	q := s.db.WithContext(ctx).Model(&models.Post{}).Preload("Uploader")

	if len(f.IDs) > 0 {
		q = q.Where("id IN ?", f.IDs)
	}
	switch {
	case len(f.UploadedByAny) > 0 && len(f.UploaderIDAny) > 0:
		q = q.Where("uploaded_by IN ? OR uploader_id IN ?", f.UploadedByAny, f.UploaderIDAny)
	case len(f.UploadedByAny) > 0:
		q = q.Where("uploaded_by IN ?", f.UploadedByAny)
	case len(f.UploaderIDAny) > 0:
		q = q.Where("uploader_id IN ?", f.UploaderIDAny)
	}

	var out []models.Post
	if err := q.Order("created_at DESC, id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// SearchPosts matches posts whose title or description contains q,
// case-insensitively and literally, newest first, capped at limit.
func (s *PostStore) SearchPosts(ctx context.Context, q string, limit int) ([]models.Post, error) {
	pattern := LikeContains(q)
	var out []models.Post
	err := s.db.WithContext(ctx).
		Preload("Uploader").
		Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// IncrementShare bumps the share counter in a single atomic UPDATE and
// returns the new value. Returns (0, nil, found=false) when the post is
// absent.
func (s *PostStore) IncrementShare(ctx context.Context, postID string) (int64, bool, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", postID).
		UpdateColumn("share_count", gorm.Expr("share_count + 1"))
	if res.Error != nil {
		return 0, false, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, false, nil
	}

	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", postID).
		Select("share_count").
		Scan(&count).Error
	if err != nil {
		return 0, false, err
	}
	return count, true, nil
}

// SetCounts writes the denormalized like/save counters for a post. Used by
// the background counter sync; feed reads never recompute these from Redis.
func (s *PostStore) SetCounts(ctx context.Context, postID string, likes, saves int64) error {
	return s.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", postID).
		UpdateColumns(map[string]interface{}{
			"like_count": likes,
			"save_count": saves,
		}).Error
}

// PostIDsWithCounts returns the ids of posts whose denormalized like or
// save counter is nonzero. The counter sync sweeps these so a set emptied
// since the last tick still gets its columns zeroed.
func (s *PostStore) PostIDsWithCounts(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("like_count > 0 OR save_count > 0").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// AddComment appends one entry to the post's comment log.
func (s *PostStore) AddComment(ctx context.Context, c *models.Comment) error {
	return s.db.WithContext(ctx).Create(c).Error
}

// Comments returns a post's comment log newest first. Storage order is
// insertion order; the reversal is a read-side transform.
func (s *PostStore) Comments(ctx context.Context, postID string) ([]models.Comment, error) {
	var out []models.Comment
	err := s.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostStore) CountComments(ctx context.Context, postID string) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("post_id = ?", postID).
		Count(&n).Error
	return n, err
}
