package store

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"reelfeed/models"
)

// AccountStore persists accounts in MySQL through gorm. Lookup methods
// return (nil, nil) when no row matches; absence is not an error at this
// layer.
type AccountStore struct {
	db *gorm.DB
}

func NewAccountStore(db *gorm.DB) *AccountStore {
	return &AccountStore{db: db}
}

func (s *AccountStore) Create(ctx context.Context, a *models.Account) error {
	return s.db.WithContext(ctx).Create(a).Error
}

func (s *AccountStore) Save(ctx context.Context, a *models.Account) error {
	return s.db.WithContext(ctx).Save(a).Error
}

func (s *AccountStore) ByID(ctx context.Context, id string) (*models.Account, error) {
	var a models.Account
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AccountStore) ByUsername(ctx context.Context, username string) (*models.Account, error) {
	var a models.Account
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AccountStore) ByEmail(ctx context.Context, email string) (*models.Account, error) {
	var a models.Account
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// AccountsByIDs is one of the two batched lookups behind uploader-name
// resolution. An empty key set short-circuits without touching the database.
func (s *AccountStore) AccountsByIDs(ctx context.Context, ids []string) ([]models.Account, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []models.Account
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *AccountStore) AccountsByUsernames(ctx context.Context, names []string) ([]models.Account, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var out []models.Account
	if err := s.db.WithContext(ctx).Where("username IN ?", names).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// SearchAccounts matches accounts whose username, display name or email
// contains q, case-insensitively and literally, capped at limit results.
func (s *AccountStore) SearchAccounts(ctx context.Context, q string, limit int) ([]models.Account, error) {
	pattern := LikeContains(q)
	var out []models.Account
	err := s.db.WithContext(ctx).
		Where("LOWER(username) LIKE ? OR LOWER(name) LIKE ? OR LOWER(email) LIKE ?",
			pattern, pattern, pattern).
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// LikeContains builds a case-insensitive contains pattern for LIKE, escaping
// the LIKE metacharacters so the query string only ever matches literally.
func LikeContains(q string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(q))
	return "%" + escaped + "%"
}
