package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"lingo-guard/app/models"
)

// DocumentStore runs each operation as a discrete query against the user
// collection. Uniqueness is enforced by the compound lookup before insert, not
// by a storage constraint, so the model deliberately carries no unique index:
// two racing registrations with the same identity can both land, matching the
// original collection's behavior.
type DocumentStore struct{ db *gorm.DB }

func NewDocumentStore(db *gorm.DB) *DocumentStore { return &DocumentStore{db: db} }

func (s *DocumentStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Where("LOWER(username) = ?", strings.ToLower(username)).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *DocumentStore) FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).
		Where("LOWER(username) = ? OR LOWER(email) = ?", strings.ToLower(username), strings.ToLower(email)).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *DocumentStore) Insert(ctx context.Context, u *models.User) error {
	return s.db.WithContext(ctx).Create(u).Error
}

func (s *DocumentStore) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	return s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("last_login", at).Error
}

func (s *DocumentStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}

// LegacyPassword always reports absence: migration backfills plaintext
// passwords into the record itself, the collection has no side table.
func (s *DocumentStore) LegacyPassword(context.Context, string) (string, bool, error) {
	return "", false, nil
}
