package migrate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"gorm.io/gorm"

	"lingo-guard/app/models"
	"lingo-guard/app/store"
)

// Run moves every record from the flat registry into the document backend.
// Identity fields are lowercased, records without an inline password get it
// backfilled from the legacy side table (the hashed branch still wins at
// login), and each record is upserted keyed by username, so re-running is
// safe.
func Run(ctx context.Context, registryPath string, gdb *gorm.DB) (int, error) {
	data, err := os.ReadFile(registryPath)
	if err != nil {
		return 0, fmt.Errorf("read registry: %w", err)
	}
	var reg store.Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return 0, fmt.Errorf("decode registry: %w", err)
	}

	count := 0
	for i := range reg.Users {
		u := reg.Users[i]
		u.Username = strings.ToLower(u.Username)
		u.Email = strings.ToLower(u.Email)
		if u.Password == "" {
			if pw, ok := reg.LegacyPasswords[u.Username]; ok {
				u.Password = pw
			}
		}
		if err := upsert(ctx, gdb, &u); err != nil {
			return count, fmt.Errorf("upsert %s: %w", u.Username, err)
		}
		count++
	}
	return count, nil
}

func upsert(ctx context.Context, gdb *gorm.DB, u *models.User) error {
	var existing models.User
	err := gdb.WithContext(ctx).Where("LOWER(username) = ?", u.Username).First(&existing).Error
	if err == nil {
		u.ID = existing.ID
		return gdb.WithContext(ctx).Save(u).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return gdb.WithContext(ctx).Create(u).Error
}
