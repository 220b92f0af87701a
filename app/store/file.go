package store

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"lingo-guard/app/models"
)

// Registry is the flat JSON document layout: an ordered user list plus an
// optional plaintext side table for pre-hash accounts.
type Registry struct {
	Users           []models.User     `json:"users"`
	LegacyPasswords map[string]string `json:"legacyPasswords,omitempty"`
}

// FileStore loads the whole registry on every operation and rewrites the whole
// document on every mutation. There is no cross-request locking; concurrent
// writers can lose updates. Write failures are logged and swallowed because
// the backing file may sit on ephemeral storage and the response has already
// been decided from the in-memory state.
type FileStore struct {
	path string
	log  zerolog.Logger
}

func NewFileStore(path string, log zerolog.Logger) *FileStore {
	return &FileStore{path: path, log: log}
}

func (s *FileStore) load() (*Registry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Registry{}, nil
		}
		return nil, err
	}
	var reg Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

func (s *FileStore) save(reg *Registry) {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		s.log.Warn().Err(err).Msg("registry encode failed")
		return
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("registry write failed")
	}
}

func (s *FileStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	reg, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range reg.Users {
		if strings.EqualFold(reg.Users[i].Username, username) {
			u := reg.Users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (s *FileStore) FindByUsernameOrEmail(_ context.Context, username, email string) (*models.User, error) {
	reg, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range reg.Users {
		u := reg.Users[i]
		if strings.EqualFold(u.Username, username) || (u.Email != "" && strings.EqualFold(u.Email, email)) {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *FileStore) Insert(_ context.Context, u *models.User) error {
	reg, err := s.load()
	if err != nil {
		return err
	}
	reg.Users = append(reg.Users, *u)
	s.save(reg)
	return nil
}

func (s *FileStore) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	reg, err := s.load()
	if err != nil {
		return err
	}
	for i := range reg.Users {
		if reg.Users[i].ID == id {
			t := at
			reg.Users[i].LastLogin = &t
			s.save(reg)
			return nil
		}
	}
	return nil
}

func (s *FileStore) Count(_ context.Context) (int64, error) {
	reg, err := s.load()
	if err != nil {
		return 0, err
	}
	return int64(len(reg.Users)), nil
}

func (s *FileStore) LegacyPassword(_ context.Context, username string) (string, bool, error) {
	reg, err := s.load()
	if err != nil {
		return "", false, err
	}
	if pw, ok := reg.LegacyPasswords[username]; ok {
		return pw, true, nil
	}
	for name, pw := range reg.LegacyPasswords {
		if strings.EqualFold(name, username) {
			return pw, true, nil
		}
	}
	return "", false, nil
}
