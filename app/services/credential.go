package services

import (
	"context"

	"lingo-guard/app/models"
	"lingo-guard/app/security"
	"lingo-guard/app/store"
)

// credential is the tagged credential state of a user record. Exactly one
// variant applies per record, chosen once; there is no fallthrough between
// verification paths.
type credential interface {
	verify(ctx context.Context, password string) (bool, error)
}

// hashedCredential verifies against the stored salt+digest pair.
type hashedCredential struct{ salt, hash string }

func (c hashedCredential) verify(_ context.Context, password string) (bool, error) {
	return security.Verify(password, c.salt, c.hash), nil
}

// inlineCredential is the deprecated plaintext password kept on the record.
type inlineCredential struct{ password string }

func (c inlineCredential) verify(_ context.Context, password string) (bool, error) {
	return password == c.password, nil
}

// legacyTableCredential consults the registry's plaintext side table. Absence
// verifies false rather than falling through to another variant.
type legacyTableCredential struct {
	users    store.UserStore
	username string
}

func (c legacyTableCredential) verify(ctx context.Context, password string) (bool, error) {
	pw, ok, err := c.users.LegacyPassword(ctx, c.username)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	return password == pw, nil
}

// credentialOf picks the applicable variant: hashed wins over inline plaintext,
// which wins over the side table.
func credentialOf(u *models.User, users store.UserStore) credential {
	if u.PasswordHash != "" && u.Salt != "" {
		return hashedCredential{salt: u.Salt, hash: u.PasswordHash}
	}
	if u.Password != "" {
		return inlineCredential{password: u.Password}
	}
	return legacyTableCredential{users: users, username: u.Username}
}
