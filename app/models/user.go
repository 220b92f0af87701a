package models

import "time"

// User is the registry record. The same struct backs both stores: the json
// tags match the flat registry document, the gorm tags shape the database
// collection. Password is the legacy plaintext field kept as a read-only
// fallback for pre-migration accounts; PasswordHash and Salt travel together.
type User struct {
	ID            string     `json:"id" gorm:"primaryKey;size:64"`
	Username      string     `json:"username" gorm:"index;size:191;not null"`
	Email         string     `json:"email" gorm:"index;size:191"`
	PasswordHash  string     `json:"passwordHash,omitempty" gorm:"size:255"`
	Salt          string     `json:"salt,omitempty" gorm:"size:64"`
	Password      string     `json:"password,omitempty" gorm:"size:255"`
	Role          string     `json:"role" gorm:"size:32;not null;default:student"`
	IsActive      *bool      `json:"isActive,omitempty" gorm:"default:true"`
	EmailVerified bool       `json:"emailVerified" gorm:"not null;default:false"`
	CreatedAt     time.Time  `json:"createdAt"`
	LastLogin     *time.Time `json:"lastLogin"`
}

// Disabled reports whether login is blocked. Records that predate the
// isActive flag are treated as active, matching the registry semantics.
func (u *User) Disabled() bool {
	return u.IsActive != nil && !*u.IsActive
}
