package domain

import "time"

// Challenge is the outstanding one-time-code record for an account.
// At most one row exists per identifier; issuing a new code replaces it.
type Challenge struct {
	Identifier string    `gorm:"primaryKey;size:255" json:"identifier"`
	Code       string    `gorm:"size:16;not null" json:"-"`
	ExpiresAt  time.Time `gorm:"not null" json:"expires_at"`
	Attempts   int       `gorm:"not null;default:0" json:"attempts"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

func (c *Challenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
