package domain

import "time"

const (
	AccountStatePending  = "PENDING_VERIFICATION"
	AccountStateVerified = "VERIFIED"
)

type Account struct {
	ID             uint       `gorm:"primaryKey" json:"-"`
	Identifier     string     `gorm:"size:255;uniqueIndex;not null" json:"identifier"`
	DisplayName    string     `gorm:"size:255" json:"displayName"`
	CredentialHash string     `gorm:"size:128;not null" json:"-"`
	State          string     `gorm:"size:32;index;not null" json:"state"`
	VerifiedAt     *time.Time `json:"verifiedAt,omitempty"`
	CreatedAt      time.Time  `json:"-"`
	UpdatedAt      time.Time  `json:"-"`
}

func (a Account) Verified() bool {
	return a.State == AccountStateVerified
}

// PublicAccount is the projection returned to clients. The credential hash
// never leaves the service layer.
type PublicAccount struct {
	Identifier  string `json:"identifier"`
	DisplayName string `json:"displayName"`
}

func (a *Account) Public() PublicAccount {
	return PublicAccount{Identifier: a.Identifier, DisplayName: a.DisplayName}
}
