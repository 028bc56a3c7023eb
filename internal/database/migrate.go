package database

import (
	"gorm.io/gorm"

	"github.com/teguholica/auth-with-otp-and-pin-api/internal/domain"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Account{},
		&domain.Challenge{},
	)
}
