package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/teguholica/auth-with-otp-and-pin-api/internal/domain"
	"github.com/teguholica/auth-with-otp-and-pin-api/internal/observability"
)

var (
	ErrAccountExists   = errors.New("account already exists")
	ErrAccountNotFound = errors.New("account not found")
)

// AccountPatch enumerates every updatable account field. Only non-nil fields
// are written; the column mapping is fixed in assignments().
type AccountPatch struct {
	State          *string
	VerifiedAt     *time.Time
	CredentialHash *string
}

func (p AccountPatch) assignments() map[string]any {
	m := map[string]any{}
	if p.State != nil {
		m["state"] = *p.State
	}
	if p.VerifiedAt != nil {
		m["verified_at"] = *p.VerifiedAt
	}
	if p.CredentialHash != nil {
		m["credential_hash"] = *p.CredentialHash
	}
	return m
}

type AccountRepository interface {
	FindByIdentifier(identifier string) (*domain.Account, error)
	Create(account *domain.Account) error
	Update(identifier string, patch AccountPatch) error
	Delete(identifier string) error
}

type GormAccountRepository struct{ db *gorm.DB }

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &GormAccountRepository{db: db}
}

// NormalizeIdentifier case-folds and trims an identifier. Every repository
// operation applies it, so lookups are case-insensitive regardless of caller.
func NormalizeIdentifier(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

func (r *GormAccountRepository) FindByIdentifier(identifier string) (*domain.Account, error) {
	var account domain.Account
	err := r.db.Where("identifier = ?", NormalizeIdentifier(identifier)).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(context.Background(), "account", "find_by_identifier", "not_found")
			return nil, ErrAccountNotFound
		}
		observability.RecordRepositoryOperation(context.Background(), "account", "find_by_identifier", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "account", "find_by_identifier", "success")
	return &account, nil
}

func (r *GormAccountRepository) Create(account *domain.Account) error {
	account.Identifier = NormalizeIdentifier(account.Identifier)
	if err := r.db.Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			observability.RecordRepositoryOperation(context.Background(), "account", "create", "conflict")
			return ErrAccountExists
		}
		observability.RecordRepositoryOperation(context.Background(), "account", "create", "error")
		return err
	}
	observability.RecordRepositoryOperation(context.Background(), "account", "create", "success")
	return nil
}

func (r *GormAccountRepository) Update(identifier string, patch AccountPatch) error {
	assignments := patch.assignments()
	if len(assignments) == 0 {
		return nil
	}
	res := r.db.Model(&domain.Account{}).
		Where("identifier = ?", NormalizeIdentifier(identifier)).
		Updates(assignments)
	if res.Error != nil {
		observability.RecordRepositoryOperation(context.Background(), "account", "update", "error")
		return res.Error
	}
	if res.RowsAffected == 0 {
		observability.RecordRepositoryOperation(context.Background(), "account", "update", "not_found")
		return ErrAccountNotFound
	}
	observability.RecordRepositoryOperation(context.Background(), "account", "update", "success")
	return nil
}

func (r *GormAccountRepository) Delete(identifier string) error {
	res := r.db.Where("identifier = ?", NormalizeIdentifier(identifier)).Delete(&domain.Account{})
	if res.Error != nil {
		observability.RecordRepositoryOperation(context.Background(), "account", "delete", "error")
		return res.Error
	}
	if res.RowsAffected == 0 {
		observability.RecordRepositoryOperation(context.Background(), "account", "delete", "not_found")
		return ErrAccountNotFound
	}
	observability.RecordRepositoryOperation(context.Background(), "account", "delete", "success")
	return nil
}
