package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/teguholica/auth-with-otp-and-pin-api/internal/domain"
	"github.com/teguholica/auth-with-otp-and-pin-api/internal/observability"
)

var ErrChallengeNotFound = errors.New("challenge not found")

type ChallengeRepository interface {
	Upsert(challenge *domain.Challenge) error
	FindByIdentifier(identifier string) (*domain.Challenge, error)
	IncrementAttempts(identifier string) (int, error)
	Delete(identifier string) error
}

type GormChallengeRepository struct{ db *gorm.DB }

func NewChallengeRepository(db *gorm.DB) ChallengeRepository {
	return &GormChallengeRepository{db: db}
}

// Upsert inserts the challenge or atomically replaces the one already held by
// the identifier. A reader never observes a partially written row.
func (r *GormChallengeRepository) Upsert(challenge *domain.Challenge) error {
	challenge.Identifier = NormalizeIdentifier(challenge.Identifier)
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "identifier"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "expires_at", "attempts", "updated_at"}),
	}).Create(challenge).Error
	if err != nil {
		observability.RecordRepositoryOperation(context.Background(), "challenge", "upsert", "error")
		return err
	}
	observability.RecordRepositoryOperation(context.Background(), "challenge", "upsert", "success")
	return nil
}

func (r *GormChallengeRepository) FindByIdentifier(identifier string) (*domain.Challenge, error) {
	var challenge domain.Challenge
	err := r.db.Where("identifier = ?", NormalizeIdentifier(identifier)).First(&challenge).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(context.Background(), "challenge", "find_by_identifier", "not_found")
			return nil, ErrChallengeNotFound
		}
		observability.RecordRepositoryOperation(context.Background(), "challenge", "find_by_identifier", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "challenge", "find_by_identifier", "success")
	return &challenge, nil
}

// IncrementAttempts bumps the attempt counter with a single UPDATE, so two
// racing verifications cannot both observe the same count. The value read
// back afterwards is at least the one this call produced.
func (r *GormChallengeRepository) IncrementAttempts(identifier string) (int, error) {
	normalized := NormalizeIdentifier(identifier)
	res := r.db.Model(&domain.Challenge{}).
		Where("identifier = ?", normalized).
		UpdateColumn("attempts", gorm.Expr("attempts + ?", 1))
	if res.Error != nil {
		observability.RecordRepositoryOperation(context.Background(), "challenge", "increment_attempts", "error")
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		observability.RecordRepositoryOperation(context.Background(), "challenge", "increment_attempts", "not_found")
		return 0, ErrChallengeNotFound
	}
	var challenge domain.Challenge
	if err := r.db.Where("identifier = ?", normalized).First(&challenge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrChallengeNotFound
		}
		return 0, err
	}
	observability.RecordRepositoryOperation(context.Background(), "challenge", "increment_attempts", "success")
	return challenge.Attempts, nil
}

func (r *GormChallengeRepository) Delete(identifier string) error {
	res := r.db.Where("identifier = ?", NormalizeIdentifier(identifier)).Delete(&domain.Challenge{})
	if res.Error != nil {
		observability.RecordRepositoryOperation(context.Background(), "challenge", "delete", "error")
		return res.Error
	}
	observability.RecordRepositoryOperation(context.Background(), "challenge", "delete", "success")
	return nil
}
