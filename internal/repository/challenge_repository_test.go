package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/teguholica/auth-with-otp-and-pin-api/internal/domain"
)

func testChallenge(identifier, code string) *domain.Challenge {
	return &domain.Challenge{
		Identifier: identifier,
		Code:       code,
		ExpiresAt:  time.Now().Add(5 * time.Minute),
	}
}

func TestChallengeUpsertReplacesExisting(t *testing.T) {
	repo := NewChallengeRepository(newTestDB(t))

	if err := repo.Upsert(testChallenge("u@test.io", "111111")); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if _, err := repo.IncrementAttempts("u@test.io"); err != nil {
		t.Fatal(err)
	}
	if err := repo.Upsert(testChallenge("U@TEST.IO", "222222")); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	found, err := repo.FindByIdentifier("u@test.io")
	if err != nil {
		t.Fatal(err)
	}
	if found.Code != "222222" {
		t.Fatalf("expected replacement code, got %q", found.Code)
	}
	if found.Attempts != 0 {
		t.Fatalf("expected attempts reset to 0, got %d", found.Attempts)
	}
}

func TestChallengeOneRowPerIdentifier(t *testing.T) {
	db := newTestDB(t)
	repo := NewChallengeRepository(db)

	if err := repo.Upsert(testChallenge("u@test.io", "111111")); err != nil {
		t.Fatal(err)
	}
	if err := repo.Upsert(testChallenge("u@test.io", "222222")); err != nil {
		t.Fatal(err)
	}

	var count int64
	if err := db.Model(&domain.Challenge{}).Count(&count).Error; err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("expected a single challenge row, got %d", count)
	}
}

func TestChallengeFindMissing(t *testing.T) {
	repo := NewChallengeRepository(newTestDB(t))
	if _, err := repo.FindByIdentifier("absent@test.io"); !errors.Is(err, ErrChallengeNotFound) {
		t.Fatalf("expected ErrChallengeNotFound, got %v", err)
	}
}

func TestChallengeIncrementAttempts(t *testing.T) {
	repo := NewChallengeRepository(newTestDB(t))
	if err := repo.Upsert(testChallenge("u@test.io", "111111")); err != nil {
		t.Fatal(err)
	}

	for want := 1; want <= 3; want++ {
		got, err := repo.IncrementAttempts("u@test.io")
		if err != nil {
			t.Fatalf("increment %d: %v", want, err)
		}
		if got != want {
			t.Fatalf("expected attempts %d, got %d", want, got)
		}
	}

	found, err := repo.FindByIdentifier("u@test.io")
	if err != nil {
		t.Fatal(err)
	}
	if found.Attempts != 3 {
		t.Fatalf("expected persisted attempts 3, got %d", found.Attempts)
	}
}

func TestChallengeIncrementAttemptsMissing(t *testing.T) {
	repo := NewChallengeRepository(newTestDB(t))
	if _, err := repo.IncrementAttempts("absent@test.io"); !errors.Is(err, ErrChallengeNotFound) {
		t.Fatalf("expected ErrChallengeNotFound, got %v", err)
	}
}

func TestChallengeDeleteIsIdempotent(t *testing.T) {
	repo := NewChallengeRepository(newTestDB(t))
	if err := repo.Upsert(testChallenge("u@test.io", "111111")); err != nil {
		t.Fatal(err)
	}
	if err := repo.Delete("u@test.io"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete("u@test.io"); err != nil {
		t.Fatalf("second delete should not fail: %v", err)
	}
	if _, err := repo.FindByIdentifier("u@test.io"); !errors.Is(err, ErrChallengeNotFound) {
		t.Fatalf("expected challenge gone, got %v", err)
	}
}
