package service

import (
	"context"
	"testing"

	"github.com/teguholica/auth-with-otp-and-pin-api/internal/domain"
)

type recordingNotifier struct {
	deliveries []CodeDelivery
}

func (n *recordingNotifier) DeliverCode(_ context.Context, d CodeDelivery) error {
	n.deliveries = append(n.deliveries, d)
	return nil
}

func TestIssuedCodesReachTheNotifier(t *testing.T) {
	notifier := &recordingNotifier{}
	accounts := &stubAccountRepository{
		createFn: func(*domain.Account) error { return nil },
		findFn: func(identifier string) (*domain.Account, error) {
			return &domain.Account{Identifier: identifier, State: domain.AccountStatePending}, nil
		},
	}
	challenges := &stubChallengeRepository{
		upsertFn: func(*domain.Challenge) error { return nil },
	}
	svc := newTestService(accounts, challenges, Options{Notifier: notifier})

	if _, err := svc.Signup(context.Background(), "u@test.io", "secret1", ""); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if _, err := svc.RequestCode(context.Background(), "u@test.io"); err != nil {
		t.Fatalf("request code: %v", err)
	}

	if len(notifier.deliveries) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(notifier.deliveries))
	}
	for i, d := range notifier.deliveries {
		if d.Identifier != "u@test.io" || d.Code != "123456" || d.ExpiresAt.IsZero() {
			t.Fatalf("delivery %d malformed: %+v", i, d)
		}
	}
}

func TestLogCodeNotifierNeverFails(t *testing.T) {
	n := NewLogCodeNotifier(testLogger())
	if err := n.DeliverCode(context.Background(), CodeDelivery{Identifier: "u@test.io", Code: "123456"}); err != nil {
		t.Fatalf("deliver: %v", err)
	}
}
