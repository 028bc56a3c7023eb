package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/teguholica/auth-with-otp-and-pin-api/internal/domain"
	"github.com/teguholica/auth-with-otp-and-pin-api/internal/repository"
	"github.com/teguholica/auth-with-otp-and-pin-api/internal/security"
)

var identifierPattern = regexp.MustCompile(`.+@.+\..+`)

// CodeGenerator produces one-time codes. Injectable so tests can pin the code.
type CodeGenerator func() (string, error)

type SignupResult struct {
	Identifier string
	State      string
	// Code carries the plaintext one-time code only on non-production
	// deployments; empty otherwise.
	Code string
}

type RequestCodeResult struct {
	Identifier string
	Code       string
}

type VerifyResult struct {
	Identifier string
	VerifiedAt time.Time
}

type LoginResult struct {
	Token   string
	Account domain.PublicAccount
}

type AuthServiceInterface interface {
	Signup(ctx context.Context, identifier, credential, displayName string) (*SignupResult, error)
	RequestCode(ctx context.Context, identifier string) (*RequestCodeResult, error)
	VerifyCode(ctx context.Context, identifier, code string) (*VerifyResult, error)
	Login(ctx context.Context, identifier, credential string) (*LoginResult, error)
	DeleteAccount(ctx context.Context, identifier string) error
}

// Options fixes the engine's policy knobs at construction. ExposeCodes is
// decided once from the deployment mode, never read from the environment per
// call.
type Options struct {
	CodeTTL           time.Duration
	MaxAttempts       int
	MinPasswordLength int
	ExposeCodes       bool
	Generate          CodeGenerator
	Notifier          CodeNotifier
}

type AuthService struct {
	accounts   repository.AccountRepository
	challenges repository.ChallengeRepository
	hasher     *security.PasswordHasher
	tokens     *security.TokenManager
	opts       Options
	logger     *slog.Logger
}

func NewAuthService(
	accounts repository.AccountRepository,
	challenges repository.ChallengeRepository,
	hasher *security.PasswordHasher,
	tokens *security.TokenManager,
	opts Options,
	logger *slog.Logger,
) *AuthService {
	if opts.CodeTTL <= 0 {
		opts.CodeTTL = 5 * time.Minute
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 5
	}
	if opts.MinPasswordLength <= 0 {
		opts.MinPasswordLength = 6
	}
	if opts.Generate == nil {
		opts.Generate = security.GenerateCode
	}
	if opts.Notifier == nil {
		opts.Notifier = NewLogCodeNotifier(logger)
	}
	return &AuthService{
		accounts:   accounts,
		challenges: challenges,
		hasher:     hasher,
		tokens:     tokens,
		opts:       opts,
		logger:     logger,
	}
}

// Signup registers a pending account and issues its first challenge. The
// store's uniqueness conflict is the only store error recovered locally.
func (s *AuthService) Signup(ctx context.Context, identifier, credential, displayName string) (*SignupResult, error) {
	identifier = repository.NormalizeIdentifier(identifier)
	if !identifierPattern.MatchString(identifier) {
		return nil, ErrInvalidIdentifier
	}
	if len(credential) < s.opts.MinPasswordLength {
		return nil, ErrInvalidCredential
	}

	hash, err := s.hasher.Hash(credential)
	if err != nil {
		return nil, fmt.Errorf("hash credential: %w", err)
	}

	account := &domain.Account{
		Identifier:     identifier,
		DisplayName:    displayName,
		CredentialHash: hash,
		State:          domain.AccountStatePending,
	}
	if err := s.accounts.Create(account); err != nil {
		if errors.Is(err, repository.ErrAccountExists) {
			return nil, ErrAccountExists
		}
		return nil, err
	}

	code, err := s.issueChallenge(ctx, identifier)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "account signed up", "identifier", identifier)
	result := &SignupResult{Identifier: identifier, State: account.State}
	if s.opts.ExposeCodes {
		result.Code = code
	}
	return result, nil
}

// RequestCode replaces any outstanding challenge with a fresh one. It works
// for verified accounts too; only absence is an error here.
func (s *AuthService) RequestCode(ctx context.Context, identifier string) (*RequestCodeResult, error) {
	identifier = repository.NormalizeIdentifier(identifier)
	if _, err := s.accounts.FindByIdentifier(identifier); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	code, err := s.issueChallenge(ctx, identifier)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "challenge issued", "identifier", identifier)
	result := &RequestCodeResult{Identifier: identifier}
	if s.opts.ExposeCodes {
		result.Code = code
	}
	return result, nil
}

// VerifyCode runs the challenge state machine. Check order is fixed: expiry,
// then attempt exhaustion, then the code comparison. A wrong guess persists
// its incremented attempt count before failing.
func (s *AuthService) VerifyCode(ctx context.Context, identifier, code string) (*VerifyResult, error) {
	identifier = repository.NormalizeIdentifier(identifier)
	if _, err := s.accounts.FindByIdentifier(identifier); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	challenge, err := s.challenges.FindByIdentifier(identifier)
	if err != nil {
		if errors.Is(err, repository.ErrChallengeNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, err
	}

	now := time.Now()
	if challenge.Expired(now) {
		if err := s.challenges.Delete(identifier); err != nil {
			return nil, err
		}
		return nil, ErrChallengeExpired
	}
	if challenge.Attempts >= s.opts.MaxAttempts {
		if err := s.challenges.Delete(identifier); err != nil {
			return nil, err
		}
		return nil, ErrTooManyAttempts
	}

	if _, err := s.challenges.IncrementAttempts(identifier); err != nil {
		if errors.Is(err, repository.ErrChallengeNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, err
	}
	if challenge.Code != code {
		return nil, ErrCodeMismatch
	}

	if err := s.challenges.Delete(identifier); err != nil {
		return nil, err
	}
	verifiedState := domain.AccountStateVerified
	if err := s.accounts.Update(identifier, repository.AccountPatch{
		State:      &verifiedState,
		VerifiedAt: &now,
	}); err != nil {
		// Account vanished between lookup and update; surfaced, not retried.
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "account verified", "identifier", identifier)
	return &VerifyResult{Identifier: identifier, VerifiedAt: now}, nil
}

// Login never reveals whether the identifier exists: an absent account and a
// wrong password fail identically.
func (s *AuthService) Login(ctx context.Context, identifier, credential string) (*LoginResult, error) {
	identifier = repository.NormalizeIdentifier(identifier)
	account, err := s.accounts.FindByIdentifier(identifier)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, ErrInvalidCredential
		}
		return nil, err
	}
	if !s.hasher.Verify(credential, account.CredentialHash) {
		return nil, ErrInvalidCredential
	}
	if !account.Verified() {
		return nil, ErrAccountNotVerified
	}

	token, err := s.tokens.Sign(account)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	s.logger.InfoContext(ctx, "login succeeded", "identifier", identifier)
	return &LoginResult{Token: token, Account: account.Public()}, nil
}

func (s *AuthService) DeleteAccount(ctx context.Context, identifier string) error {
	identifier = repository.NormalizeIdentifier(identifier)
	if err := s.accounts.Delete(identifier); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return ErrAccountNotFound
		}
		return err
	}
	// The challenge row, if any, goes with the account.
	if err := s.challenges.Delete(identifier); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "account deleted", "identifier", identifier)
	return nil
}

func (s *AuthService) issueChallenge(ctx context.Context, identifier string) (string, error) {
	code, err := s.opts.Generate()
	if err != nil {
		return "", err
	}
	challenge := &domain.Challenge{
		Identifier: identifier,
		Code:       code,
		ExpiresAt:  time.Now().Add(s.opts.CodeTTL),
		Attempts:   0,
	}
	if err := s.challenges.Upsert(challenge); err != nil {
		return "", err
	}
	if err := s.opts.Notifier.DeliverCode(ctx, CodeDelivery{
		Identifier: identifier,
		Code:       code,
		ExpiresAt:  challenge.ExpiresAt,
	}); err != nil {
		s.logger.WarnContext(ctx, "code delivery failed", "identifier", identifier, "error", err)
	}
	return code, nil
}
