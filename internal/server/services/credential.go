// Package services contains the server-side business logic. This file
// implements CredentialService, which orchestrates sign-up, sign-in, and
// token validation against the account store.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/innoclinic/authsvc/internal/common"
	"github.com/innoclinic/authsvc/internal/dbx"
	"github.com/innoclinic/authsvc/internal/logging"
	"github.com/innoclinic/authsvc/internal/server/auth"
	"github.com/innoclinic/authsvc/internal/server/config"
	"github.com/innoclinic/authsvc/internal/server/models"
	"github.com/innoclinic/authsvc/internal/server/repositories/repomanager"
)

// AccountPatch carries the optional account fields a caller may change
// through UpdateAccount. Nil means "leave as is".
type AccountPatch struct {
	PhoneNumber *string
	PhotoID     *string
}

// CredentialService provides the account-credential operations:
//   - SignUp: create an account and mint a token
//   - SignIn: verify credentials, enforce verification/lockout policy, mint a token
//   - ValidateToken: check a token and that its subject still exists
//   - GetAccountByID / UpdateAccount / ConfirmEmail: narrow account maintenance
type CredentialService struct {
	db     *sql.DB
	rm     repomanager.RepositoryManager
	hasher *auth.PasswordHasher
	issuer *auth.TokenIssuer
	logger logging.Logger

	requireEmailVerification bool
	maxFailedAttempts        int
	lockoutDuration          time.Duration

	// digest verified against when the email is unknown, so both halves of
	// ErrorInvalidCredentials burn the same KDF cost
	decoyDigest string
}

// NewCredentialService constructs a CredentialService with explicit
// dependencies; there is no global registry.
func NewCredentialService(db *sql.DB, rm repomanager.RepositoryManager,
	hasher *auth.PasswordHasher, issuer *auth.TokenIssuer,
	logger logging.Logger, cfg *config.Config) *CredentialService {

	decoy, err := hasher.Hash(uuid.NewString())
	if err != nil {
		decoy = ""
	}

	return &CredentialService{
		db:                       db,
		rm:                       rm,
		hasher:                   hasher,
		issuer:                   issuer,
		logger:                   logger.With("module", "credentials"),
		requireEmailVerification: cfg.RequireEmailVerification,
		maxFailedAttempts:        cfg.MaxFailedAttempts,
		lockoutDuration:          cfg.LockoutDuration,
		decoyDigest:              decoy,
	}
}

// normalizeEmail makes email matching case-insensitive; accounts always
// store the normalized form.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp creates a new account and returns a token response for it.
//
// The password must match its confirmation before anything is persisted.
// The existence pre-check is advisory only: two concurrent sign-ups can both
// pass it, and the store's unique index on email is the actual guarantee, so
// a duplicate insert also comes back as ErrorDuplicateAccount.
func (s *CredentialService) SignUp(ctx context.Context, email, password, passwordConfirm, createdBy string) (*auth.AuthResponse, error) {

	if password != passwordConfirm {
		return nil, common.ErrorPasswordMismatch
	}

	email = normalizeEmail(email)
	repo := s.rm.Accounts(s.db)

	if _, err := repo.FindByEmail(ctx, email); err == nil {
		return nil, common.ErrorDuplicateAccount
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error checking for existing account: %w", err)
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	actor := createdBy
	if actor == "" {
		actor = common.SystemActor
	}
	now := time.Now()

	account := &models.Account{
		ID:              uuid.NewString(),
		Email:           email,
		PasswordHash:    digest,
		PhoneNumber:     "",
		IsEmailVerified: !s.requireEmailVerification,
		PhotoID:         "",
		CreatedBy:       actor,
		CreatedAt:       now,
		UpdatedBy:       actor,
		UpdatedAt:       now,
	}

	if _, err := repo.Insert(ctx, account); err != nil {
		if errors.Is(err, common.ErrorDuplicateAccount) {
			return nil, common.ErrorDuplicateAccount
		}
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	s.logger.Info(ctx, "account created", "account_id", account.ID)

	return s.issuer.IssueResponse(account)
}

// SignIn verifies the credentials and returns a token response.
//
// An unknown email and a wrong password both fail with
// ErrorInvalidCredentials; nothing in the result (or its timing) says which.
// The lockout check runs before password verification so a locked account is
// not a password oracle; the cost is that ErrorAccountLocked confirms the
// account exists to callers who never supplied a valid password. Verification
// gating comes after the password check, an order callers can already observe
// through ErrorEmailNotVerified.
func (s *CredentialService) SignIn(ctx context.Context, email, password string) (*auth.AuthResponse, error) {

	repo := s.rm.Accounts(s.db)

	account, err := repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(password, s.decoyDigest)
			return nil, common.ErrorInvalidCredentials
		}
		return nil, common.ErrorInternal
	}

	now := time.Now()
	if !account.LockedUntil.IsZero() && now.Before(account.LockedUntil) {
		return nil, common.ErrorAccountLocked
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		if err := s.recordFailedAttempt(ctx, account.ID); err != nil {
			s.logger.Error(ctx, "error recording failed sign-in attempt", "account_id", account.ID, "error", err.Error())
		}
		return nil, common.ErrorInvalidCredentials
	}

	if s.requireEmailVerification && !account.IsEmailVerified {
		return nil, common.ErrorEmailNotVerified
	}

	account.FailedAttempts = 0
	account.LockedUntil = time.Time{}
	account.UpdatedAt = now
	if err := repo.Update(ctx, account); err != nil {
		return nil, common.ErrorInternal
	}

	return s.issuer.IssueResponse(account)
}

// recordFailedAttempt increments the failed-attempt counter and arms the
// lockout at the configured threshold. The increment happens store-side in a
// single statement, so concurrent failures cannot lose counts; the
// transaction ties the lockout decision to the count it observed.
func (s *CredentialService) recordFailedAttempt(ctx context.Context, accountID string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.rm.Accounts(tx)

		attempts, err := repo.IncrementFailedAttempts(ctx, accountID)
		if err != nil {
			return err
		}

		if s.maxFailedAttempts > 0 && attempts >= s.maxFailedAttempts {
			return repo.Lock(ctx, accountID, time.Now().Add(s.lockoutDuration))
		}

		return nil
	})
}

// ValidateToken reports whether the token is valid and its subject still
// resolves to an existing account. It returns false on any failure and
// never an error, so malformed input cannot abort the caller.
func (s *CredentialService) ValidateToken(ctx context.Context, token string) bool {
	claims, err := s.issuer.Validate(token)
	if err != nil {
		return false
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return false
	}

	exists, err := s.rm.Accounts(s.db).ExistsByID(ctx, subject)
	if err != nil {
		return false
	}

	return exists
}

// GetAccountByID returns the account or common.ErrorNotFound.
func (s *CredentialService) GetAccountByID(ctx context.Context, id string) (*models.Account, error) {
	return s.rm.Accounts(s.db).FindByID(ctx, id)
}

// UpdateAccount applies the patch and restamps the audit metadata.
func (s *CredentialService) UpdateAccount(ctx context.Context, id string, patch AccountPatch, updatedBy string) (*models.Account, error) {
	repo := s.rm.Accounts(s.db)

	account, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.PhoneNumber != nil {
		account.PhoneNumber = *patch.PhoneNumber
	}
	if patch.PhotoID != nil {
		account.PhotoID = *patch.PhotoID
	}

	actor := updatedBy
	if actor == "" {
		actor = common.SystemActor
	}
	account.UpdatedBy = actor
	account.UpdatedAt = time.Now()

	if err := repo.Update(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// ConfirmEmail marks the account's email as verified. Confirming an already
// verified account is a no-op.
func (s *CredentialService) ConfirmEmail(ctx context.Context, id string) error {
	repo := s.rm.Accounts(s.db)

	account, err := repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if account.IsEmailVerified {
		return nil
	}

	account.IsEmailVerified = true
	account.UpdatedBy = common.SystemActor
	account.UpdatedAt = time.Now()

	if err := repo.Update(ctx, account); err != nil {
		return err
	}

	s.logger.Info(ctx, "email confirmed", "account_id", account.ID)
	return nil
}
