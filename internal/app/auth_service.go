// Package app holds the application services and business logic.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bodycomp/internal/credential"
	"bodycomp/internal/domain"
	"bodycomp/internal/token"
)

var (
	// ErrInvalidCredentials indicates that the provided username or password
	// was incorrect. The same error covers both an unknown account and a
	// wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrValidation indicates missing or malformed input.
	ErrValidation = errors.New("please fill in all fields")
	// ErrForbidden indicates the authenticated account may not perform the
	// operation.
	ErrForbidden = errors.New("not allowed")
)

// dummyHash is verified when a login names an unknown account so that the
// unknown-account and wrong-password paths cost the same. It is well formed
// but matches no password.
const dummyHash = "pbkdf2:sha256:600000$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// AuthService implements the registration and login pipeline: validation,
// uniqueness check, hashing or verification, token issuance.
type AuthService struct {
	accounts domain.AccountRepository
	codec    *credential.Codec
	tokens   *token.Issuer
}

// NewAuthService creates a new authentication service.
func NewAuthService(accounts domain.AccountRepository, codec *credential.Codec, tokens *token.Issuer) *AuthService {
	return &AuthService{
		accounts: accounts,
		codec:    codec,
		tokens:   tokens,
	}
}

// Register creates an account with a freshly hashed credential. The account's
// Username and Email plus the password must be non-empty; optional profile
// fields pass through untouched.
func (s *AuthService) Register(ctx context.Context, acct domain.Account, password string) (*domain.Account, error) {
	acct.Username = strings.TrimSpace(acct.Username)
	acct.Email = strings.TrimSpace(acct.Email)
	if acct.Username == "" || acct.Email == "" || password == "" {
		return nil, ErrValidation
	}

	// Pre-check keeps the common duplicate case off the constraint error
	// path. Not atomic with the insert; Create still maps constraint
	// violations to ErrConflict.
	taken, err := s.accounts.Exists(ctx, acct.Username, acct.Email)
	if err != nil {
		return nil, fmt.Errorf("check existing account: %w", err)
	}
	if taken {
		return nil, domain.ErrConflict
	}

	hash, err := s.codec.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash credential: %w", err)
	}
	acct.PasswordHash = hash

	created, err := s.accounts.Create(ctx, &acct)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Login verifies a credential and issues a session token. The identifier is
// matched against username and email.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (string, *domain.Account, error) {
	if identifier == "" || password == "" {
		return "", nil, ErrValidation
	}

	acct, err := s.accounts.GetByUsernameOrEmail(ctx, identifier)
	if err != nil {
		return "", nil, fmt.Errorf("lookup account: %w", err)
	}
	if acct == nil {
		// Burn the same derivation work as a real verification.
		_, _ = s.codec.Verify(password, dummyHash)
		return "", nil, ErrInvalidCredentials
	}

	ok, err := s.codec.Verify(password, acct.PasswordHash)
	if err != nil {
		return "", nil, fmt.Errorf("verify credential: %w", err)
	}
	if !ok {
		return "", nil, ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(acct.ID, acct.Username)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return tok, acct, nil
}

// LoginSSO issues a session token for an account authenticated by the OIDC
// provider, provisioning it on first login. SSO accounts carry an empty
// credential that never verifies, so they cannot use the password flow.
func (s *AuthService) LoginSSO(ctx context.Context, email string) (string, *domain.Account, error) {
	if email == "" {
		return "", nil, ErrValidation
	}

	acct, err := s.accounts.GetByUsernameOrEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("lookup account: %w", err)
	}
	if acct == nil {
		acct, err = s.accounts.Create(ctx, &domain.Account{Username: email, Email: email})
		if errors.Is(err, domain.ErrConflict) {
			// Lost a provisioning race; the row exists now.
			acct, err = s.accounts.GetByUsernameOrEmail(ctx, email)
		}
		if err != nil {
			return "", nil, fmt.Errorf("provision sso account: %w", err)
		}
		if acct == nil {
			// Row vanished between the conflicting insert and the re-lookup.
			return "", nil, ErrInvalidCredentials
		}
	}

	tok, err := s.tokens.Issue(acct.ID, acct.Username)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return tok, acct, nil
}

// Profile returns the account for id without its stored credential.
func (s *AuthService) Profile(ctx context.Context, id int64) (*domain.Account, error) {
	acct, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lookup account: %w", err)
	}
	if acct == nil {
		return nil, domain.ErrNotFound
	}
	acct.PasswordHash = ""
	return acct, nil
}

// DeleteAccount removes targetID's account. Only the owner may delete it.
func (s *AuthService) DeleteAccount(ctx context.Context, authenticatedID, targetID int64) error {
	if authenticatedID != targetID {
		return ErrForbidden
	}
	if err := s.accounts.Delete(ctx, targetID); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}
