package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"bodycomp/internal/credential"
	"bodycomp/internal/domain"
	"bodycomp/internal/token"

	"golang.org/x/crypto/bcrypt"
)

type mockAccountRepo struct {
	getByValueFn func(ctx context.Context, value string) (*domain.Account, error)
	getByIDFn    func(ctx context.Context, id int64) (*domain.Account, error)
	existsFn     func(ctx context.Context, username, email string) (bool, error)
	createFn     func(ctx context.Context, a *domain.Account) (*domain.Account, error)
	deleteFn     func(ctx context.Context, id int64) error
}

func (m *mockAccountRepo) GetByUsernameOrEmail(ctx context.Context, value string) (*domain.Account, error) {
	if m.getByValueFn != nil {
		return m.getByValueFn(ctx, value)
	}
	return nil, nil
}

func (m *mockAccountRepo) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockAccountRepo) Exists(ctx context.Context, username, email string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, username, email)
	}
	return false, nil
}

func (m *mockAccountRepo) Create(ctx context.Context, a *domain.Account) (*domain.Account, error) {
	if m.createFn != nil {
		return m.createFn(ctx, a)
	}
	created := *a
	created.ID = 1
	return &created, nil
}

func (m *mockAccountRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func newTestAuthService(repo domain.AccountRepository) *AuthService {
	codec := credential.NewWithIterations(100)
	tokens := token.NewIssuer([]byte("test-secret"), time.Hour)
	return NewAuthService(repo, codec, tokens)
}

func TestAuthService_Register_Success(t *testing.T) {
	ctx := context.Background()

	var stored *domain.Account
	repo := &mockAccountRepo{
		createFn: func(ctx context.Context, a *domain.Account) (*domain.Account, error) {
			stored = a
			created := *a
			created.ID = 7
			return &created, nil
		},
	}

	svc := newTestAuthService(repo)
	acct, err := svc.Register(ctx, domain.Account{Username: "alice", Email: "a@x.com"}, "Secr3t!")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if acct.ID != 7 {
		t.Errorf("expected ID 7, got %d", acct.ID)
	}
	if stored == nil {
		t.Fatal("create was not called")
	}
	if stored.PasswordHash == "" || stored.PasswordHash == "Secr3t!" {
		t.Error("password was not hashed before insert")
	}
	if !strings.HasPrefix(stored.PasswordHash, "pbkdf2:") {
		t.Errorf("expected current-scheme hash, got %q", stored.PasswordHash)
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(&mockAccountRepo{})

	cases := []struct {
		name string
		acct domain.Account
		pw   string
	}{
		{"no username", domain.Account{Email: "a@x.com"}, "pw"},
		{"no email", domain.Account{Username: "alice"}, "pw"},
		{"no password", domain.Account{Username: "alice", Email: "a@x.com"}, ""},
		{"whitespace username", domain.Account{Username: "   ", Email: "a@x.com"}, "pw"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tc.acct, tc.pw); err != ErrValidation {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestAuthService_Register_Conflict(t *testing.T) {
	ctx := context.Background()

	createCalled := false
	repo := &mockAccountRepo{
		existsFn: func(ctx context.Context, username, email string) (bool, error) {
			return true, nil
		},
		createFn: func(ctx context.Context, a *domain.Account) (*domain.Account, error) {
			createCalled = true
			return nil, errors.New("should not happen")
		},
	}

	svc := newTestAuthService(repo)
	_, err := svc.Register(ctx, domain.Account{Username: "alice", Email: "a@x.com"}, "pw")
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
	if createCalled {
		t.Error("create must not run after a positive existence check")
	}
}

func TestAuthService_Register_ConstraintConflict(t *testing.T) {
	ctx := context.Background()

	// Pre-check passes but the insert loses the race; the constraint error
	// must still surface as a conflict.
	repo := &mockAccountRepo{
		createFn: func(ctx context.Context, a *domain.Account) (*domain.Account, error) {
			return nil, domain.ErrConflict
		},
	}

	svc := newTestAuthService(repo)
	_, err := svc.Register(ctx, domain.Account{Username: "alice", Email: "a@x.com"}, "pw")
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()

	codec := credential.NewWithIterations(100)
	hash, err := codec.Hash("Secr3t!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	repo := &mockAccountRepo{
		getByValueFn: func(ctx context.Context, value string) (*domain.Account, error) {
			return &domain.Account{ID: 3, Username: "alice", Email: "a@x.com", PasswordHash: hash}, nil
		},
	}

	tokens := token.NewIssuer([]byte("test-secret"), time.Hour)
	svc := NewAuthService(repo, codec, tokens)

	tok, acct, err := svc.Login(ctx, "alice", "Secr3t!")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if acct.ID != 3 {
		t.Errorf("expected account 3, got %d", acct.ID)
	}

	claims, err := tokens.Verify(tok)
	if err != nil {
		t.Fatalf("issued token did not verify: %v", err)
	}
	if claims.UserID != 3 || claims.Username != "alice" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Login_WrongPasswordAndUnknownUserIndistinguishable(t *testing.T) {
	ctx := context.Background()

	codec := credential.NewWithIterations(100)
	hash, _ := codec.Hash("correct")

	known := &mockAccountRepo{
		getByValueFn: func(ctx context.Context, value string) (*domain.Account, error) {
			return &domain.Account{ID: 1, Username: "alice", PasswordHash: hash}, nil
		},
	}
	unknown := &mockAccountRepo{}

	tokens := token.NewIssuer([]byte("test-secret"), time.Hour)

	_, _, errWrongPw := NewAuthService(known, codec, tokens).Login(ctx, "alice", "wrong")
	_, _, errNoUser := NewAuthService(unknown, codec, tokens).Login(ctx, "nobody", "wrong")

	if errWrongPw != ErrInvalidCredentials {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", errWrongPw)
	}
	if errNoUser != ErrInvalidCredentials {
		t.Errorf("unknown user: expected ErrInvalidCredentials, got %v", errNoUser)
	}
	if errWrongPw != errNoUser {
		t.Error("the two failure modes must be indistinguishable")
	}
}

func TestAuthService_Login_LegacyBcryptHash(t *testing.T) {
	ctx := context.Background()

	// Seeded the way the oldest records were written.
	legacyHash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	repo := &mockAccountRepo{
		getByValueFn: func(ctx context.Context, value string) (*domain.Account, error) {
			return &domain.Account{ID: 5, Username: "olduser", PasswordHash: string(legacyHash)}, nil
		},
	}

	svc := newTestAuthService(repo)
	_, acct, err := svc.Login(ctx, "olduser", "password")
	if err != nil {
		t.Fatalf("legacy hash login failed: %v", err)
	}
	if acct.ID != 5 {
		t.Errorf("expected account 5, got %d", acct.ID)
	}
}

func TestAuthService_Login_SSOAccountHasNoPassword(t *testing.T) {
	ctx := context.Background()

	repo := &mockAccountRepo{
		getByValueFn: func(ctx context.Context, value string) (*domain.Account, error) {
			return &domain.Account{ID: 9, Username: "sso@x.com", PasswordHash: ""}, nil
		},
	}

	svc := newTestAuthService(repo)
	if _, _, err := svc.Login(ctx, "sso@x.com", "anything"); err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_LoginSSO_ProvisionsOnFirstLogin(t *testing.T) {
	ctx := context.Background()

	var created *domain.Account
	repo := &mockAccountRepo{
		createFn: func(ctx context.Context, a *domain.Account) (*domain.Account, error) {
			c := *a
			c.ID = 11
			created = &c
			return &c, nil
		},
	}

	svc := newTestAuthService(repo)
	tok, acct, err := svc.LoginSSO(ctx, "new@x.com")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if tok == "" {
		t.Error("expected a token")
	}
	if created == nil || created.Email != "new@x.com" {
		t.Errorf("account was not provisioned: %+v", created)
	}
	if acct.PasswordHash != "" {
		t.Error("sso account must not carry a credential")
	}
}

func TestAuthService_LoginSSO_ProvisionRace(t *testing.T) {
	ctx := context.Background()

	lookups := 0
	repo := &mockAccountRepo{
		getByValueFn: func(ctx context.Context, value string) (*domain.Account, error) {
			lookups++
			if lookups == 1 {
				return nil, nil
			}
			return &domain.Account{ID: 12, Username: "raced@x.com", Email: "raced@x.com"}, nil
		},
		createFn: func(ctx context.Context, a *domain.Account) (*domain.Account, error) {
			return nil, domain.ErrConflict
		},
	}

	svc := newTestAuthService(repo)
	_, acct, err := svc.LoginSSO(ctx, "raced@x.com")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if acct.ID != 12 {
		t.Errorf("expected the raced row, got %+v", acct)
	}
}

func TestAuthService_LoginSSO_RacedRowGoneAgain(t *testing.T) {
	ctx := context.Background()

	repo := &mockAccountRepo{
		getByValueFn: func(ctx context.Context, value string) (*domain.Account, error) {
			return nil, nil
		},
		createFn: func(ctx context.Context, a *domain.Account) (*domain.Account, error) {
			return nil, domain.ErrConflict
		},
	}

	svc := newTestAuthService(repo)
	_, _, err := svc.LoginSSO(ctx, "gone@x.com")
	if err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Profile(t *testing.T) {
	ctx := context.Background()

	repo := &mockAccountRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Account, error) {
			if id != 4 {
				return nil, nil
			}
			return &domain.Account{ID: 4, Username: "alice", PasswordHash: "pbkdf2:..."}, nil
		},
	}

	svc := newTestAuthService(repo)

	acct, err := svc.Profile(ctx, 4)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if acct.PasswordHash != "" {
		t.Error("profile must not expose the stored credential")
	}

	if _, err := svc.Profile(ctx, 99); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAuthService_DeleteAccount(t *testing.T) {
	ctx := context.Background()

	deleted := int64(0)
	repo := &mockAccountRepo{
		deleteFn: func(ctx context.Context, id int64) error {
			deleted = id
			return nil
		},
	}

	svc := newTestAuthService(repo)

	if err := svc.DeleteAccount(ctx, 7, 5); err != ErrForbidden {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
	if deleted != 0 {
		t.Error("delete must not run on an id mismatch")
	}

	if err := svc.DeleteAccount(ctx, 5, 5); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if deleted != 5 {
		t.Errorf("expected delete of 5, got %d", deleted)
	}
}
