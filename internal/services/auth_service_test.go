package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/adanyl0v/taskpad/internal/repository/memory"
	"github.com/adanyl0v/taskpad/internal/security"
)

func TestAuthenticate(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	user, err := s.users.Register(ctx, RegisterParams{Name: "Ada", Email: "ada@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	result, err := s.auth.Authenticate(ctx, AuthenticateParams{Email: "ada@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if result.UserID != user.ID {
		t.Fatalf("expected user id %q, got %q", user.ID, result.UserID)
	}
	if result.AccessToken == "" {
		t.Fatalf("expected access token")
	}
	if !result.AccessTokenExpiresAt.After(time.Now()) {
		t.Fatalf("expected expiry in the future, got %v", result.AccessTokenExpiresAt)
	}

	subject, err := s.auth.ParseAccessToken(result.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if subject != user.ID {
		t.Fatalf("expected subject %q, got %q", user.ID, subject)
	}
}

func TestAuthenticateDoesNotRevealAccounts(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	_, err := s.users.Register(ctx, RegisterParams{Name: "Ada", Email: "ada@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	_, wrongPassword := s.auth.Authenticate(ctx, AuthenticateParams{Email: "ada@example.com", Password: "nope"})
	_, unknownEmail := s.auth.Authenticate(ctx, AuthenticateParams{Email: "bob@example.com", Password: "secret"})

	for _, err := range []error{wrongPassword, unknownEmail} {
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Fatalf("expected identical messages, got %q and %q", wrongPassword, unknownEmail)
	}
}

func TestAuthenticateValidation(t *testing.T) {
	s := newTestServices(t)

	_, err := s.auth.Authenticate(context.Background(), AuthenticateParams{Email: "ada@example.com"})
	requireValidationError(t, err, msgCredentialsRequired)
}

func TestParseAccessTokenRejects(t *testing.T) {
	logger := zerolog.Nop()
	store := memory.New()
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	users := NewUserService(logger, store.Users(), hasher)

	_, err := users.Register(context.Background(), RegisterParams{Name: "Ada", Email: "ada@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	issuer := NewAuthService(logger, store.Users(), hasher, "taskpad-test", []byte("key-one"), time.Hour)
	otherKey := NewAuthService(logger, store.Users(), hasher, "taskpad-test", []byte("key-two"), time.Hour)
	otherIssuer := NewAuthService(logger, store.Users(), hasher, "someone-else", []byte("key-one"), time.Hour)
	expired := NewAuthService(logger, store.Users(), hasher, "taskpad-test", []byte("key-one"), -time.Minute)

	result, err := issuer.Authenticate(context.Background(), AuthenticateParams{Email: "ada@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	expiredResult, err := expired.Authenticate(context.Background(), AuthenticateParams{Email: "ada@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}

	tests := []struct {
		name  string
		auth  AuthService
		token string
	}{
		{name: "garbage", auth: issuer, token: "not-a-token"},
		{name: "wrong key", auth: otherKey, token: result.AccessToken},
		{name: "wrong issuer", auth: otherIssuer, token: result.AccessToken},
		{name: "expired", auth: issuer, token: expiredResult.AccessToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.auth.ParseAccessToken(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
