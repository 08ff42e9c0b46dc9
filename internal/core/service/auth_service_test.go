package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskforge/task-system/internal/core/domain"
	"github.com/taskforge/task-system/internal/core/ports"
)

type stubAuthRepo struct {
	users  map[string]*domain.User // keyed by email
	nextID int
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = "u" + strconv.Itoa(r.nextID)
	r.users[created.Email] = cloneUser(created)
	return created, nil
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubAuthRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type stubLimiter struct {
	blocked  bool
	failures int
	resets   int
}

func (l *stubLimiter) TooManyFailures(context.Context, string) (bool, error) {
	return l.blocked, nil
}
func (l *stubLimiter) RecordFailure(context.Context, string) error { l.failures++; return nil }
func (l *stubLimiter) Reset(context.Context, string) error         { l.resets++; return nil }

func newAuthService(repo ports.AuthRepository, limiter LoginLimiter) *AuthService {
	tokens := NewTokenService("test-secret", time.Hour)
	return NewAuthService(repo, tokens, limiter, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newAuthService(repo, nil)

	token, user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "alice",
		Email:    "alice@example.com",
		Password: "pass12345",
		Role:     "manager",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.PasswordHash == "pass12345" {
		t.Fatalf("password stored in plaintext")
	}
	if !CheckPassword("pass12345", user.PasswordHash) {
		t.Fatalf("stored hash does not match password")
	}
	if user.Role != domain.RoleManager {
		t.Fatalf("unexpected role: %s", user.Role)
	}

	// The returned token must verify back to the registered identity.
	p, err := NewTokenService("test-secret", time.Hour).Verify(token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if p.ID != user.ID || p.Role != domain.RoleManager {
		t.Fatalf("principal mismatch: %+v", p)
	}
}

func TestAuthService_Register_DefaultRole(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newAuthService(repo, nil)

	_, user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "bob",
		Email:    "bob@example.com",
		Password: "pass12345",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Role != domain.RoleEmployee {
		t.Fatalf("expected default role employee, got %s", user.Role)
	}
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	svc := newAuthService(newStubAuthRepo(), nil)

	_, _, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "mallory",
		Email:    "mallory@example.com",
		Password: "pass12345",
		Role:     "superuser",
	})
	if err != domain.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newAuthService(repo, nil)

	in := ports.RegisterInput{Name: "carol", Email: "carol@example.com", Password: "pass12345"}
	if _, _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), in); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	// The first registration is unaffected.
	if _, err := repo.FindByEmail(context.Background(), "carol@example.com"); err != nil {
		t.Fatalf("original user lost: %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubAuthRepo()
	limiter := &stubLimiter{}
	svc := newAuthService(repo, limiter)

	_, registered, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "dave",
		Email:    "dave@example.com",
		Password: "goodpass1",
		Role:     "admin",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "dave@example.com", "goodpass1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" || user.ID != registered.ID {
		t.Fatalf("unexpected login result: %q %+v", token, user)
	}
	if limiter.resets != 1 {
		t.Fatalf("expected limiter reset after success, got %d", limiter.resets)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubAuthRepo()
	limiter := &stubLimiter{}
	svc := newAuthService(repo, limiter)

	_, _, _ = svc.Register(context.Background(), ports.RegisterInput{
		Name: "erin", Email: "erin@example.com", Password: "goodpass1",
	})

	if _, _, err := svc.Login(context.Background(), "erin@example.com", "badpass99"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if limiter.failures != 1 {
		t.Fatalf("expected one recorded failure, got %d", limiter.failures)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := newAuthService(newStubAuthRepo(), nil)

	// An unknown email is indistinguishable from a wrong password.
	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever1"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubAuthRepo()
	limiter := &stubLimiter{blocked: true}
	svc := newAuthService(repo, limiter)

	_, _, _ = svc.Register(context.Background(), ports.RegisterInput{
		Name: "frank", Email: "frank@example.com", Password: "goodpass1",
	})

	if _, _, err := svc.Login(context.Background(), "frank@example.com", "goodpass1"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected throttled login to fail closed, got %v", err)
	}
}
