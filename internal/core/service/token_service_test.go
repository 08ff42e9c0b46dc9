package service

import (
	"strings"
	"testing"
	"time"

	"github.com/taskforge/task-system/internal/core/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:    "u1",
		Name:  "alice",
		Email: "alice@example.com",
		Role:  domain.RoleManager,
	}
}

func TestTokenService_Roundtrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	p, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if p.ID != "u1" || p.Name != "alice" || p.Email != "alice@example.com" || p.Role != domain.RoleManager {
		t.Fatalf("principal mismatch: %+v", p)
	}
}

func TestTokenService_Expired(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := svc.Verify(token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenService_TamperedPayload(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	// Flip a byte inside the payload segment; the signature no longer matches.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %s", token)
	}
	payload := []byte(parts[1])
	if payload[3] == 'A' {
		payload[3] = 'B'
	} else {
		payload[3] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := svc.Verify(tampered); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for tampered token, got %v", err)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := verifier.Verify(token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken across secrets, got %v", err)
	}
}

func TestTokenService_Garbage(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	if _, err := svc.Verify("not-a-token"); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
