package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskforge/task-system/internal/core/domain"
)

// DefaultTokenTTL bounds the blast radius of a leaked token. There is no
// revocation mechanism; an issued token stays valid until expiry.
const DefaultTokenTTL = 24 * time.Hour

// TokenService issues and verifies stateless HS256 tokens carrying the
// principal's identity and role. The signing secret is fixed at
// construction and shared by issuance and verification.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for user expiring ttl from now.
func (s *TokenService) Issue(user *domain.User) (string, error) {
	now := s.now().UTC()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  string(user.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify checks the signature and expiry of tokenString and reconstructs
// the principal from its claims. Any failure collapses into
// domain.ErrInvalidToken; callers get no detail about why a token was bad.
func (s *TokenService) Verify(tokenString string) (*domain.Principal, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)
	roleStr, _ := claims["role"].(string)

	role := domain.Role(roleStr)
	if sub == "" || !role.IsValid() {
		return nil, domain.ErrInvalidToken
	}

	return &domain.Principal{ID: sub, Name: name, Email: email, Role: role}, nil
}
