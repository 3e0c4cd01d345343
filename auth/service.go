// Package auth backs the deprecated demo login endpoint. Tokens are
// issued through go-pkgz/auth's token service; credential checks run
// in constant time regardless of whether the account exists.
package auth

import (
	"time"

	pkgzauth "github.com/go-pkgz/auth/v2"
	"github.com/go-pkgz/auth/v2/avatar"
	"github.com/go-pkgz/auth/v2/provider"
	"github.com/go-pkgz/auth/v2/token"
	"github.com/golang-jwt/jwt/v5"
	"github.com/mizukif/photo-diary/apperr"
	"github.com/mizukif/photo-diary/config"
	"golang.org/x/crypto/bcrypt"
)

const issuer = "photo-diary"

type Service struct {
	svc       *pkgzauth.Service
	demoEmail string
	demoHash  []byte
	dummyHash []byte
}

func NewService(cfg *config.Config) (*Service, error) {
	opts := pkgzauth.Opts{
		SecretReader: token.SecretFunc(func(id string) (string, error) {
			return cfg.JWTSecret, nil
		}),
		TokenDuration:  time.Hour * 24,
		CookieDuration: time.Hour * 24 * 7,
		Issuer:         issuer,
		URL:            "http://localhost:" + cfg.Port,
		AvatarStore:    avatar.NewLocalFS("/tmp/avatars"),
	}
	svc := pkgzauth.NewService(opts)

	service := &Service{svc: svc, demoEmail: cfg.DemoUserEmail}

	if cfg.DemoUserPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.DemoUserPassword), 10)
		if err != nil {
			return nil, apperr.Wrap(apperr.ConfigError, "failed to hash demo password", err)
		}
		service.demoHash = hash
	}

	// Hash compared for unknown emails, so every login attempt pays
	// the same bcrypt cost.
	dummyHash, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), 10)
	if err != nil {
		return nil, apperr.Wrap(apperr.ConfigError, "failed to hash dummy password", err)
	}
	service.dummyHash = dummyHash

	svc.AddDirectProvider("local", provider.CredCheckerFunc(service.Verify))

	return service, nil
}

// Verify checks the demo credentials. The bcrypt comparison runs on
// every call, including for unknown emails, so response timing does
// not reveal whether the account exists.
func (s *Service) Verify(email string, password string) (bool, error) {
	hash := s.dummyHash
	known := s.demoEmail != "" && email == s.demoEmail && len(s.demoHash) > 0
	if known {
		hash = s.demoHash
	}

	err := bcrypt.CompareHashAndPassword(hash, []byte(password))
	return known && err == nil, nil
}

// IssueToken returns a signed JWT for a successfully verified login.
func (s *Service) IssueToken(email string) (string, error) {
	user := token.User{
		ID:    "demo_" + email,
		Name:  email,
		Email: email,
	}

	claims := token.Claims{
		User: &user,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Audience:  []string{issuer},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	return s.svc.TokenService().Token(claims)
}
