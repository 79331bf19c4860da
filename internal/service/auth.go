package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/basciYusuf/e-commerce/internal/hash"
	"github.com/basciYusuf/e-commerce/internal/logging"
	"github.com/basciYusuf/e-commerce/internal/repo"
)

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
	TokenTTL  time.Duration
}

const defaultTokenTTL = 24 * time.Hour

// Login returns a signed bearer token. Unknown email and wrong password take
// the same path out so the two cases cannot be told apart.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		l.Error("user_lookup_failed", "error", err)
		return "", err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}

	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"exp":   time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.JWTSecret)
	if err != nil {
		l.Error("token_sign_failed", "error", err)
		return "", err
	}

	return signed, nil
}
