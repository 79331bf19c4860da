package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/basciYusuf/e-commerce/internal/hash"
	"github.com/basciYusuf/e-commerce/internal/models"
	"github.com/basciYusuf/e-commerce/internal/repo"
)

var testSecret = []byte("test-secret")

func newAuth(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return &AuthService{Repo: repo.NewGormRepo(db), JWTSecret: testSecret}, db
}

func seedUser(t *testing.T, db *gorm.DB, email, password string) models.User {
	t.Helper()
	pwHash, err := hash.HashPassword(password)
	require.NoError(t, err)
	user := models.User{Email: email, PasswordHash: pwHash}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestLoginIssuesToken(t *testing.T) {
	svc, db := newAuth(t)
	user := seedUser(t, db, "admin@example.com", "secret")

	signed, err := svc.Login(context.Background(), "admin@example.com", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	token, err := jwt.Parse(signed, func(token *jwt.Token) (any, error) {
		return testSecret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	require.EqualValues(t, user.ID, claims["sub"])
	require.Equal(t, "admin@example.com", claims["email"])
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, db := newAuth(t)
	seedUser(t, db, "admin@example.com", "secret")

	_, wrongPassword := svc.Login(context.Background(), "admin@example.com", "nope")
	_, unknownEmail := svc.Login(context.Background(), "nobody@example.com", "secret")

	require.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	require.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	require.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLoginNeverLeaksPasswordHash(t *testing.T) {
	svc, db := newAuth(t)
	seedUser(t, db, "admin@example.com", "secret")

	signed, err := svc.Login(context.Background(), "admin@example.com", "secret")
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(token *jwt.Token) (any, error) {
		return testSecret, nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	_, hasHash := claims["password"]
	require.False(t, hasHash)
	require.Len(t, claims, 3) // sub, email, exp
}
