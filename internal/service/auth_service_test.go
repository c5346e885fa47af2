package service

import (
	"testing"
	"time"

	"github.com/cursolivre/cursolivre-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthService() *AuthService {
	return NewAuthService(&config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  time.Hour,
		BcryptCost: 4, // minimum cost, keeps the test fast
	})
}

func TestPasswordRoundTrip(t *testing.T) {
	s := testAuthService()

	hash, err := s.HashPassword("senha-secreta")
	require.NoError(t, err)

	assert.NoError(t, s.CheckPassword(hash, "senha-secreta"))
	assert.ErrorIs(t, s.CheckPassword(hash, "senha-errada"), ErrInvalidCredentials)
}

func TestTokenRoundTrip(t *testing.T) {
	s := testAuthService()

	token, err := s.GenerateToken(42, "aluno@example.com", TokenTypeUser)
	require.NoError(t, err)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "aluno@example.com", claims.Email)
	assert.Equal(t, TokenTypeUser, claims.TokenType)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	s := testAuthService()
	other := NewAuthService(&config.Config{JWTSecret: "other-secret", JWTExpiry: time.Hour})

	token, err := other.GenerateToken(1, "admin@example.com", TokenTypeAdmin)
	require.NoError(t, err)

	_, err = s.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	s := testAuthService()
	_, err := s.ValidateToken("not-a-jwt")
	assert.Error(t, err)
}
