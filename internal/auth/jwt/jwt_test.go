package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJWTService_GenerateAndValidate(t *testing.T) {
	s, err := NewService(Config{SecretKey: "secret", Duration: time.Hour})
	assert.NoError(t, err)
	tok, err := s.GenerateToken(42, "alice@example.com", "admin")
	assert.NoError(t, err)
	claims, err := s.ValidateToken(tok)
	assert.NoError(t, err)
	if assert.NotNil(t, claims) {
		assert.Equal(t, uint(42), claims.UserID)
		assert.Equal(t, "alice@example.com", claims.Email)
		assert.Equal(t, "admin", claims.Role)
	}
}

func TestJWTService_ExpiredAndInvalid(t *testing.T) {
	s, err := NewService(Config{SecretKey: "secret", Duration: time.Hour})
	assert.NoError(t, err)

	// Token signed with another key
	other, err := NewService(Config{SecretKey: "another-secret", Duration: time.Hour})
	assert.NoError(t, err)
	tok, err := other.GenerateToken(1, "bob@example.com", "manager")
	assert.NoError(t, err)
	claims, err := s.ValidateToken(tok)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Invalid token string
	claims, err = s.ValidateToken("not-a-token")
	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestNewService_Validation(t *testing.T) {
	_, err := NewService(Config{SecretKey: "", Duration: time.Hour})
	assert.ErrorIs(t, err, ErrEmptySecretKey)

	_, err = NewService(Config{SecretKey: "secret", Duration: 0})
	assert.ErrorIs(t, err, ErrInvalidDuration)
}
