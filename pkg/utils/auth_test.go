package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndComparePasswords(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.NoError(t, ComparePasswords(hash, "s3cret"))
	assert.Error(t, ComparePasswords(hash, "wrong"))
}

func TestCreateAndValidateToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-signing-key")
	id := uuid.New()

	token, err := CreateToken(id, "admin")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id.String(), claims.Subject)
	assert.Equal(t, "admin", claims.Role)
}

func TestCreateTokenWithoutSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := CreateToken(uuid.New(), "admin")
	assert.ErrorIs(t, err, ErrAuthNotConfigured)
}

func TestValidateTokenWithoutSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := ValidateToken("whatever")
	assert.ErrorIs(t, err, ErrAuthNotConfigured)
}

func TestValidateTokenRejectsEmptyKeySignature(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-signing-key")

	// a token an attacker signed with an empty HS256 key must not verify
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	forgedString, err := forged.SignedString([]byte(""))
	require.NoError(t, err)

	_, err = ValidateToken(forgedString)
	assert.Error(t, err)
}

func TestSecretLoadedAfterStartIsPickedUp(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := CreateToken(uuid.New(), "admin")
	require.ErrorIs(t, err, ErrAuthNotConfigured)

	// simulates godotenv populating the environment after package init
	t.Setenv("JWT_SECRET", "from-dotenv")
	token, err := CreateToken(uuid.New(), "admin")
	require.NoError(t, err)

	_, err = ValidateToken(token)
	assert.NoError(t, err)
}
