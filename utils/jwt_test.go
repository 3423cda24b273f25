package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJWT(t *testing.T) {
	secret := []byte("unit-secret")

	tokenString, err := GenerateJWT(7, "asha@example.com", "ADMIN", secret, 24)
	require.NoError(t, err)

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "asha@example.com", claims["sub"])
	assert.Equal(t, float64(7), claims["user_id"])
	assert.Equal(t, "ADMIN", claims["role"])

	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	assert.Greater(t, int64(exp), time.Now().Unix())
}

func TestGenerateJWT_WrongSecretFailsParse(t *testing.T) {
	tokenString, err := GenerateJWT(7, "asha@example.com", "ADMIN", []byte("right"), 1)
	require.NoError(t, err)

	_, err = jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte("wrong"), nil
	})
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-passphrase")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-passphrase", hash)

	assert.NoError(t, CheckPassword("s3cret-passphrase", hash))
	assert.Error(t, CheckPassword("other", hash))
}
