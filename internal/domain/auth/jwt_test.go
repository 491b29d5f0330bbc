package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"factura/internal/core/apperror"
)

func testService(t *testing.T, password string) *JWTService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return NewJWTService(
		DefaultJWTConfig("test-secret"),
		Credentials{Username: "admin", PasswordHash: string(hash)},
	)
}

func TestLogin_Success(t *testing.T) {
	svc := testService(t, "s3cret")

	token, expiresAt, err := svc.Login("admin", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	user, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", user.UserID)
}

func TestLogin_Rejections(t *testing.T) {
	svc := testService(t, "s3cret")

	for _, tc := range []struct{ username, password string }{
		{"admin", "wrong"},
		{"someone-else", "s3cret"},
		{"", ""},
	} {
		_, _, err := svc.Login(tc.username, tc.password)
		require.Error(t, err)
		assert.True(t, apperror.HasCode(err, apperror.CodeUnauthorized))
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := testService(t, "s3cret")
	token, _, err := svc.GenerateAccessToken("admin", "admin")
	require.NoError(t, err)

	other := NewJWTService(DefaultJWTConfig("other-secret"), Credentials{})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := testService(t, "s3cret")
	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
