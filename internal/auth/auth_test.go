package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-control/internal/models"
)

const testSecret = "test-secret"

func newTestService(t *testing.T) *Service {
	t.Helper()
	service, err := NewService(testSecret, time.Hour)
	require.NoError(t, err)
	return service
}

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestNewService(t *testing.T) {
	service, err := NewService(testSecret, 24*time.Hour)
	assert.NoError(t, err)
	assert.NotNil(t, service)
	assert.Equal(t, []byte(testSecret), service.jwtSecret)
	assert.Equal(t, 24*time.Hour, service.tokenExp)

	_, err = NewService("", 24*time.Hour)
	assert.Error(t, err)

	_, err = NewService(testSecret, 0)
	assert.Error(t, err)
}

func TestService_GenerateToken(t *testing.T) {
	service := newTestService(t)

	token, err := service.GenerateToken("user-1", "ana@example.com", models.RoleManager)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = service.GenerateToken("", "ana@example.com", models.RoleManager)
	assert.Error(t, err)

	_, err = service.GenerateToken("user-1", "ana@example.com", "root")
	assert.Error(t, err)
}

func TestService_ValidateToken(t *testing.T) {
	service := newTestService(t)

	token, err := service.GenerateToken("user-1", "ana@example.com", models.RoleOperator)
	require.NoError(t, err)

	// Test valid token
	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, models.RoleOperator, claims.Role)
	assert.Greater(t, claims.Exp, time.Now().Unix())

	// With Bearer prefix
	claims, err = service.ValidateToken("Bearer " + token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)

	// Test invalid token
	_, err = service.ValidateToken("invalid-token")
	assert.Equal(t, ErrInvalidToken, err)
}

func TestService_ValidateToken_Rejections(t *testing.T) {
	service := newTestService(t)
	future := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name     string
		token    string
		expected error
	}{
		{
			"expired",
			signed(t, testSecret, jwt.MapClaims{"sub": "u", "role": "admin", "exp": time.Now().Add(-time.Minute).Unix()}),
			ErrExpiredToken,
		},
		{
			"wrong secret",
			signed(t, "other-secret", jwt.MapClaims{"sub": "u", "role": "admin", "exp": future}),
			ErrInvalidToken,
		},
		{
			"missing subject",
			signed(t, testSecret, jwt.MapClaims{"role": "admin", "exp": future}),
			ErrInvalidToken,
		},
		{
			"missing expiry",
			signed(t, testSecret, jwt.MapClaims{"sub": "u", "role": "admin"}),
			ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ValidateToken(tt.token)
			assert.Equal(t, tt.expected, err)
		})
	}
}

func TestService_ValidateToken_UnknownRoleIsViewer(t *testing.T) {
	service := newTestService(t)
	future := time.Now().Add(time.Hour).Unix()

	for _, claims := range []jwt.MapClaims{
		{"sub": "u", "role": "superuser", "exp": future},
		{"sub": "u", "exp": future},
	} {
		got, err := service.ValidateToken(signed(t, testSecret, claims))
		require.NoError(t, err)
		assert.Equal(t, models.RoleViewer, got.Role)
	}
}

func TestService_ExtractTokenFromHeader(t *testing.T) {
	service := newTestService(t)

	tests := []struct {
		name     string
		header   string
		expected string
		wantErr  bool
	}{
		{"valid bearer", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"empty", "", "", true},
		{"wrong scheme", "Basic abc", "", true},
		{"missing token", "Bearer ", "", true},
		{"too many parts", "Bearer a b", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := service.ExtractTokenFromHeader(tt.header)
			if tt.wantErr {
				assert.Equal(t, ErrInvalidToken, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, token)
		})
	}
}
