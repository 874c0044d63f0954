package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/helpfurr/adopt-api/internal/models"
	appErrors "github.com/helpfurr/adopt-api/pkg/errors"
)

type fakeIdentityGateway struct {
	user *models.User
	err  error
}

func (f *fakeIdentityGateway) FirstUser(context.Context) (*models.User, error) {
	return f.user, f.err
}

func signToken(t *testing.T, secret string, claims models.JWTClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestValidateTokenRoundTrip(t *testing.T) {
	svc := NewIdentityService("secret", nil, nil, zap.NewNop())

	signed := signToken(t, "secret", models.JWTClaims{
		UserID: "u1",
		Name:   "Jordan",
		Email:  "jordan@gmail.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := svc.ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)

	user := claims.AsUser()
	require.NotNil(t, user)
	assert.Equal(t, "jordan@gmail.com", user.Email)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	svc := NewIdentityService("secret", nil, nil, zap.NewNop())
	signed := signToken(t, "other-secret", models.JWTClaims{UserID: "u1"})

	_, err := svc.ValidateToken(signed)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := NewIdentityService("secret", nil, nil, zap.NewNop())
	signed := signToken(t, "secret", models.JWTClaims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	_, err := svc.ValidateToken(signed)
	require.Error(t, err)
}

func TestDefaultModerator(t *testing.T) {
	svc := NewIdentityService("secret", &fakeIdentityGateway{user: &models.User{ID: "admin-1"}}, nil, zap.NewNop())

	user, err := svc.DefaultModerator(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "admin-1", user.ID)

	svc = NewIdentityService("secret", &fakeIdentityGateway{err: appErrors.ErrUpstream}, nil, zap.NewNop())
	_, err = svc.DefaultModerator(context.Background())
	require.Error(t, err)
}
