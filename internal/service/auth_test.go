package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-finder/backend/internal/service"
	"github.com/pageza/recipe-finder/backend/internal/testhelpers"
	"github.com/pageza/recipe-finder/backend/internal/types"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	authSvc := service.NewAuthService(db, "test-secret")
	ctx := context.Background()

	user, err := authSvc.Register(ctx, " Cook@Example.com ", "password123")
	require.NoError(t, err)
	assert.Equal(t, "cook@example.com", user.Email)
	assert.NotEqual(t, "password123", user.PasswordHash)

	_, err = authSvc.Register(ctx, "cook@example.com", "another-password")
	assert.ErrorIs(t, err, service.ErrUserExists)

	token, loggedIn, err := authSvc.Login(ctx, "COOK@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	claims, err := authSvc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "cook@example.com", claims.Email)

	_, _, err = authSvc.Login(ctx, "cook@example.com", "wrong-password")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, _, err = authSvc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthService_ValidateToken_Rejects(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	authSvc := service.NewAuthService(db, "test-secret")

	user, err := authSvc.Register(context.Background(), "a@example.com", "password123")
	require.NoError(t, err)

	t.Run("other secret", func(t *testing.T) {
		token, err := service.NewAuthService(db, "other-secret").GenerateToken(user)
		require.NoError(t, err)
		_, err = authSvc.ValidateToken(token)
		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		claims := &types.TokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
			UserID: user.ID,
			Email:  user.Email,
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)
		_, err = authSvc.ValidateToken(token)
		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := authSvc.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})
}
