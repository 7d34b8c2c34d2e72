package auth_test

import (
	"context"
	"testing"

	"catalog-service/core/apperr"
	"catalog-service/core/database"
	"catalog-service/core/token"
	"catalog-service/feature/auth"
	"catalog-service/feature/auth/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (*auth.Service, *gorm.DB) {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Member{}, &models.MemberLoginLog{}))

	tokens := token.NewService(token.Config{Secret: "test-secret", TTLMinutes: 60})
	return auth.NewService(auth.NewRepository(db), tokens, zap.NewNop()), db
}

func TestRegisterAndLogin(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	payload, err := svc.Register(ctx, auth.RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, payload.Token)
	assert.Equal(t, "Bearer", payload.TokenType)
	assert.Equal(t, "alice@example.com", payload.Member.Email)

	loggedIn, err := svc.Login(ctx, auth.LoginInput{Email: "alice@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, payload.Member.ID, loggedIn.Member.ID)

	// Login upserted a single log row with a cleared logout time.
	var log models.MemberLoginLog
	require.NoError(t, db.Where("member_id = ?", payload.Member.ID).First(&log).Error)
	assert.Nil(t, log.LogoutTime)
	assert.False(t, log.LoginTime.IsZero())
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, auth.RegisterInput{Name: "A", Email: "dup@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, auth.RegisterInput{Name: "B", Email: "dup@example.com", Password: "password2"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input auth.RegisterInput
	}{
		{"Missing name", auth.RegisterInput{Email: "a@b.c", Password: "password1"}},
		{"Bad email", auth.RegisterInput{Name: "A", Email: "not-an-email", Password: "password1"}},
		{"Short password", auth.RegisterInput{Name: "A", Email: "a@b.c", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.input)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}

func TestLogin_WrongCredentials(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, auth.RegisterInput{Name: "A", Email: "a@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, auth.LoginInput{Email: "a@example.com", Password: "wrong"})
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))

	_, err = svc.Login(ctx, auth.LoginInput{Email: "ghost@example.com", Password: "password1"})
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestLogoutStampsLoginLog(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	payload, err := svc.Register(ctx, auth.RegisterInput{Name: "A", Email: "a@example.com", Password: "password1"})
	require.NoError(t, err)
	_, err = svc.Login(ctx, auth.LoginInput{Email: "a@example.com", Password: "password1"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, payload.Member.ID))

	var log models.MemberLoginLog
	require.NoError(t, db.Where("member_id = ?", payload.Member.ID).First(&log).Error)
	assert.NotNil(t, log.LogoutTime)

	// A second login clears the logout time again. Scan into a fresh struct:
	// gorm leaves an already-populated pointer field untouched when the
	// column comes back NULL, so reusing `log` would mask the cleared value.
	_, err = svc.Login(ctx, auth.LoginInput{Email: "a@example.com", Password: "password1"})
	require.NoError(t, err)
	var relogged models.MemberLoginLog
	require.NoError(t, db.Where("member_id = ?", payload.Member.ID).First(&relogged).Error)
	assert.Nil(t, relogged.LogoutTime)
}

func TestRefresh(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	payload, err := svc.Register(ctx, auth.RegisterInput{Name: "A", Email: "a@example.com", Password: "password1"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, payload.Member.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.Token)

	_, err = svc.Refresh(ctx, 9999)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}
