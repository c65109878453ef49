package service

import (
	"testing"

	"go-bizbook/internal/model"
	"go-bizbook/pkg/jwt"

	"github.com/stretchr/testify/require"
)

func TestRegisterIssuesToken(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	resp, err := svc.Register(&RegisterInput{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "alice", resp.User.Username)

	claims, err := jwt.ValidateToken(resp.Token)
	require.NoError(t, err)
	require.Equal(t, resp.User.ID, claims.UserID)

	// Registration eagerly creates the settings row with defaults.
	var setting model.UserSetting
	require.NoError(t, db.First(&setting, "user_id = ?", resp.User.ID).Error)
	require.True(t, setting.ShowOnlineUsers)
	require.Equal(t, 15, setting.AutoBackupInterval)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register(&RegisterInput{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Register(&RegisterInput{Username: "alice", Password: "other456"})
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegisterValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register(&RegisterInput{Username: "al", Password: "secret123"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register(&RegisterInput{Username: "alice", Password: "short"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register(&RegisterInput{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Login(&LoginInput{Username: "alice", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredential)

	_, err = svc.Login(&LoginInput{Username: "nobody", Password: "secret123"})
	require.ErrorIs(t, err, ErrInvalidCredential)
}

// Logging in rotates the token version, so the token from any earlier session
// no longer matches the stored version.
func TestLoginRotatesTokenVersion(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	first, err := svc.Register(&RegisterInput{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	firstClaims, err := jwt.ValidateToken(first.Token)
	require.NoError(t, err)

	second, err := svc.Login(&LoginInput{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	secondClaims, err := jwt.ValidateToken(second.Token)
	require.NoError(t, err)
	require.NotEqual(t, firstClaims.TokenVersion, secondClaims.TokenVersion)

	var user model.User
	require.NoError(t, db.First(&user, "username = ?", "alice").Error)
	require.Equal(t, secondClaims.TokenVersion, user.TokenVersion)
	require.NotEqual(t, firstClaims.TokenVersion, user.TokenVersion)
}

func TestChangePassword(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	resp, err := svc.Register(&RegisterInput{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	userID := resp.User.ID

	require.ErrorIs(t, svc.ChangePassword(userID, "wrong", "newpass456"), ErrWrongPassword)

	var before model.User
	require.NoError(t, db.First(&before, "id = ?", userID).Error)

	require.NoError(t, svc.ChangePassword(userID, "secret123", "newpass456"))

	// Old password dead, new one live, sessions invalidated.
	_, err = svc.Login(&LoginInput{Username: "alice", Password: "secret123"})
	require.ErrorIs(t, err, ErrInvalidCredential)
	_, err = svc.Login(&LoginInput{Username: "alice", Password: "newpass456"})
	require.NoError(t, err)

	var after model.User
	require.NoError(t, db.First(&after, "id = ?", userID).Error)
	require.NotEqual(t, before.TokenVersion, after.TokenVersion)
}

func TestLogoutRemovesPresence(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	resp, err := svc.Register(&RegisterInput{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.OnlineUser{}).Where("user_id = ?", resp.User.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)

	require.NoError(t, svc.Logout(resp.User.ID))
	require.NoError(t, db.Model(&model.OnlineUser{}).Where("user_id = ?", resp.User.ID).Count(&count).Error)
	require.Zero(t, count)
}
