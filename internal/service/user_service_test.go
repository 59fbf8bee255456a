package service

import (
	"testing"
	"time"

	"github.com/ViniciusBessa/planejando-api/internal/domain"
	"github.com/ViniciusBessa/planejando-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserServiceForTest(t *testing.T) (*UserService, *AuthService, *testutil.MockUserRepository, *testutil.MockPasswordResetTokenRepository) {
	t.Helper()
	userRepo := testutil.NewMockUserRepository()
	resetTokenRepo := testutil.NewMockPasswordResetTokenRepository()
	authService := NewAuthService(userRepo, []byte("test-secret"), time.Hour)
	return NewUserService(userRepo, resetTokenRepo, authService), authService, userRepo, resetTokenRepo
}

func registerTestUser(t *testing.T, auth *AuthService, name, email, password string) *domain.User {
	t.Helper()
	user, _, err := auth.Register(name, email, password)
	require.NoError(t, err)
	return user
}

func TestUserDelete_ReturnsRemovedUser(t *testing.T) {
	userService, auth, userRepo, _ := newUserServiceForTest(t)
	user := registerTestUser(t, auth, "Vinicius Bessa", "vinicius@example.com", "my-password")

	deleted, err := userService.Delete(user.ID)

	require.NoError(t, err)
	assert.Equal(t, user.ID, deleted.ID)

	_, err = userRepo.GetByID(user.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestDeleteOwnAccount_RequiresPassword(t *testing.T) {
	userService, auth, _, _ := newUserServiceForTest(t)
	user := registerTestUser(t, auth, "Vinicius Bessa", "vinicius@example.com", "my-password")

	_, err := userService.DeleteOwnAccount(user.ID, "")
	assert.ErrorIs(t, err, domain.ErrPasswordRequired)

	_, err = userService.DeleteOwnAccount(user.ID, "wrong-password")
	assert.ErrorIs(t, err, domain.ErrWrongPassword)
}

func TestDeleteOwnAccount_Success(t *testing.T) {
	userService, auth, userRepo, _ := newUserServiceForTest(t)
	user := registerTestUser(t, auth, "Vinicius Bessa", "vinicius@example.com", "my-password")

	_, err := userService.DeleteOwnAccount(user.ID, "my-password")

	require.NoError(t, err)
	_, err = userRepo.GetByID(user.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdateName_ReissuesToken(t *testing.T) {
	userService, auth, _, _ := newUserServiceForTest(t)
	user := registerTestUser(t, auth, "Vinicius Bessa", "vinicius@example.com", "my-password")

	updated, token, err := userService.UpdateName(user.ID, "Bessa Vinicius")

	require.NoError(t, err)
	assert.Equal(t, "Bessa Vinicius", updated.Name)

	claims, err := auth.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "Bessa Vinicius", claims.Name)
}

func TestUpdateName_RejectsTakenName(t *testing.T) {
	userService, auth, _, _ := newUserServiceForTest(t)
	registerTestUser(t, auth, "Another Person", "another@example.com", "my-password")
	user := registerTestUser(t, auth, "Vinicius Bessa", "vinicius@example.com", "my-password")

	_, _, err := userService.UpdateName(user.ID, "Another Person")

	assert.ErrorIs(t, err, domain.ErrNameInUse)
}

func TestUpdateEmail_RejectsInvalidEmail(t *testing.T) {
	userService, auth, _, _ := newUserServiceForTest(t)
	user := registerTestUser(t, auth, "Vinicius Bessa", "vinicius@example.com", "my-password")

	_, _, err := userService.UpdateEmail(user.ID, "nope")

	assert.ErrorIs(t, err, domain.ErrInvalidEmail)
}

func TestUpdatePassword_OldPasswordStopsWorking(t *testing.T) {
	userService, auth, _, _ := newUserServiceForTest(t)
	user := registerTestUser(t, auth, "Vinicius Bessa", "vinicius@example.com", "my-password")

	_, _, err := userService.UpdatePassword(user.ID, "new-password")
	require.NoError(t, err)

	_, _, err = auth.Login("vinicius@example.com", "my-password")
	assert.ErrorIs(t, err, domain.ErrWrongPassword)

	_, _, err = auth.Login("vinicius@example.com", "new-password")
	assert.NoError(t, err)
}

func TestCreateResetToken_UnknownEmail(t *testing.T) {
	userService, _, _, _ := newUserServiceForTest(t)

	_, err := userService.CreateResetToken("nobody@example.com")

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestCheckResetToken(t *testing.T) {
	userService, auth, _, _ := newUserServiceForTest(t)
	registerTestUser(t, auth, "Vinicius Bessa", "vinicius@example.com", "my-password")

	token, err := userService.CreateResetToken("vinicius@example.com")
	require.NoError(t, err)

	valid, err := userService.CheckResetToken(token.ID)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = userService.CheckResetToken(uuid.New())
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestResetPassword_TokenIsSingleUse(t *testing.T) {
	userService, auth, _, _ := newUserServiceForTest(t)
	registerTestUser(t, auth, "Vinicius Bessa", "vinicius@example.com", "my-password")

	token, err := userService.CreateResetToken("vinicius@example.com")
	require.NoError(t, err)

	user, authToken, err := userService.ResetPassword(token.ID.String(), "new-password")
	require.NoError(t, err)
	assert.NotEmpty(t, authToken)
	assert.Equal(t, "vinicius@example.com", user.Email)

	_, _, err = auth.Login("vinicius@example.com", "new-password")
	assert.NoError(t, err)

	// Second consumption fails
	_, _, err = userService.ResetPassword(token.ID.String(), "another-password")
	assert.ErrorIs(t, err, domain.ErrResetTokenNotFound)
}

func TestResetPassword_RequiresPassword(t *testing.T) {
	userService, auth, _, _ := newUserServiceForTest(t)
	registerTestUser(t, auth, "Vinicius Bessa", "vinicius@example.com", "my-password")

	token, err := userService.CreateResetToken("vinicius@example.com")
	require.NoError(t, err)

	_, _, err = userService.ResetPassword(token.ID.String(), "")
	assert.ErrorIs(t, err, domain.ErrPasswordRequired)
}

func TestResetPassword_RequiresToken(t *testing.T) {
	userService, _, _, _ := newUserServiceForTest(t)

	_, _, err := userService.ResetPassword("", "new-password")
	assert.ErrorIs(t, err, domain.ErrResetTokenRequired)
}

func TestResetPassword_MalformedToken(t *testing.T) {
	userService, _, _, _ := newUserServiceForTest(t)

	_, _, err := userService.ResetPassword("not-a-uuid", "new-password")
	assert.ErrorIs(t, err, domain.ErrResetTokenNotFound)
}
