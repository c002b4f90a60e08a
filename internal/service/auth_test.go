package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/eazybee/internal/middleware"
	"github.com/user/eazybee/internal/model"
	"github.com/user/eazybee/internal/repository"
	"github.com/user/eazybee/internal/storage"
)

const testSecret = "test-secret"

func newAuth(store storage.Store) *AuthService {
	return NewAuthService(repository.NewSessionRepository(store), testSecret, time.Hour)
}

func TestLoginAdmin(t *testing.T) {
	auth := newAuth(storage.NewMemoryStore(0))

	id, err := auth.Login("admin@eazybee.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, id.User.Role)
	assert.Equal(t, "admin-1", id.User.ID)
	assert.Equal(t, "Admin User", id.User.Name)
	assert.Equal(t, "https://ui-avatars.com/api/?name=Admin+User&background=FFD100&color=000", id.User.ProfileImage)

	claims, err := middleware.ParseToken(id.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.UserID)
	assert.Equal(t, model.RoleAdmin, claims.Role)

	current, ok := auth.Current()
	require.True(t, ok)
	assert.True(t, current.User.IsAdmin())
}

func TestLoginRegularUser(t *testing.T) {
	auth := newAuth(storage.NewMemoryStore(0))

	id, err := auth.Login("a@b.com", "longenough")
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, id.User.Role)
	assert.Equal(t, "a", id.User.Name)
	assert.Equal(t, "user-1", id.User.ID)
}

func TestLoginRejectsShortPassword(t *testing.T) {
	store := storage.NewMemoryStore(0)
	auth := newAuth(store)

	_, err := auth.Login("a@b.com", "short")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login("", "longenough")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, ok := auth.Current()
	assert.False(t, ok)
}

func TestLoginWrongAdminPasswordFallsBackToUser(t *testing.T) {
	auth := newAuth(storage.NewMemoryStore(0))

	id, err := auth.Login("admin@eazybee.com", "not-the-password")
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, id.User.Role)
	assert.Equal(t, "admin", id.User.Name)
}

func TestRegister(t *testing.T) {
	auth := newAuth(storage.NewMemoryStore(0))

	_, err := auth.Register("", "a@b.com", "longenough")
	assert.ErrorIs(t, err, ErrInvalidRegistration)
	_, err = auth.Register("Jane", "", "longenough")
	assert.ErrorIs(t, err, ErrInvalidRegistration)
	_, err = auth.Register("Jane", "a@b.com", "12345")
	assert.ErrorIs(t, err, ErrInvalidRegistration)

	id, err := auth.Register("Jane Doe", "jane@b.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, id.User.Role)
	assert.Contains(t, id.User.ID, "user-")
	assert.Contains(t, id.User.ProfileImage, "name=Jane+Doe")
}

func TestLogoutAndRehydrate(t *testing.T) {
	store := storage.NewMemoryStore(0)
	auth := newAuth(store)

	_, err := auth.Login("a@b.com", "longenough")
	require.NoError(t, err)

	// 新的服务实例从存储恢复登录态
	current, ok := newAuth(store).Current()
	require.True(t, ok)
	assert.Equal(t, "a@b.com", current.User.Email)

	require.NoError(t, auth.Logout())
	_, ok = newAuth(store).Current()
	assert.False(t, ok)

	// 退出登录不会失败
	assert.NoError(t, auth.Logout())
}

func TestCurrentRejectsForeignToken(t *testing.T) {
	store := storage.NewMemoryStore(0)
	require.NoError(t, store.Set(repository.KeyToken, []byte("user-jwt-token-12345")))
	require.NoError(t, store.Set(repository.KeyUser, []byte(`{"id":"user-1","role":"USER"}`)))

	_, ok := newAuth(store).Current()
	assert.False(t, ok)
}

func TestCurrentSurvivesTokenExpiry(t *testing.T) {
	store := storage.NewMemoryStore(0)
	auth := newAuth(store)

	id, err := auth.Login("a@b.com", "longenough")
	require.NoError(t, err)

	expired, err := middleware.GenerateToken(id.User.ID, id.User.Email, id.User.Role, testSecret, -time.Minute)
	require.NoError(t, err)
	require.NoError(t, repository.NewSessionRepository(store).SaveToken(expired))

	_, err = middleware.ParseToken(expired, testSecret)
	require.Error(t, err)

	current, ok := newAuth(store).Current()
	require.True(t, ok)
	assert.Equal(t, "a@b.com", current.User.Email)
}

func TestCurrentRejectsTokenSignedWithOtherSecret(t *testing.T) {
	store := storage.NewMemoryStore(0)
	_, err := newAuth(store).Login("a@b.com", "longenough")
	require.NoError(t, err)

	_, ok := NewAuthService(repository.NewSessionRepository(store), "rotated", time.Hour).Current()
	assert.False(t, ok)
}

func TestUpdateProfile(t *testing.T) {
	store := storage.NewMemoryStore(0)
	auth := newAuth(store)

	phone := "555-0100"
	_, ok, err := auth.UpdateProfile(model.ProfileUpdate{PhoneNumber: &phone})
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = auth.Login("a@b.com", "longenough")
	require.NoError(t, err)

	user, ok, err := auth.UpdateProfile(model.ProfileUpdate{PhoneNumber: &phone})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, phone, user.PhoneNumber)
	assert.Equal(t, model.RoleUser, user.Role)

	current, ok := auth.Current()
	require.True(t, ok)
	assert.Equal(t, phone, current.User.PhoneNumber)
	assert.Equal(t, "a", current.User.Name)
}

func TestLoginSucceedsWhenStorageFull(t *testing.T) {
	backend := storage.NewMemoryStore(8)
	session := storage.NewSession("ns", backend)
	auth := newAuth(session)

	id, err := auth.Login("a@b.com", "longenough")
	assert.ErrorIs(t, err, storage.ErrQuotaExceeded)
	require.NotNil(t, id)

	current, ok := auth.Current()
	require.True(t, ok)
	assert.Equal(t, id.Token, current.Token)
}
