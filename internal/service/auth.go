package service

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/user/eazybee/internal/middleware"
	"github.com/user/eazybee/internal/model"
	"github.com/user/eazybee/internal/repository"
	"github.com/user/eazybee/internal/storage"
)

// 保留的管理员账号
const (
	AdminEmail    = "admin@eazybee.com"
	AdminPassword = "admin123"

	minPasswordLength = 6
)

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRegistration = errors.New("invalid registration data")
)

// Identity 登录成功后的 token 与用户
type Identity struct {
	Token string             `json:"token"`
	User  *model.SessionUser `json:"user"`
}

// AuthService 模拟登录：不查询后台用户列表，直接按凭据合成会话用户
type AuthService struct {
	session *repository.SessionRepository
	secret  string
	expiry  time.Duration
}

func NewAuthService(session *repository.SessionRepository, secret string, expiry time.Duration) *AuthService {
	if expiry <= 0 {
		expiry = 72 * time.Hour
	}
	return &AuthService{session: session, secret: secret, expiry: expiry}
}

// Current 从存储恢复登录态。token 过期不影响恢复，只有缺失、损坏或签名不符时为匿名
func (s *AuthService) Current() (*Identity, bool) {
	token, user, ok := s.session.Load()
	if !ok {
		return nil, false
	}
	claims, err := middleware.ParseSessionToken(token, s.secret)
	if err != nil || claims.UserID != user.ID {
		return nil, false
	}
	return &Identity{Token: token, User: user}, true
}

// Login 管理员凭据优先；其他邮箱非空且密码不少于 6 位即登录为普通用户
func (s *AuthService) Login(email, password string) (*Identity, error) {
	var user *model.SessionUser
	switch {
	case email == AdminEmail && password == AdminPassword:
		user = &model.SessionUser{
			ID:    "admin-1",
			Name:  "Admin User",
			Email: AdminEmail,
			Role:  model.RoleAdmin,
		}
	case email != "" && len(password) >= minPasswordLength:
		name, _, _ := strings.Cut(email, "@")
		user = &model.SessionUser{
			ID:    "user-1",
			Name:  name,
			Email: email,
			Role:  model.RoleUser,
		}
	default:
		return nil, ErrInvalidCredentials
	}
	user.ProfileImage = AvatarURL(user.Name)
	return s.establish(user)
}

// Register 姓名、邮箱非空且密码不少于 6 位
func (s *AuthService) Register(name, email, password string) (*Identity, error) {
	if name == "" || email == "" || len(password) < minPasswordLength {
		return nil, ErrInvalidRegistration
	}
	user := &model.SessionUser{
		ID:           "user-" + uuid.NewString(),
		Name:         name,
		Email:        email,
		Role:         model.RoleUser,
		ProfileImage: AvatarURL(name),
	}
	return s.establish(user)
}

// establish 保存登录态；超出配额时登录仍然成功，错误一并返回
func (s *AuthService) establish(user *model.SessionUser) (*Identity, error) {
	token, err := middleware.GenerateToken(user.ID, user.Email, user.Role, s.secret, s.expiry)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	identity := &Identity{Token: token, User: user}
	if err := s.session.Save(token, user); err != nil {
		if errors.Is(err, storage.ErrQuotaExceeded) {
			return identity, err
		}
		return nil, err
	}
	return identity, nil
}

// Logout 清除登录态
func (s *AuthService) Logout() error {
	return s.session.Clear()
}

// UpdateProfile 合并资料，匿名时返回 false
func (s *AuthService) UpdateProfile(update model.ProfileUpdate) (*model.SessionUser, bool, error) {
	current, ok := s.Current()
	if !ok {
		return nil, false, nil
	}
	user := *current.User
	update.Apply(&user)
	return &user, true, s.session.SaveUser(&user)
}

// AvatarURL 按名字生成头像地址
func AvatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=FFD100&color=000"
}
