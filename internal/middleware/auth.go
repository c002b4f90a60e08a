package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/user/eazybee/internal/model"
	"github.com/user/eazybee/internal/repository"
	"github.com/user/eazybee/internal/utils"
)

const (
	ContextUser  = "user"
	ContextToken = "token"
)

// Claims JWT 声明
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// RequireAuth 必须登录中间件。
// 登录态来自客户端命名空间中的 eazybee-token / eazybee-user。
func RequireAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := Store(c)
		if store == nil {
			utils.Unauthorized(c, "")
			c.Abort()
			return
		}
		sessionRepo := repository.NewSessionRepository(store)
		token, user, ok := sessionRepo.Load()
		if !ok {
			utils.Unauthorized(c, "")
			c.Abort()
			return
		}

		// 登录态只在登出时结束，过期的 token 照常恢复并换发
		claims, err := ParseSessionToken(token, jwtSecret)
		if err != nil || claims.UserID != user.ID {
			utils.Unauthorized(c, "Session invalid. Please log in again.")
			c.Abort()
			return
		}

		// 滑动续期：有效期消耗超过一半（含已过期）时换发新 token
		if shouldRefresh(claims) {
			expiry := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
			newToken, err := GenerateToken(claims.UserID, claims.Email, claims.Role, jwtSecret, expiry)
			if err == nil {
				if err := sessionRepo.SaveToken(newToken); err != nil {
					log.Printf("[Auth] 续期 token 保存失败: %v", err)
				}
				token = newToken
			}
		}

		c.Set(ContextUser, user)
		c.Set(ContextToken, token)
		c.Next()
	}
}

// RequireAdmin 管理员权限中间件，只看当前登录态中的角色
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentUser(c).IsAdmin() {
			utils.Forbidden(c, "")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser 从上下文获取当前用户（未登录返回 nil）
func CurrentUser(c *gin.Context) *model.SessionUser {
	if v, exists := c.Get(ContextUser); exists {
		if u, ok := v.(*model.SessionUser); ok {
			return u
		}
	}
	return nil
}

// GenerateToken 生成 JWT Token
func GenerateToken(userID, email, role, jwtSecret string, expiry time.Duration) (string, error) {
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// ParseToken 校验签名和有效期
func ParseToken(tokenString, jwtSecret string) (*Claims, error) {
	return parseToken(tokenString, jwtSecret)
}

// ParseSessionToken 只校验签名，不检查过期时间
func ParseSessionToken(tokenString, jwtSecret string) (*Claims, error) {
	return parseToken(tokenString, jwtSecret, jwt.WithoutClaimsValidation())
}

func parseToken(tokenString, jwtSecret string, opts ...jwt.ParserOption) (*Claims, error) {
	if tokenString == "" {
		return nil, jwt.ErrTokenMalformed
	}
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(jwtSecret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// shouldRefresh 已经消耗了总有效期的 50% 以上
func shouldRefresh(claims *Claims) bool {
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return false
	}
	total := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	return total <= 0 || time.Since(claims.IssuedAt.Time) > total/2
}
