package model

// 会话角色
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// 后台用户角色
const (
	AppRoleUser  = "user"
	AppRoleAdmin = "admin"
)

// SessionUser 当前登录身份（存储在 eazybee-user）
// 与后台管理的 AppUser 无关，登录时直接合成
type SessionUser struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	ProfileImage string `json:"profileImage,omitempty"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
	Age          string `json:"age,omitempty"`
	Gender       string `json:"gender,omitempty"`
	Address      string `json:"address,omitempty"`
	Occupation   string `json:"occupation,omitempty"`
	Company      string `json:"company,omitempty"`
	Bio          string `json:"bio,omitempty"`
}

// IsAdmin 是否管理员
func (u *SessionUser) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// ProfileUpdate 个人资料局部更新，nil 字段保持不变
type ProfileUpdate struct {
	Name         *string `json:"name,omitempty"`
	ProfileImage *string `json:"profileImage,omitempty"`
	PhoneNumber  *string `json:"phoneNumber,omitempty"`
	Age          *string `json:"age,omitempty"`
	Gender       *string `json:"gender,omitempty"`
	Address      *string `json:"address,omitempty"`
	Occupation   *string `json:"occupation,omitempty"`
	Company      *string `json:"company,omitempty"`
	Bio          *string `json:"bio,omitempty"`
}

// Apply 合并到用户上
func (p ProfileUpdate) Apply(u *SessionUser) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&u.Name, p.Name)
	set(&u.ProfileImage, p.ProfileImage)
	set(&u.PhoneNumber, p.PhoneNumber)
	set(&u.Age, p.Age)
	set(&u.Gender, p.Gender)
	set(&u.Address, p.Address)
	set(&u.Occupation, p.Occupation)
	set(&u.Company, p.Company)
	set(&u.Bio, p.Bio)
}

// AppUser 后台管理的模拟用户，密码按原样保存
type AppUser struct {
	ID             int64  `json:"id"`
	FullName       string `json:"fullName" validate:"required,max=100"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	Role           string `json:"role" validate:"oneof=user admin"`
	ProfilePicture *Asset `json:"profilePicture,omitempty"`
	CreatedAt      string `json:"createdAt,omitempty"`
}
