package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/user/eazybee/internal/model"
	"github.com/user/eazybee/internal/repository"
)

// ErrValidation 表单校验失败
var ErrValidation = errors.New("validation failed")

// AdminStats 后台概览
type AdminStats struct {
	TotalContent  int `json:"totalContent"`
	Movies        int `json:"movies"`
	TVShows       int `json:"tvShows"`
	KDramas       int `json:"kdramas"`
	CDramas       int `json:"cdramas"`
	Users         int `json:"users"`
	Admins        int `json:"admins"`
	Announcements int `json:"announcements"`
}

// AdminService 后台管理：本地内容、用户、公告、站点设置
type AdminService struct {
	repos    *repository.Repositories
	validate *validator.Validate
	ids      *IDGenerator
	siteName string
	now      func() time.Time
}

func NewAdminService(repos *repository.Repositories, validate *validator.Validate, ids *IDGenerator, siteName string) *AdminService {
	return &AdminService{
		repos:    repos,
		validate: validate,
		ids:      ids,
		siteName: siteName,
		now:      time.Now,
	}
}

func (s *AdminService) check(v interface{}) error {
	if err := s.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, ValidationMessage(err))
	}
	return nil
}

// ValidationMessage 把校验错误转换为可读提示
func ValidationMessage(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "email":
			msgs = append(msgs, fe.Field()+" must be a valid email")
		case "oneof":
			msgs = append(msgs, fe.Field()+" must be one of: "+fe.Param())
		case "min":
			msgs = append(msgs, fe.Field()+" must be at least "+fe.Param())
		case "max":
			msgs = append(msgs, fe.Field()+" must be at most "+fe.Param())
		default:
			msgs = append(msgs, fe.Field()+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}

// Stats 统计各集合数量
func (s *AdminService) Stats() AdminStats {
	var stats AdminStats
	for _, item := range s.repos.Content.List() {
		stats.TotalContent++
		switch item.Type {
		case model.ContentTypeMovie:
			stats.Movies++
		case model.ContentTypeTV:
			stats.TVShows++
		case model.ContentTypeKDrama:
			stats.KDramas++
		case model.ContentTypeCDrama:
			stats.CDramas++
		}
	}
	for _, u := range s.repos.Users.List() {
		stats.Users++
		if u.Role == model.AppRoleAdmin {
			stats.Admins++
		}
	}
	stats.Announcements = len(s.repos.Announcements.List())
	return stats
}

// AddContent 校验后分配 id 并追加
func (s *AdminService) AddContent(item model.LocalContentItem) (model.LocalContentItem, error) {
	if item.Type == "" {
		item.Type = model.ContentTypeMovie
	}
	if err := s.check(item); err != nil {
		return item, err
	}
	item.ID = s.ids.Next()
	item.CreatedAt = model.ISOTime(s.now())
	return item, s.repos.Content.Add(item)
}

// UpdateContent 保留原 id 和创建时间
func (s *AdminService) UpdateContent(id int64, item model.LocalContentItem) (model.LocalContentItem, bool, error) {
	existing, ok := s.repos.Content.Get(id)
	if !ok {
		return item, false, nil
	}
	if err := s.check(item); err != nil {
		return item, true, err
	}
	item.ID = existing.ID
	item.CreatedAt = existing.CreatedAt
	found, err := s.repos.Content.Update(item)
	return item, found, err
}

func (s *AdminService) DeleteContent(id int64) (bool, error) {
	return s.repos.Content.Delete(id)
}

// AddUser 密码按原样保存
func (s *AdminService) AddUser(u model.AppUser) (model.AppUser, error) {
	if u.Role == "" {
		u.Role = model.AppRoleUser
	}
	if err := s.check(u); err != nil {
		return u, err
	}
	u.ID = s.ids.Next()
	u.CreatedAt = model.ISOTime(s.now())
	return u, s.repos.Users.Add(u)
}

// UpdateUser 密码留空时沿用原密码
func (s *AdminService) UpdateUser(id int64, u model.AppUser) (model.AppUser, bool, error) {
	existing, ok := s.repos.Users.Get(id)
	if !ok {
		return u, false, nil
	}
	if u.Password == "" {
		u.Password = existing.Password
	}
	if u.Role == "" {
		u.Role = existing.Role
	}
	if err := s.check(u); err != nil {
		return u, true, err
	}
	u.ID = existing.ID
	u.CreatedAt = existing.CreatedAt
	found, err := s.repos.Users.Update(u)
	return u, found, err
}

func (s *AdminService) DeleteUser(id int64) (bool, error) {
	return s.repos.Users.Delete(id)
}

// AddAnnouncement 过期时间只做展示
func (s *AdminService) AddAnnouncement(a model.Announcement) (model.Announcement, error) {
	if a.Type == "" {
		a.Type = model.AnnouncementInfo
	}
	if err := s.check(a); err != nil {
		return a, err
	}
	a.ID = s.ids.Next()
	a.CreatedAt = model.ISOTime(s.now())
	return a, s.repos.Announcements.Add(a)
}

func (s *AdminService) DeleteAnnouncement(id int64) (bool, error) {
	return s.repos.Announcements.Delete(id)
}

// Settings 当前站点设置
func (s *AdminService) Settings() model.SiteSettings {
	return s.repos.Settings.Load(model.DefaultSiteSettings(s.siteName))
}

func (s *AdminService) SaveSettings(settings model.SiteSettings) (model.SiteSettings, error) {
	if err := s.check(settings); err != nil {
		return settings, err
	}
	return settings, s.repos.Settings.Save(settings)
}
