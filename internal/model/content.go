package model

// 本地内容类型
const (
	ContentTypeMovie  = "movie"
	ContentTypeTV     = "tv"
	ContentTypeKDrama = "kdrama"
	ContentTypeCDrama = "cdrama"
)

// Asset 上传的文件（海报、视频、头像、横幅）
type Asset struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// LocalContentItem 管理员添加的本地内容，id 为创建时的毫秒时间戳
type LocalContentItem struct {
	ID          int64  `json:"id"`
	Title       string `json:"title" validate:"required,max=200"`
	Type        string `json:"type" validate:"oneof=movie tv kdrama cdrama"`
	Description string `json:"description" validate:"max=5000"`
	Genre       string `json:"genre"`
	ReleaseYear int    `json:"releaseYear" validate:"omitempty,min=1870,max=2200"`
	Duration    int    `json:"duration" validate:"omitempty,min=1"`
	Cast        string `json:"cast"`
	Poster      *Asset `json:"poster,omitempty"`
	Video       *Asset `json:"video,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

// IsSeries 剧集类（tv / 韩剧 / 国剧）
func (i *LocalContentItem) IsSeries() bool {
	return i.Type == ContentTypeTV || i.Type == ContentTypeKDrama || i.Type == ContentTypeCDrama
}

// LocalMedia 本地内容在片单中的展示形态
type LocalMedia struct {
	LocalContentItem
	MediaType  string `json:"media_type"`
	PosterPath string `json:"poster_path"`
}

// ToMedia 转换为片单展示形态
func (i LocalContentItem) ToMedia() LocalMedia {
	m := LocalMedia{LocalContentItem: i, MediaType: MediaTypeLocal}
	if i.Poster != nil {
		m.PosterPath = i.Poster.URL
	}
	return m
}

// 公告类型
const (
	AnnouncementInfo        = "info"
	AnnouncementNew         = "new"
	AnnouncementUpdate      = "update"
	AnnouncementMaintenance = "maintenance"
)

// Announcement 公告，expiryDate 只用于展示，不做过期清理
type Announcement struct {
	ID          int64  `json:"id"`
	Title       string `json:"title" validate:"required,max=200"`
	Message     string `json:"message" validate:"required,max=5000"`
	Type        string `json:"type" validate:"oneof=info new update maintenance"`
	ExpiryDate  string `json:"expiryDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	BannerImage *Asset `json:"bannerImage,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

// SiteSettings 后台站点设置
type SiteSettings struct {
	SiteName           string `json:"siteName" validate:"required,max=100"`
	MaintenanceMode    bool   `json:"maintenanceMode"`
	AllowRegistration  bool   `json:"allowRegistration"`
	EmailNotifications bool   `json:"emailNotifications"`
	DarkMode           bool   `json:"darkMode"`
}

// DefaultSiteSettings 默认站点设置
func DefaultSiteSettings(siteName string) SiteSettings {
	return SiteSettings{
		SiteName:           siteName,
		AllowRegistration:  true,
		EmailNotifications: true,
		DarkMode:           true,
	}
}
