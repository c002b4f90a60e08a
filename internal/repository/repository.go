// Package repository 在键值存储上实现各个本地集合
package repository

import (
	"fmt"

	"github.com/user/eazybee/internal/events"
	"github.com/user/eazybee/internal/storage"
)

// 存储 key，与浏览器端保持一致
const (
	KeyToken            = "eazybee-token"
	KeyUser             = "eazybee-user"
	KeyContent          = "eazybee-content"
	KeyUsers            = "eazybee-users"
	KeyAnnouncements    = "eazybee-announcements"
	KeyWatchlist        = "watchlist"
	KeyWatchHistory     = "watch-history"
	KeyContinueWatching = "eazybee-continue-watching"
	KeySettings         = "eazybee-settings"
)

// CommentsKey 单个媒体的评论 key
func CommentsKey(mediaType string, mediaID int64) string {
	return fmt.Sprintf("comments-%s-%d", mediaType, mediaID)
}

// Repositories 一个客户端命名空间下的全部集合
type Repositories struct {
	Watchlist        *WatchlistRepository
	History          *HistoryRepository
	ContinueWatching *ContinueWatchingRepository
	Content          *ContentRepository
	Users            *UserRepository
	Announcements    *AnnouncementRepository
	Comments         *CommentRepository
	Session          *SessionRepository
	Settings         *SettingsRepository
}

// New 创建命名空间下的全部集合，pub 可以为 nil
func New(store storage.Store, pub events.Publisher) *Repositories {
	if pub == nil {
		pub = events.Discard
	}
	return &Repositories{
		Watchlist:        NewWatchlistRepository(store, pub),
		History:          NewHistoryRepository(store, pub),
		ContinueWatching: NewContinueWatchingRepository(store),
		Content:          NewContentRepository(store),
		Users:            NewUserRepository(store),
		Announcements:    NewAnnouncementRepository(store),
		Comments:         NewCommentRepository(store),
		Session:          NewSessionRepository(store),
		Settings:         NewSettingsRepository(store),
	}
}
