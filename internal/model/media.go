package model

import "time"

// 媒体类型
const (
	MediaTypeMovie = "movie"
	MediaTypeTV    = "tv"
	MediaTypeLocal = "local"
)

// WatchlistEntry 待看清单条目，唯一键为 (id, media_type)
type WatchlistEntry struct {
	ID           int64  `json:"id"`
	MediaType    string `json:"media_type"`
	Title        string `json:"title"`
	PosterPath   string `json:"poster_path"`
	BackdropPath string `json:"backdrop_path"`
}

// WatchHistoryEntry 观看历史，唯一键只有 id，按时间倒序
type WatchHistoryEntry struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	PosterPath   string `json:"poster_path"`
	BackdropPath string `json:"backdrop_path"`
	MediaType    string `json:"media_type"`
	WatchedAt    string `json:"watched_at"`
}

// ContinueWatchingEntry 继续观看条目
// 唯一键只有 id，电影和剧集 id 相同时会互相覆盖
type ContinueWatchingEntry struct {
	ID           int64  `json:"id"`
	MediaType    string `json:"media_type"`
	Title        string `json:"title"`
	PosterPath   string `json:"poster_path"`
	BackdropPath string `json:"backdrop_path"`
	Overview     string `json:"overview,omitempty"`
	Progress     int    `json:"progress"` // 0..100
	Runtime      int    `json:"runtime"`  // 分钟
	LastWatched  string `json:"lastWatched"`
}

// CommentEntry 评论（按媒体存储，新的在前）
type CommentEntry struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	UserImage string `json:"userImage"`
	Content   string `json:"content"`
	Rating    int    `json:"rating"`
	Timestamp string `json:"timestamp"`
}

// ISOTime 与浏览器 Date.toISOString 相同的格式
func ISOTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
