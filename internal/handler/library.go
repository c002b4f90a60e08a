package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/user/eazybee/internal/model"
	"github.com/user/eazybee/internal/utils"
)

// mediaRequest 待看、历史、继续观看共用的媒体字段
type mediaRequest struct {
	ID           int64  `json:"id" binding:"required,min=1"`
	MediaType    string `json:"media_type" binding:"required,oneof=movie tv local"`
	Title        string `json:"title"`
	Name         string `json:"name"`
	PosterPath   string `json:"poster_path"`
	BackdropPath string `json:"backdrop_path"`
}

// title 电影用 title，剧集用 name
func (r mediaRequest) title() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Name
}

type historyRequest struct {
	mediaRequest
	WatchedAt string `json:"watched_at"`
}

type continueRequest struct {
	mediaRequest
	Overview string `json:"overview"`
	Runtime  int    `json:"runtime" binding:"omitempty,min=1"`
	Duration int    `json:"duration" binding:"omitempty,min=1"`
}

type advanceRequest struct {
	Step int `json:"step" binding:"omitempty,min=1,max=100"`
}

func bindMedia(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequest(c, "Invalid media: "+err.Error())
		return false
	}
	return true
}

// Watchlist 待看清单
func (h *Handler) Watchlist(c *gin.Context) {
	utils.Success(c, h.repos(c).Watchlist.List())
}

// ToggleWatchlist 已在清单中则移除，否则加入
func (h *Handler) ToggleWatchlist(c *gin.Context) {
	var req mediaRequest
	if !bindMedia(c, &req) {
		return
	}

	entry := model.WatchlistEntry{
		ID:           req.ID,
		MediaType:    req.MediaType,
		Title:        req.title(),
		PosterPath:   req.PosterPath,
		BackdropPath: req.BackdropPath,
	}
	present, err := h.repos(c).Watchlist.Toggle(entry)

	message := "Removed " + entry.Title + " from your watchlist"
	if present {
		message = "Added " + entry.Title + " to your watchlist"
	}
	respondWrite(c, err, message, gin.H{"inWatchlist": present, "item": entry})
}

// WatchlistStatus 是否在待看清单
func (h *Handler) WatchlistStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	utils.Success(c, gin.H{"inWatchlist": h.repos(c).Watchlist.Contains(id, c.Param("mediaType"))})
}

// RemoveWatchlist 从待看清单移除
func (h *Handler) RemoveWatchlist(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	removed, err := h.repos(c).Watchlist.Remove(id, c.Param("mediaType"))
	if err == nil && !removed {
		utils.NotFound(c, "Not in your watchlist")
		return
	}
	respondWrite(c, err, "Removed from watchlist", nil)
}

// History 观看历史
func (h *Handler) History(c *gin.Context) {
	utils.Success(c, h.repos(c).History.List())
}

// RecordHistory 记录一次播放
func (h *Handler) RecordHistory(c *gin.Context) {
	var req historyRequest
	if !bindMedia(c, &req) {
		return
	}
	entry, err := h.repos(c).History.Record(model.WatchHistoryEntry{
		ID:           req.ID,
		Title:        req.title(),
		PosterPath:   req.PosterPath,
		BackdropPath: req.BackdropPath,
		MediaType:    req.MediaType,
		WatchedAt:    req.WatchedAt,
	})
	respondWrite(c, err, "Added to watch history", entry)
}

// RemoveHistory 删除单条历史
func (h *Handler) RemoveHistory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	removed, err := h.repos(c).History.Remove(id)
	if err == nil && !removed {
		utils.NotFound(c, "Not in your watch history")
		return
	}
	respondWrite(c, err, "Removed from watch history", nil)
}

// ClearHistory 清空历史
func (h *Handler) ClearHistory(c *gin.Context) {
	respondWrite(c, h.repos(c).History.Clear(), "Watch history cleared", nil)
}

// ContinueWatching 继续观看列表
func (h *Handler) ContinueWatching(c *gin.Context) {
	utils.Success(c, h.repos(c).ContinueWatching.List())
}

// StartWatching 加入继续观看，已存在时保持原进度
func (h *Handler) StartWatching(c *gin.Context) {
	var req continueRequest
	if !bindMedia(c, &req) {
		return
	}
	runtime := req.Runtime
	if runtime == 0 {
		runtime = req.Duration
	}
	entry, err := h.repos(c).ContinueWatching.Start(model.ContinueWatchingEntry{
		ID:           req.ID,
		MediaType:    req.MediaType,
		Title:        req.title(),
		PosterPath:   req.PosterPath,
		BackdropPath: req.BackdropPath,
		Overview:     req.Overview,
		Runtime:      runtime,
	})
	respondWrite(c, err, "success", entry)
}

// AdvanceWatching 推进进度
func (h *Handler) AdvanceWatching(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req advanceRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BadRequest(c, "Invalid step")
			return
		}
	}

	entry, found, err := h.repos(c).ContinueWatching.Advance(id, req.Step)
	if err == nil && !found {
		utils.NotFound(c, "Not in continue watching")
		return
	}
	respondWrite(c, err, "success", entry)
}

// RemoveWatching 从继续观看移除
func (h *Handler) RemoveWatching(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	removed, err := h.repos(c).ContinueWatching.Remove(id)
	if err == nil && !removed {
		utils.NotFound(c, "Not in continue watching")
		return
	}
	respondWrite(c, err, "Removed from continue watching", nil)
}
