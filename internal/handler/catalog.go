package handler

import (
	"context"
	"errors"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/user/eazybee/internal/model"
	"github.com/user/eazybee/internal/service"
	"github.com/user/eazybee/internal/utils"
)

// catalogError 把片源目录错误转换为响应
func catalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		utils.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrNotFound):
		utils.NotFound(c, service.UserMessage(err))
	case errors.Is(err, service.ErrRateLimited):
		utils.TooManyRequests(c, service.UserMessage(err))
	default:
		log.Printf("[Catalog] %s 失败: %v", c.Request.URL.Path, err)
		utils.BadGateway(c, service.UserMessage(err))
	}
}

func queryPage(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Trending 热门趋势，缺少 media_type 的条目按请求类型补全，all 时补为 movie
func (h *Handler) Trending(c *gin.Context) {
	mediaType := c.Param("mediaType")
	payload, err := h.Catalog.Trending(c.Request.Context(), mediaType, c.Param("window"))
	if err != nil {
		catalogError(c, err)
		return
	}
	tag := mediaType
	if tag == "all" {
		tag = model.MediaTypeMovie
	}
	utils.Success(c, service.TagResults(payload, tag, false))
}

// Popular 流行
func (h *Handler) Popular(c *gin.Context) {
	mediaType := c.Param("mediaType")
	payload, err := h.Catalog.Popular(c.Request.Context(), mediaType)
	if err != nil {
		catalogError(c, err)
		return
	}
	utils.Success(c, service.TagResults(payload, mediaType, true))
}

// Details 详情，附带解析后的海报和背景图地址
func (h *Handler) Details(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	payload, err := h.Catalog.Details(c.Request.Context(), c.Param("mediaType"), id)
	if err != nil {
		catalogError(c, err)
		return
	}

	out := make(service.Payload, len(payload)+2)
	for k, v := range payload {
		out[k] = v
	}
	poster, _ := payload["poster_path"].(string)
	backdrop, _ := payload["backdrop_path"].(string)
	out["poster_url"] = h.Catalog.ImageURL(poster, "w500")
	out["backdrop_url"] = h.Catalog.ImageURL(backdrop, "original")
	utils.Success(c, out)
}

// Videos 预告片等视频
func (h *Handler) Videos(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	payload, err := h.Catalog.Videos(c.Request.Context(), c.Param("mediaType"), id)
	if err != nil {
		catalogError(c, err)
		return
	}
	utils.Success(c, payload)
}

// Recommendations 推荐
func (h *Handler) Recommendations(c *gin.Context) {
	h.related(c, h.Catalog.Recommendations)
}

// Similar 相似内容
func (h *Handler) Similar(c *gin.Context) {
	h.related(c, h.Catalog.Similar)
}

func (h *Handler) related(c *gin.Context, fetch func(context.Context, string, int64) (service.Payload, error)) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	mediaType := c.Param("mediaType")
	payload, err := fetch(c.Request.Context(), mediaType, id)
	if err != nil {
		catalogError(c, err)
		return
	}
	utils.Success(c, service.TagResults(payload, mediaType, true))
}

// Search 多类型搜索
func (h *Handler) Search(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		utils.BadRequest(c, "query is required")
		return
	}
	payload, err := h.Catalog.Search(c.Request.Context(), query, queryPage(c))
	if err != nil {
		catalogError(c, err)
		return
	}
	utils.Success(c, payload)
}

// Discover 按类型浏览
func (h *Handler) Discover(c *gin.Context) {
	mediaType := c.Param("mediaType")
	genreID, err := strconv.ParseInt(c.Query("genre"), 10, 64)
	if err != nil || genreID <= 0 {
		utils.BadRequest(c, "genre is required")
		return
	}
	payload, err := h.Catalog.ByGenre(c.Request.Context(), mediaType, genreID, queryPage(c))
	if err != nil {
		catalogError(c, err)
		return
	}
	utils.Success(c, service.TagResults(payload, mediaType, true))
}

// Genres 类型列表
func (h *Handler) Genres(c *gin.Context) {
	payload, err := h.Catalog.Genres(c.Request.Context(), c.Param("mediaType"))
	if err != nil {
		catalogError(c, err)
		return
	}
	utils.Success(c, payload)
}

// LocalContent 本地内容，type 可为具体类型或 series（tv/韩剧/国剧）
func (h *Handler) LocalContent(c *gin.Context) {
	content := h.repos(c).Content
	var items []model.LocalContentItem
	switch t := c.Query("type"); t {
	case "":
		items = content.List()
	case "series":
		for _, item := range content.List() {
			if item.IsSeries() {
				items = append(items, item)
			}
		}
	case model.ContentTypeMovie, model.ContentTypeTV, model.ContentTypeKDrama, model.ContentTypeCDrama:
		items = content.ListByType(t)
	default:
		utils.BadRequest(c, "Unknown content type: "+t)
		return
	}

	out := make([]model.LocalMedia, 0, len(items))
	for _, item := range items {
		out = append(out, item.ToMedia())
	}
	utils.Success(c, out)
}

// Announcements 公告列表
func (h *Handler) Announcements(c *gin.Context) {
	utils.Success(c, h.repos(c).Announcements.List())
}
