package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/user/eazybee/internal/config"
	"github.com/user/eazybee/internal/model"
)

// 片源目录错误分类
var (
	ErrNotFound        = errors.New("catalog: not found")
	ErrRateLimited     = errors.New("catalog: rate limited")
	ErrRequestFailed   = errors.New("catalog: request failed")
	ErrInvalidArgument = errors.New("catalog: invalid argument")
)

// 面向用户的提示
const (
	msgNotFound    = "Content not found. It may have been removed or is unavailable."
	msgRateLimited = "Too many requests. Please try again later."
	msgOffline     = "Failed to fetch data. Please check your connection and try again."
)

const placeholderImage = "/placeholder.svg"

// CatalogError 片源目录请求失败
type CatalogError struct {
	Kind        error
	Status      int
	UserMessage string
	Err         error
}

func (e *CatalogError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%v (status %d)", e.Kind, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	return e.Kind.Error()
}

func (e *CatalogError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// UserMessage 错误对应的用户提示，非目录错误返回通用提示
func UserMessage(err error) string {
	var ce *CatalogError
	if errors.As(err, &ce) && ce.UserMessage != "" {
		return ce.UserMessage
	}
	return msgOffline
}

// Payload 原样返回的响应体
type Payload = map[string]any

// CatalogClient 片源目录（TMDB）客户端，无状态、不重试、不缓存
type CatalogClient struct {
	httpClient *http.Client
	baseURL    string
	imageBase  string
	apiKey     string
}

func NewCatalogClient(cfg *config.Config) *CatalogClient {
	return &CatalogClient{
		httpClient: &http.Client{Timeout: cfg.TMDBTimeout},
		baseURL:    cfg.TMDBBaseURL,
		imageBase:  cfg.TMDBImageBaseURL,
		apiKey:     cfg.TMDBAPIKey,
	}
}

// ImageURL 图片地址，path 为空时返回占位图
func (c *CatalogClient) ImageURL(path, size string) string {
	if path == "" {
		return placeholderImage
	}
	if size == "" {
		size = "w500"
	}
	return c.imageBase + "/" + size + path
}

func checkMediaType(mediaType string, allowAll bool) error {
	switch mediaType {
	case model.MediaTypeMovie, model.MediaTypeTV:
		return nil
	case "all":
		if allowAll {
			return nil
		}
	}
	return fmt.Errorf("%w: media type %q", ErrInvalidArgument, mediaType)
}

// Trending mediaType 为 all/movie/tv，window 为 day/week
func (c *CatalogClient) Trending(ctx context.Context, mediaType, window string) (Payload, error) {
	if err := checkMediaType(mediaType, true); err != nil {
		return nil, err
	}
	if window != "day" && window != "week" {
		return nil, fmt.Errorf("%w: time window %q", ErrInvalidArgument, window)
	}
	return c.get(ctx, "/trending/"+mediaType+"/"+window, nil)
}

func (c *CatalogClient) Popular(ctx context.Context, mediaType string) (Payload, error) {
	if err := checkMediaType(mediaType, false); err != nil {
		return nil, err
	}
	return c.get(ctx, "/"+mediaType+"/popular", nil)
}

func (c *CatalogClient) Details(ctx context.Context, mediaType string, id int64) (Payload, error) {
	return c.byID(ctx, mediaType, id, "")
}

func (c *CatalogClient) Videos(ctx context.Context, mediaType string, id int64) (Payload, error) {
	return c.byID(ctx, mediaType, id, "/videos")
}

func (c *CatalogClient) Recommendations(ctx context.Context, mediaType string, id int64) (Payload, error) {
	return c.byID(ctx, mediaType, id, "/recommendations")
}

func (c *CatalogClient) Similar(ctx context.Context, mediaType string, id int64) (Payload, error) {
	return c.byID(ctx, mediaType, id, "/similar")
}

func (c *CatalogClient) byID(ctx context.Context, mediaType string, id int64, suffix string) (Payload, error) {
	if err := checkMediaType(mediaType, false); err != nil {
		return nil, err
	}
	return c.get(ctx, "/"+mediaType+"/"+strconv.FormatInt(id, 10)+suffix, nil)
}

// Search 多类型搜索
func (c *CatalogClient) Search(ctx context.Context, query string, page int) (Payload, error) {
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("query", query)
	q.Set("page", strconv.Itoa(page))
	return c.get(ctx, "/search/multi", q)
}

// ByGenre 按类型发现
func (c *CatalogClient) ByGenre(ctx context.Context, mediaType string, genreID int64, page int) (Payload, error) {
	if err := checkMediaType(mediaType, false); err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("with_genres", strconv.FormatInt(genreID, 10))
	q.Set("page", strconv.Itoa(page))
	return c.get(ctx, "/discover/"+mediaType, q)
}

// Genres 类型列表
func (c *CatalogClient) Genres(ctx context.Context, mediaType string) (Payload, error) {
	if err := checkMediaType(mediaType, false); err != nil {
		return nil, err
	}
	return c.get(ctx, "/genre/"+mediaType+"/list", nil)
}

func (c *CatalogClient) get(ctx context.Context, endpoint string, query url.Values) (Payload, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)
	reqURL := c.baseURL + endpoint + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &CatalogError{Kind: ErrRequestFailed, UserMessage: msgOffline, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[Catalog] GET %s 请求失败: %v", endpoint, err)
		return nil, &CatalogError{Kind: ErrRequestFailed, UserMessage: msgOffline, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[Catalog] GET %s 返回 %d (%v)", endpoint, resp.StatusCode, time.Since(start))
		return nil, statusError(resp)
	}

	var payload Payload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("[Catalog] GET %s 响应解析失败: %v", endpoint, err)
		return nil, &CatalogError{Kind: ErrRequestFailed, UserMessage: msgOffline, Err: err}
	}
	return payload, nil
}

func statusError(resp *http.Response) *CatalogError {
	switch resp.StatusCode {
	case http.StatusNotFound:
		return &CatalogError{Kind: ErrNotFound, Status: resp.StatusCode, UserMessage: msgNotFound}
	case http.StatusTooManyRequests:
		return &CatalogError{Kind: ErrRateLimited, Status: resp.StatusCode, UserMessage: msgRateLimited}
	}

	var body struct {
		StatusMessage string `json:"status_message"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	_ = json.Unmarshal(data, &body)

	detail := body.StatusMessage
	if detail == "" {
		detail = strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	}
	return &CatalogError{
		Kind:        ErrRequestFailed,
		Status:      resp.StatusCode,
		UserMessage: "Failed to fetch data: " + detail,
	}
}

// TagResults 给 results 中的条目标记 media_type。
// overwrite 为 false 时只补全缺失或为空的字段。返回浅拷贝，不修改原响应。
func TagResults(payload Payload, mediaType string, overwrite bool) Payload {
	if payload == nil {
		return nil
	}
	out := make(Payload, len(payload))
	for k, v := range payload {
		out[k] = v
	}
	results, ok := payload["results"].([]any)
	if !ok {
		return out
	}
	tagged := make([]any, len(results))
	for i, r := range results {
		item, ok := r.(map[string]any)
		if !ok {
			tagged[i] = r
			continue
		}
		copied := make(map[string]any, len(item)+1)
		for k, v := range item {
			copied[k] = v
		}
		if current, _ := copied["media_type"].(string); overwrite || current == "" {
			copied["media_type"] = mediaType
		}
		tagged[i] = copied
	}
	out["results"] = tagged
	return out
}
