package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/user/eazybee/internal/utils"
)

const genreCacheTTL = 24 * time.Hour

// CatalogCache 查询缓存：相同查询合并为一次请求，成功结果按 TTL 缓存，失败不缓存
type CatalogCache struct {
	client *CatalogClient
	cache  *utils.QueryCache[Payload]
	group  singleflight.Group
}

func NewCatalogCache(client *CatalogClient, size int, ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		client: client,
		cache:  utils.NewQueryCache[Payload](size, ttl),
	}
}

// ImageURL 图片地址，path 为空时返回占位图
func (c *CatalogCache) ImageURL(path, size string) string {
	return c.client.ImageURL(path, size)
}

// load 合并相同 key 的并发请求。
// 共享的请求不受单个调用方取消的影响，只由客户端超时约束；每个调用方各自等待自己的 ctx。
func (c *CatalogCache) load(ctx context.Context, key string, fetch func(context.Context) (Payload, error)) (Payload, error) {
	if p, ok := c.cache.Get(key); ok {
		return p, nil
	}

	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (interface{}, error) {
		p, err := fetch(shared)
		if err != nil {
			return nil, err
		}
		c.cache.Set(key, p)
		return p, nil
	})

	select {
	case <-ctx.Done():
		return nil, &CatalogError{Kind: ErrRequestFailed, UserMessage: msgOffline, Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(Payload), nil
	}
}

func (c *CatalogCache) Trending(ctx context.Context, mediaType, window string) (Payload, error) {
	return c.load(ctx, "trending:"+mediaType+":"+window, func(ctx context.Context) (Payload, error) {
		return c.client.Trending(ctx, mediaType, window)
	})
}

func (c *CatalogCache) Popular(ctx context.Context, mediaType string) (Payload, error) {
	return c.load(ctx, "popular:"+mediaType, func(ctx context.Context) (Payload, error) {
		return c.client.Popular(ctx, mediaType)
	})
}

func (c *CatalogCache) Details(ctx context.Context, mediaType string, id int64) (Payload, error) {
	return c.load(ctx, fmt.Sprintf("details:%s:%d", mediaType, id), func(ctx context.Context) (Payload, error) {
		return c.client.Details(ctx, mediaType, id)
	})
}

func (c *CatalogCache) Videos(ctx context.Context, mediaType string, id int64) (Payload, error) {
	return c.load(ctx, fmt.Sprintf("videos:%s:%d", mediaType, id), func(ctx context.Context) (Payload, error) {
		return c.client.Videos(ctx, mediaType, id)
	})
}

func (c *CatalogCache) Recommendations(ctx context.Context, mediaType string, id int64) (Payload, error) {
	return c.load(ctx, fmt.Sprintf("recommendations:%s:%d", mediaType, id), func(ctx context.Context) (Payload, error) {
		return c.client.Recommendations(ctx, mediaType, id)
	})
}

func (c *CatalogCache) Similar(ctx context.Context, mediaType string, id int64) (Payload, error) {
	return c.load(ctx, fmt.Sprintf("similar:%s:%d", mediaType, id), func(ctx context.Context) (Payload, error) {
		return c.client.Similar(ctx, mediaType, id)
	})
}

func (c *CatalogCache) Search(ctx context.Context, query string, page int) (Payload, error) {
	return c.load(ctx, fmt.Sprintf("search:%s:%d", query, page), func(ctx context.Context) (Payload, error) {
		return c.client.Search(ctx, query, page)
	})
}

func (c *CatalogCache) ByGenre(ctx context.Context, mediaType string, genreID int64, page int) (Payload, error) {
	return c.load(ctx, fmt.Sprintf("discover:%s:%d:%d", mediaType, genreID, page), func(ctx context.Context) (Payload, error) {
		return c.client.ByGenre(ctx, mediaType, genreID, page)
	})
}

// Genres 类型列表很少变化，放在全局缓存里保留一天
func (c *CatalogCache) Genres(ctx context.Context, mediaType string) (Payload, error) {
	key := "catalog:genres:" + mediaType
	if v, ok := utils.CacheGet(key); ok {
		if p, ok := v.(Payload); ok {
			return p, nil
		}
	}
	p, err := c.load(ctx, "genres:"+mediaType, func(ctx context.Context) (Payload, error) {
		return c.client.Genres(ctx, mediaType)
	})
	if err != nil {
		return nil, err
	}
	utils.CacheSet(key, p, genreCacheTTL)
	return p, nil
}

// Purge 清空查询缓存
func (c *CatalogCache) Purge() {
	c.cache.Clear()
}
