package repository

import (
	"github.com/user/eazybee/internal/model"
	"github.com/user/eazybee/internal/storage"
)

// ContentRepository 管理员添加的本地内容
type ContentRepository struct {
	items *Collection[model.LocalContentItem]
}

func NewContentRepository(store storage.Store) *ContentRepository {
	return &ContentRepository{items: NewCollection[model.LocalContentItem](store, KeyContent)}
}

func contentID(id int64) func(model.LocalContentItem) bool {
	return func(i model.LocalContentItem) bool { return i.ID == id }
}

func (r *ContentRepository) List() []model.LocalContentItem {
	return r.items.Read()
}

// ListByType 按类型筛选，types 为空时返回全部
func (r *ContentRepository) ListByType(types ...string) []model.LocalContentItem {
	all := r.items.Read()
	if len(types) == 0 {
		return all
	}
	out := make([]model.LocalContentItem, 0, len(all))
	for _, item := range all {
		for _, t := range types {
			if item.Type == t {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

func (r *ContentRepository) Get(id int64) (model.LocalContentItem, bool) {
	return r.items.Find(contentID(id))
}

// Add 追加内容，不检查重复
func (r *ContentRepository) Add(item model.LocalContentItem) error {
	return r.items.Append(item)
}

func (r *ContentRepository) Update(item model.LocalContentItem) (bool, error) {
	return r.items.ReplaceWhere(contentID(item.ID), item)
}

// Delete 只删除内容本身，不影响待看、继续观看和评论
func (r *ContentRepository) Delete(id int64) (bool, error) {
	n, err := r.items.RemoveWhere(contentID(id))
	return n > 0, err
}
