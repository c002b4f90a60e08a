package repository

import (
	"github.com/user/eazybee/internal/model"
	"github.com/user/eazybee/internal/storage"
)

const (
	defaultRuntime  = 120
	maxProgress     = 100
	DefaultProgress = 10
)

type ContinueWatchingRepository struct {
	items *Collection[model.ContinueWatchingEntry]
}

func NewContinueWatchingRepository(store storage.Store) *ContinueWatchingRepository {
	return &ContinueWatchingRepository{
		items: NewCollection[model.ContinueWatchingEntry](store, KeyContinueWatching),
	}
}

// 只按 id 判断，不区分 media_type
func sameID(id int64) func(model.ContinueWatchingEntry) bool {
	return func(e model.ContinueWatchingEntry) bool {
		return e.ID == id
	}
}

// List 继续观看列表
func (r *ContinueWatchingRepository) List() []model.ContinueWatchingEntry {
	return r.items.Read()
}

// Start 开始观看，已在列表中时保持原进度不变
func (r *ContinueWatchingRepository) Start(entry model.ContinueWatchingEntry) (model.ContinueWatchingEntry, error) {
	if existing, ok := r.items.Find(sameID(entry.ID)); ok {
		return existing, nil
	}
	entry.Progress = 0
	if entry.Runtime <= 0 {
		entry.Runtime = defaultRuntime
	}
	entry.LastWatched = model.ISOTime(now())
	return entry, r.items.Prepend(entry)
}

// Advance 推进观看进度（上限 100），并移到最前
func (r *ContinueWatchingRepository) Advance(id int64, step int) (model.ContinueWatchingEntry, bool, error) {
	entry, ok := r.items.Find(sameID(id))
	if !ok {
		return model.ContinueWatchingEntry{}, false, nil
	}
	if step <= 0 {
		step = DefaultProgress
	}
	entry.Progress = min(entry.Progress+step, maxProgress)
	entry.LastWatched = model.ISOTime(now())
	return entry, true, r.items.UpsertFront(sameID(id), entry)
}

// Remove 从继续观看中移除
func (r *ContinueWatchingRepository) Remove(id int64) (bool, error) {
	n, err := r.items.RemoveWhere(sameID(id))
	return n > 0, err
}
