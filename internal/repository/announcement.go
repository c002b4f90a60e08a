package repository

import (
	"github.com/user/eazybee/internal/model"
	"github.com/user/eazybee/internal/storage"
)

// AnnouncementRepository 公告，过期时间不做清理
type AnnouncementRepository struct {
	items *Collection[model.Announcement]
}

func NewAnnouncementRepository(store storage.Store) *AnnouncementRepository {
	return &AnnouncementRepository{items: NewCollection[model.Announcement](store, KeyAnnouncements)}
}

func (r *AnnouncementRepository) List() []model.Announcement {
	return r.items.Read()
}

func (r *AnnouncementRepository) Add(a model.Announcement) error {
	return r.items.Append(a)
}

func (r *AnnouncementRepository) Delete(id int64) (bool, error) {
	n, err := r.items.RemoveWhere(func(a model.Announcement) bool { return a.ID == id })
	return n > 0, err
}
