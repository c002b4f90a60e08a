package repository

import (
	"github.com/user/eazybee/internal/model"
	"github.com/user/eazybee/internal/storage"
)

// CommentRepository 评论按媒体分 key 存储，只增不改
type CommentRepository struct {
	store storage.Store
}

func NewCommentRepository(store storage.Store) *CommentRepository {
	return &CommentRepository{store: store}
}

func (r *CommentRepository) collection(mediaType string, mediaID int64) *Collection[model.CommentEntry] {
	return NewCollection[model.CommentEntry](r.store, CommentsKey(mediaType, mediaID))
}

// List 新的在前
func (r *CommentRepository) List(mediaType string, mediaID int64) []model.CommentEntry {
	return r.collection(mediaType, mediaID).Read()
}

func (r *CommentRepository) Add(mediaType string, mediaID int64, c model.CommentEntry) error {
	return r.collection(mediaType, mediaID).Prepend(c)
}
