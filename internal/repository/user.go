package repository

import (
	"github.com/user/eazybee/internal/model"
	"github.com/user/eazybee/internal/storage"
)

// UserRepository 后台管理的用户列表，登录流程不读取它
type UserRepository struct {
	items *Collection[model.AppUser]
}

func NewUserRepository(store storage.Store) *UserRepository {
	return &UserRepository{items: NewCollection[model.AppUser](store, KeyUsers)}
}

func userID(id int64) func(model.AppUser) bool {
	return func(u model.AppUser) bool { return u.ID == id }
}

func (r *UserRepository) List() []model.AppUser {
	return r.items.Read()
}

func (r *UserRepository) Get(id int64) (model.AppUser, bool) {
	return r.items.Find(userID(id))
}

func (r *UserRepository) Add(u model.AppUser) error {
	return r.items.Append(u)
}

func (r *UserRepository) Update(u model.AppUser) (bool, error) {
	return r.items.ReplaceWhere(userID(u.ID), u)
}

func (r *UserRepository) Delete(id int64) (bool, error) {
	n, err := r.items.RemoveWhere(userID(id))
	return n > 0, err
}
