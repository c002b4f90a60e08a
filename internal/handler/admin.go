package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/user/eazybee/internal/model"
	"github.com/user/eazybee/internal/service"
	"github.com/user/eazybee/internal/utils"
)

// ==================== 管理后台 ====================

// adminWrite 校验失败返回 400，其余交给 respondWrite
func adminWrite(c *gin.Context, err error, message string, data interface{}) {
	if errors.Is(err, service.ErrValidation) {
		utils.BadRequest(c, err.Error())
		return
	}
	respondWrite(c, err, message, data)
}

func bindAdmin(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}

// AdminStats 后台概览
func (h *Handler) AdminStats(c *gin.Context) {
	utils.Success(c, h.admin(c).Stats())
}

// AdminContent 本地内容列表
func (h *Handler) AdminContent(c *gin.Context) {
	utils.Success(c, h.repos(c).Content.List())
}

// AdminContentCreate 添加内容
func (h *Handler) AdminContentCreate(c *gin.Context) {
	var item model.LocalContentItem
	if !bindAdmin(c, &item) {
		return
	}
	item, err := h.admin(c).AddContent(item)
	adminWrite(c, err, `Content "`+item.Title+`" added successfully`, item)
}

// AdminContentUpdate 编辑内容
func (h *Handler) AdminContentUpdate(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var item model.LocalContentItem
	if !bindAdmin(c, &item) {
		return
	}
	item, found, err := h.admin(c).UpdateContent(id, item)
	if !found {
		utils.NotFound(c, "Content not found")
		return
	}
	adminWrite(c, err, `Content "`+item.Title+`" updated successfully`, item)
}

// AdminContentDelete 删除内容，不影响其他集合
func (h *Handler) AdminContentDelete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	deleted, err := h.admin(c).DeleteContent(id)
	if err == nil && !deleted {
		utils.NotFound(c, "Content not found")
		return
	}
	respondWrite(c, err, "Content deleted successfully", nil)
}

// AdminUsers 用户列表
func (h *Handler) AdminUsers(c *gin.Context) {
	utils.Success(c, h.repos(c).Users.List())
}

// AdminUserCreate 添加用户
func (h *Handler) AdminUserCreate(c *gin.Context) {
	var u model.AppUser
	if !bindAdmin(c, &u) {
		return
	}
	u, err := h.admin(c).AddUser(u)
	adminWrite(c, err, `User "`+u.FullName+`" added successfully`, u)
}

// AdminUserUpdate 编辑用户
func (h *Handler) AdminUserUpdate(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var u model.AppUser
	if !bindAdmin(c, &u) {
		return
	}
	u, found, err := h.admin(c).UpdateUser(id, u)
	if !found {
		utils.NotFound(c, "User not found")
		return
	}
	adminWrite(c, err, `User "`+u.FullName+`" updated successfully`, u)
}

// AdminUserDelete 删除用户
func (h *Handler) AdminUserDelete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	deleted, err := h.admin(c).DeleteUser(id)
	if err == nil && !deleted {
		utils.NotFound(c, "User not found")
		return
	}
	respondWrite(c, err, "User deleted successfully", nil)
}

// AdminAnnouncementCreate 发布公告
func (h *Handler) AdminAnnouncementCreate(c *gin.Context) {
	var a model.Announcement
	if !bindAdmin(c, &a) {
		return
	}
	a, err := h.admin(c).AddAnnouncement(a)
	adminWrite(c, err, `Announcement "`+a.Title+`" added successfully`, a)
}

// AdminAnnouncementDelete 删除公告
func (h *Handler) AdminAnnouncementDelete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	deleted, err := h.admin(c).DeleteAnnouncement(id)
	if err == nil && !deleted {
		utils.NotFound(c, "Announcement not found")
		return
	}
	respondWrite(c, err, "Announcement deleted successfully", nil)
}

// AdminSettings 站点设置
func (h *Handler) AdminSettings(c *gin.Context) {
	utils.Success(c, h.admin(c).Settings())
}

// AdminSettingsUpdate 保存站点设置
func (h *Handler) AdminSettingsUpdate(c *gin.Context) {
	var s model.SiteSettings
	if !bindAdmin(c, &s) {
		return
	}
	s, err := h.admin(c).SaveSettings(s)
	adminWrite(c, err, "Settings saved successfully", s)
}
