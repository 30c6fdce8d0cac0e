package handler

import (
	"net/http"
	"strconv"

	"github.com/bruno-duarte/afinpe-api/internal/middleware"
	"github.com/bruno-duarte/afinpe-api/internal/models"
	"github.com/bruno-duarte/afinpe-api/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuditHandler lists the current user's audit trail.
type AuditHandler struct {
	DB       *gorm.DB
	PageSize int
}

func NewAuditHandler(db *gorm.DB, pageSize int) *AuditHandler {
	if pageSize <= 0 {
		pageSize = 50
	}
	return &AuditHandler{DB: db, PageSize: pageSize}
}

// ListLogs handles GET /logs, newest first, paginated.
func (h *AuditHandler) ListLogs(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(h.PageSize)))
	if size <= 0 || size > 200 {
		size = h.PageSize
	}

	base := h.DB.Model(&models.AuditLog{}).Where("user_id = ?", user.ID)
	if method := c.Query("method"); method != "" {
		base = base.Where("method = ?", method)
	}

	var count int64
	if err := base.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "count failed")
		return
	}

	var logs []models.AuditLog
	if err := base.Session(&gorm.Session{}).
		Order("created_at DESC, id DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&logs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "list failed")
		return
	}

	util.JSON(c, gin.H{
		"count":    count,
		"page":     page,
		"pageSize": size,
		"results":  logs,
	})
}
