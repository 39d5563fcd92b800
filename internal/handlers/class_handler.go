package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fitdesk/scheduling-api/internal/httperr"
	"github.com/fitdesk/scheduling-api/internal/httpresp"
	"github.com/fitdesk/scheduling-api/internal/middleware"
	"github.com/fitdesk/scheduling-api/internal/models"
)

type ClassHandler struct {
	db *gorm.DB
}

func NewClassHandler(db *gorm.DB) *ClassHandler {
	return &ClassHandler{db: db}
}

type createClassRequest struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	InstructorID    uint   `json:"instructorId" binding:"required"`
	MaxParticipants int    `json:"maxParticipants"`
	DurationMin     int    `json:"durationMin"`
	Location        string `json:"location"`
}

type updateClassRequest struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	InstructorID    *uint   `json:"instructorId"`
	MaxParticipants *int    `json:"maxParticipants"`
	DurationMin     *int    `json:"durationMin"`
	Location        *string `json:"location"`
	Active          *bool   `json:"active"`
}

func (h *ClassHandler) List(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	page, limit := paginationParams(c, 20)

	q := h.db.WithContext(c).
		Model(&models.ClassDefinition{}).
		Where("tenant_id = ?", tenantID)

	if c.Query("activeOnly") == "true" {
		q = q.Where("active = ?", true)
	}
	if v := c.Query("instructorId"); v != "" {
		q = q.Where("instructor_id = ?", v)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httpresp.WriteError(c, err)
		return
	}

	var cls []models.ClassDefinition
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&cls).Error; err != nil {
		httpresp.WriteError(c, err)
		return
	}

	httpresp.List(c, "classes", cls, httpresp.NewPagination(page, limit, total))
}

func (h *ClassHandler) Get(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var cls models.ClassDefinition
	if err := h.db.WithContext(c).
		Where("id = ? AND tenant_id = ?", c.Param("id"), tenantID).
		First(&cls).Error; err != nil {
		httpresp.WriteError(c, httperr.NotFound("class_not_found", "Class not found"))
		return
	}

	httpresp.OK(c, gin.H{"class": cls})
}

func (h *ClassHandler) Create(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var req createClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpresp.WriteError(c, httperr.Validation("missing_fields", "name and instructorId are required"))
		return
	}

	if req.MaxParticipants <= 0 {
		req.MaxParticipants = 10
	}
	if req.DurationMin <= 0 {
		req.DurationMin = 60
	}

	cls := models.ClassDefinition{
		TenantID:        tenantID,
		Name:            req.Name,
		Description:     req.Description,
		InstructorID:    req.InstructorID,
		MaxParticipants: req.MaxParticipants,
		DurationMin:     req.DurationMin,
		Location:        req.Location,
		Active:          true,
	}

	if err := h.db.WithContext(c).Create(&cls).Error; err != nil {
		httpresp.WriteError(c, err)
		return
	}

	httpresp.Created(c, gin.H{"id": cls.ID})
}

func (h *ClassHandler) Update(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httpresp.WriteError(c, httperr.Validation("invalid_id", "id must be numeric"))
		return
	}

	var req updateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpresp.WriteError(c, httperr.Validation("invalid_request", "Invalid class payload"))
		return
	}

	var cls models.ClassDefinition
	if err := h.db.WithContext(c).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&cls).Error; err != nil {
		httpresp.WriteError(c, httperr.NotFound("class_not_found", "Class not found"))
		return
	}

	if req.Name != nil {
		cls.Name = *req.Name
	}
	if req.Description != nil {
		cls.Description = *req.Description
	}
	if req.InstructorID != nil {
		cls.InstructorID = *req.InstructorID
	}
	if req.MaxParticipants != nil && *req.MaxParticipants > 0 {
		cls.MaxParticipants = *req.MaxParticipants
	}
	if req.DurationMin != nil && *req.DurationMin > 0 {
		cls.DurationMin = *req.DurationMin
	}
	if req.Location != nil {
		cls.Location = *req.Location
	}
	if req.Active != nil {
		cls.Active = *req.Active
	}

	if err := h.db.WithContext(c).Save(&cls).Error; err != nil {
		httpresp.WriteError(c, err)
		return
	}

	httpresp.Message(c, "Class updated")
}

func (h *ClassHandler) Delete(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	if err := h.db.WithContext(c).
		Where("id = ? AND tenant_id = ?", c.Param("id"), tenantID).
		Delete(&models.ClassDefinition{}).Error; err != nil {
		httpresp.WriteError(c, err)
		return
	}

	httpresp.Message(c, "Class deleted")
}
