package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/fitdesk/scheduling-api/internal/domain/booking"
	"github.com/fitdesk/scheduling-api/internal/httperr"
	"github.com/fitdesk/scheduling-api/internal/httpresp"
	"github.com/fitdesk/scheduling-api/internal/middleware"
	"github.com/fitdesk/scheduling-api/internal/models"
)

type AvailabilityHandler struct {
	db *gorm.DB
}

func NewAvailabilityHandler(db *gorm.DB) *AvailabilityHandler {
	return &AvailabilityHandler{db: db}
}

type availabilitySlotConfig struct {
	DayOfWeek       int    `json:"dayOfWeek" binding:"min=0,max=6"`
	StartTime       string `json:"startTime" binding:"required"`
	EndTime         string `json:"endTime" binding:"required"`
	SlotDurationMin int    `json:"slotDurationMin"`
	Active          *bool  `json:"active"`
}

type setAvailabilityRequest struct {
	Slots []availabilitySlotConfig `json:"slots"`
}

func (h *AvailabilityHandler) Get(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	trainerID := c.MustGet(middleware.ContextUserID).(uint)
	if idStr := c.Param("userId"); idStr != "" {
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			httpresp.WriteError(c, httperr.Validation("invalid_user_id", "userId must be numeric"))
			return
		}
		trainerID = uint(id)
	}

	var patterns []models.AvailabilityPattern
	if err := h.db.WithContext(c).
		Where("tenant_id = ? AND trainer_id = ? AND active = ?", tenantID, trainerID, true).
		Order("day_of_week ASC, start_time ASC").
		Find(&patterns).Error; err != nil {
		httpresp.WriteError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"slots": patterns})
}

// Replace swaps the caller's full weekly pattern set. Overlapping active
// patterns for the same day are rejected before anything is written.
func (h *AvailabilityHandler) Replace(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	trainerID := c.MustGet(middleware.ContextUserID).(uint)

	var req setAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpresp.WriteError(c, httperr.Validation("invalid_request", "Invalid availability payload"))
		return
	}

	patterns := make([]models.AvailabilityPattern, 0, len(req.Slots))
	for _, s := range req.Slots {
		active := true
		if s.Active != nil {
			active = *s.Active
		}
		dur := s.SlotDurationMin
		if dur <= 0 {
			dur = 60
		}
		patterns = append(patterns, models.AvailabilityPattern{
			TenantID:        tenantID,
			TrainerID:       trainerID,
			DayOfWeek:       s.DayOfWeek,
			StartTime:       s.StartTime,
			EndTime:         s.EndTime,
			SlotDurationMin: dur,
			Active:          active,
		})
	}

	if err := domain.ValidatePatterns(patterns); err != nil {
		httpresp.WriteError(c, err)
		return
	}

	err := h.db.WithContext(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("tenant_id = ? AND trainer_id = ?", tenantID, trainerID).
			Delete(&models.AvailabilityPattern{}).Error; err != nil {
			return err
		}
		if len(patterns) == 0 {
			return nil
		}
		return tx.Create(&patterns).Error
	})
	if err != nil {
		httpresp.WriteError(c, err)
		return
	}

	httpresp.Message(c, "Availability updated")
}
