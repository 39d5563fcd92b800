package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fitdesk/scheduling-api/internal/httperr"
	"github.com/fitdesk/scheduling-api/internal/httpresp"
	"github.com/fitdesk/scheduling-api/internal/middleware"
	"github.com/fitdesk/scheduling-api/internal/models"
	"github.com/fitdesk/scheduling-api/internal/timezone"
	ucBooking "github.com/fitdesk/scheduling-api/internal/usecase/booking"
)

type AppointmentHandler struct {
	db *gorm.DB
	tz string

	slotsUC  *ucBooking.GetAvailableSlots
	createUC *ucBooking.CreateAppointment
	updateUC *ucBooking.UpdateAppointment
	statusUC *ucBooking.UpdateAppointmentStatus
}

func NewAppointmentHandler(
	db *gorm.DB,
	tz string,
	slotsUC *ucBooking.GetAvailableSlots,
	createUC *ucBooking.CreateAppointment,
	updateUC *ucBooking.UpdateAppointment,
	statusUC *ucBooking.UpdateAppointmentStatus,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:       db,
		tz:       tz,
		slotsUC:  slotsUC,
		createUC: createUC,
		updateUC: updateUC,
		statusUC: statusUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type createAppointmentRequest struct {
	ClientID        uint   `json:"clientId" binding:"required"`
	TrainerID       uint   `json:"trainerId" binding:"required"`
	StartDatetime   string `json:"startDatetime" binding:"required"`
	EndDatetime     string `json:"endDatetime" binding:"required"`
	AppointmentType string `json:"appointmentType"`
	Location        string `json:"location"`
	Notes           string `json:"notes"`
}

type updateAppointmentRequest struct {
	ClientID        *uint   `json:"clientId"`
	TrainerID       *uint   `json:"trainerId"`
	StartDatetime   *string `json:"startDatetime"`
	EndDatetime     *string `json:"endDatetime"`
	AppointmentType *string `json:"appointmentType"`
	Location        *string `json:"location"`
	Notes           *string `json:"notes"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// SLOTS
// ======================================================

func (h *AppointmentHandler) Slots(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	trainerIDStr := c.Query("trainerId")
	dateStr := c.Query("date")
	if trainerIDStr == "" || dateStr == "" {
		httpresp.WriteError(c, httperr.Validation("missing_params", "trainerId and date are required"))
		return
	}

	trainerID, err := strconv.ParseUint(trainerIDStr, 10, 64)
	if err != nil {
		httpresp.WriteError(c, httperr.Validation("invalid_trainer_id", "trainerId must be numeric"))
		return
	}

	date, err := timezone.ParseDate(h.tz, dateStr)
	if err != nil {
		httpresp.WriteError(c, httperr.Validation("invalid_date", "date must be YYYY-MM-DD"))
		return
	}

	slots, err := h.slotsUC.Execute(c, tenantID, uint(trainerID), date)
	if err != nil {
		httpresp.WriteError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"slots": slots})
}

// ======================================================
// LIST / GET / TODAY
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	page, limit := paginationParams(c, 50)

	q := h.db.WithContext(c).
		Model(&models.Appointment{}).
		Where("tenant_id = ?", tenantID)

	if v := c.Query("clientId"); v != "" {
		q = q.Where("client_id = ?", v)
	}
	if v := c.Query("trainerId"); v != "" {
		q = q.Where("trainer_id = ?", v)
	}
	if v := c.Query("status"); v != "" {
		q = q.Where("status = ?", v)
	}
	if v := c.Query("startDate"); v != "" {
		from, err := timezone.ParseDate(h.tz, v)
		if err != nil {
			httpresp.WriteError(c, httperr.Validation("invalid_date", "startDate must be YYYY-MM-DD"))
			return
		}
		q = q.Where("start_datetime >= ?", from)
	}
	if v := c.Query("endDate"); v != "" {
		to, err := timezone.ParseDate(h.tz, v)
		if err != nil {
			httpresp.WriteError(c, httperr.Validation("invalid_date", "endDate must be YYYY-MM-DD"))
			return
		}
		// endDate is the last included day; the bound excludes the
		// following midnight.
		q = q.Where("end_datetime < ?", to.AddDate(0, 0, 1))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httpresp.WriteError(c, err)
		return
	}

	var aps []models.Appointment
	if err := q.
		Order("start_datetime ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&aps).Error; err != nil {
		httpresp.WriteError(c, err)
		return
	}

	httpresp.List(c, "appointments", aps, httpresp.NewPagination(page, limit, total))
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var ap models.Appointment
	if err := h.db.WithContext(c).
		Where("id = ? AND tenant_id = ?", c.Param("id"), tenantID).
		First(&ap).Error; err != nil {
		httpresp.WriteError(c, httperr.NotFound("appointment_not_found", "Appointment not found"))
		return
	}

	httpresp.OK(c, gin.H{"appointment": ap})
}

func (h *AppointmentHandler) Today(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	now := timezone.NowIn(h.tz)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)

	q := h.db.WithContext(c).
		Where(
			"tenant_id = ? AND status <> 'cancelled' AND start_datetime >= ? AND start_datetime < ?",
			tenantID, start, end,
		)
	if v := c.Query("trainerId"); v != "" {
		q = q.Where("trainer_id = ?", v)
	}

	var aps []models.Appointment
	if err := q.Order("start_datetime ASC").Find(&aps).Error; err != nil {
		httpresp.WriteError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"appointments": aps})
}

// ======================================================
// CREATE / UPDATE / STATUS / DELETE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var req createAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpresp.WriteError(c, httperr.Validation("missing_fields",
			"clientId, trainerId, startDatetime and endDatetime are required"))
		return
	}

	start, err := timezone.ParseDateTime(h.tz, req.StartDatetime)
	if err != nil {
		httpresp.WriteError(c, httperr.Validation("invalid_datetime", "startDatetime is not a valid datetime"))
		return
	}
	end, err := timezone.ParseDateTime(h.tz, req.EndDatetime)
	if err != nil {
		httpresp.WriteError(c, httperr.Validation("invalid_datetime", "endDatetime is not a valid datetime"))
		return
	}

	ap, err := h.createUC.Execute(c, tenantID, ucBooking.CreateAppointmentInput{
		ClientID:        req.ClientID,
		TrainerID:       req.TrainerID,
		StartDatetime:   start,
		EndDatetime:     end,
		AppointmentType: req.AppointmentType,
		Location:        req.Location,
		Notes:           req.Notes,
	})
	if err != nil {
		httpresp.WriteError(c, err)
		return
	}

	httpresp.Created(c, gin.H{"id": ap.ID})
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httpresp.WriteError(c, httperr.Validation("invalid_id", "id must be numeric"))
		return
	}

	var req updateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpresp.WriteError(c, httperr.Validation("invalid_request", "Invalid appointment payload"))
		return
	}

	in := ucBooking.UpdateAppointmentInput{
		ClientID:        req.ClientID,
		TrainerID:       req.TrainerID,
		AppointmentType: req.AppointmentType,
		Location:        req.Location,
		Notes:           req.Notes,
	}

	if req.StartDatetime != nil {
		start, err := timezone.ParseDateTime(h.tz, *req.StartDatetime)
		if err != nil {
			httpresp.WriteError(c, httperr.Validation("invalid_datetime", "startDatetime is not a valid datetime"))
			return
		}
		in.StartDatetime = &start
	}
	if req.EndDatetime != nil {
		end, err := timezone.ParseDateTime(h.tz, *req.EndDatetime)
		if err != nil {
			httpresp.WriteError(c, httperr.Validation("invalid_datetime", "endDatetime is not a valid datetime"))
			return
		}
		in.EndDatetime = &end
	}

	if _, err := h.updateUC.Execute(c, tenantID, uint(id), in); err != nil {
		httpresp.WriteError(c, err)
		return
	}

	httpresp.Message(c, "Appointment updated")
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httpresp.WriteError(c, httperr.Validation("invalid_id", "id must be numeric"))
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpresp.WriteError(c, httperr.Validation("missing_status", "status is required"))
		return
	}

	if _, err := h.statusUC.Execute(c, tenantID, uint(id), req.Status); err != nil {
		httpresp.WriteError(c, err)
		return
	}

	httpresp.Message(c, "Status updated")
}

// Delete is unconditional and idempotent: removing an id that does not
// exist still reports success.
func (h *AppointmentHandler) Delete(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	if err := h.db.WithContext(c).
		Where("id = ? AND tenant_id = ?", c.Param("id"), tenantID).
		Delete(&models.Appointment{}).Error; err != nil {
		httpresp.WriteError(c, err)
		return
	}

	httpresp.Message(c, "Appointment deleted")
}

func paginationParams(c *gin.Context, defaultLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if limit < 1 || limit > 200 {
		limit = defaultLimit
	}
	return page, limit
}
