package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/fitdesk/scheduling-api/internal/domain/classes"
	"github.com/fitdesk/scheduling-api/internal/httperr"
	"github.com/fitdesk/scheduling-api/internal/httpresp"
	"github.com/fitdesk/scheduling-api/internal/middleware"
	"github.com/fitdesk/scheduling-api/internal/models"
	"github.com/fitdesk/scheduling-api/internal/notify"
	"github.com/fitdesk/scheduling-api/internal/timezone"
)

type SessionHandler struct {
	db       *gorm.DB
	tz       string
	notifier *notify.Dispatcher
}

func NewSessionHandler(db *gorm.DB, tz string, notifier *notify.Dispatcher) *SessionHandler {
	return &SessionHandler{db: db, tz: tz, notifier: notifier}
}

type createSessionRequest struct {
	ClassID       uint   `json:"classId" binding:"required"`
	StartDatetime string `json:"startDatetime" binding:"required"`
	EndDatetime   string `json:"endDatetime"`
	Notes         string `json:"notes"`
}

type sessionView struct {
	models.ClassSession
	EnrolledCount int64 `json:"enrolled_count"`
	WaitlistCount int64 `json:"waitlist_count"`
}

// mySessionView is an enrollment row joined with the session timing and the
// class it belongs to.
type mySessionView struct {
	models.ClassEnrollment
	StartDatetime time.Time `json:"start_datetime"`
	EndDatetime   time.Time `json:"end_datetime"`
	SessionStatus string    `json:"session_status"`
	ClassName     string    `json:"class_name"`
	ClassLocation string    `json:"class_location"`
	DurationMin   int       `json:"duration_min"`
}

func (h *SessionHandler) List(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	page, limit := paginationParams(c, 20)

	q := h.db.WithContext(c).
		Model(&models.ClassSession{}).
		Joins("JOIN classes ON classes.id = class_sessions.class_id").
		Where("classes.tenant_id = ?", tenantID)

	if v := c.Query("classId"); v != "" {
		q = q.Where("class_sessions.class_id = ?", v)
	}
	if v := c.Query("status"); v != "" {
		q = q.Where("class_sessions.status = ?", v)
	}
	if v := c.Query("from"); v != "" {
		t, err := timezone.ParseDate(h.tz, v)
		if err != nil {
			httpresp.WriteError(c, httperr.Validation("invalid_date", "from must be YYYY-MM-DD"))
			return
		}
		q = q.Where("class_sessions.start_datetime >= ?", t)
	}
	if v := c.Query("to"); v != "" {
		t, err := timezone.ParseDate(h.tz, v)
		if err != nil {
			httpresp.WriteError(c, httperr.Validation("invalid_date", "to must be YYYY-MM-DD"))
			return
		}
		q = q.Where("class_sessions.start_datetime < ?", t.AddDate(0, 0, 1))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httpresp.WriteError(c, err)
		return
	}

	var sessions []models.ClassSession
	if err := q.
		Preload("Class").
		Order("class_sessions.start_datetime ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&sessions).Error; err != nil {
		httpresp.WriteError(c, err)
		return
	}

	views, err := h.withCounts(c, sessions)
	if err != nil {
		httpresp.WriteError(c, err)
		return
	}

	httpresp.List(c, "sessions", views, httpresp.NewPagination(page, limit, total))
}

// withCounts attaches the derived enrolled/waitlist counters; they are
// computed from enrollment rows, never stored.
func (h *SessionHandler) withCounts(c *gin.Context, sessions []models.ClassSession) ([]sessionView, error) {
	views := make([]sessionView, 0, len(sessions))
	if len(sessions) == 0 {
		return views, nil
	}

	ids := make([]uint, len(sessions))
	for i, s := range sessions {
		ids[i] = s.ID
	}

	type countRow struct {
		SessionID uint
		Status    string
		N         int64
	}
	var rows []countRow
	if err := h.db.WithContext(c).
		Model(&models.ClassEnrollment{}).
		Select("class_session_id AS session_id, status, COUNT(*) AS n").
		Where("class_session_id IN ?", ids).
		Group("class_session_id, status").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	enrolled := make(map[uint]int64)
	waitlist := make(map[uint]int64)
	for _, r := range rows {
		switch r.Status {
		case string(domain.Enrolled):
			enrolled[r.SessionID] = r.N
		case string(domain.Waitlisted):
			waitlist[r.SessionID] = r.N
		}
	}

	for _, s := range sessions {
		views = append(views, sessionView{
			ClassSession:  s,
			EnrolledCount: enrolled[s.ID],
			WaitlistCount: waitlist[s.ID],
		})
	}

	return views, nil
}

func (h *SessionHandler) Create(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpresp.WriteError(c, httperr.Validation("missing_fields", "classId and startDatetime are required"))
		return
	}

	var cls models.ClassDefinition
	if err := h.db.WithContext(c).
		Where("id = ? AND tenant_id = ?", req.ClassID, tenantID).
		First(&cls).Error; err != nil {
		httpresp.WriteError(c, httperr.NotFound("class_not_found", "Class not found"))
		return
	}

	start, err := timezone.ParseDateTime(h.tz, req.StartDatetime)
	if err != nil {
		httpresp.WriteError(c, httperr.Validation("invalid_datetime", "startDatetime is not a valid datetime"))
		return
	}

	var end time.Time
	if req.EndDatetime != "" {
		end, err = timezone.ParseDateTime(h.tz, req.EndDatetime)
		if err != nil {
			httpresp.WriteError(c, httperr.Validation("invalid_datetime", "endDatetime is not a valid datetime"))
			return
		}
	} else {
		end = start.Add(time.Duration(cls.DurationMin) * time.Minute)
	}
	if !end.After(start) {
		httpresp.WriteError(c, httperr.Validation("invalid_interval", "endDatetime must be after startDatetime"))
		return
	}

	sess := models.ClassSession{
		ClassID:       cls.ID,
		StartDatetime: start,
		EndDatetime:   end,
		Status:        string(domain.SessionScheduled),
		Notes:         req.Notes,
	}

	if err := h.db.WithContext(c).Create(&sess).Error; err != nil {
		httpresp.WriteError(c, err)
		return
	}

	httpresp.Created(c, gin.H{"id": sess.ID})
}

func (h *SessionHandler) UpdateStatus(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpresp.WriteError(c, httperr.Validation("missing_status", "status is required"))
		return
	}

	to := domain.SessionStatus(req.Status)
	if !domain.IsValidSessionStatus(to) {
		httpresp.WriteError(c, httperr.Validation("invalid_status", "unknown session status: "+req.Status))
		return
	}

	sess, cls, err := h.sessionInTenant(c, tenantID, c.Param("id"))
	if err != nil {
		httpresp.WriteError(c, err)
		return
	}

	if err := domain.CanTransitionSession(domain.SessionStatus(sess.Status), to); err != nil {
		httpresp.WriteError(c, err)
		return
	}

	sess.Status = string(to)
	if err := h.db.WithContext(c).Save(sess).Error; err != nil {
		httpresp.WriteError(c, err)
		return
	}

	if to == domain.SessionCancelled {
		h.notifier.Dispatch(notify.Event{
			Type:     "session_cancelled",
			TenantID: tenantID,
			UserID:   cls.InstructorID,
			Title:    "Session cancelled",
			Message:  cls.Name + " session has been cancelled",
			Metadata: map[string]any{"session_id": sess.ID, "class_id": cls.ID},
		})
	}

	httpresp.Message(c, "Status updated")
}

// Delete is idempotent like appointment deletion.
func (h *SessionHandler) Delete(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	sess, _, err := h.sessionInTenant(c, tenantID, c.Param("id"))
	if err != nil {
		if httperr.From(err).Kind == httperr.KindNotFound {
			httpresp.Message(c, "Session deleted")
			return
		}
		httpresp.WriteError(c, err)
		return
	}

	if err := h.db.WithContext(c).Delete(sess).Error; err != nil {
		httpresp.WriteError(c, err)
		return
	}

	httpresp.Message(c, "Session deleted")
}

func (h *SessionHandler) MySessions(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	clientIDStr := c.Query("clientId")
	if clientIDStr == "" {
		httpresp.WriteError(c, httperr.Validation("missing_client", "clientId is required"))
		return
	}

	page, limit := paginationParams(c, 20)

	q := h.db.WithContext(c).
		Model(&models.ClassEnrollment{}).
		Joins("JOIN class_sessions ON class_sessions.id = class_enrollments.class_session_id").
		Joins("JOIN classes ON classes.id = class_sessions.class_id").
		Where("classes.tenant_id = ? AND class_enrollments.client_id = ?", tenantID, clientIDStr)

	if v := c.Query("status"); v != "" {
		q = q.Where("class_enrollments.status = ?", v)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httpresp.WriteError(c, err)
		return
	}

	var views []mySessionView
	if err := q.
		Select("class_enrollments.*, class_sessions.start_datetime, class_sessions.end_datetime, "+
			"class_sessions.status AS session_status, classes.name AS class_name, "+
			"classes.location AS class_location, classes.duration_min").
		Order("class_sessions.start_datetime DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&views).Error; err != nil {
		httpresp.WriteError(c, err)
		return
	}

	httpresp.List(c, "sessions", views, httpresp.NewPagination(page, limit, total))
}

func (h *SessionHandler) sessionInTenant(c *gin.Context, tenantID uint, idStr string) (*models.ClassSession, *models.ClassDefinition, error) {
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return nil, nil, httperr.Validation("invalid_id", "id must be numeric")
	}

	var sess models.ClassSession
	if err := h.db.WithContext(c).First(&sess, uint(id)).Error; err != nil {
		return nil, nil, httperr.NotFound("session_not_found", "Session not found")
	}

	var cls models.ClassDefinition
	if err := h.db.WithContext(c).
		Where("id = ? AND tenant_id = ?", sess.ClassID, tenantID).
		First(&cls).Error; err != nil {
		return nil, nil, httperr.NotFound("session_not_found", "Session not found")
	}

	return &sess, &cls, nil
}
