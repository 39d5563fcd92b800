package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fitdesk/scheduling-api/internal/httperr"
	"github.com/fitdesk/scheduling-api/internal/httpresp"
	"github.com/fitdesk/scheduling-api/internal/middleware"
	ucClasses "github.com/fitdesk/scheduling-api/internal/usecase/classes"
)

type EnrollmentHandler struct {
	enrollUC  *ucClasses.EnrollClient
	cancelUC  *ucClasses.CancelEnrollment
	checkinUC *ucClasses.CheckInClient
	noShowUC  *ucClasses.MarkNoShow
}

func NewEnrollmentHandler(
	enrollUC *ucClasses.EnrollClient,
	cancelUC *ucClasses.CancelEnrollment,
	checkinUC *ucClasses.CheckInClient,
	noShowUC *ucClasses.MarkNoShow,
) *EnrollmentHandler {
	return &EnrollmentHandler{
		enrollUC:  enrollUC,
		cancelUC:  cancelUC,
		checkinUC: checkinUC,
		noShowUC:  noShowUC,
	}
}

type enrollmentRequest struct {
	ClientID uint `json:"clientId" binding:"required"`
}

func (h *EnrollmentHandler) params(c *gin.Context) (tenantID, sessionID, clientID uint, err error) {
	tenantID = c.MustGet(middleware.ContextTenantID).(uint)

	id, perr := strconv.ParseUint(c.Param("id"), 10, 64)
	if perr != nil {
		return 0, 0, 0, httperr.Validation("invalid_id", "session id must be numeric")
	}

	var req enrollmentRequest
	if berr := c.ShouldBindJSON(&req); berr != nil {
		return 0, 0, 0, httperr.Validation("missing_client", "clientId is required")
	}

	return tenantID, uint(id), req.ClientID, nil
}

func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	tenantID, sessionID, clientID, err := h.params(c)
	if err != nil {
		httpresp.WriteError(c, err)
		return
	}

	result, err := h.enrollUC.Execute(c, tenantID, sessionID, clientID)
	if err != nil {
		httpresp.WriteError(c, err)
		return
	}

	httpresp.OK(c, result)
}

func (h *EnrollmentHandler) Cancel(c *gin.Context) {
	tenantID, sessionID, clientID, err := h.params(c)
	if err != nil {
		httpresp.WriteError(c, err)
		return
	}

	if err := h.cancelUC.Execute(c, tenantID, sessionID, clientID); err != nil {
		httpresp.WriteError(c, err)
		return
	}

	httpresp.Message(c, "Enrollment cancelled")
}

func (h *EnrollmentHandler) CheckIn(c *gin.Context) {
	tenantID, sessionID, clientID, err := h.params(c)
	if err != nil {
		httpresp.WriteError(c, err)
		return
	}

	if err := h.checkinUC.Execute(c, tenantID, sessionID, clientID); err != nil {
		httpresp.WriteError(c, err)
		return
	}

	httpresp.Message(c, "Client checked in")
}

func (h *EnrollmentHandler) NoShow(c *gin.Context) {
	tenantID, sessionID, clientID, err := h.params(c)
	if err != nil {
		httpresp.WriteError(c, err)
		return
	}

	if err := h.noShowUC.Execute(c, tenantID, sessionID, clientID); err != nil {
		httpresp.WriteError(c, err)
		return
	}

	httpresp.Message(c, "Client marked as no-show")
}
