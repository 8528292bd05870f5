package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"complaint-service/internal/http/middleware"
	"complaint-service/internal/model"
	"complaint-service/internal/service"
	"complaint-service/internal/view"
)

type Handler struct {
	complaintService *service.ComplaintService
	workflowService  *service.WorkflowService
	appealService    *service.AppealService
	log              zerolog.Logger
}

func NewHandler(
	complaintService *service.ComplaintService,
	workflowService *service.WorkflowService,
	appealService *service.AppealService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		complaintService: complaintService,
		workflowService:  workflowService,
		appealService:    appealService,
		log:              log,
	}
}

type citizenPayload struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
}

func (h *Handler) createComplaint(c *gin.Context) {
	var req struct {
		Category       string         `json:"category" binding:"required"`
		Ward           string         `json:"ward"`
		Zone           string         `json:"zone"`
		Description    string         `json:"description" binding:"required"`
		PhotoReference string         `json:"photoReference"`
		Severity       string         `json:"severity"`
		Citizen        citizenPayload `json:"citizen" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	complaint, err := h.complaintService.Submit(c.Request.Context(), service.SubmitInput{
		Category:       req.Category,
		Ward:           req.Ward,
		Zone:           req.Zone,
		Description:    req.Description,
		PhotoReference: req.PhotoReference,
		Severity:       req.Severity,
		CitizenName:    req.Citizen.Name,
		CitizenPhone:   req.Citizen.Phone,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.log.Info().Str("complaint_id", complaint.ID).Str("category", complaint.Category).Msg("complaint submitted")
	c.JSON(http.StatusCreated, successResponse(complaint))
}

func (h *Handler) getComplaint(c *gin.Context) {
	complaint, err := h.complaintService.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(complaint))
}

func (h *Handler) raiseAppeal(c *gin.Context) {
	var req struct {
		AppealMessage        string `json:"appealMessage" binding:"required"`
		AppealPhotoReference string `json:"appealPhotoReference"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	complaint, err := h.appealService.RaiseAppeal(c.Request.Context(), id, service.AppealInput{
		Message:        req.AppealMessage,
		PhotoReference: req.AppealPhotoReference,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.log.Info().Str("complaint_id", id).Msg("appeal raised")
	c.JSON(http.StatusOK, successResponse(complaint))
}

func (h *Handler) listComplaints(c *gin.Context) {
	criteria, err := parseCriteria(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	complaints, err := h.complaintService.List(c.Request.Context(), criteria)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": complaints}))
}

func (h *Handler) complaintSummary(c *gin.Context) {
	summary, err := h.complaintService.Summary(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(summary))
}

func (h *Handler) updateStatus(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req struct {
		Status          string `json:"status" binding:"required"`
		Comment         string `json:"comment"`
		ETA             string `json:"eta"`
		Department      string `json:"department"`
		RejectionReason string `json:"rejectionReason"`
		OtherReason     string `json:"otherReason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	status, ok := model.ParseComplaintStatus(req.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, errorResponse("unknown status"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	complaint, err := h.workflowService.UpdateStatus(c.Request.Context(), principal, id, service.StatusUpdate{
		Status:          status,
		Comment:         req.Comment,
		ETA:             req.ETA,
		Department:      req.Department,
		RejectionReason: req.RejectionReason,
		OtherReason:     req.OtherReason,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.log.Info().
		Str("complaint_id", id).
		Str("status", string(status)).
		Str("by", principal.AuditName()).
		Msg("complaint status updated")
	c.JSON(http.StatusOK, successResponse(complaint))
}

func (h *Handler) escalate(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	complaint, err := h.workflowService.Escalate(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.log.Info().Str("complaint_id", id).Str("by", principal.AuditName()).Msg("complaint escalated")
	c.JSON(http.StatusOK, successResponse(complaint))
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidState), errors.Is(err, service.ErrAlreadyAppealed):
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	case errors.Is(err, service.ErrStoreFailure):
		h.log.Error().Err(err).Msg("store failure")
		c.JSON(http.StatusServiceUnavailable, errorResponse(service.ErrStoreFailure.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func parseCriteria(c *gin.Context) (view.Criteria, error) {
	criteria := view.Criteria{
		Search:   strings.TrimSpace(c.Query("search")),
		Ward:     strings.TrimSpace(c.Query("ward")),
		Category: strings.TrimSpace(c.Query("category")),
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" && !strings.EqualFold(raw, "all") {
		status, ok := model.ParseComplaintStatus(raw)
		if !ok {
			return criteria, errors.New("unknown status filter")
		}
		criteria.Status = status
	}
	return criteria, nil
}

type responseEnvelope struct {
	Data interface{} `json:"data"`
}

func successResponse(data interface{}) responseEnvelope {
	return responseEnvelope{Data: data}
}

func errorResponse(msg string) gin.H {
	return gin.H{"error": msg}
}
