package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/wekesa/daktari-api/internal/application/service"
	"github.com/wekesa/daktari-api/internal/presentation/http/dto/request"
	"github.com/wekesa/daktari-api/internal/presentation/http/dto/response"
	"github.com/wekesa/daktari-api/internal/presentation/http/middleware"
)

// DraftDueHandler handles draft due HTTP requests
type DraftDueHandler struct {
	draftService *service.DraftDueService
}

// NewDraftDueHandler creates a new draft due handler
func NewDraftDueHandler(draftService *service.DraftDueService) *DraftDueHandler {
	return &DraftDueHandler{draftService: draftService}
}

// GetOrCreate handles POST /drafts
func (h *DraftDueHandler) GetOrCreate(c *gin.Context) {
	var req request.DraftDueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	draft, err := h.draftService.GetOrCreate(c.Request.Context(), &service.GetOrCreateInput{
		ClinicID:      middleware.GetClinicID(c),
		PatientID:     req.PatientID,
		DoctorID:      req.DoctorID,
		AppointmentID: req.AppointmentID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Draft retrieved", draft)
}

// Get handles GET /drafts/:id
func (h *DraftDueHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid draft ID")
		return
	}

	draft, err := h.draftService.GetDraft(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Draft retrieved", draft)
}

// UpdateCharges handles PUT /drafts/:id/charges
func (h *DraftDueHandler) UpdateCharges(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid draft ID")
		return
	}

	var req request.UpdateLineItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	draft, err := h.draftService.UpdateCharges(c.Request.Context(), id, lineItemsInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Draft charges updated", draft)
}

// List handles GET /drafts
func (h *DraftDueHandler) List(c *gin.Context) {
	drafts, err := h.draftService.ListDrafts(c.Request.Context(), middleware.GetClinicID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Drafts retrieved", drafts)
}

// Delete handles DELETE /drafts/:id
func (h *DraftDueHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid draft ID")
		return
	}

	if err := h.draftService.Clear(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
