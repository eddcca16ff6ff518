package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/wekesa/daktari-api/internal/application/service"
	"github.com/wekesa/daktari-api/internal/presentation/http/dto/request"
	"github.com/wekesa/daktari-api/internal/presentation/http/dto/response"
	"github.com/wekesa/daktari-api/internal/presentation/http/middleware"
	"github.com/wekesa/daktari-api/pkg/pagination"
)

// ProcedureHandler handles services catalog HTTP requests
type ProcedureHandler struct {
	procedureService *service.ProcedureService
}

// NewProcedureHandler creates a new procedure handler
func NewProcedureHandler(procedureService *service.ProcedureService) *ProcedureHandler {
	return &ProcedureHandler{procedureService: procedureService}
}

// Create handles POST /procedures
func (h *ProcedureHandler) Create(c *gin.Context) {
	var req request.CreateProcedureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	procedure, err := h.procedureService.CreateProcedure(c.Request.Context(), &service.ProcedureInput{
		ClinicID:     middleware.GetClinicID(c),
		Name:         req.Name,
		Category:     req.Category,
		DefaultPrice: req.DefaultPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Procedure created", procedure)
}

// Get handles GET /procedures/:id
func (h *ProcedureHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid procedure ID")
		return
	}

	procedure, err := h.procedureService.GetProcedure(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Procedure retrieved", procedure)
}

// Update handles PUT /procedures/:id
func (h *ProcedureHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid procedure ID")
		return
	}

	var req request.UpdateProcedureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	procedure, err := h.procedureService.UpdateProcedure(c.Request.Context(), id, &service.ProcedureInput{
		Name:         req.Name,
		Category:     req.Category,
		DefaultPrice: req.DefaultPrice,
		Active:       req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Procedure updated", procedure)
}

// Delete handles DELETE /procedures/:id
func (h *ProcedureHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid procedure ID")
		return
	}

	if err := h.procedureService.DeleteProcedure(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// List handles GET /procedures
func (h *ProcedureHandler) List(c *gin.Context) {
	params := &pagination.PaginationParams{}
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	params.Validate()

	activeOnly, _ := strconv.ParseBool(c.DefaultQuery("active_only", "true"))

	result, err := h.procedureService.ListProcedures(c.Request.Context(), params, c.Query("search"), activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Procedures retrieved", result)
}
