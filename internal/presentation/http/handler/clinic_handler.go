package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/wekesa/daktari-api/internal/application/service"
	"github.com/wekesa/daktari-api/internal/presentation/http/dto/request"
	"github.com/wekesa/daktari-api/internal/presentation/http/dto/response"
)

// ClinicHandler handles clinic management HTTP requests
type ClinicHandler struct {
	clinicService *service.ClinicService
}

// NewClinicHandler creates a new clinic handler
func NewClinicHandler(clinicService *service.ClinicService) *ClinicHandler {
	return &ClinicHandler{clinicService: clinicService}
}

// Create handles POST /clinics
func (h *ClinicHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateClinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	clinic, err := h.clinicService.CreateClinic(c.Request.Context(), &service.CreateClinicInput{
		Name:    req.Name,
		OwnerID: *userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Clinic created", clinic)
}

// Get handles GET /clinics/:id
func (h *ClinicHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid clinic ID")
		return
	}

	clinic, err := h.clinicService.GetClinic(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Clinic retrieved", clinic)
}

// ListMine handles GET /clinics
func (h *ClinicHandler) ListMine(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	clinics, err := h.clinicService.ListClinicsForUser(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Clinics retrieved", clinics)
}

// AddMember handles POST /clinics/:id/members
func (h *ClinicHandler) AddMember(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid clinic ID")
		return
	}

	var req request.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	membership, err := h.clinicService.AddMember(c.Request.Context(), &service.AddMemberInput{
		ClinicID: id,
		Email:    req.Email,
		Role:     req.Role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Member added", membership)
}

// ListMembers handles GET /clinics/:id/members
func (h *ClinicHandler) ListMembers(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid clinic ID")
		return
	}

	members, err := h.clinicService.ListMembers(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Members retrieved", members)
}
