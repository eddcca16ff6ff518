package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/wekesa/daktari-api/internal/application/service"
	"github.com/wekesa/daktari-api/internal/domain/enum"
	"github.com/wekesa/daktari-api/internal/domain/repository"
	"github.com/wekesa/daktari-api/internal/presentation/http/dto/request"
	"github.com/wekesa/daktari-api/internal/presentation/http/dto/response"
	"github.com/wekesa/daktari-api/internal/presentation/http/middleware"
	"github.com/wekesa/daktari-api/pkg/pagination"
)

// AppointmentHandler handles appointment directory HTTP requests
type AppointmentHandler struct {
	appointmentService *service.AppointmentService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(appointmentService *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

// Create handles POST /appointments
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req request.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	appointment, err := h.appointmentService.CreateAppointment(c.Request.Context(), &service.AppointmentInput{
		ClinicID:    middleware.GetClinicID(c),
		PatientID:   req.PatientID,
		DoctorID:    req.DoctorID,
		Type:        req.Type,
		ScheduledAt: req.ScheduledAt,
		Notes:       req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Appointment created", appointment)
}

// Get handles GET /appointments/:id
func (h *AppointmentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid appointment ID")
		return
	}

	appointment, err := h.appointmentService.GetAppointment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Appointment retrieved", appointment)
}

// UpdateStatus handles PATCH /appointments/:id/status
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid appointment ID")
		return
	}

	var req request.UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	status, ok := enum.ParseAppointmentStatus(req.Status)
	if !ok {
		response.BadRequest(c, "Unknown appointment status")
		return
	}

	appointment, err := h.appointmentService.UpdateStatus(c.Request.Context(), id, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Appointment updated", appointment)
}

// Reschedule handles PATCH /appointments/:id/reschedule
func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid appointment ID")
		return
	}

	var req request.RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	appointment, err := h.appointmentService.Reschedule(c.Request.Context(), id, req.ScheduledAt)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Appointment rescheduled", appointment)
}

// List handles GET /appointments
func (h *AppointmentHandler) List(c *gin.Context) {
	var filter request.AppointmentFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.AppointmentFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		PatientID: parseOptionalUUID(filter.PatientID),
		DoctorID:  parseOptionalUUID(filter.DoctorID),
		StartDate: parseDate(filter.StartDate),
		EndDate:   parseDate(filter.EndDate),
	}
	if status, ok := enum.ParseAppointmentStatus(filter.Status); ok && filter.Status != "" {
		params.Status = &status
	}

	result, err := h.appointmentService.ListAppointments(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Appointments retrieved", result)
}
