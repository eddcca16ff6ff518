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

// InvoiceHandler handles invoice HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Create handles POST /invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), &service.CreateInvoiceInput{
		ClinicID:        middleware.GetClinicID(c),
		DoctorID:        req.DoctorID,
		PatientID:       req.PatientID,
		AppointmentID:   req.AppointmentID,
		AppointmentType: req.AppointmentType,
		Amount:          req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created", invoice)
}

// Get handles GET /invoices/:id
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved", invoice)
}

// UpdateLineItems handles PUT /invoices/:id/line-items
func (h *InvoiceHandler) UpdateLineItems(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req request.UpdateLineItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.invoiceService.UpdateLineItems(c.Request.Context(), id, lineItemsInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice updated", invoice)
}

// MarkPaid handles POST /invoices/:id/pay
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.MarkPaid(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice marked paid", invoice)
}

// Void handles POST /invoices/:id/void
func (h *InvoiceHandler) Void(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.Void(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice voided", invoice)
}

// FindByAppointment handles GET /appointments/:id/invoice
func (h *InvoiceHandler) FindByAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid appointment ID")
		return
	}

	invoice, err := h.invoiceService.FindByAppointment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if invoice == nil {
		response.NotFound(c, "No open invoice for this appointment")
		return
	}

	response.OK(c, "Invoice retrieved", invoice)
}

// List handles GET /invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	var filter request.InvoiceFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.InvoiceFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		PatientID: parseOptionalUUID(filter.PatientID),
		StartDate: parseDate(filter.StartDate),
		EndDate:   parseDate(filter.EndDate),
	}
	if status, ok := enum.ParseInvoiceStatus(filter.Status); ok {
		params.Status = &status
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved", result)
}

// lineItemsInput maps the request composition onto the service input
func lineItemsInput(req *request.UpdateLineItemsRequest) *service.LineItemsInput {
	lines := make([]service.ProcedureLineInput, 0, len(req.ProcedureLines))
	for _, p := range req.ProcedureLines {
		lines = append(lines, service.ProcedureLineInput{
			Label:  p.Label,
			Amount: p.Amount,
		})
	}
	return &service.LineItemsInput{
		ConsultationWaived: req.ConsultationWaived,
		ConsultationAmount: req.ConsultationAmount,
		ProcedureLines:     lines,
		DiscountPercent:    req.DiscountPercent,
	}
}
