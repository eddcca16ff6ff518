package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/wekesa/daktari-api/internal/application/service"
	"github.com/wekesa/daktari-api/internal/domain/enum"
	"github.com/wekesa/daktari-api/internal/presentation/http/dto/request"
	"github.com/wekesa/daktari-api/internal/presentation/http/dto/response"
	"github.com/wekesa/daktari-api/internal/presentation/http/middleware"
)

// BillingHandler handles settlement and payment HTTP requests
type BillingHandler struct {
	billingService *service.BillingService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billingService *service.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// CreatePayment handles POST /payments
func (h *BillingHandler) CreatePayment(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	method, ok := enum.ParsePaymentMethod(req.Method)
	if !ok {
		response.BadRequest(c, "Unknown payment method")
		return
	}

	result, err := h.billingService.CreatePayment(c.Request.Context(), &service.CreatePaymentInput{
		InvoiceID:       req.InvoiceID,
		Amount:          req.Amount,
		Method:          method,
		ProofReference:  req.ProofReference,
		CreatedByUserID: *userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment captured", result)
}

// SettleFull handles POST /billing/settle
func (h *BillingHandler) SettleFull(c *gin.Context) {
	input, ok := h.settleInput(c)
	if !ok {
		return
	}

	result, err := h.billingService.SettleFull(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Visit settled", result)
}

// SettlePartial handles POST /billing/settle-partial
func (h *BillingHandler) SettlePartial(c *gin.Context) {
	input, ok := h.settleInput(c)
	if !ok {
		return
	}

	result, err := h.billingService.SettlePartial(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Visit partially settled", result)
}

// ConvertDraft handles POST /drafts/:id/convert
func (h *BillingHandler) ConvertDraft(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid draft ID")
		return
	}

	invoice, err := h.billingService.ConvertDraft(c.Request.Context(), &service.ConvertDraftInput{
		DraftID: id,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Draft converted to invoice", invoice)
}

func (h *BillingHandler) settleInput(c *gin.Context) (*service.SettleInput, bool) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return nil, false
	}

	var req request.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return nil, false
	}

	method, ok := enum.ParsePaymentMethod(req.Method)
	if !ok {
		response.BadRequest(c, "Unknown payment method")
		return nil, false
	}

	input := &service.SettleInput{
		ClinicID:        middleware.GetClinicID(c),
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		AppointmentID:   req.AppointmentID,
		AppointmentType: req.AppointmentType,
		ServiceAmount:   req.ServiceAmount,
		AmountPaid:      req.AmountPaid,
		Method:          method,
		ProofReference:  req.ProofReference,
		CreatedByUserID: *userID,
		CreateDue:       req.CreateDue,
	}
	if req.LineItems != nil {
		input.LineItems = lineItemsInput(req.LineItems)
	}
	return input, true
}
