package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wekesa/daktari-api/internal/application/service"
	"github.com/wekesa/daktari-api/internal/presentation/http/dto/request"
	"github.com/wekesa/daktari-api/internal/presentation/http/dto/response"
	"github.com/wekesa/daktari-api/internal/presentation/http/middleware"
	"github.com/wekesa/daktari-api/pkg/pagination"
)

// BalanceHandler handles reporting HTTP requests
type BalanceHandler struct {
	balanceService *service.BalanceService
}

// NewBalanceHandler creates a new balance handler
func NewBalanceHandler(balanceService *service.BalanceService) *BalanceHandler {
	return &BalanceHandler{balanceService: balanceService}
}

// PatientBalances handles GET /reports/balances
func (h *BalanceHandler) PatientBalances(c *gin.Context) {
	var filter request.BalanceFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.balanceService.GetPatientBalances(c.Request.Context(), middleware.GetClinicID(c), &service.BalanceQuery{
		Search:          filter.Search,
		OnlyWithBalance: filter.OnlyWithBalance,
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Balances retrieved", result)
}

// CashierRows handles GET /reports/cashier
func (h *BalanceHandler) CashierRows(c *gin.Context) {
	day := time.Now()
	if d := parseDate(c.Query("date")); d != nil {
		day = *d
	}

	rows, err := h.balanceService.GetTodayCashierRows(c.Request.Context(), middleware.GetClinicID(c), day)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cashier rows retrieved", rows)
}

// MonthlySummary handles GET /reports/monthly
func (h *BalanceHandler) MonthlySummary(c *gin.Context) {
	month := time.Now()
	if m := c.Query("month"); m != "" {
		parsed, err := time.Parse("2006-01", m)
		if err != nil {
			response.BadRequest(c, "Invalid month, expected yyyy-mm")
			return
		}
		month = parsed
	}

	summary, err := h.balanceService.GetMonthlySummary(c.Request.Context(), middleware.GetClinicID(c), month)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Monthly summary retrieved", summary)
}
