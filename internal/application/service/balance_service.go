package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wekesa/daktari-api/internal/domain/entity"
	"github.com/wekesa/daktari-api/internal/domain/enum"
	"github.com/wekesa/daktari-api/internal/domain/repository"
	"github.com/wekesa/daktari-api/pkg/pagination"
)

// BalanceService rolls up payments and unpaid invoices into cashier and
// reporting views. Everything here is computed on demand; nothing is
// persisted.
type BalanceService struct {
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
	patientRepo repository.PatientRepository
	expenseRepo repository.ExpenseRepository
}

// NewBalanceService creates a new balance service
func NewBalanceService(
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	patientRepo repository.PatientRepository,
	expenseRepo repository.ExpenseRepository,
) *BalanceService {
	return &BalanceService{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		patientRepo: patientRepo,
		expenseRepo: expenseRepo,
	}
}

// PatientBalance is a per-patient rollup of money owed and last activity
type PatientBalance struct {
	PatientID   uuid.UUID  `json:"patient_id"`
	PatientName string     `json:"patient_name"`
	Phone       string     `json:"phone"`
	TotalDue    float64    `json:"total_due"`
	LastVisit   time.Time  `json:"last_visit"`
	LastPayment *time.Time `json:"last_payment,omitempty"`
}

// BalanceQuery narrows the patient balance listing
type BalanceQuery struct {
	Search          string
	OnlyWithBalance bool
	Pagination      *pagination.PaginationParams
}

// GetPatientBalances aggregates unpaid invoices and payments per patient.
// A patient appears once they have any payment or any unpaid invoice.
// Ordering is last visit descending; ties keep first-appearance order, so
// repeated calls over the same data return identical pages.
func (s *BalanceService) GetPatientBalances(ctx context.Context, clinicID uuid.UUID, query *BalanceQuery) (*pagination.PaginatedResult[PatientBalance], error) {
	payments, err := s.paymentRepo.ListByClinic(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	unpaid, err := s.invoiceRepo.ListUnpaidByClinic(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	type acc struct {
		totalDueCents int64
		lastVisit     time.Time
		lastPayment   *time.Time
	}
	byPatient := make(map[uuid.UUID]*acc)
	order := make([]uuid.UUID, 0)

	touch := func(patientID uuid.UUID) *acc {
		a, ok := byPatient[patientID]
		if !ok {
			a = &acc{}
			byPatient[patientID] = a
			order = append(order, patientID)
		}
		return a
	}

	for i := range payments {
		p := &payments[i]
		a := touch(p.PatientID)
		if p.CreatedAt.After(a.lastVisit) {
			a.lastVisit = p.CreatedAt
		}
		if a.lastPayment == nil || p.CreatedAt.After(*a.lastPayment) {
			t := p.CreatedAt
			a.lastPayment = &t
		}
	}
	for i := range unpaid {
		inv := &unpaid[i]
		a := touch(inv.PatientID)
		a.totalDueCents += inv.Amount
		if inv.CreatedAt.After(a.lastVisit) {
			a.lastVisit = inv.CreatedAt
		}
	}

	patients, err := s.patientRepo.GetByIDs(ctx, order)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]*entity.Patient, len(patients))
	for i := range patients {
		names[patients[i].ID] = &patients[i]
	}

	search := strings.ToLower(strings.TrimSpace(query.Search))
	balances := make([]PatientBalance, 0, len(order))
	for _, id := range order {
		a := byPatient[id]
		if query.OnlyWithBalance && a.totalDueCents <= 0 {
			continue
		}

		var name, phone string
		if p, ok := names[id]; ok {
			name = p.Name
			if p.Phone != nil {
				phone = *p.Phone
			}
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(name), search) &&
			!strings.Contains(strings.ToLower(phone), search) {
			continue
		}

		balances = append(balances, PatientBalance{
			PatientID:   id,
			PatientName: name,
			Phone:       phone,
			TotalDue:    float64(a.totalDueCents) / 100,
			LastVisit:   a.lastVisit,
			LastPayment: a.lastPayment,
		})
	}

	// Stable sort keeps first-appearance order for equal visit times.
	sort.SliceStable(balances, func(i, j int) bool {
		return balances[i].LastVisit.After(balances[j].LastVisit)
	})

	params := query.Pagination
	if params == nil {
		params = pagination.DefaultPagination()
	}
	page, pag := pagination.Paginate(balances, params)
	return pagination.NewPaginatedResult(page, pag), nil
}

// CashierRow is one line of the daily cashier view. A patient with both a
// payment and a separate unpaid balance on the same day appears twice.
type CashierRow struct {
	PatientID   uuid.UUID          `json:"patient_id"`
	PatientName string             `json:"patient_name"`
	InvoiceID   uuid.UUID          `json:"invoice_id"`
	Amount      float64            `json:"amount"`
	Status      enum.InvoiceStatus `json:"status"`
	Method      *string            `json:"method,omitempty"`
	RecordedAt  time.Time          `json:"recorded_at"`
}

// GetTodayCashierRows unions the day's paid payments and unpaid invoices,
// newest first.
func (s *BalanceService) GetTodayCashierRows(ctx context.Context, clinicID uuid.UUID, day time.Time) ([]CashierRow, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.AddDate(0, 0, 1)

	payments, err := s.paymentRepo.ListInRange(ctx, clinicID, from, to)
	if err != nil {
		return nil, err
	}
	unpaid, err := s.invoiceRepo.ListByStatusInRange(ctx, clinicID, enum.InvoiceStatusUnpaid, from, to)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(payments)+len(unpaid))
	for i := range payments {
		ids = append(ids, payments[i].PatientID)
	}
	for i := range unpaid {
		ids = append(ids, unpaid[i].PatientID)
	}
	patients, err := s.patientRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(patients))
	for i := range patients {
		names[patients[i].ID] = patients[i].Name
	}

	rows := make([]CashierRow, 0, len(payments)+len(unpaid))
	for i := range payments {
		p := &payments[i]
		method := p.Method.String()
		rows = append(rows, CashierRow{
			PatientID:   p.PatientID,
			PatientName: names[p.PatientID],
			InvoiceID:   p.InvoiceID,
			Amount:      p.GetAmountDecimal(),
			Status:      enum.InvoiceStatusPaid,
			Method:      &method,
			RecordedAt:  p.CreatedAt,
		})
	}
	for i := range unpaid {
		inv := &unpaid[i]
		rows = append(rows, CashierRow{
			PatientID:   inv.PatientID,
			PatientName: names[inv.PatientID],
			InvoiceID:   inv.ID,
			Amount:      inv.GetAmountDecimal(),
			Status:      enum.InvoiceStatusUnpaid,
			RecordedAt:  inv.CreatedAt,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].RecordedAt.After(rows[j].RecordedAt)
	})
	return rows, nil
}

// MonthlySummary is the month's financial rollup
type MonthlySummary struct {
	Month            string             `json:"month"`
	TotalRevenue     float64            `json:"total_revenue"`
	TotalOutstanding float64            `json:"total_outstanding"`
	TotalExpenses    float64            `json:"total_expenses"`
	NetProfit        float64            `json:"net_profit"`
	MethodBreakdown  map[string]float64 `json:"method_breakdown"`
	PaymentCount     int                `json:"payment_count"`
}

// GetMonthlySummary totals the month's revenue, outstanding balances and
// expenses. Expenses are summed, not reconciled against payments.
func (s *BalanceService) GetMonthlySummary(ctx context.Context, clinicID uuid.UUID, month time.Time) (*MonthlySummary, error) {
	from := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	to := from.AddDate(0, 1, 0)

	payments, err := s.paymentRepo.ListInRange(ctx, clinicID, from, to)
	if err != nil {
		return nil, err
	}
	unpaid, err := s.invoiceRepo.ListByStatusInRange(ctx, clinicID, enum.InvoiceStatusUnpaid, from, to)
	if err != nil {
		return nil, err
	}
	expenseCents, err := s.expenseRepo.SumInRange(ctx, clinicID, from, to)
	if err != nil {
		return nil, err
	}

	var revenueCents, outstandingCents int64
	breakdownCents := make(map[string]int64)
	for i := range payments {
		revenueCents += payments[i].Amount
		breakdownCents[payments[i].Method.String()] += payments[i].Amount
	}
	for i := range unpaid {
		outstandingCents += unpaid[i].Amount
	}

	breakdown := make(map[string]float64, len(breakdownCents))
	for method, cents := range breakdownCents {
		breakdown[method] = float64(cents) / 100
	}

	return &MonthlySummary{
		Month:            from.Format("2006-01"),
		TotalRevenue:     float64(revenueCents) / 100,
		TotalOutstanding: float64(outstandingCents) / 100,
		TotalExpenses:    float64(expenseCents) / 100,
		NetProfit:        float64(revenueCents-expenseCents) / 100,
		MethodBreakdown:  breakdown,
		PaymentCount:     len(payments),
	}, nil
}
