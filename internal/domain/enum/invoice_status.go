package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// InvoiceStatus represents the lifecycle state of an invoice
type InvoiceStatus int

const (
	InvoiceStatusUnpaid InvoiceStatus = 0
	InvoiceStatusPaid   InvoiceStatus = 1
	InvoiceStatusVoid   InvoiceStatus = 2
)

func (s InvoiceStatus) String() string {
	return [...]string{"unpaid", "paid", "void"}[s]
}

// IsTerminal reports whether the status admits no further transitions
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusVoid
}

// CanTransitionTo implements the invoice transition table. The only legal
// moves are unpaid->paid and unpaid->void; everything else is rejected.
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	if s != InvoiceStatusUnpaid {
		return false
	}
	return target == InvoiceStatusPaid || target == InvoiceStatusVoid
}

// ParseInvoiceStatus parses a status name into an InvoiceStatus
func ParseInvoiceStatus(s string) (InvoiceStatus, bool) {
	switch s {
	case "unpaid":
		return InvoiceStatusUnpaid, true
	case "paid":
		return InvoiceStatusPaid, true
	case "void":
		return InvoiceStatusVoid, true
	}
	return InvoiceStatusUnpaid, false
}

func (s InvoiceStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *InvoiceStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = InvoiceStatus(i)
		return nil
	}
	switch str {
	case "unpaid":
		*s = InvoiceStatusUnpaid
	case "paid":
		*s = InvoiceStatusPaid
	case "void":
		*s = InvoiceStatusVoid
	}
	return nil
}

func (s InvoiceStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *InvoiceStatus) Scan(value interface{}) error {
	if value == nil {
		*s = InvoiceStatusUnpaid
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = InvoiceStatus(v)
	case int:
		*s = InvoiceStatus(v)
	}
	return nil
}
