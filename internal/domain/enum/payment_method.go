package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMethod represents how a payment was collected
type PaymentMethod int

const (
	PaymentMethodCash         PaymentMethod = 0
	PaymentMethodCard         PaymentMethod = 1
	PaymentMethodBankTransfer PaymentMethod = 2
	PaymentMethodMobileWallet PaymentMethod = 3
)

func (m PaymentMethod) String() string {
	return [...]string{"cash", "card", "bank_transfer", "mobile_wallet"}[m]
}

// IsValid reports whether the value is a known payment method
func (m PaymentMethod) IsValid() bool {
	return m >= PaymentMethodCash && m <= PaymentMethodMobileWallet
}

// ParsePaymentMethod converts the wire string into a PaymentMethod
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch s {
	case "cash":
		return PaymentMethodCash, true
	case "card":
		return PaymentMethodCard, true
	case "bank_transfer":
		return PaymentMethodBankTransfer, true
	case "mobile_wallet":
		return PaymentMethodMobileWallet, true
	}
	return PaymentMethodCash, false
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = PaymentMethod(i)
		return nil
	}
	if parsed, ok := ParsePaymentMethod(str); ok {
		*m = parsed
	}
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMethod(v)
	case int:
		*m = PaymentMethod(v)
	}
	return nil
}
