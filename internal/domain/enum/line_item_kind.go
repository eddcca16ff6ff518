package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// LineItemKind classifies an invoice line as a charge or a discount
type LineItemKind int

const (
	LineItemKindConsultation LineItemKind = 0
	LineItemKindProcedure    LineItemKind = 1
	LineItemKindDiscount     LineItemKind = 2
)

func (k LineItemKind) String() string {
	return [...]string{"consultation", "procedure", "discount"}[k]
}

func (k LineItemKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *LineItemKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*k = LineItemKind(i)
		return nil
	}
	switch str {
	case "consultation":
		*k = LineItemKindConsultation
	case "procedure":
		*k = LineItemKindProcedure
	case "discount":
		*k = LineItemKindDiscount
	}
	return nil
}

func (k LineItemKind) Value() (driver.Value, error) {
	return int64(k), nil
}

func (k *LineItemKind) Scan(value interface{}) error {
	if value == nil {
		*k = LineItemKindConsultation
		return nil
	}
	switch v := value.(type) {
	case int64:
		*k = LineItemKind(v)
	case int:
		*k = LineItemKind(v)
	}
	return nil
}
