package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvoiceStatusCanTransitionTo(t *testing.T) {
	cases := []struct {
		from InvoiceStatus
		to   InvoiceStatus
		want bool
	}{
		{InvoiceStatusUnpaid, InvoiceStatusPaid, true},
		{InvoiceStatusUnpaid, InvoiceStatusVoid, true},
		{InvoiceStatusUnpaid, InvoiceStatusUnpaid, false},
		{InvoiceStatusPaid, InvoiceStatusUnpaid, false},
		{InvoiceStatusPaid, InvoiceStatusVoid, false},
		{InvoiceStatusPaid, InvoiceStatusPaid, false},
		{InvoiceStatusVoid, InvoiceStatusUnpaid, false},
		{InvoiceStatusVoid, InvoiceStatusPaid, false},
		{InvoiceStatusVoid, InvoiceStatusVoid, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestInvoiceStatusIsTerminal(t *testing.T) {
	assert.False(t, InvoiceStatusUnpaid.IsTerminal())
	assert.True(t, InvoiceStatusPaid.IsTerminal())
	assert.True(t, InvoiceStatusVoid.IsTerminal())
}

func TestInvoiceStatusJSON(t *testing.T) {
	b, err := json.Marshal(InvoiceStatusPaid)
	assert.NoError(t, err)
	assert.Equal(t, `"paid"`, string(b))

	var s InvoiceStatus
	assert.NoError(t, json.Unmarshal([]byte(`"void"`), &s))
	assert.Equal(t, InvoiceStatusVoid, s)

	// Numeric form is accepted too
	assert.NoError(t, json.Unmarshal([]byte(`1`), &s))
	assert.Equal(t, InvoiceStatusPaid, s)
}

func TestParseInvoiceStatus(t *testing.T) {
	s, ok := ParseInvoiceStatus("unpaid")
	assert.True(t, ok)
	assert.Equal(t, InvoiceStatusUnpaid, s)

	_, ok = ParseInvoiceStatus("settled")
	assert.False(t, ok)
}
