package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wekesa/daktari-api/internal/domain/enum"
	"github.com/wekesa/daktari-api/pkg/apperror"
)

func TestValidateProof(t *testing.T) {
	t.Run("cash never needs proof", func(t *testing.T) {
		assert.NoError(t, ValidateProof(enum.PaymentMethodCash, false))
		assert.NoError(t, ValidateProof(enum.PaymentMethodCash, true))
	})

	t.Run("non-cash methods require proof", func(t *testing.T) {
		for _, method := range []enum.PaymentMethod{
			enum.PaymentMethodCard,
			enum.PaymentMethodBankTransfer,
			enum.PaymentMethodMobileWallet,
		} {
			err := ValidateProof(method, false)
			assert.True(t, apperror.IsValidation(err), "method %s", method)
			assert.NoError(t, ValidateProof(method, true), "method %s", method)
		}
	})
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount(1))
	assert.NoError(t, ValidateAmount(50000))

	assert.True(t, apperror.IsValidation(ValidateAmount(0)))
	assert.True(t, apperror.IsValidation(ValidateAmount(-100)))
}
