package billing

import (
	"github.com/wekesa/daktari-api/internal/domain/enum"
	"github.com/wekesa/daktari-api/pkg/apperror"
)

// ValidateProof enforces proof-of-payment requirements by method: every
// method other than cash needs a proof reference, cash never does.
// It is a pure check consulted before any payment is persisted.
func ValidateProof(method enum.PaymentMethod, hasProof bool) error {
	if method == enum.PaymentMethodCash {
		return nil
	}
	if !hasProof {
		return apperror.NewValidationError([]apperror.FieldError{
			{Field: "proof_reference", Message: "proof of payment is required for " + method.String() + " payments"},
		})
	}
	return nil
}

// ValidateAmount rejects non-positive payment amounts.
func ValidateAmount(amountCents int64) error {
	if amountCents <= 0 {
		return apperror.NewValidationError([]apperror.FieldError{
			{Field: "amount", Message: "amount must be greater than zero"},
		})
	}
	return nil
}
