package form

import (
	"fmt"

	"github.com/greatxrider/interactive-form-project/http/validation"
)

// PaymentMethod is the value of the payment selector. It doubles as the id of
// the matching payment section.
type PaymentMethod string

const (
	CreditCard PaymentMethod = "credit-card"
	PayPal     PaymentMethod = "paypal"
	Bitcoin    PaymentMethod = "bitcoin"
)

// DefaultPaymentMethod is selected when the page loads.
const DefaultPaymentMethod = CreditCard

// PaymentMethods lists every method in selector order.
var PaymentMethods = []PaymentMethod{CreditCard, PayPal, Bitcoin}

// ParsePaymentMethod converts a selector value into a PaymentMethod.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(s); m {
	case CreditCard, PayPal, Bitcoin:
		return m, nil
	}
	return "", fmt.Errorf("%w: payment method %q", ErrUnknownOption, s)
}

// baseFields are validated for every payment method.
var baseFields = []validation.FieldID{validation.Name, validation.Email}

// RequiredFields returns the fields the submission gate validates for m.
func (m PaymentMethod) RequiredFields() []validation.FieldID {
	fields := append([]validation.FieldID(nil), baseFields...)
	if m == CreditCard {
		fields = append(fields, validation.CardNumber, validation.Zip, validation.CVV)
	}
	return fields
}
