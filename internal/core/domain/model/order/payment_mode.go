package order

import (
	"fmt"

	"canteen/internal/pkg/errs"
)

// PaymentMode records how the customer intends to pay. The engine only
// records the label; settlement is out of scope.
type PaymentMode int

const (
	PaymentModeUnknown PaymentMode = iota

	// PaymentModeCounter means the customer pays at the counter on pickup.
	PaymentModeCounter

	// PaymentModeOnline is a recognized value, but the online path is not
	// implemented: intake rejects it (see ValidateForIntake).
	PaymentModeOnline
)

func getValidPaymentModeStrings() map[PaymentMode]string {
	return map[PaymentMode]string{
		PaymentModeCounter: "counter",
		PaymentModeOnline:  "online",
	}
}

// PaymentModeFromString parses the wire value ("counter" or "online").
func PaymentModeFromString(s string) (PaymentMode, error) {
	for mode, name := range getValidPaymentModeStrings() {
		if name == s {
			return mode, nil
		}
	}
	return PaymentModeUnknown, errs.NewValueIsInvalidErrorWithCause("paymentMode",
		fmt.Errorf("%q is not a valid payment mode", s))
}

// Validate checks the PaymentMode is a defined value.
func (m PaymentMode) Validate() error {
	if _, ok := getValidPaymentModeStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentMode",
			fmt.Errorf("%d is not a valid payment mode", m))
	}
	return nil
}

// ValidateForIntake additionally rejects modes that cannot complete an order
// today. Online stays a legal stored value for when the payment integration
// lands, but new orders cannot be placed with it.
func (m PaymentMode) ValidateForIntake() error {
	if err := m.Validate(); err != nil {
		return err
	}
	if m == PaymentModeOnline {
		return errs.NewValueIsInvalidErrorWithCause("paymentMode",
			fmt.Errorf("online payment is not yet available"))
	}
	return nil
}

// String returns the wire value of the payment mode.
func (m PaymentMode) String() string {
	if s, ok := getValidPaymentModeStrings()[m]; ok {
		return s
	}
	return "unknown"
}
