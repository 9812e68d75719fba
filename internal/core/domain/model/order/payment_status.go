package order

import (
	"fmt"

	"hawker/internal/pkg/errs"
)

// PaymentStatus is owned by the payment subsystem. Fulfillment reads it to gate
// acceptance and writes it exactly once, on collection.
type PaymentStatus int

const (
	PaymentUnknown PaymentStatus = iota
	PaymentPending
	PaymentPaid
	PaymentCompleted
	PaymentCancelled
)

var paymentCodes = map[PaymentStatus]string{
	PaymentPending:   "PENDING",
	PaymentPaid:      "PAID",
	PaymentCompleted: "COMPLETED",
	PaymentCancelled: "CANCELLED",
}

func ParsePaymentStatus(code string) (PaymentStatus, error) {
	for status, c := range paymentCodes {
		if c == code {
			return status, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause(
		"paymentStatus",
		fmt.Errorf("%q is not a payment status", code),
	)
}

func (s PaymentStatus) Validate() error {
	if _, ok := paymentCodes[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus", fmt.Errorf("%d is not a payment status", s))
	}
	return nil
}

func (s PaymentStatus) String() string {
	if code, ok := paymentCodes[s]; ok {
		return code
	}
	return "UNKNOWN"
}
