package enums

import "fmt"

// PaymentBranch is the payment-processing path selected for a booking. A
// classified corridor goes through the hosted dynamic checkout; everything
// else is recorded and confirmed manually.
type PaymentBranch string

const (
	PaymentBranchDynamicCheckout PaymentBranch = "dynamic_checkout"
	PaymentBranchRecordConfirm   PaymentBranch = "record_confirm"
)

var validPaymentBranches = []PaymentBranch{
	PaymentBranchDynamicCheckout,
	PaymentBranchRecordConfirm,
}

// String implements fmt.Stringer.
func (p PaymentBranch) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentBranch.
func (p PaymentBranch) IsValid() bool {
	for _, candidate := range validPaymentBranches {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentBranch converts raw input into a PaymentBranch.
func ParsePaymentBranch(value string) (PaymentBranch, error) {
	for _, candidate := range validPaymentBranches {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment branch %q", value)
}
