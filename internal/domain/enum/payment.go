package enum

// PaymentType is the generic method type delivered by the payment-methods
// configuration provider.
type PaymentType string

const (
	PaymentTypeCash         PaymentType = "cash"
	PaymentTypeMFS          PaymentType = "mfs"
	PaymentTypeBankTransfer PaymentType = "bank_transfer"
	PaymentTypeCard         PaymentType = "card"
)

// PosMethod is the POS-specific method tag carried on checkout requests and
// receipts. MFS providers map to their own literals.
type PosMethod string

const (
	PosMethodCash         PosMethod = "cash"
	PosMethodBkash        PosMethod = "bkash"
	PosMethodNagad        PosMethod = "nagad"
	PosMethodRocket       PosMethod = "rocket"
	PosMethodUpay         PosMethod = "upay"
	PosMethodBankTransfer PosMethod = "bank_transfer"
	PosMethodCard         PosMethod = "card"
)

// NeedsReference reports whether a proof-of-payment reference must be
// captured before checkout. Only cash is exempt.
func (m PosMethod) NeedsReference() bool {
	return m != PosMethodCash && m != ""
}

func (m PosMethod) String() string {
	return string(m)
}
