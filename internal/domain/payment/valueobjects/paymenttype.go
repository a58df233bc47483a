package valueobjects

type PaymentType string

const (
	PaymentTypeCharge PaymentType = "charge"
	PaymentTypeRefund PaymentType = "refund"
)

func (t PaymentType) String() string {
	return string(t)
}

func (t PaymentType) IsValid() bool {
	return t == PaymentTypeCharge || t == PaymentTypeRefund
}
