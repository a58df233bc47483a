package valueobjects

import "fmt"

type PaymentMethod string

const (
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodCrypto PaymentMethod = "crypto"
)

func ParsePaymentMethod(value string) (PaymentMethod, error) {
	switch PaymentMethod(value) {
	case PaymentMethodCard:
		return PaymentMethodCard, nil
	case PaymentMethodCrypto:
		return PaymentMethodCrypto, nil
	default:
		return "", fmt.Errorf("invalid payment method: %s", value)
	}
}

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) IsCard() bool {
	return m == PaymentMethodCard
}

func (m PaymentMethod) IsCrypto() bool {
	return m == PaymentMethodCrypto
}
