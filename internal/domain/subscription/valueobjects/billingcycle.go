package valueobjects

import "fmt"

// BillingCycle is the interval a plan renews on. Values match the
// gateway's price interval vocabulary so no translation layer is needed.
type BillingCycle string

const (
	BillingCycleDay   BillingCycle = "day"
	BillingCycleWeek  BillingCycle = "week"
	BillingCycleMonth BillingCycle = "month"
	BillingCycleYear  BillingCycle = "year"
)

var validBillingCycles = map[BillingCycle]bool{
	BillingCycleDay:   true,
	BillingCycleWeek:  true,
	BillingCycleMonth: true,
	BillingCycleYear:  true,
}

func ParseBillingCycle(value string) (BillingCycle, error) {
	bc := BillingCycle(value)
	if !validBillingCycles[bc] {
		return "", fmt.Errorf("invalid billing cycle: %s", value)
	}
	return bc, nil
}

func (b BillingCycle) IsValid() bool {
	return validBillingCycles[b]
}

func (b BillingCycle) String() string {
	return string(b)
}

// Days returns the fixed day count of one billing period. Fixed counts
// keep periods consistent instead of drifting on month boundaries.
func (b BillingCycle) Days() int {
	switch b {
	case BillingCycleDay:
		return 1
	case BillingCycleWeek:
		return 7
	case BillingCycleMonth:
		return 30
	case BillingCycleYear:
		return 365
	default:
		return 30
	}
}
