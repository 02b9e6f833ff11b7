package domain

// FundingMethod is how money enters or leaves the platform.
type FundingMethod string

const (
	FundingMethodCard FundingMethod = "card"
	FundingMethodBank FundingMethod = "bank"
	FundingMethodCash FundingMethod = "cash"
)

var validFundingMethods = map[FundingMethod]bool{
	FundingMethodCard: true,
	FundingMethodBank: true,
	FundingMethodCash: true,
}

// IsValid checks if the method is a known funding method.
func (m FundingMethod) IsValid() bool {
	return validFundingMethods[m]
}

// IsInstant reports whether the method settles synchronously. Manual
// methods create a PENDING transaction that needs staff approval.
func (m FundingMethod) IsInstant() bool {
	return m == FundingMethodCard
}
