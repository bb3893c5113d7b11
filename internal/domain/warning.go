package domain

// WarningCode classifies a non-fatal condition attached to a result
type WarningCode string

const (
	WarnNegativeNet         WarningCode = "negative_net"
	WarnMinimumContribution WarningCode = "minimum_contributions"
	WarnFixedTaxLimit       WarningCode = "fixed_tax_limit_exceeded"
	WarnFlatRateLimit       WarningCode = "flat_rate_limit_exceeded"
	WarnVATRegistration     WarningCode = "vat_registration_required"
	WarnVATExempt           WarningCode = "vat_exemption_available"
	WarnBelowViableRange    WarningCode = "below_viable_range"
	WarnNotConverged        WarningCode = "not_converged"
)

// Warning is a coded, human-readable note about a result
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}

func (w Warning) String() string {
	return w.Message
}
