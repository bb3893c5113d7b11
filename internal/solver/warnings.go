package solver

import (
	"fmt"

	"github.com/rgehrsitz/evtax/internal/domain"
	"github.com/shopspring/decimal"
)

func (s *Solver) warnings(res *Result) []domain.Warning {
	var out []domain.Warning
	add := func(code domain.WarningCode, format string, args ...any) {
		out = append(out, domain.Warning{Code: code, Message: fmt.Sprintf(format, args...)})
	}

	b := res.Breakdown
	annualRevenue := b.Revenue.Mul(twelve)
	currency := s.Table.Currency

	if b.BelowViableRange {
		add(domain.WarnBelowViableRange,
			"The target is below the minimum contributions; the result is shown at zero profit.")
	}
	if !res.Converged {
		add(domain.WarnNotConverged,
			"Local tax did not settle after %d iterations; the figures are a best estimate.", res.Iterations)
	}
	if res.Net.IsNegative() {
		add(domain.WarnNegativeNet,
			"Net income is negative (%s %s per month).", res.Net.StringFixed(0), currency)
	}

	switch b.Regime {
	case domain.RegimeFixedTax:
		if b.LimitExceeded {
			add(domain.WarnFixedTaxLimit,
				"Annual revenue %s %s exceeds the fixed-tax limit of %s %s; a %s surcharge applies to the excess.",
				annualRevenue.StringFixed(0), currency,
				s.Table.FixedTax.AnnualTurnoverLimit.StringFixed(0), currency,
				percent(s.Table.FixedTax.SurchargeRate))
		}
	default:
		if b.FloorApplied {
			add(domain.WarnMinimumContribution,
				"Profit is below the wage floor; minimum social and health contributions apply.")
		}
		if b.Regime == domain.RegimeFlatRate && b.LimitExceeded {
			add(domain.WarnFlatRateLimit,
				"Annual revenue %s %s exceeds the flat-rate limit of %s %s; the standard regime must be used.",
				annualRevenue.StringFixed(0), currency,
				s.Table.FlatRate.AnnualTurnoverLimit.StringFixed(0), currency)
		}
		if b.Revenue.IsPositive() {
			limit := s.Table.VATExemptionLimit
			if annualRevenue.GreaterThan(limit) {
				add(domain.WarnVATRegistration,
					"Annual revenue exceeds the VAT exemption limit of %s %s; VAT registration is required.",
					limit.StringFixed(0), currency)
			} else {
				add(domain.WarnVATExempt,
					"Annual revenue is within the VAT exemption limit of %s %s; a VAT exemption can be chosen.",
					limit.StringFixed(0), currency)
			}
		}
	}
	return out
}

func percent(rate decimal.Decimal) string {
	return rate.Mul(hundred).StringFixed(0) + "%"
}
