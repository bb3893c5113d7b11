package domain

import (
	"fmt"
	"strings"
)

// Regime identifies one of the three mutually exclusive fiscal treatments
type Regime string

const (
	RegimeStandard Regime = "standard"  // actual-expense sole trader
	RegimeFlatRate Regime = "flat_rate" // lump-sum expense ratio with income-tax exemption
	RegimeFixedTax Regime = "fixed_tax" // flat monthly fee with surcharge above the turnover limit
)

// AllRegimes lists the regimes in presentation order
var AllRegimes = []Regime{RegimeFixedTax, RegimeFlatRate, RegimeStandard}

// DisplayName returns a human-readable regime name
func (r Regime) DisplayName() string {
	switch r {
	case RegimeStandard:
		return "Standard"
	case RegimeFlatRate:
		return "Flat-rate"
	case RegimeFixedTax:
		return "Fixed tax"
	default:
		return string(r)
	}
}

// Valid reports whether r is a known regime
func (r Regime) Valid() bool {
	switch r {
	case RegimeStandard, RegimeFlatRate, RegimeFixedTax:
		return true
	}
	return false
}

// ParseRegime accepts the canonical names plus a few common aliases
func ParseRegime(s string) (Regime, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard", "ev":
		return RegimeStandard, nil
	case "flat_rate", "flat-rate", "flatrate", "atalany":
		return RegimeFlatRate, nil
	case "fixed_tax", "fixed-tax", "fixedtax", "kata":
		return RegimeFixedTax, nil
	}
	return "", fmt.Errorf("unknown regime %q (expected standard, flat_rate or fixed_tax)", s)
}

// InputMode tells the solver which quantity the caller already knows
type InputMode string

const (
	ModeRevenue  InputMode = "revenue"
	ModeNet      InputMode = "net"
	ModeTotalTax InputMode = "total_tax"
)

// AllModes lists the input modes in presentation order
var AllModes = []InputMode{ModeRevenue, ModeNet, ModeTotalTax}

// DisplayName returns a human-readable mode name
func (m InputMode) DisplayName() string {
	switch m {
	case ModeRevenue:
		return "revenue"
	case ModeNet:
		return "net income"
	case ModeTotalTax:
		return "total tax"
	default:
		return string(m)
	}
}

// Valid reports whether m is a known input mode
func (m InputMode) Valid() bool {
	switch m {
	case ModeRevenue, ModeNet, ModeTotalTax:
		return true
	}
	return false
}

// ParseInputMode accepts the canonical names plus short aliases
func ParseInputMode(s string) (InputMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "revenue", "turnover":
		return ModeRevenue, nil
	case "net":
		return ModeNet, nil
	case "total_tax", "total-tax", "tax":
		return ModeTotalTax, nil
	}
	return "", fmt.Errorf("unknown input mode %q (expected revenue, net or total_tax)", s)
}

// WageFloorChoice selects which monthly minimum base drives the contribution floors
type WageFloorChoice string

const (
	WageFloorOrdinary  WageFloorChoice = "ordinary"  // statutory minimum wage
	WageFloorQualified WageFloorChoice = "qualified" // guaranteed minimum for qualified work
)

// Valid reports whether c is a known floor choice
func (c WageFloorChoice) Valid() bool {
	return c == WageFloorOrdinary || c == WageFloorQualified
}

// ParseWageFloorChoice parses a floor choice; empty input means ordinary
func ParseWageFloorChoice(s string) (WageFloorChoice, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ordinary", "min", "minimum":
		return WageFloorOrdinary, nil
	case "qualified", "guaranteed", "guar":
		return WageFloorQualified, nil
	}
	return "", fmt.Errorf("unknown wage floor %q (expected ordinary or qualified)", s)
}
