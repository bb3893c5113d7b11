package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rgehrsitz/evtax/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for parameter files that are neither YAML
// nor TOML
var ErrUnsupportedFormat = errors.New("unsupported parameter file format")

var hundred = decimal.NewFromInt(100)

// Loader reads and validates parameter tables
type Loader struct{}

// NewLoader creates a new parameter table loader
func NewLoader() *Loader {
	return &Loader{}
}

// Load returns the table in path, or the 2026 defaults when path is empty
func (l *Loader) Load(path string) (*domain.ParameterTable, error) {
	if path == "" {
		return Default2026(), nil
	}
	return l.LoadFromFile(path)
}

// LoadFromFile loads a parameter table from a YAML or TOML file. The format
// is chosen by extension; .json is read by the YAML decoder.
func (l *Loader) LoadFromFile(filename string) (*domain.ParameterTable, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var table domain.ParameterTable
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml", ".json":
		if err := yaml.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &table); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}

	if err := l.Validate(&table); err != nil {
		return nil, fmt.Errorf("parameter validation failed: %w", err)
	}

	return &table, nil
}

// Validate checks that a parameter table is internally consistent
func (l *Loader) Validate(table *domain.ParameterTable) error {
	if table.FiscalYear <= 0 {
		return fmt.Errorf("fiscal year is required")
	}
	if err := l.validateContributions(&table.Standard.Contributions); err != nil {
		return fmt.Errorf("standard: %w", err)
	}
	if err := l.validateFlatRate(&table.FlatRate); err != nil {
		return fmt.Errorf("flat_rate: %w", err)
	}
	if err := l.validateFixedTax(&table.FixedTax); err != nil {
		return fmt.Errorf("fixed_tax: %w", err)
	}
	if err := l.validateLocalTax(&table.LocalTax); err != nil {
		return fmt.Errorf("local_tax: %w", err)
	}
	if !table.VATExemptionLimit.IsPositive() {
		return fmt.Errorf("vat exemption limit must be positive")
	}
	for _, v := range table.VATRates {
		if err := validateRate("vat rate", v.Rate); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) validateContributions(c *domain.Contributions) error {
	if err := validateRate("income tax rate", c.IncomeTaxRate); err != nil {
		return err
	}
	if err := validateRate("social contribution rate", c.SocialContributionRate); err != nil {
		return err
	}
	if err := validateRate("health contribution rate", c.HealthContributionRate); err != nil {
		return err
	}
	if c.TotalMarginalRate().GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("combined marginal rate must be below 1, got %s", c.TotalMarginalRate())
	}

	if !c.WageFloors.Ordinary.IsPositive() {
		return fmt.Errorf("ordinary wage floor must be positive")
	}
	if !c.WageFloors.Qualified.IsPositive() {
		return fmt.Errorf("qualified wage floor must be positive")
	}
	if c.WageFloors.Ordinary.GreaterThan(c.WageFloors.Qualified) {
		return fmt.Errorf("ordinary wage floor cannot exceed the qualified floor")
	}
	return nil
}

func (l *Loader) validateFlatRate(p *domain.FlatRateParams) error {
	if err := l.validateContributions(&p.Contributions); err != nil {
		return err
	}
	if p.AnnualExemption.IsNegative() {
		return fmt.Errorf("annual exemption cannot be negative")
	}
	if !p.AnnualTurnoverLimit.IsPositive() {
		return fmt.Errorf("annual turnover limit must be positive")
	}
	if len(p.ExpenseRatioOptions) == 0 {
		return fmt.Errorf("at least one expense ratio option is required")
	}
	for _, opt := range p.ExpenseRatioOptions {
		if opt.IsNegative() || opt.GreaterThanOrEqual(hundred) {
			return fmt.Errorf("expense ratio option %s must be in [0,100)", opt)
		}
	}
	return nil
}

func (l *Loader) validateFixedTax(p *domain.FixedTaxParams) error {
	if !p.MonthlyAmount.IsPositive() {
		return fmt.Errorf("monthly amount must be positive")
	}
	if !p.AnnualTurnoverLimit.IsPositive() {
		return fmt.Errorf("annual turnover limit must be positive")
	}
	return validateRate("surcharge rate", p.SurchargeRate)
}

func (l *Loader) validateLocalTax(s *domain.LocalTaxSchedule) error {
	if err := validateRate("rate", s.Rate); err != nil {
		return err
	}
	for i, tier := range s.Tiers {
		if !tier.AnnualRevenueCeiling.IsPositive() {
			return fmt.Errorf("tier %d: revenue ceiling must be positive", i)
		}
		if tier.FixedAnnualBase.IsNegative() {
			return fmt.Errorf("tier %d: fixed base cannot be negative", i)
		}
	}

	ceilings := lo.Map(s.Tiers, func(t domain.LocalTaxTier, _ int) decimal.Decimal {
		return t.AnnualRevenueCeiling
	})
	for i := 1; i < len(ceilings); i++ {
		if !ceilings[i].GreaterThan(ceilings[i-1]) {
			return fmt.Errorf("tier ceilings must be strictly increasing (tier %d: %s after %s)", i, ceilings[i], ceilings[i-1])
		}
	}
	return nil
}

func validateRate(name string, rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("%s must be in [0,1), got %s", name, rate)
	}
	return nil
}
