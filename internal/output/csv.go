package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rgehrsitz/evtax/internal/domain"
	"github.com/rgehrsitz/evtax/internal/solver"
	"github.com/shopspring/decimal"
)

// CSVFormatter writes one row per line item with monthly and annual columns
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

type lineItem struct {
	name    string
	monthly decimal.Decimal
}

func (CSVFormatter) Format(res *solver.Result) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Item", "Monthly", "Annual"}); err != nil {
		return nil, err
	}

	b := res.Breakdown
	items := []lineItem{
		{"Revenue", b.Revenue},
		{"Expenses", b.Expenses},
		{"Profit", b.Profit},
	}
	if b.Regime == domain.RegimeFixedTax {
		items = append(items,
			lineItem{"FixedTax", b.FixedAmount},
			lineItem{"Surcharge", b.Surcharge})
	} else {
		items = append(items,
			lineItem{"IncomeTax", b.IncomeTax},
			lineItem{"SocialContribution", b.SocialContribution},
			lineItem{"HealthContribution", b.HealthContribution})
	}
	items = append(items,
		lineItem{"LocalTax", res.LocalTax.Monthly},
		lineItem{"TotalTax", res.TotalTax},
		lineItem{"Net", res.Net})

	for _, it := range items {
		if err := w.Write([]string{it.name, it.monthly.StringFixed(2), it.monthly.Mul(twelve).StringFixed(2)}); err != nil {
			return nil, err
		}
	}
	if err := w.Write([]string{"EffectiveRate", res.EffectiveRate.StringFixed(4), res.EffectiveRate.StringFixed(4)}); err != nil {
		return nil, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
