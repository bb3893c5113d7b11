package output

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/evtax/internal/solver"
	"github.com/shopspring/decimal"
)

// Formatter renders a solve result in one output format
type Formatter interface {
	Name() string
	Format(res *solver.Result) ([]byte, error)
}

// NewFormatter returns the formatter for a format name
func NewFormatter(format string) (Formatter, error) {
	switch strings.ToLower(format) {
	case "", "console", "table":
		return ConsoleFormatter{}, nil
	case "json":
		return JSONFormatter{Pretty: true}, nil
	case "csv":
		return CSVFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

var (
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// FormatAmount renders a whole-unit amount with space-separated thousands
func FormatAmount(amount decimal.Decimal, currency string) string {
	s := groupThousands(amount.Round(0).StringFixed(0))
	if currency == "" {
		return s
	}
	return s + " " + currency
}

// FormatPercentage renders a fraction as a percentage
func FormatPercentage(rate decimal.Decimal) string {
	return rate.Mul(hundred).StringFixed(2) + "%"
}

func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}
	var sb strings.Builder
	head := len(s) % 3
	if head > 0 {
		sb.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(s[i : i+3])
	}
	return sign + sb.String()
}
