package solver

import (
	"context"
	"testing"

	"github.com/rgehrsitz/evtax/internal/config"
	"github.com/rgehrsitz/evtax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLogger is a simple logger for testing
type TestLogger struct {
	messages []string
}

func (tl *TestLogger) Debugf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "DEBUG: "+format)
}

func (tl *TestLogger) Infof(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "INFO: "+format)
}

func (tl *TestLogger) Warnf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "WARN: "+format)
}

func (tl *TestLogger) Errorf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "ERROR: "+format)
}

func (tl *TestLogger) count(prefix string) int {
	n := 0
	for _, m := range tl.messages {
		if len(m) >= len(prefix) && m[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.True(t, opts.Tolerance.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, 10, opts.MaxIterations)
}

func TestLocalTaxAdjuster_Converges(t *testing.T) {
	table := config.Default2026()
	adj := NewLocalTaxAdjuster(table.LocalTax, DefaultOptions())

	res, err := adj.Adjust(context.Background(), table.Standard, domain.ModeNet, d(500000), decimal.Zero, d(322800))
	require.NoError(t, err)

	assert.True(t, res.Converged)
	assert.Equal(t, 2, res.Iterations)
	assert.True(t, res.LocalTax.Tiered)
	assertClose(t, decimal.NewFromInt(50000), res.LocalTax.Annual, cent)
	assertClose(t, d(500000), res.Breakdown.Net.Sub(res.LocalTax.Monthly), cent)
}

func TestLocalTaxAdjuster_IterationCap(t *testing.T) {
	table := config.Default2026()
	logger := &TestLogger{}
	adj := NewLocalTaxAdjuster(table.LocalTax, Options{Tolerance: decimal.NewFromInt(1), MaxIterations: 1})
	adj.Logger = logger

	res, err := adj.Adjust(context.Background(), table.Standard, domain.ModeNet, d(500000), decimal.Zero, d(322800))
	require.NoError(t, err)

	assert.False(t, res.Converged)
	assert.Equal(t, 1, res.Iterations)
	assert.Equal(t, 1, logger.count("WARN"))
	// the last iterate is still returned
	assertClose(t, decimal.NewFromFloat(504166.67), res.Breakdown.Net, cent)
}

func TestLocalTaxAdjuster_NoIterations(t *testing.T) {
	table := config.Default2026()
	adj := NewLocalTaxAdjuster(table.LocalTax, Options{Tolerance: decimal.NewFromInt(1), MaxIterations: 0})

	res, err := adj.Adjust(context.Background(), table.Standard, domain.ModeNet, d(500000), decimal.Zero, d(322800))
	require.NoError(t, err)

	assert.False(t, res.Converged)
	assert.Equal(t, 0, res.Iterations)
	assertClose(t, d(500000), res.Breakdown.Net, cent)
}

func TestLocalTaxAdjuster_LooseTolerance(t *testing.T) {
	table := config.Default2026()
	adj := NewLocalTaxAdjuster(table.LocalTax, Options{Tolerance: decimal.NewFromInt(1000000000), MaxIterations: 10})

	res, err := adj.Adjust(context.Background(), table.Standard, domain.ModeNet, d(500000), decimal.Zero, d(322800))
	require.NoError(t, err)

	assert.True(t, res.Converged)
	assert.Equal(t, 1, res.Iterations)
}

func TestLocalTaxAdjuster_RevenueModeDoesNotIterate(t *testing.T) {
	table := config.Default2026()
	adj := NewLocalTaxAdjuster(table.LocalTax, DefaultOptions())

	res, err := adj.Adjust(context.Background(), table.FixedTax, domain.ModeRevenue, d(2000000), decimal.Zero, decimal.Zero)
	require.NoError(t, err)

	assert.True(t, res.Converged)
	assert.Equal(t, 0, res.Iterations)
	assertClose(t, d(170000), res.LocalTax.Annual, cent)
}

func TestLocalTaxAdjuster_TotalTaxTarget(t *testing.T) {
	table := config.Default2026()
	adj := NewLocalTaxAdjuster(table.LocalTax, DefaultOptions())

	res, err := adj.Adjust(context.Background(), table.Standard, domain.ModeTotalTax, d(200000), decimal.Zero, d(322800))
	require.NoError(t, err)

	assert.True(t, res.Converged)
	assertClose(t, d(200000), res.Breakdown.TotalTax.Add(res.LocalTax.Monthly), cent)
}

func TestLocalTaxAdjuster_Cancelled(t *testing.T) {
	table := config.Default2026()
	adj := NewLocalTaxAdjuster(table.LocalTax, DefaultOptions())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := adj.Adjust(ctx, table.Standard, domain.ModeNet, d(500000), decimal.Zero, d(322800))
	assert.ErrorIs(t, err, context.Canceled)
}
