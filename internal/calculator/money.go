package calculator

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

// SplitTolerance is the largest absolute difference allowed between an
// expense amount and the sum of its splits.
const SplitTolerance = 0.01

// BalanceEpsilon is half a cent. Folded balances smaller than this in absolute
// value are reported as zero.
const BalanceEpsilon = 0.005

var splitTolerance = decimal.NewFromFloat(SplitTolerance)

// SumSplits returns the sum of split amounts.
func SumSplits(splits []models.Split) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range splits {
		sum = sum.Add(decimal.NewFromFloat(s.Amount))
	}
	return sum
}

// SplitsMatchAmount reports whether the splits add up to amount within
// SplitTolerance.
func SplitsMatchAmount(splits []models.Split, amount float64) bool {
	diff := SumSplits(splits).Sub(decimal.NewFromFloat(amount)).Abs()
	return diff.LessThanOrEqual(splitTolerance)
}

// RoundCents rounds v to two decimal places, half away from zero.
func RoundCents(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Normalize maps rounding residue below BalanceEpsilon to zero.
func Normalize(balance float64) float64 {
	if math.Abs(balance) < BalanceEpsilon {
		return 0
	}
	return balance
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
