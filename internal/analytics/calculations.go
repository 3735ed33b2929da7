package analytics

import (
	"math"
	"sort"

	"github.com/mkuiper/portfolio-tracker/internal/model"
)

// DefaultVaRConfidence is the confidence level used for Value-at-Risk when the
// caller does not supply one.
const DefaultVaRConfidence = 0.95

// WinRate returns the percentage of positions with a positive unrealized P/L,
// relative to all positions. Returns 0 for empty input.
func WinRate(positions []model.Position) float64 {
	if len(positions) == 0 {
		return 0
	}
	winning := 0
	for _, p := range positions {
		if p.UnrealizedPnL > 0 {
			winning++
		}
	}
	return float64(winning) / float64(len(positions)) * 100
}

// AverageReturn returns the arithmetic mean of the positions' unrealized
// return percentages. Returns 0 for empty input.
func AverageReturn(positions []model.Position) float64 {
	if len(positions) == 0 {
		return 0
	}
	var total float64
	for _, p := range positions {
		total += p.UnrealizedPct
	}
	return total / float64(len(positions))
}

// Volatility returns the population standard deviation of the positions'
// unrealized return percentages around their mean. Returns 0 for empty or
// single-element input.
func Volatility(positions []model.Position) float64 {
	if len(positions) <= 1 {
		return 0
	}
	avg := AverageReturn(positions)
	var variance float64
	for _, p := range positions {
		d := p.UnrealizedPct - avg
		variance += d * d
	}
	variance /= float64(len(positions))
	return math.Sqrt(variance)
}

// MaxDrawdown returns the largest peak-to-trough decline of total portfolio
// value across the snapshot history, as a positive percentage. Snapshots are
// processed in ascending date order; a running peak is tracked and the
// drawdown at each point is (current - peak) / peak * 100. Returns 0 for
// empty input or while the running peak is 0.
func MaxDrawdown(snapshots []model.DailySnapshot) float64 {
	if len(snapshots) == 0 {
		return 0
	}

	sorted := sortSnapshotsByDate(snapshots)

	peak := sorted[0].TotalCurrentValue
	var maxDrawdown float64

	for _, s := range sorted {
		if s.TotalCurrentValue > peak {
			peak = s.TotalCurrentValue
		}
		drawdown := ratio(s.TotalCurrentValue-peak, peak, 0) * 100
		if drawdown < maxDrawdown {
			maxDrawdown = drawdown
		}
	}

	return math.Abs(maxDrawdown)
}

// SharpeRatio returns the average return divided by the given volatility,
// with the risk-free rate assumed to be 0. Returns 0 when volatility is 0.
func SharpeRatio(positions []model.Position, volatility float64) float64 {
	return ratio(AverageReturn(positions), volatility, 0)
}

// ValueAtRisk returns the empirical (historical) Value at Risk of the
// positions' return distribution at the given confidence level: the absolute
// value of the return at index floor((1-confidence) * n) of the ascending
// sorted returns. Returns 0 for empty input or when the index falls outside
// the distribution.
func ValueAtRisk(positions []model.Position, confidence float64) float64 {
	if len(positions) == 0 {
		return 0
	}

	returns := make([]float64, len(positions))
	for i, p := range positions {
		returns[i] = p.UnrealizedPct
	}
	sort.Float64s(returns)

	index := int(math.Floor((1 - confidence) * float64(len(returns))))
	if index < 0 || index >= len(returns) {
		return 0
	}
	return math.Abs(returns[index])
}

// DownsideDeviation returns the root mean square of the negative unrealized
// return percentages. Unlike Volatility it measures dispersion below zero
// rather than around the mean. Returns 0 when no negative returns exist.
func DownsideDeviation(positions []model.Position) float64 {
	var sum float64
	negative := 0
	for _, p := range positions {
		if p.UnrealizedPct < 0 {
			sum += p.UnrealizedPct * p.UnrealizedPct
			negative++
		}
	}
	if negative == 0 {
		return 0
	}
	return math.Sqrt(sum / float64(negative))
}

// SortinoRatio returns the average return divided by the downside deviation.
// Returns 0 when the downside deviation is 0.
func SortinoRatio(positions []model.Position, downsideDeviation float64) float64 {
	return ratio(AverageReturn(positions), downsideDeviation, 0)
}

// BestPosition returns the position with the highest unrealized return
// percentage, or nil for empty input. Earlier positions win ties.
func BestPosition(positions []model.Position) *model.Position {
	if len(positions) == 0 {
		return nil
	}
	best := positions[0]
	for _, p := range positions[1:] {
		if p.UnrealizedPct > best.UnrealizedPct {
			best = p
		}
	}
	return &best
}

// WorstPosition returns the position with the lowest unrealized return
// percentage, or nil for empty input. Earlier positions win ties.
func WorstPosition(positions []model.Position) *model.Position {
	if len(positions) == 0 {
		return nil
	}
	worst := positions[0]
	for _, p := range positions[1:] {
		if p.UnrealizedPct < worst.UnrealizedPct {
			worst = p
		}
	}
	return &worst
}

// sortSnapshotsByDate returns a copy of snapshots sorted ascending by date.
// The caller's slice is never reordered.
func sortSnapshotsByDate(snapshots []model.DailySnapshot) []model.DailySnapshot {
	sorted := make([]model.DailySnapshot, len(snapshots))
	copy(sorted, snapshots)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}
