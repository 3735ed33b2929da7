package analytics

import (
	"sort"

	"github.com/mkuiper/portfolio-tracker/internal/model"
)

// DefaultTopN is the subset size used for top/bottom selections when the
// caller does not supply one.
const DefaultTopN = 5

// RankedCompany is a company aggregation annotated with its 1-based
// performance rank.
type RankedCompany struct {
	CompanyAggregation
	Rank int `json:"rank"`
}

// PeriodTotals holds the portfolio totals of a single period, the common
// denominator between snapshots and time-bucket aggregates for comparisons.
type PeriodTotals struct {
	TotalInvestment    float64 `json:"totalInvestment"`
	TotalCurrentValue  float64 `json:"totalCurrentValue"`
	TotalUnrealizedPnL float64 `json:"totalUnrealizedPnL"`
}

// PeriodSummary is PeriodTotals extended with the derived unrealized
// percentage.
type PeriodSummary struct {
	PeriodTotals
	TotalUnrealizedPct float64 `json:"totalUnrealizedPct"`
}

// PeriodDelta holds the per-field difference between two periods.
type PeriodDelta struct {
	Investment    float64 `json:"investment"`
	CurrentValue  float64 `json:"currentValue"`
	UnrealizedPnL float64 `json:"unrealizedPnL"`
	UnrealizedPct float64 `json:"unrealizedPct"`
}

// PeriodComparison is the result of comparing a current period against a
// previous one: both summaries, raw deltas, and deltas relative to the
// previous period's values.
type PeriodComparison struct {
	Current       PeriodSummary `json:"current"`
	Previous      PeriodSummary `json:"previous"`
	Change        PeriodDelta   `json:"change"`
	ChangePercent PeriodDelta   `json:"changePercent"`
}

// PositionSize is one position's share of the total invested capital.
type PositionSize struct {
	CompanyName string  `json:"companyName"`
	Size        float64 `json:"size"`
	Percentage  float64 `json:"percentage"`
}

// CompareCompanies sorts company aggregations descending by unrealized
// percentage and assigns each a 1-based rank. The sort is stable, so ties
// keep their input order. The input slice is not modified.
func CompareCompanies(companies []CompanyAggregation) []RankedCompany {
	sorted := make([]CompanyAggregation, len(companies))
	copy(sorted, companies)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalUnrealizedPct > sorted[j].TotalUnrealizedPct
	})

	ranked := make([]RankedCompany, len(sorted))
	for i, c := range sorted {
		ranked[i] = RankedCompany{CompanyAggregation: c, Rank: i + 1}
	}
	return ranked
}

// ComparePeriods compares the last element of each period's totals (a zeroed
// record when a list is empty) and computes raw and relative deltas. Each
// relative delta is guarded against a zero previous value; the P/L percent
// delta divides by the absolute previous P/L so a negative base cannot flip
// the sign. The percent-point field of ChangePercent carries the raw
// percentage-point difference.
func ComparePeriods(current, previous []PeriodTotals) PeriodComparison {
	cur := lastOrZero(current)
	prev := lastOrZero(previous)

	currentPct := ratio(cur.TotalUnrealizedPnL, cur.TotalInvestment, 0) * 100
	previousPct := ratio(prev.TotalUnrealizedPnL, prev.TotalInvestment, 0) * 100

	change := PeriodDelta{
		Investment:    cur.TotalInvestment - prev.TotalInvestment,
		CurrentValue:  cur.TotalCurrentValue - prev.TotalCurrentValue,
		UnrealizedPnL: cur.TotalUnrealizedPnL - prev.TotalUnrealizedPnL,
		UnrealizedPct: currentPct - previousPct,
	}

	absPrevPnL := prev.TotalUnrealizedPnL
	if absPrevPnL < 0 {
		absPrevPnL = -absPrevPnL
	}

	changePercent := PeriodDelta{
		Investment:    ratio(change.Investment, prev.TotalInvestment, 0) * 100,
		CurrentValue:  ratio(change.CurrentValue, prev.TotalCurrentValue, 0) * 100,
		UnrealizedPnL: ratio(change.UnrealizedPnL, absPrevPnL, 0) * 100,
		UnrealizedPct: change.UnrealizedPct,
	}

	return PeriodComparison{
		Current:       PeriodSummary{PeriodTotals: cur, TotalUnrealizedPct: currentPct},
		Previous:      PeriodSummary{PeriodTotals: prev, TotalUnrealizedPct: previousPct},
		Change:        change,
		ChangePercent: changePercent,
	}
}

// TopPositions returns the n best-performing positions by unrealized
// percentage, descending. The sort is stable and the input is not modified;
// n larger than the input returns everything.
func TopPositions(positions []model.Position, n int) []model.Position {
	return takeSorted(positions, n, func(a, b model.Position) bool {
		return a.UnrealizedPct > b.UnrealizedPct
	})
}

// BottomPositions returns the n worst-performing positions by unrealized
// percentage, ascending. The sort is stable and the input is not modified.
func BottomPositions(positions []model.Position, n int) []model.Position {
	return takeSorted(positions, n, func(a, b model.Position) bool {
		return a.UnrealizedPct < b.UnrealizedPct
	})
}

// ComparePositionSizes sorts positions descending by invested capital and
// computes each position's share of the total investment as a percentage
// (0 for every entry when the total is 0).
func ComparePositionSizes(positions []model.Position) []PositionSize {
	var total float64
	for _, p := range positions {
		total += p.InvestmentWithFees
	}

	sizes := make([]PositionSize, len(positions))
	for i, p := range positions {
		sizes[i] = PositionSize{
			CompanyName: p.CompanyName,
			Size:        p.InvestmentWithFees,
			Percentage:  ratio(p.InvestmentWithFees, total, 0) * 100,
		}
	}

	sort.SliceStable(sizes, func(i, j int) bool {
		return sizes[i].Size > sizes[j].Size
	})

	return sizes
}

// takeSorted stably sorts a copy of positions with the given less function
// and returns the first n elements.
func takeSorted(positions []model.Position, n int, less func(a, b model.Position) bool) []model.Position {
	sorted := make([]model.Position, len(positions))
	copy(sorted, positions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})

	if n < 0 {
		n = 0
	}
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// lastOrZero returns the last element of totals, or a zeroed record when the
// list is empty.
func lastOrZero(totals []PeriodTotals) PeriodTotals {
	if len(totals) == 0 {
		return PeriodTotals{}
	}
	return totals[len(totals)-1]
}
