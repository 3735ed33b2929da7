package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/mkuiper/portfolio-tracker/internal/model"
)

// Period selects the bucketing granularity for time-based aggregations.
type Period string

// Supported aggregation periods.
const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// ValidPeriod reports whether p is one of the supported aggregation periods.
func ValidPeriod(p Period) bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

// DefaultDistributionBuckets is the histogram bin count used when the caller
// does not supply one.
const DefaultDistributionBuckets = 10

// CompanyAggregation holds the rolled-up state of all positions in a single
// company.
type CompanyAggregation struct {
	CompanyName        string  `json:"companyName"`
	PositionCount      int     `json:"positionCount"`
	TotalInvestment    float64 `json:"totalInvestment"`
	TotalCurrentValue  float64 `json:"totalCurrentValue"`
	TotalUnrealizedPnL float64 `json:"totalUnrealizedPnL"`
	TotalUnrealizedPct float64 `json:"totalUnrealizedPct"`
	AverageReturn      float64 `json:"averageReturn"`
}

// TimeAggregation holds portfolio totals for one time bucket. The totals are
// taken from the last snapshot inside the bucket, not summed or averaged:
// snapshots are daily rollups, so the last one approximates the end-of-period
// state.
type TimeAggregation struct {
	Date               string  `json:"date"`
	TotalInvestment    float64 `json:"totalInvestment"`
	TotalCurrentValue  float64 `json:"totalCurrentValue"`
	TotalUnrealizedPnL float64 `json:"totalUnrealizedPnL"`
	TotalUnrealizedPct float64 `json:"totalUnrealizedPct"`
}

// TransactionAggregation holds buy/sell activity totals for one time bucket.
type TransactionAggregation struct {
	Date       string  `json:"date"`
	BuyCount   int     `json:"buyCount"`
	SellCount  int     `json:"sellCount"`
	BuyVolume  float64 `json:"buyVolume"`
	SellVolume float64 `json:"sellVolume"`
	BuyValue   float64 `json:"buyValue"`
	SellValue  float64 `json:"sellValue"`
	TotalFees  float64 `json:"totalFees"`
}

// DistributionBucket is one bin of a return-distribution histogram.
type DistributionBucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// AggregateByCompany groups positions by company name and rolls up each
// group's investment, current value, and unrealized P/L. The per-group
// unrealized percentage is P/L over investment; AverageReturn is the
// unweighted mean of the individual positions' return percentages. Groups are
// emitted in the order each company is first seen.
func AggregateByCompany(positions []model.Position) []CompanyAggregation {
	groups := make(map[string][]model.Position)
	order := []string{}

	for _, p := range positions {
		if _, seen := groups[p.CompanyName]; !seen {
			order = append(order, p.CompanyName)
		}
		groups[p.CompanyName] = append(groups[p.CompanyName], p)
	}

	result := make([]CompanyAggregation, 0, len(order))
	for _, company := range order {
		members := groups[company]

		var investment, value, pnl, returnSum float64
		for _, p := range members {
			investment += p.InvestmentWithFees
			value += p.CurrentValue
			pnl += p.UnrealizedPnL
			returnSum += p.UnrealizedPct
		}

		result = append(result, CompanyAggregation{
			CompanyName:        company,
			PositionCount:      len(members),
			TotalInvestment:    investment,
			TotalCurrentValue:  value,
			TotalUnrealizedPnL: pnl,
			TotalUnrealizedPct: ratio(pnl, investment, 0) * 100,
			AverageReturn:      ratio(returnSum, float64(len(members)), 0),
		})
	}

	return result
}

// AggregateByTimePeriod buckets snapshots by the given period and emits one
// aggregate per bucket, in chronological order. Each bucket's totals come
// from the last snapshot inside it (see TimeAggregation). Returns an empty
// slice for empty input.
func AggregateByTimePeriod(snapshots []model.DailySnapshot, period Period) []TimeAggregation {
	if len(snapshots) == 0 {
		return []TimeAggregation{}
	}

	sorted := sortSnapshotsByDate(snapshots)

	last := make(map[string]model.DailySnapshot)
	order := []string{}

	for _, s := range sorted {
		key := bucketKey(s.Date, period)
		if _, seen := last[key]; !seen {
			order = append(order, key)
		}
		last[key] = s
	}

	result := make([]TimeAggregation, 0, len(order))
	for _, key := range order {
		s := last[key]
		result = append(result, TimeAggregation{
			Date:               key,
			TotalInvestment:    s.TotalInvestment,
			TotalCurrentValue:  s.TotalCurrentValue,
			TotalUnrealizedPnL: s.TotalUnrealizedPnL,
			TotalUnrealizedPct: ratio(s.TotalUnrealizedPnL, s.TotalInvestment, 0) * 100,
		})
	}

	return result
}

// AggregateTransactionsByTime buckets transactions by creation time using the
// same bucket keys as AggregateByTimePeriod and totals the buy/sell activity
// per bucket. Returns an empty slice for empty input.
func AggregateTransactionsByTime(transactions []model.Transaction, period Period) []TransactionAggregation {
	if len(transactions) == 0 {
		return []TransactionAggregation{}
	}

	sorted := make([]model.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	buckets := make(map[string]*TransactionAggregation)
	order := []string{}

	for _, t := range sorted {
		key := bucketKey(t.CreatedAt, period)
		agg, seen := buckets[key]
		if !seen {
			agg = &TransactionAggregation{Date: key}
			buckets[key] = agg
			order = append(order, key)
		}

		switch t.Type {
		case model.TransactionBuy:
			agg.BuyCount++
			agg.BuyVolume += t.Quantity
			agg.BuyValue += t.Total
		case model.TransactionSell:
			agg.SellCount++
			agg.SellVolume += t.Quantity
			agg.SellValue += t.Total
		}
		agg.TotalFees += t.Fees
	}

	result := make([]TransactionAggregation, 0, len(order))
	for _, key := range order {
		result = append(result, *buckets[key])
	}

	return result
}

// ReturnDistribution builds an equal-width histogram of the positions'
// unrealized return percentages over [min, max] with the given number of
// bins. A value falls in bin floor((value-min)/binWidth), clamped to the last
// bin so the maximum lands inside the histogram. When all returns are equal
// the bin width is zero and every value counts toward the first bin. Returns
// an empty slice for empty input or a non-positive bucket count.
func ReturnDistribution(positions []model.Position, buckets int) []DistributionBucket {
	if len(positions) == 0 || buckets <= 0 {
		return []DistributionBucket{}
	}

	returns := make([]float64, len(positions))
	for i, p := range positions {
		returns[i] = p.UnrealizedPct
	}

	min, max := returns[0], returns[0]
	for _, r := range returns[1:] {
		if r < min {
			min = r
		}
		if r > max {
			max = r
		}
	}

	binWidth := (max - min) / float64(buckets)

	distribution := make([]DistributionBucket, buckets)
	for i := range distribution {
		lo := min + float64(i)*binWidth
		hi := min + float64(i+1)*binWidth
		distribution[i].Range = fmt.Sprintf("%.1f%% - %.1f%%", lo, hi)
	}

	for _, r := range returns {
		index := 0
		if binWidth > 0 {
			index = int(math.Floor((r - min) / binWidth))
			if index > buckets-1 {
				index = buckets - 1
			}
		}
		distribution[index].Count++
	}

	return distribution
}

// HoldingPeriodDays returns the whole number of days between the position's
// creation and now, rounding up. The absolute difference is used so
// future-dated records still yield a non-negative holding period.
func HoldingPeriodDays(position model.Position, now time.Time) int {
	diff := math.Abs(now.Sub(position.CreatedAt).Hours() / 24)
	return int(math.Ceil(diff))
}

// bucketKey derives the aggregation bucket key for a timestamp:
// daily -> YYYY-MM-DD, weekly -> the date of the Sunday starting that week,
// monthly -> YYYY-MM, yearly -> YYYY. Unknown periods fall back to daily.
func bucketKey(t time.Time, period Period) string {
	switch period {
	case PeriodWeekly:
		weekStart := t.AddDate(0, 0, -int(t.Weekday()))
		return weekStart.Format("2006-01-02")
	case PeriodMonthly:
		return t.Format("2006-01")
	case PeriodYearly:
		return t.Format("2006")
	default:
		return t.Format("2006-01-02")
	}
}
