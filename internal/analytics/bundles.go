package analytics

import "github.com/mkuiper/portfolio-tracker/internal/model"

// PerformanceBundle is the performance view of a portfolio: return quality
// metrics over the open positions plus the drawdown history from snapshots.
type PerformanceBundle struct {
	WinRate       float64         `json:"winRate"`
	AverageReturn float64         `json:"averageReturn"`
	Volatility    float64         `json:"volatility"`
	SharpeRatio   float64         `json:"sharpeRatio"`
	MaxDrawdown   float64         `json:"maxDrawdown"`
	TotalReturn   float64         `json:"totalReturn"`
	BestPosition  *model.Position `json:"bestPosition"`
	WorstPosition *model.Position `json:"worstPosition"`
}

// RiskBundle is the risk view of a portfolio: dispersion and tail-loss
// metrics over the open positions plus the drawdown history from snapshots.
type RiskBundle struct {
	MaxDrawdown       float64 `json:"maxDrawdown"`
	Volatility        float64 `json:"volatility"`
	ValueAtRisk       float64 `json:"valueAtRisk"`
	DownsideDeviation float64 `json:"downsideDeviation"`
	SortinoRatio      float64 `json:"sortinoRatio"`
}

// CompanyAllocation is a company aggregation extended with its share of the
// portfolio's total invested capital and total current value.
type CompanyAllocation struct {
	CompanyAggregation
	AllocationPct float64 `json:"allocationPct"`
	ValuePct      float64 `json:"valuePct"`
}

// AllocationBundle is the allocation view of a portfolio: per-company
// rollups with allocation percentages plus the portfolio-wide totals the
// percentages are relative to.
type AllocationBundle struct {
	Companies         []CompanyAllocation `json:"companies"`
	TotalInvestment   float64             `json:"totalInvestment"`
	TotalCurrentValue float64             `json:"totalCurrentValue"`
}

// TransactionTotals holds portfolio-wide transaction activity totals.
type TransactionTotals struct {
	Count                  int     `json:"count"`
	BuyCount               int     `json:"buyCount"`
	SellCount              int     `json:"sellCount"`
	BuyVolume              float64 `json:"buyVolume"`
	SellVolume             float64 `json:"sellVolume"`
	BuyValue               float64 `json:"buyValue"`
	SellValue              float64 `json:"sellValue"`
	TotalFees              float64 `json:"totalFees"`
	AverageTransactionSize float64 `json:"averageTransactionSize"`
	BuySellRatio           float64 `json:"buySellRatio"`
}

// TransactionBundle is the transaction-analytics view: overall totals plus
// daily, weekly, and monthly activity series.
type TransactionBundle struct {
	Totals  TransactionTotals        `json:"totals"`
	Daily   []TransactionAggregation `json:"daily"`
	Weekly  []TransactionAggregation `json:"weekly"`
	Monthly []TransactionAggregation `json:"monthly"`
}

// GrowthPoint is one entry of a period-over-period growth series: the
// percentage change of total current value from the preceding bucket,
// labeled with the later bucket's date.
type GrowthPoint struct {
	Date      string  `json:"date"`
	GrowthPct float64 `json:"growthPct"`
}

// TimeBundle is the time-based analytics view: the bucketed aggregation for
// the requested period, a comparison of the two most recent buckets, and the
// growth-rate series across consecutive buckets.
type TimeBundle struct {
	Period      Period            `json:"period"`
	Buckets     []TimeAggregation `json:"buckets"`
	Comparison  PeriodComparison  `json:"comparison"`
	GrowthRates []GrowthPoint     `json:"growthRates"`
}

// PerformanceMetrics assembles the performance bundle from positions and
// snapshot history.
func PerformanceMetrics(positions []model.Position, snapshots []model.DailySnapshot) PerformanceBundle {
	volatility := Volatility(positions)

	var totalReturn float64
	for _, p := range positions {
		totalReturn += p.UnrealizedPct
	}

	return PerformanceBundle{
		WinRate:       WinRate(positions),
		AverageReturn: AverageReturn(positions),
		Volatility:    volatility,
		SharpeRatio:   SharpeRatio(positions, volatility),
		MaxDrawdown:   MaxDrawdown(snapshots),
		TotalReturn:   totalReturn,
		BestPosition:  BestPosition(positions),
		WorstPosition: WorstPosition(positions),
	}
}

// RiskMetrics assembles the risk bundle from positions and snapshot history,
// using the default 95% confidence level for Value at Risk.
func RiskMetrics(positions []model.Position, snapshots []model.DailySnapshot) RiskBundle {
	downside := DownsideDeviation(positions)

	return RiskBundle{
		MaxDrawdown:       MaxDrawdown(snapshots),
		Volatility:        Volatility(positions),
		ValueAtRisk:       ValueAtRisk(positions, DefaultVaRConfidence),
		DownsideDeviation: downside,
		SortinoRatio:      SortinoRatio(positions, downside),
	}
}

// AllocationBreakdown assembles the allocation bundle: per-company rollups
// with each company's share of total investment and of total current value,
// both guarded against zero denominators.
func AllocationBreakdown(positions []model.Position) AllocationBundle {
	companies := AggregateByCompany(positions)

	var totalInvestment, totalValue float64
	for _, c := range companies {
		totalInvestment += c.TotalInvestment
		totalValue += c.TotalCurrentValue
	}

	allocations := make([]CompanyAllocation, len(companies))
	for i, c := range companies {
		allocations[i] = CompanyAllocation{
			CompanyAggregation: c,
			AllocationPct:      ratio(c.TotalInvestment, totalInvestment, 0) * 100,
			ValuePct:           ratio(c.TotalCurrentValue, totalValue, 0) * 100,
		}
	}

	return AllocationBundle{
		Companies:         allocations,
		TotalInvestment:   totalInvestment,
		TotalCurrentValue: totalValue,
	}
}

// TransactionAnalytics assembles the transaction bundle: portfolio-wide
// activity totals plus daily, weekly, and monthly series. The buy/sell ratio
// falls back to 0 when no sells exist, and the average transaction size is
// the mean of the stored totals.
func TransactionAnalytics(transactions []model.Transaction) TransactionBundle {
	totals := TransactionTotals{Count: len(transactions)}

	var totalValue float64
	for _, t := range transactions {
		switch t.Type {
		case model.TransactionBuy:
			totals.BuyCount++
			totals.BuyVolume += t.Quantity
			totals.BuyValue += t.Total
		case model.TransactionSell:
			totals.SellCount++
			totals.SellVolume += t.Quantity
			totals.SellValue += t.Total
		}
		totals.TotalFees += t.Fees
		totalValue += t.Total
	}

	totals.AverageTransactionSize = ratio(totalValue, float64(len(transactions)), 0)
	totals.BuySellRatio = ratio(float64(totals.BuyCount), float64(totals.SellCount), 0)

	return TransactionBundle{
		Totals:  totals,
		Daily:   AggregateTransactionsByTime(transactions, PeriodDaily),
		Weekly:  AggregateTransactionsByTime(transactions, PeriodWeekly),
		Monthly: AggregateTransactionsByTime(transactions, PeriodMonthly),
	}
}

// TimeAnalytics assembles the time-based bundle for the given period: the
// bucketed aggregation, a comparison of the last two buckets (the previous
// side is zeroed when fewer than two exist), and the growth-rate series. The
// growth series holds one point per bucket after the first; a bucket
// following a zero-valued one reports 0 growth.
func TimeAnalytics(snapshots []model.DailySnapshot, period Period) TimeBundle {
	buckets := AggregateByTimePeriod(snapshots, period)

	var current, previous []PeriodTotals
	if len(buckets) > 0 {
		current = []PeriodTotals{bucketTotals(buckets[len(buckets)-1])}
	}
	if len(buckets) > 1 {
		previous = []PeriodTotals{bucketTotals(buckets[len(buckets)-2])}
	}

	growth := []GrowthPoint{}
	for i := 1; i < len(buckets); i++ {
		change := buckets[i].TotalCurrentValue - buckets[i-1].TotalCurrentValue
		growth = append(growth, GrowthPoint{
			Date:      buckets[i].Date,
			GrowthPct: ratio(change, buckets[i-1].TotalCurrentValue, 0) * 100,
		})
	}

	return TimeBundle{
		Period:      period,
		Buckets:     buckets,
		Comparison:  ComparePeriods(current, previous),
		GrowthRates: growth,
	}
}

func bucketTotals(b TimeAggregation) PeriodTotals {
	return PeriodTotals{
		TotalInvestment:    b.TotalInvestment,
		TotalCurrentValue:  b.TotalCurrentValue,
		TotalUnrealizedPnL: b.TotalUnrealizedPnL,
	}
}
