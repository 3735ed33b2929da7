package analytics

import (
	"testing"
	"time"

	"github.com/mkuiper/portfolio-tracker/internal/model"
)

func transaction(txType, created string, quantity, price, fees float64) model.Transaction {
	d, _ := time.Parse("2006-01-02", created)
	total := quantity*price + fees
	if txType == model.TransactionSell {
		total = quantity*price - fees
	}
	return model.Transaction{
		Type:      txType,
		Quantity:  quantity,
		Price:     price,
		Fees:      fees,
		Total:     total,
		CreatedAt: d,
	}
}

// TestAggregateByCompany verifies per-company grouping and the conservation
// of totals.
//
// WHY: The allocation view is built on these groups; losing or double-counting
// a position's investment would make the allocation percentages lie.
func TestAggregateByCompany(t *testing.T) {
	t.Run("returns empty slice for empty input", func(t *testing.T) {
		if got := AggregateByCompany(nil); len(got) != 0 {
			t.Errorf("Expected empty result, got %d groups", len(got))
		}
	})

	t.Run("groups the two-company scenario", func(t *testing.T) {
		positions := []model.Position{
			position("A", 1000, 1200, 200, 20),
			position("B", 500, 400, -100, -20),
		}

		groups := AggregateByCompany(positions)
		if len(groups) != 2 {
			t.Fatalf("Expected 2 groups, got %d", len(groups))
		}

		a := groups[0]
		if a.CompanyName != "A" || a.TotalInvestment != 1000 || a.TotalCurrentValue != 1200 {
			t.Errorf("Group A = %+v, want totals 1000/1200", a)
		}
		if !almostEqual(a.TotalUnrealizedPct, 20) {
			t.Errorf("Group A pct = %v, want 20", a.TotalUnrealizedPct)
		}

		b := groups[1]
		if b.CompanyName != "B" || b.TotalInvestment != 500 || b.TotalCurrentValue != 400 {
			t.Errorf("Group B = %+v, want totals 500/400", b)
		}
	})

	t.Run("conserves total investment across groups", func(t *testing.T) {
		positions := []model.Position{
			position("A", 1000, 1100, 100, 10),
			position("B", 500, 450, -50, -10),
			position("A", 300, 330, 30, 10),
			position("C", 200, 200, 0, 0),
		}

		var want float64
		for _, p := range positions {
			want += p.InvestmentWithFees
		}

		var got float64
		for _, g := range AggregateByCompany(positions) {
			got += g.TotalInvestment
		}

		if !almostEqual(got, want) {
			t.Errorf("Summed group investment = %v, want %v", got, want)
		}
	})

	t.Run("emits groups in first-seen order", func(t *testing.T) {
		positions := []model.Position{
			position("Zeta", 1, 1, 0, 0),
			position("Alpha", 1, 1, 0, 0),
			position("Zeta", 1, 1, 0, 0),
		}

		groups := AggregateByCompany(positions)
		if groups[0].CompanyName != "Zeta" || groups[1].CompanyName != "Alpha" {
			t.Errorf("Group order = [%s, %s], want [Zeta, Alpha]",
				groups[0].CompanyName, groups[1].CompanyName)
		}
		if groups[0].PositionCount != 2 {
			t.Errorf("Zeta position count = %d, want 2", groups[0].PositionCount)
		}
	})

	t.Run("averageReturn is the unweighted mean of member returns", func(t *testing.T) {
		positions := []model.Position{
			position("A", 1000, 0, 0, 10),
			position("A", 10, 0, 0, 30),
		}

		groups := AggregateByCompany(positions)
		if !almostEqual(groups[0].AverageReturn, 20) {
			t.Errorf("AverageReturn = %v, want 20 (unweighted)", groups[0].AverageReturn)
		}
	})

	t.Run("zero investment yields zero percentage", func(t *testing.T) {
		positions := []model.Position{position("A", 0, 0, 50, 0)}
		groups := AggregateByCompany(positions)
		if groups[0].TotalUnrealizedPct != 0 {
			t.Errorf("Pct = %v, want 0 for zero investment", groups[0].TotalUnrealizedPct)
		}
	})
}

// TestAggregateByTimePeriod verifies bucket keys and last-snapshot-per-bucket
// semantics.
//
// WHY: The time view deliberately represents each bucket by its final
// snapshot (daily snapshots make "last in month" approximate "end of month").
// This test pins that choice down so a future "improvement" to averaging
// fails loudly.
func TestAggregateByTimePeriod(t *testing.T) {
	t.Run("returns empty slice for empty input", func(t *testing.T) {
		if got := AggregateByTimePeriod(nil, PeriodMonthly); len(got) != 0 {
			t.Errorf("Expected empty result, got %d buckets", len(got))
		}
	})

	t.Run("monthly buckets use the last snapshot per month", func(t *testing.T) {
		snapshots := []model.DailySnapshot{
			snapshot("2024-01-05", 1000, 1050, 50),
			snapshot("2024-01-20", 1000, 1100, 100),
			snapshot("2024-02-03", 1000, 1200, 200),
		}

		buckets := AggregateByTimePeriod(snapshots, PeriodMonthly)
		if len(buckets) != 2 {
			t.Fatalf("Expected 2 buckets, got %d", len(buckets))
		}

		if buckets[0].Date != "2024-01" {
			t.Errorf("First bucket key = %s, want 2024-01", buckets[0].Date)
		}
		if buckets[0].TotalCurrentValue != 1100 {
			t.Errorf("January value = %v, want 1100 (last snapshot, not first)", buckets[0].TotalCurrentValue)
		}
		if buckets[1].Date != "2024-02" {
			t.Errorf("Second bucket key = %s, want 2024-02", buckets[1].Date)
		}
	})

	t.Run("weekly buckets key on the Sunday starting the week", func(t *testing.T) {
		// 2024-01-10 is a Wednesday; its week starts Sunday 2024-01-07.
		snapshots := []model.DailySnapshot{
			snapshot("2024-01-10", 1000, 1000, 0),
		}

		buckets := AggregateByTimePeriod(snapshots, PeriodWeekly)
		if len(buckets) != 1 || buckets[0].Date != "2024-01-07" {
			t.Errorf("Weekly bucket = %+v, want key 2024-01-07", buckets)
		}
	})

	t.Run("yearly buckets key on the year", func(t *testing.T) {
		snapshots := []model.DailySnapshot{
			snapshot("2023-06-01", 1000, 1000, 0),
			snapshot("2024-06-01", 1000, 1100, 100),
		}

		buckets := AggregateByTimePeriod(snapshots, PeriodYearly)
		if len(buckets) != 2 || buckets[0].Date != "2023" || buckets[1].Date != "2024" {
			t.Errorf("Yearly buckets = %+v, want keys 2023, 2024", buckets)
		}
	})

	t.Run("buckets are chronological even for unsorted input", func(t *testing.T) {
		snapshots := []model.DailySnapshot{
			snapshot("2024-02-03", 1000, 1200, 200),
			snapshot("2024-01-05", 1000, 1050, 50),
		}

		buckets := AggregateByTimePeriod(snapshots, PeriodMonthly)
		if buckets[0].Date != "2024-01" {
			t.Errorf("First bucket = %s, want 2024-01", buckets[0].Date)
		}
	})

	t.Run("derives percentage with a zero-investment guard", func(t *testing.T) {
		snapshots := []model.DailySnapshot{snapshot("2024-01-05", 0, 100, 100)}
		buckets := AggregateByTimePeriod(snapshots, PeriodDaily)
		if buckets[0].TotalUnrealizedPct != 0 {
			t.Errorf("Pct = %v, want 0 for zero investment", buckets[0].TotalUnrealizedPct)
		}
	})
}

// TestAggregateTransactionsByTime verifies buy/sell activity bucketing.
func TestAggregateTransactionsByTime(t *testing.T) {
	t.Run("returns empty slice for empty input", func(t *testing.T) {
		if got := AggregateTransactionsByTime(nil, PeriodDaily); len(got) != 0 {
			t.Errorf("Expected empty result, got %d buckets", len(got))
		}
	})

	t.Run("splits buys and sells per bucket", func(t *testing.T) {
		transactions := []model.Transaction{
			transaction(model.TransactionBuy, "2024-01-10", 10, 5, 1),  // total 51
			transaction(model.TransactionBuy, "2024-01-11", 4, 10, 0),  // total 40
			transaction(model.TransactionSell, "2024-01-12", 5, 6, 2),  // total 28
			transaction(model.TransactionBuy, "2024-02-01", 1, 100, 3), // total 103
		}

		buckets := AggregateTransactionsByTime(transactions, PeriodMonthly)
		if len(buckets) != 2 {
			t.Fatalf("Expected 2 buckets, got %d", len(buckets))
		}

		jan := buckets[0]
		if jan.BuyCount != 2 || jan.SellCount != 1 {
			t.Errorf("January counts = %d buys / %d sells, want 2/1", jan.BuyCount, jan.SellCount)
		}
		if jan.BuyVolume != 14 || jan.SellVolume != 5 {
			t.Errorf("January volume = %v buy / %v sell, want 14/5", jan.BuyVolume, jan.SellVolume)
		}
		if !almostEqual(jan.BuyValue, 91) || !almostEqual(jan.SellValue, 28) {
			t.Errorf("January value = %v buy / %v sell, want 91/28", jan.BuyValue, jan.SellValue)
		}
		if !almostEqual(jan.TotalFees, 3) {
			t.Errorf("January fees = %v, want 3 (buy and sell fees combined)", jan.TotalFees)
		}
	})

	t.Run("daily buckets key on the calendar date", func(t *testing.T) {
		transactions := []model.Transaction{
			transaction(model.TransactionBuy, "2024-03-15", 1, 1, 0),
		}
		buckets := AggregateTransactionsByTime(transactions, PeriodDaily)
		if len(buckets) != 1 || buckets[0].Date != "2024-03-15" {
			t.Errorf("Daily bucket = %+v, want key 2024-03-15", buckets)
		}
	})
}

// TestReturnDistribution verifies the histogram binning, including the clamp
// that absorbs the maximum value into the last bin.
func TestReturnDistribution(t *testing.T) {
	t.Run("returns empty slice for empty input", func(t *testing.T) {
		if got := ReturnDistribution(nil, DefaultDistributionBuckets); len(got) != 0 {
			t.Errorf("Expected empty result, got %d bins", len(got))
		}
	})

	t.Run("returns empty slice for non-positive bucket count", func(t *testing.T) {
		positions := []model.Position{position("A", 0, 0, 0, 10)}
		if got := ReturnDistribution(positions, 0); len(got) != 0 {
			t.Errorf("Expected empty result for buckets=0, got %d bins", len(got))
		}
	})

	t.Run("two buckets over [-10, 10] clamp the maximum into the last bin", func(t *testing.T) {
		positions := []model.Position{
			position("A", 0, 0, 0, -10),
			position("B", 0, 0, 0, 0),
			position("C", 0, 0, 0, 10),
		}

		bins := ReturnDistribution(positions, 2)
		if len(bins) != 2 {
			t.Fatalf("Expected 2 bins, got %d", len(bins))
		}

		if bins[0].Count != 1 {
			t.Errorf("First bin count = %d, want 1 (-10 only)", bins[0].Count)
		}
		if bins[1].Count != 2 {
			t.Errorf("Last bin count = %d, want 2 (0 and clamped 10)", bins[1].Count)
		}

		total := bins[0].Count + bins[1].Count
		if total != len(positions) {
			t.Errorf("Total count = %d, want %d", total, len(positions))
		}
	})

	t.Run("identical returns all land in the first bin", func(t *testing.T) {
		positions := []model.Position{
			position("A", 0, 0, 0, 5),
			position("B", 0, 0, 0, 5),
		}

		bins := ReturnDistribution(positions, 4)
		if bins[0].Count != 2 {
			t.Errorf("First bin count = %d, want 2 when bin width is zero", bins[0].Count)
		}
	})

	t.Run("labels bins with their percentage range", func(t *testing.T) {
		positions := []model.Position{
			position("A", 0, 0, 0, 0),
			position("B", 0, 0, 0, 10),
		}

		bins := ReturnDistribution(positions, 2)
		if bins[0].Range != "0.0% - 5.0%" {
			t.Errorf("First bin range = %q, want %q", bins[0].Range, "0.0% - 5.0%")
		}
	})
}

// TestHoldingPeriodDays verifies the ceiling-of-absolute-difference rule.
func TestHoldingPeriodDays(t *testing.T) {
	now, _ := time.Parse(time.RFC3339, "2024-06-15T12:00:00Z")

	t.Run("rounds partial days up", func(t *testing.T) {
		p := model.Position{CreatedAt: now.Add(-36 * time.Hour)}
		if got := HoldingPeriodDays(p, now); got != 2 {
			t.Errorf("HoldingPeriodDays = %d, want 2", got)
		}
	})

	t.Run("future-dated records yield a non-negative period", func(t *testing.T) {
		p := model.Position{CreatedAt: now.Add(30 * time.Hour)}
		if got := HoldingPeriodDays(p, now); got != 2 {
			t.Errorf("HoldingPeriodDays = %d, want 2 (absolute difference)", got)
		}
	})

	t.Run("same instant yields 0", func(t *testing.T) {
		p := model.Position{CreatedAt: now}
		if got := HoldingPeriodDays(p, now); got != 0 {
			t.Errorf("HoldingPeriodDays = %d, want 0", got)
		}
	})
}
