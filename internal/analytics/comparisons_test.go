package analytics

import (
	"testing"

	"github.com/mkuiper/portfolio-tracker/internal/model"
)

// TestCompareCompanies verifies performance ranking over company aggregations.
func TestCompareCompanies(t *testing.T) {
	t.Run("returns empty slice for empty input", func(t *testing.T) {
		if got := CompareCompanies(nil); len(got) != 0 {
			t.Errorf("Expected empty result, got %d entries", len(got))
		}
	})

	t.Run("ranks descending by unrealized percentage", func(t *testing.T) {
		companies := []CompanyAggregation{
			{CompanyName: "Mid", TotalUnrealizedPct: 5},
			{CompanyName: "Top", TotalUnrealizedPct: 20},
			{CompanyName: "Low", TotalUnrealizedPct: -10},
		}

		ranked := CompareCompanies(companies)
		wantOrder := []string{"Top", "Mid", "Low"}
		for i, want := range wantOrder {
			if ranked[i].CompanyName != want {
				t.Errorf("ranked[%d] = %s, want %s", i, ranked[i].CompanyName, want)
			}
			if ranked[i].Rank != i+1 {
				t.Errorf("ranked[%d].Rank = %d, want %d", i, ranked[i].Rank, i+1)
			}
		}
	})

	t.Run("ties keep input order", func(t *testing.T) {
		companies := []CompanyAggregation{
			{CompanyName: "First", TotalUnrealizedPct: 10},
			{CompanyName: "Second", TotalUnrealizedPct: 10},
		}

		ranked := CompareCompanies(companies)
		if ranked[0].CompanyName != "First" || ranked[1].CompanyName != "Second" {
			t.Errorf("Tie order = [%s, %s], want [First, Second]",
				ranked[0].CompanyName, ranked[1].CompanyName)
		}
	})

	t.Run("does not mutate the input slice", func(t *testing.T) {
		companies := []CompanyAggregation{
			{CompanyName: "Low", TotalUnrealizedPct: -10},
			{CompanyName: "Top", TotalUnrealizedPct: 20},
		}
		CompareCompanies(companies)
		if companies[0].CompanyName != "Low" {
			t.Error("CompareCompanies reordered the input slice")
		}
	})
}

// TestComparePeriods verifies period-over-period deltas and their guards.
//
// WHY: The comparison card divides by previous-period values in three places;
// each denominator has a dedicated guard (zero previous value, absolute
// previous P/L) that must survive refactors.
func TestComparePeriods(t *testing.T) {
	t.Run("zeroed records for empty inputs", func(t *testing.T) {
		cmp := ComparePeriods(nil, nil)
		if cmp.Current.TotalInvestment != 0 || cmp.Previous.TotalInvestment != 0 {
			t.Errorf("Expected zeroed summaries, got %+v", cmp)
		}
		if cmp.ChangePercent.Investment != 0 {
			t.Errorf("ChangePercent.Investment = %v, want 0", cmp.ChangePercent.Investment)
		}
	})

	t.Run("uses the last element of each list", func(t *testing.T) {
		current := []PeriodTotals{
			{TotalInvestment: 1, TotalCurrentValue: 1, TotalUnrealizedPnL: 0},
			{TotalInvestment: 1000, TotalCurrentValue: 1200, TotalUnrealizedPnL: 200},
		}
		previous := []PeriodTotals{
			{TotalInvestment: 800, TotalCurrentValue: 900, TotalUnrealizedPnL: 100},
		}

		cmp := ComparePeriods(current, previous)
		if cmp.Current.TotalInvestment != 1000 {
			t.Errorf("Current investment = %v, want 1000 (last element)", cmp.Current.TotalInvestment)
		}
		if cmp.Change.Investment != 200 {
			t.Errorf("Change.Investment = %v, want 200", cmp.Change.Investment)
		}
		if !almostEqual(cmp.ChangePercent.Investment, 25) {
			t.Errorf("ChangePercent.Investment = %v, want 25", cmp.ChangePercent.Investment)
		}
		if !almostEqual(cmp.Change.CurrentValue, 300) {
			t.Errorf("Change.CurrentValue = %v, want 300", cmp.Change.CurrentValue)
		}
	})

	t.Run("derives percentages for both sides", func(t *testing.T) {
		current := []PeriodTotals{{TotalInvestment: 1000, TotalCurrentValue: 1200, TotalUnrealizedPnL: 200}}
		previous := []PeriodTotals{{TotalInvestment: 800, TotalCurrentValue: 880, TotalUnrealizedPnL: 80}}

		cmp := ComparePeriods(current, previous)
		if !almostEqual(cmp.Current.TotalUnrealizedPct, 20) {
			t.Errorf("Current pct = %v, want 20", cmp.Current.TotalUnrealizedPct)
		}
		if !almostEqual(cmp.Previous.TotalUnrealizedPct, 10) {
			t.Errorf("Previous pct = %v, want 10", cmp.Previous.TotalUnrealizedPct)
		}
		if !almostEqual(cmp.Change.UnrealizedPct, 10) {
			t.Errorf("Change.UnrealizedPct = %v, want 10 percentage points", cmp.Change.UnrealizedPct)
		}
	})

	t.Run("negative previous P/L does not flip the delta sign", func(t *testing.T) {
		current := []PeriodTotals{{TotalInvestment: 1000, TotalCurrentValue: 1100, TotalUnrealizedPnL: 100}}
		previous := []PeriodTotals{{TotalInvestment: 1000, TotalCurrentValue: 900, TotalUnrealizedPnL: -100}}

		cmp := ComparePeriods(current, previous)
		// Change is +200 against |previous| = 100: +200%, not -200%.
		if !almostEqual(cmp.ChangePercent.UnrealizedPnL, 200) {
			t.Errorf("ChangePercent.UnrealizedPnL = %v, want 200", cmp.ChangePercent.UnrealizedPnL)
		}
	})

	t.Run("zero previous P/L yields zero percent delta", func(t *testing.T) {
		current := []PeriodTotals{{TotalInvestment: 1000, TotalCurrentValue: 1100, TotalUnrealizedPnL: 100}}
		previous := []PeriodTotals{{TotalInvestment: 1000, TotalCurrentValue: 1000, TotalUnrealizedPnL: 0}}

		cmp := ComparePeriods(current, previous)
		if cmp.ChangePercent.UnrealizedPnL != 0 {
			t.Errorf("ChangePercent.UnrealizedPnL = %v, want 0", cmp.ChangePercent.UnrealizedPnL)
		}
	})
}

// TestTopBottomPositions verifies the top/bottom-N selectors.
func TestTopBottomPositions(t *testing.T) {
	positions := []model.Position{
		position("A", 0, 0, 0, 5),
		position("B", 0, 0, 0, -15),
		position("C", 0, 0, 0, 30),
		position("D", 0, 0, 0, 10),
	}

	t.Run("top selects highest returns descending", func(t *testing.T) {
		top := TopPositions(positions, 2)
		if len(top) != 2 || top[0].CompanyName != "C" || top[1].CompanyName != "D" {
			t.Errorf("TopPositions = %+v, want [C, D]", top)
		}
	})

	t.Run("bottom selects lowest returns ascending", func(t *testing.T) {
		bottom := BottomPositions(positions, 2)
		if len(bottom) != 2 || bottom[0].CompanyName != "B" || bottom[1].CompanyName != "A" {
			t.Errorf("BottomPositions = %+v, want [B, A]", bottom)
		}
	})

	t.Run("n larger than the input returns everything", func(t *testing.T) {
		if got := TopPositions(positions, 50); len(got) != len(positions) {
			t.Errorf("TopPositions(n=50) returned %d, want %d", len(got), len(positions))
		}
	})

	t.Run("top and bottom together cover every position", func(t *testing.T) {
		// With n >= half the input, the union of top-n and bottom-n must
		// include every position even when returns tie.
		tied := []model.Position{
			position("A", 0, 0, 0, 10),
			position("B", 0, 0, 0, 10),
			position("C", 0, 0, 0, -10),
			position("D", 0, 0, 0, -10),
		}

		covered := make(map[string]bool)
		for _, p := range TopPositions(tied, 2) {
			covered[p.CompanyName] = true
		}
		for _, p := range BottomPositions(tied, 2) {
			covered[p.CompanyName] = true
		}

		if len(covered) != len(tied) {
			t.Errorf("Top+Bottom covered %d of %d positions", len(covered), len(tied))
		}
	})

	t.Run("does not mutate the input slice", func(t *testing.T) {
		before := positions[0].CompanyName
		TopPositions(positions, 1)
		BottomPositions(positions, 1)
		if positions[0].CompanyName != before {
			t.Error("selector reordered the input slice")
		}
	})
}

// TestComparePositionSizes verifies size shares and their conservation.
func TestComparePositionSizes(t *testing.T) {
	t.Run("percentages sum to 100 when total is positive", func(t *testing.T) {
		positions := []model.Position{
			position("A", 600, 0, 0, 0),
			position("B", 300, 0, 0, 0),
			position("C", 100, 0, 0, 0),
		}

		sizes := ComparePositionSizes(positions)

		var sum float64
		for _, s := range sizes {
			sum += s.Percentage
		}
		if !almostEqual(sum, 100) {
			t.Errorf("Percentage sum = %v, want 100", sum)
		}

		if sizes[0].CompanyName != "A" || sizes[0].Percentage != 60 {
			t.Errorf("Largest = %+v, want A at 60%%", sizes[0])
		}
	})

	t.Run("sorted descending by size", func(t *testing.T) {
		positions := []model.Position{
			position("Small", 10, 0, 0, 0),
			position("Big", 1000, 0, 0, 0),
		}

		sizes := ComparePositionSizes(positions)
		if sizes[0].CompanyName != "Big" {
			t.Errorf("First entry = %s, want Big", sizes[0].CompanyName)
		}
	})

	t.Run("zero total yields all-zero percentages", func(t *testing.T) {
		positions := []model.Position{
			position("A", 0, 0, 0, 0),
			position("B", 0, 0, 0, 0),
		}

		var sum float64
		for _, s := range ComparePositionSizes(positions) {
			sum += s.Percentage
		}
		if sum != 0 {
			t.Errorf("Percentage sum = %v, want 0 for zero total", sum)
		}
	})
}
