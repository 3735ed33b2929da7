package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mkuiper/portfolio-tracker/internal/analytics"
	"github.com/mkuiper/portfolio-tracker/internal/model"
	"github.com/mkuiper/portfolio-tracker/internal/testutil"
)

func setupAnalyticsHandler(t *testing.T) (*AnalyticsHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	as := testutil.NewTestAnalyticsService(t, db)
	return NewAnalyticsHandler(as), db
}

func TestAnalyticsHandler_Performance(t *testing.T) {
	t.Run("returns the performance bundle", func(t *testing.T) {
		handler, db := setupAnalyticsHandler(t)

		testutil.NewPosition().
			WithCompanyName("Winner Co").
			WithQuantity(10).
			WithInvestment(1000, 0).
			WithCurrentPrice(110).
			Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/analytics/performance", nil)
		w := httptest.NewRecorder()

		handler.Performance(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response analytics.PerformanceBundle
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.WinRate != 100 {
			t.Errorf("Expected win rate 100, got %v", response.WinRate)
		}
		if response.BestPosition == nil || response.BestPosition.CompanyName != "Winner Co" {
			t.Errorf("Expected Winner Co as best position, got %+v", response.BestPosition)
		}
	})

	t.Run("returns a zero-valued bundle for an empty portfolio", func(t *testing.T) {
		handler, _ := setupAnalyticsHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/analytics/performance", nil)
		w := httptest.NewRecorder()

		handler.Performance(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestAnalyticsHandler_Time(t *testing.T) {
	t.Run("defaults to monthly buckets", func(t *testing.T) {
		handler, db := setupAnalyticsHandler(t)

		testutil.CreateSnapshot(t, db, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), 1000, 1000)
		testutil.CreateSnapshot(t, db, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), 1000, 1100)

		req := httptest.NewRequest(http.MethodGet, "/api/analytics/time", nil)
		w := httptest.NewRecorder()

		handler.Time(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response analytics.TimeBundle
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Period != analytics.PeriodMonthly {
			t.Errorf("Expected monthly period, got %q", response.Period)
		}
		if len(response.Buckets) != 2 {
			t.Errorf("Expected 2 buckets, got %d", len(response.Buckets))
		}
	})

	t.Run("rejects an invalid period", func(t *testing.T) {
		handler, _ := setupAnalyticsHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/analytics/time?period=fortnightly", nil)
		w := httptest.NewRecorder()

		handler.Time(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}

func TestAnalyticsHandler_Distribution(t *testing.T) {
	t.Run("honours the buckets parameter", func(t *testing.T) {
		handler, db := setupAnalyticsHandler(t)

		testutil.NewPosition().WithQuantity(10).WithInvestment(1000, 0).WithCurrentPrice(90).Build(t, db)
		testutil.NewPosition().WithQuantity(10).WithInvestment(1000, 0).WithCurrentPrice(100).Build(t, db)
		testutil.NewPosition().WithQuantity(10).WithInvestment(1000, 0).WithCurrentPrice(110).Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/analytics/distribution?buckets=2", nil)
		w := httptest.NewRecorder()

		handler.Distribution(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []analytics.DistributionBucket
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 2 {
			t.Errorf("Expected 2 buckets, got %d", len(response))
		}
	})

	t.Run("rejects a non-positive bucket count", func(t *testing.T) {
		handler, _ := setupAnalyticsHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/analytics/distribution?buckets=0", nil)
		w := httptest.NewRecorder()

		handler.Distribution(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}

func TestAnalyticsHandler_TopBottom(t *testing.T) {
	t.Run("top respects the n parameter", func(t *testing.T) {
		handler, db := setupAnalyticsHandler(t)

		testutil.NewPosition().WithCompanyName("Best Co").WithQuantity(10).WithInvestment(1000, 0).WithCurrentPrice(120).Build(t, db)
		testutil.NewPosition().WithCompanyName("Mid Co").WithQuantity(10).WithInvestment(1000, 0).WithCurrentPrice(100).Build(t, db)
		testutil.NewPosition().WithCompanyName("Worst Co").WithQuantity(10).WithInvestment(1000, 0).WithCurrentPrice(90).Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/analytics/top?n=1", nil)
		w := httptest.NewRecorder()

		handler.Top(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.Position
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 1 || response[0].CompanyName != "Best Co" {
			t.Errorf("Expected only Best Co, got %+v", response)
		}
	})

	t.Run("bottom rejects a malformed n", func(t *testing.T) {
		handler, _ := setupAnalyticsHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/analytics/bottom?n=many", nil)
		w := httptest.NewRecorder()

		handler.Bottom(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}

func TestAnalyticsHandler_Companies(t *testing.T) {
	t.Run("returns ranked companies", func(t *testing.T) {
		handler, db := setupAnalyticsHandler(t)

		testutil.NewPosition().WithCompanyName("Best Co").WithQuantity(10).WithInvestment(1000, 0).WithCurrentPrice(120).Build(t, db)
		testutil.NewPosition().WithCompanyName("Worst Co").WithQuantity(10).WithInvestment(1000, 0).WithCurrentPrice(90).Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/analytics/companies", nil)
		w := httptest.NewRecorder()

		handler.Companies(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []analytics.RankedCompany
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 2 {
			t.Fatalf("Expected 2 companies, got %d", len(response))
		}
		if response[0].CompanyName != "Best Co" || response[0].Rank != 1 {
			t.Errorf("Expected Best Co ranked first, got %+v", response[0])
		}
	})
}
