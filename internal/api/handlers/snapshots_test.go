package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mkuiper/portfolio-tracker/internal/model"
	"github.com/mkuiper/portfolio-tracker/internal/testutil"
)

func setupSnapshotHandler(t *testing.T) (*SnapshotHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ss := testutil.NewTestSnapshotService(t, db)
	return NewSnapshotHandler(ss), db
}

func TestSnapshotHandler_GetSnapshots(t *testing.T) {
	t.Run("returns the snapshot history", func(t *testing.T) {
		handler, db := setupSnapshotHandler(t)

		testutil.CreateSnapshot(t, db, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 1000, 1100)
		testutil.CreateSnapshot(t, db, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), 1000, 1050)

		req := httptest.NewRequest(http.MethodGet, "/api/snapshot", nil)
		w := httptest.NewRecorder()

		handler.GetSnapshots(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.DailySnapshot
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 2 {
			t.Errorf("Expected 2 snapshots, got %d", len(response))
		}
	})
}

func TestSnapshotHandler_GetSnapshotByDate(t *testing.T) {
	t.Run("returns the snapshot for a date", func(t *testing.T) {
		handler, db := setupSnapshotHandler(t)

		date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		created := testutil.CreateSnapshot(t, db, date, 1000, 1100)

		req := httptest.NewRequest(http.MethodGet, "/api/snapshot/2024-03-01", nil)
		req = withURLParam(req, "date", "2024-03-01")
		w := httptest.NewRecorder()

		handler.GetSnapshotByDate(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.DailySnapshot
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.ID != created.ID {
			t.Errorf("Expected snapshot %s, got %s", created.ID, response.ID)
		}
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		handler, _ := setupSnapshotHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/snapshot/yesterday", nil)
		req = withURLParam(req, "date", "yesterday")
		w := httptest.NewRecorder()

		handler.GetSnapshotByDate(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("returns 404 for a date without a snapshot", func(t *testing.T) {
		handler, _ := setupSnapshotHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/snapshot/2024-01-01", nil)
		req = withURLParam(req, "date", "2024-01-01")
		w := httptest.NewRecorder()

		handler.GetSnapshotByDate(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})
}

func TestSnapshotHandler_CaptureSnapshot(t *testing.T) {
	t.Run("captures a snapshot for the requested date", func(t *testing.T) {
		handler, db := setupSnapshotHandler(t)

		testutil.NewPosition().
			WithQuantity(10).
			WithInvestment(1000, 0).
			WithCurrentPrice(110).
			Build(t, db)

		body := `{"date": "2024-03-15"}`
		req := httptest.NewRequest(http.MethodPost, "/api/snapshot", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.CaptureSnapshot(w, req)

		if w.Code != http.StatusCreated {
			t.Errorf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var response model.DailySnapshot
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.TotalCurrentValue != 1100 {
			t.Errorf("Expected total value 1100, got %v", response.TotalCurrentValue)
		}
		testutil.AssertRowCount(t, db, "daily_snapshot", 1)
	})

	t.Run("defaults to today when no body is sent", func(t *testing.T) {
		handler, db := setupSnapshotHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/snapshot", nil)
		w := httptest.NewRecorder()

		handler.CaptureSnapshot(w, req)

		if w.Code != http.StatusCreated {
			t.Errorf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}
		testutil.AssertRowCount(t, db, "daily_snapshot", 1)
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		handler, db := setupSnapshotHandler(t)

		body := `{"date": "15-03-2024"}`
		req := httptest.NewRequest(http.MethodPost, "/api/snapshot", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.CaptureSnapshot(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
		testutil.AssertRowCount(t, db, "daily_snapshot", 0)
	})
}
