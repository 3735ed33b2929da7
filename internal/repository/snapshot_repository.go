package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mkuiper/portfolio-tracker/internal/apperrors"
	"github.com/mkuiper/portfolio-tracker/internal/model"
)

// SnapshotRepository provides data access methods for the daily_snapshot and
// snapshot_position tables. At most one snapshot exists per calendar date.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the provided database connection.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// GetSnapshots retrieves all snapshots with their per-position breakdowns,
// ordered by date ascending.
func (r *SnapshotRepository) GetSnapshots() ([]model.DailySnapshot, error) {
	rows, err := r.db.Query(`
		SELECT id, date, total_investment, total_current_value, total_unrealized_pnl, created_at
		FROM daily_snapshot
		ORDER BY date ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily_snapshot table: %w", err)
	}
	defer rows.Close()

	snapshots := []model.DailySnapshot{}
	index := make(map[string]int)

	for rows.Next() {
		var s model.DailySnapshot
		var dateStr, createdAtStr string

		err := rows.Scan(&s.ID, &dateStr, &s.TotalInvestment, &s.TotalCurrentValue, &s.TotalUnrealizedPnL, &createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily_snapshot table results: %w", err)
		}

		s.Date, err = ParseTime(dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}
		s.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		s.Positions = []model.SnapshotPosition{}
		index[s.ID] = len(snapshots)
		snapshots = append(snapshots, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily_snapshot table: %w", err)
	}

	if len(snapshots) == 0 {
		return snapshots, nil
	}

	posRows, err := r.db.Query(`
		SELECT snapshot_id, position_id, company_name, quantity, current_price, current_value, unrealized_pnl
		FROM snapshot_position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot_position table: %w", err)
	}
	defer posRows.Close()

	for posRows.Next() {
		var snapshotID string
		var sp model.SnapshotPosition

		err := posRows.Scan(&snapshotID, &sp.PositionID, &sp.CompanyName, &sp.Quantity, &sp.CurrentPrice, &sp.CurrentValue, &sp.UnrealizedPnL)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot_position table results: %w", err)
		}

		if i, ok := index[snapshotID]; ok {
			snapshots[i].Positions = append(snapshots[i].Positions, sp)
		}
	}

	if err = posRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot_position table: %w", err)
	}

	return snapshots, nil
}

// GetSnapshotByDate retrieves the snapshot for a specific calendar date.
// Returns apperrors.ErrSnapshotNotFound when none exists.
func (r *SnapshotRepository) GetSnapshotByDate(date time.Time) (model.DailySnapshot, error) {
	var s model.DailySnapshot
	var dateStr, createdAtStr string

	err := r.db.QueryRow(`
		SELECT id, date, total_investment, total_current_value, total_unrealized_pnl, created_at
		FROM daily_snapshot
		WHERE date = ?`, date.Format("2006-01-02"),
	).Scan(&s.ID, &dateStr, &s.TotalInvestment, &s.TotalCurrentValue, &s.TotalUnrealizedPnL, &createdAtStr)

	if errors.Is(err, sql.ErrNoRows) {
		return model.DailySnapshot{}, apperrors.ErrSnapshotNotFound
	}
	if err != nil {
		return model.DailySnapshot{}, fmt.Errorf("failed to scan daily_snapshot table results: %w", err)
	}

	s.Date, err = ParseTime(dateStr)
	if err != nil {
		return model.DailySnapshot{}, fmt.Errorf("failed to parse date: %w", err)
	}
	s.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.DailySnapshot{}, fmt.Errorf("failed to parse date: %w", err)
	}

	s.Positions = []model.SnapshotPosition{}

	posRows, err := r.db.Query(`
		SELECT position_id, company_name, quantity, current_price, current_value, unrealized_pnl
		FROM snapshot_position
		WHERE snapshot_id = ?`, s.ID)
	if err != nil {
		return model.DailySnapshot{}, fmt.Errorf("failed to query snapshot_position table: %w", err)
	}
	defer posRows.Close()

	for posRows.Next() {
		var sp model.SnapshotPosition
		err := posRows.Scan(&sp.PositionID, &sp.CompanyName, &sp.Quantity, &sp.CurrentPrice, &sp.CurrentValue, &sp.UnrealizedPnL)
		if err != nil {
			return model.DailySnapshot{}, fmt.Errorf("failed to scan snapshot_position table results: %w", err)
		}
		s.Positions = append(s.Positions, sp)
	}

	if err = posRows.Err(); err != nil {
		return model.DailySnapshot{}, fmt.Errorf("error iterating snapshot_position table: %w", err)
	}

	return s, nil
}

// UpsertSnapshot replaces the snapshot for its date, inserting the rollup row
// and its per-position breakdown in a single database transaction.
func (r *SnapshotRepository) UpsertSnapshot(s model.DailySnapshot) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	dateStr := s.Date.Format("2006-01-02")

	// Cascade removes the old snapshot_position rows.
	if _, err := tx.Exec(`DELETE FROM daily_snapshot WHERE date = ?`, dateStr); err != nil {
		return fmt.Errorf("failed to clear existing snapshot: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO daily_snapshot (id, date, total_investment, total_current_value, total_unrealized_pnl, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, dateStr, s.TotalInvestment, s.TotalCurrentValue, s.TotalUnrealizedPnL,
		s.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	for i, sp := range s.Positions {
		_, err = tx.Exec(`
			INSERT INTO snapshot_position (id, snapshot_id, position_id, company_name, quantity, current_price, current_value, unrealized_pnl)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			fmt.Sprintf("%s-%d", s.ID, i), s.ID, sp.PositionID, sp.CompanyName,
			sp.Quantity, sp.CurrentPrice, sp.CurrentValue, sp.UnrealizedPnL,
		)
		if err != nil {
			return fmt.Errorf("failed to insert snapshot position: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot transaction: %w", err)
	}

	return nil
}
