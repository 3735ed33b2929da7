package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mkuiper/portfolio-tracker/internal/apperrors"
	"github.com/mkuiper/portfolio-tracker/internal/model"
)

// PositionRepository provides data access methods for the position table.
type PositionRepository struct {
	db *sql.DB
}

// NewPositionRepository creates a new PositionRepository with the provided database connection.
func NewPositionRepository(db *sql.DB) *PositionRepository {
	return &PositionRepository{db: db}
}

const positionColumns = `
	id, company_name, total_quantity, average_price, total_investment,
	total_fees, investment_with_fees, current_price, current_value,
	unrealized_pnl, unrealized_pct, status, created_at, updated_at
`

// GetPositions retrieves positions matching the given filter, ordered by
// creation time ascending. An empty filter returns all positions.
func (r *PositionRepository) GetPositions(filter model.PositionFilter) ([]model.Position, error) {
	query := `SELECT ` + positionColumns + ` FROM position`

	var clauses []string
	var args []any
	if filter.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.CompanyName != "" {
		clauses = append(clauses, "company_name = ?")
		args = append(args, filter.CompanyName)
	}

	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY created_at ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query position table: %w", err)
	}
	defer rows.Close()

	positions := []model.Position{}
	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating position table: %w", err)
	}

	return positions, nil
}

// GetPosition retrieves a single position by ID.
// Returns apperrors.ErrPositionNotFound when no row exists.
func (r *PositionRepository) GetPosition(id string) (model.Position, error) {
	row := r.db.QueryRow(`SELECT `+positionColumns+` FROM position WHERE id = ?`, id)

	p, err := scanPosition(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Position{}, apperrors.ErrPositionNotFound
	}
	if err != nil {
		return model.Position{}, err
	}

	return p, nil
}

// CreatePosition inserts a new position row.
func (r *PositionRepository) CreatePosition(p model.Position) error {
	_, err := r.db.Exec(`
		INSERT INTO position (`+positionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.CompanyName, p.TotalQuantity, p.AveragePrice, p.TotalInvestment,
		p.TotalFees, p.InvestmentWithFees, p.CurrentPrice, p.CurrentValue,
		p.UnrealizedPnL, p.UnrealizedPct, p.Status,
		p.CreatedAt.UTC().Format(time.RFC3339), p.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert position: %w", err)
	}
	return nil
}

// UpdatePosition updates all mutable fields of an existing position row.
// Returns apperrors.ErrPositionNotFound when no row was updated.
func (r *PositionRepository) UpdatePosition(p model.Position) error {
	result, err := r.db.Exec(`
		UPDATE position SET
			company_name = ?, total_quantity = ?, average_price = ?,
			total_investment = ?, total_fees = ?, investment_with_fees = ?,
			current_price = ?, current_value = ?, unrealized_pnl = ?,
			unrealized_pct = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		p.CompanyName, p.TotalQuantity, p.AveragePrice,
		p.TotalInvestment, p.TotalFees, p.InvestmentWithFees,
		p.CurrentPrice, p.CurrentValue, p.UnrealizedPnL,
		p.UnrealizedPct, p.Status, p.UpdatedAt.UTC().Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update position: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrPositionNotFound
	}

	return nil
}

// DeletePosition removes a position row and, via foreign keys, its transactions.
// Returns apperrors.ErrPositionNotFound when no row was deleted.
func (r *PositionRepository) DeletePosition(id string) error {
	result, err := r.db.Exec(`DELETE FROM position WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrPositionNotFound
	}

	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanPosition(s scanner) (model.Position, error) {
	var p model.Position
	var createdAtStr, updatedAtStr string

	err := s.Scan(
		&p.ID, &p.CompanyName, &p.TotalQuantity, &p.AveragePrice, &p.TotalInvestment,
		&p.TotalFees, &p.InvestmentWithFees, &p.CurrentPrice, &p.CurrentValue,
		&p.UnrealizedPnL, &p.UnrealizedPct, &p.Status, &createdAtStr, &updatedAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Position{}, err
	}
	if err != nil {
		return model.Position{}, fmt.Errorf("failed to scan position table results: %w", err)
	}

	p.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Position{}, fmt.Errorf("failed to parse date: %w", err)
	}
	p.UpdatedAt, err = ParseTime(updatedAtStr)
	if err != nil {
		return model.Position{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return p, nil
}
