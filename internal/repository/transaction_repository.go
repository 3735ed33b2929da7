package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mkuiper/portfolio-tracker/internal/apperrors"
	"github.com/mkuiper/portfolio-tracker/internal/model"
)

// TransactionRepository provides data access methods for the transaction table.
// Transactions are append-only; there is no update method.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// GetTransactions retrieves all transactions, ordered by creation time ascending.
// If positionID is non-empty, only that position's transactions are returned.
func (r *TransactionRepository) GetTransactions(positionID string) ([]model.Transaction, error) {
	query := `
		SELECT id, position_id, type, quantity, price, fees, total, created_at
		FROM "transaction"
	`
	var args []any
	if positionID != "" {
		query += ` WHERE position_id = ?`
		args = append(args, positionID)
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		var t model.Transaction
		var createdAtStr string

		err := rows.Scan(&t.ID, &t.PositionID, &t.Type, &t.Quantity, &t.Price, &t.Fees, &t.Total, &createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction table results: %w", err)
		}

		t.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

// GetTransactionResponses retrieves transactions joined with the company name
// of their parent position, ordered by creation time ascending. If positionID
// is non-empty, only that position's transactions are returned.
func (r *TransactionRepository) GetTransactionResponses(positionID string) ([]model.TransactionResponse, error) {
	query := `
		SELECT t.id, t.position_id, p.company_name, t.type, t.quantity, t.price, t.fees, t.total, t.created_at
		FROM "transaction" t
		JOIN position p ON t.position_id = p.id
	`
	var args []any
	if positionID != "" {
		query += ` WHERE t.position_id = ?`
		args = append(args, positionID)
	}
	query += ` ORDER BY t.created_at ASC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	responses := []model.TransactionResponse{}
	for rows.Next() {
		var t model.TransactionResponse
		var createdAtStr string

		err := rows.Scan(&t.ID, &t.PositionID, &t.CompanyName, &t.Type, &t.Quantity, &t.Price, &t.Fees, &t.Total, &createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction table results: %w", err)
		}

		t.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		responses = append(responses, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return responses, nil
}

// GetTransaction retrieves a single transaction by ID.
// Returns apperrors.ErrTransactionNotFound when no row exists.
func (r *TransactionRepository) GetTransaction(id string) (model.Transaction, error) {
	var t model.Transaction
	var createdAtStr string

	err := r.db.QueryRow(`
		SELECT id, position_id, type, quantity, price, fees, total, created_at
		FROM "transaction"
		WHERE id = ?`, id,
	).Scan(&t.ID, &t.PositionID, &t.Type, &t.Quantity, &t.Price, &t.Fees, &t.Total, &createdAtStr)

	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to scan transaction table results: %w", err)
	}

	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return t, nil
}

// CreateTransaction inserts a new transaction row.
func (r *TransactionRepository) CreateTransaction(t model.Transaction) error {
	_, err := r.db.Exec(`
		INSERT INTO "transaction" (id, position_id, type, quantity, price, fees, total, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.PositionID, t.Type, t.Quantity, t.Price, t.Fees, t.Total,
		t.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}
