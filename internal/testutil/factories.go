package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/mkuiper/portfolio-tracker/internal/model"
)

// PositionBuilder provides a fluent interface for creating test positions.
//
// Example usage:
//
//	// Simple creation with defaults
//	position := testutil.NewPosition().Build(t, db)
//
//	// Customized position
//	position := testutil.NewPosition().
//	    WithCompanyName("Acme Corp").
//	    WithQuantity(50).
//	    WithInvestment(5000, 25).
//	    WithCurrentPrice(120).
//	    Build(t, db)
type PositionBuilder struct {
	ID              string
	CompanyName     string
	TotalQuantity   float64
	TotalInvestment float64
	TotalFees       float64
	CurrentPrice    float64
	Status          string
	CreatedAt       time.Time
}

// NewPosition creates a PositionBuilder with sensible defaults.
func NewPosition() *PositionBuilder {
	return &PositionBuilder{
		ID:              MakeID(),
		CompanyName:     MakeCompanyName("Test Company"),
		TotalQuantity:   10,
		TotalInvestment: 1000,
		TotalFees:       10,
		CurrentPrice:    110,
		Status:          model.StatusHolding,
		CreatedAt:       time.Now().UTC(),
	}
}

// WithID sets a custom ID.
func (b *PositionBuilder) WithID(id string) *PositionBuilder {
	b.ID = id
	return b
}

// WithCompanyName sets a custom company name.
func (b *PositionBuilder) WithCompanyName(name string) *PositionBuilder {
	b.CompanyName = name
	return b
}

// WithQuantity sets the held quantity.
func (b *PositionBuilder) WithQuantity(quantity float64) *PositionBuilder {
	b.TotalQuantity = quantity
	return b
}

// WithInvestment sets the invested amount and accrued fees.
func (b *PositionBuilder) WithInvestment(investment, fees float64) *PositionBuilder {
	b.TotalInvestment = investment
	b.TotalFees = fees
	return b
}

// WithCurrentPrice sets the current market price.
func (b *PositionBuilder) WithCurrentPrice(price float64) *PositionBuilder {
	b.CurrentPrice = price
	return b
}

// WithStatus sets the position status.
func (b *PositionBuilder) WithStatus(status string) *PositionBuilder {
	b.Status = status
	return b
}

// WithCreatedAt sets the creation timestamp.
func (b *PositionBuilder) WithCreatedAt(createdAt time.Time) *PositionBuilder {
	b.CreatedAt = createdAt
	return b
}

// Sold marks the position as fully sold.
func (b *PositionBuilder) Sold() *PositionBuilder {
	b.Status = model.StatusSold
	b.TotalQuantity = 0
	b.TotalInvestment = 0
	b.TotalFees = 0
	return b
}

// Build creates the position in the database and returns it with the derived
// valuation fields filled in.
func (b *PositionBuilder) Build(t *testing.T, db *sql.DB) model.Position {
	t.Helper()

	p := model.Position{
		ID:              b.ID,
		CompanyName:     b.CompanyName,
		TotalQuantity:   b.TotalQuantity,
		TotalInvestment: b.TotalInvestment,
		TotalFees:       b.TotalFees,
		CurrentPrice:    b.CurrentPrice,
		Status:          b.Status,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.CreatedAt,
	}
	if p.TotalQuantity > 0 {
		p.AveragePrice = p.TotalInvestment / p.TotalQuantity
	}
	p.InvestmentWithFees = p.TotalInvestment + p.TotalFees
	p.CurrentValue = p.CurrentPrice * p.TotalQuantity
	p.UnrealizedPnL = p.CurrentValue - p.InvestmentWithFees
	if p.InvestmentWithFees != 0 {
		p.UnrealizedPct = p.UnrealizedPnL / p.InvestmentWithFees * 100
	}

	query := `
		INSERT INTO position (
			id, company_name, total_quantity, average_price, total_investment,
			total_fees, investment_with_fees, current_price, current_value,
			unrealized_pnl, unrealized_pct, status, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		p.ID, p.CompanyName, p.TotalQuantity, p.AveragePrice, p.TotalInvestment,
		p.TotalFees, p.InvestmentWithFees, p.CurrentPrice, p.CurrentValue,
		p.UnrealizedPnL, p.UnrealizedPct, p.Status,
		p.CreatedAt.UTC().Format(time.RFC3339), p.UpdatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test position: %v", err)
	}

	return p
}

// Convenience functions

// CreatePosition creates a position with the given company name and default values.
//
// Example usage:
//
//	position := testutil.CreatePosition(t, db, "Acme Corp")
func CreatePosition(t *testing.T, db *sql.DB, companyName string) model.Position {
	t.Helper()
	return NewPosition().WithCompanyName(companyName).Build(t, db)
}

// CreatePositions creates multiple positions with unique company names.
func CreatePositions(t *testing.T, db *sql.DB, count int) []model.Position {
	t.Helper()

	positions := make([]model.Position, count)
	for i := 0; i < count; i++ {
		positions[i] = NewPosition().Build(t, db)
	}
	return positions
}

// TransactionBuilder provides a fluent interface for creating transactions
type TransactionBuilder struct {
	ID         string
	PositionID string
	Type       string
	Quantity   float64
	Price      float64
	Fees       float64
	CreatedAt  time.Time
}

// NewTransaction creates a TransactionBuilder with defaults
func NewTransaction(positionID string) *TransactionBuilder {
	return &TransactionBuilder{
		ID:         MakeID(),
		PositionID: positionID,
		Type:       model.TransactionBuy,
		Quantity:   10,
		Price:      100,
		Fees:       5,
		CreatedAt:  time.Now().UTC(),
	}
}

// WithID sets a custom ID
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.ID = id
	return b
}

// WithType sets the transaction type
func (b *TransactionBuilder) WithType(txType string) *TransactionBuilder {
	b.Type = txType
	return b
}

// WithQuantity sets the traded quantity
func (b *TransactionBuilder) WithQuantity(quantity float64) *TransactionBuilder {
	b.Quantity = quantity
	return b
}

// WithPrice sets the price per unit
func (b *TransactionBuilder) WithPrice(price float64) *TransactionBuilder {
	b.Price = price
	return b
}

// WithFees sets the transaction fees
func (b *TransactionBuilder) WithFees(fees float64) *TransactionBuilder {
	b.Fees = fees
	return b
}

// WithCreatedAt sets the transaction timestamp
func (b *TransactionBuilder) WithCreatedAt(createdAt time.Time) *TransactionBuilder {
	b.CreatedAt = createdAt
	return b
}

// Build creates the transaction in the database. The stored total follows the
// fee convention of the service layer: buys cost quantity*price + fees, sells
// net quantity*price - fees.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	total := b.Quantity*b.Price + b.Fees
	if b.Type == model.TransactionSell {
		total = b.Quantity*b.Price - b.Fees
	}

	query := `
		INSERT INTO "transaction" (id, position_id, type, quantity, price, fees, total, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.PositionID, b.Type, b.Quantity, b.Price, b.Fees, total,
		b.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create transaction: %v", err)
	}

	return model.Transaction{
		ID:         b.ID,
		PositionID: b.PositionID,
		Type:       b.Type,
		Quantity:   b.Quantity,
		Price:      b.Price,
		Fees:       b.Fees,
		Total:      total,
		CreatedAt:  b.CreatedAt,
	}
}

// SnapshotBuilder provides a fluent interface for creating daily snapshots
type SnapshotBuilder struct {
	ID                 string
	Date               time.Time
	TotalInvestment    float64
	TotalCurrentValue  float64
	TotalUnrealizedPnL float64
	Positions          []model.SnapshotPosition
}

// NewSnapshot creates a SnapshotBuilder with defaults
func NewSnapshot(date time.Time) *SnapshotBuilder {
	return &SnapshotBuilder{
		ID:   MakeID(),
		Date: date,
	}
}

// WithTotals sets the snapshot totals
func (b *SnapshotBuilder) WithTotals(investment, currentValue, unrealizedPnL float64) *SnapshotBuilder {
	b.TotalInvestment = investment
	b.TotalCurrentValue = currentValue
	b.TotalUnrealizedPnL = unrealizedPnL
	return b
}

// WithPosition appends a per-position breakdown row
func (b *SnapshotBuilder) WithPosition(p model.SnapshotPosition) *SnapshotBuilder {
	b.Positions = append(b.Positions, p)
	return b
}

// Build creates the snapshot and its position rows in the database
func (b *SnapshotBuilder) Build(t *testing.T, db *sql.DB) model.DailySnapshot {
	t.Helper()

	createdAt := time.Now().UTC()

	_, err := db.Exec(`
		INSERT INTO daily_snapshot (id, date, total_investment, total_current_value, total_unrealized_pnl, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, b.ID, b.Date.Format("2006-01-02"), b.TotalInvestment, b.TotalCurrentValue, b.TotalUnrealizedPnL,
		createdAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create snapshot: %v", err)
	}

	for _, p := range b.Positions {
		_, err := db.Exec(`
			INSERT INTO snapshot_position (id, snapshot_id, position_id, company_name, quantity, current_price, current_value, unrealized_pnl)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, MakeID(), b.ID, p.PositionID, p.CompanyName, p.Quantity, p.CurrentPrice, p.CurrentValue, p.UnrealizedPnL)
		if err != nil {
			t.Fatalf("Failed to create snapshot position: %v", err)
		}
	}

	return model.DailySnapshot{
		ID:                 b.ID,
		Date:               b.Date,
		TotalInvestment:    b.TotalInvestment,
		TotalCurrentValue:  b.TotalCurrentValue,
		TotalUnrealizedPnL: b.TotalUnrealizedPnL,
		Positions:          b.Positions,
		CreatedAt:          createdAt,
	}
}

// CreateSnapshot creates a snapshot with the given date and totals.
//
// Example usage:
//
//	snapshot := testutil.CreateSnapshot(t, db, date, 1000, 1100)
func CreateSnapshot(t *testing.T, db *sql.DB, date time.Time, investment, currentValue float64) model.DailySnapshot {
	t.Helper()
	return NewSnapshot(date).WithTotals(investment, currentValue, currentValue-investment).Build(t, db)
}
