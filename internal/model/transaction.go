package model

import "time"

// Transaction type values.
const (
	TransactionBuy  = "buy"
	TransactionSell = "sell"
)

// Transaction represents a single buy or sell event tied to exactly one position.
// Transactions are append-only from the analytics engine's point of view; the
// engine aggregates them and never mutates them.
//
// Total is computed once at creation time and stored:
//   - buy:  quantity*price + fees (cost including fees)
//   - sell: quantity*price - fees (net proceeds after fees)
type Transaction struct {
	ID         string    `json:"id"`
	PositionID string    `json:"positionId"`
	Type       string    `json:"type"`
	Quantity   float64   `json:"quantity"`
	Price      float64   `json:"price"`
	Fees       float64   `json:"fees"`
	Total      float64   `json:"total"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TransactionResponse represents a transaction enriched with the company name
// of its parent position for API responses.
type TransactionResponse struct {
	ID          string    `json:"id"`
	PositionID  string    `json:"positionId"`
	CompanyName string    `json:"companyName"`
	Type        string    `json:"type"`
	Quantity    float64   `json:"quantity"`
	Price       float64   `json:"price"`
	Fees        float64   `json:"fees"`
	Total       float64   `json:"total"`
	CreatedAt   time.Time `json:"createdAt"`
}
