package model

import "time"

// Position status values. A position is "holding" while shares are owned,
// "sold" once fully exited, and "watching" when tracked without ownership.
const (
	StatusHolding  = "holding"
	StatusSold     = "sold"
	StatusWatching = "watching"
)

// Position represents a tracked holding in a single company.
// The company name doubles as the grouping key for analytics; there is no
// separate company entity.
type Position struct {
	ID                 string    `json:"id"`
	CompanyName        string    `json:"companyName"`
	TotalQuantity      float64   `json:"totalQuantity"`
	AveragePrice       float64   `json:"averagePrice"`
	TotalInvestment    float64   `json:"totalInvestment"`
	TotalFees          float64   `json:"totalFees"`
	InvestmentWithFees float64   `json:"investmentWithFees"` // totalInvestment + totalFees
	CurrentPrice       float64   `json:"currentPrice"`
	CurrentValue       float64   `json:"currentValue"` // currentPrice * totalQuantity
	UnrealizedPnL      float64   `json:"unrealizedPnL"`
	UnrealizedPct      float64   `json:"unrealizedPct"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// PositionFilter for querying positions
type PositionFilter struct {
	Status      string // empty means all statuses
	CompanyName string // empty means all companies
}
