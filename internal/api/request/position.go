package request

// CreatePositionRequest is the body for creating a position. Quantity and
// cost fields are optional seeds for importing an existing holding; most
// positions start empty and accrue state through transactions.
type CreatePositionRequest struct {
	CompanyName     string  `json:"companyName"`
	TotalQuantity   float64 `json:"totalQuantity"`
	TotalInvestment float64 `json:"totalInvestment"`
	TotalFees       float64 `json:"totalFees"`
	CurrentPrice    float64 `json:"currentPrice"`
	Status          string  `json:"status"`
}

// UpdatePositionRequest is the body for updating a position. All fields are
// optional; quantity and cost basis change only through transactions.
type UpdatePositionRequest struct {
	CompanyName  *string  `json:"companyName,omitempty"`
	CurrentPrice *float64 `json:"currentPrice,omitempty"`
	Status       *string  `json:"status,omitempty"`
}
