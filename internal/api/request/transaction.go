package request

// CreateTransactionRequest is the body for recording a buy or sell against a
// position. Fees default to 0.
type CreateTransactionRequest struct {
	PositionID string  `json:"positionId"`
	Type       string  `json:"type"`
	Quantity   float64 `json:"quantity"`
	Price      float64 `json:"price"`
	Fees       float64 `json:"fees"`
}
