package validation

import (
	"fmt"
	"strings"

	"github.com/mkuiper/portfolio-tracker/internal/api/request"
	"github.com/mkuiper/portfolio-tracker/internal/model"
)

// ValidTransactionType contains the allowed transaction type values.
var ValidTransactionType = map[string]bool{
	model.TransactionBuy: true, model.TransactionSell: true,
}

// ValidateCreateTransaction validates a transaction creation request.
// Checks all required fields and validates their formats and constraints.
//
// Required fields:
//   - positionId: must be a valid UUID
//   - type: must be buy or sell
//   - quantity: must be positive
//   - price: must be positive
//   - fees: must be non-negative
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	if err := ValidateUUID(req.PositionID); err != nil {
		return err
	}

	errors := make(map[string]string)

	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	} else if !ValidTransactionType[req.Type] {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if req.Quantity <= 0 {
		errors["quantity"] = "quantity must be positive"
	}
	if req.Price <= 0 {
		errors["price"] = "price must be positive"
	}
	if req.Fees < 0 {
		errors["fees"] = "fees cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
