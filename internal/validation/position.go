package validation

import (
	"fmt"
	"strings"

	"github.com/mkuiper/portfolio-tracker/internal/api/request"
	"github.com/mkuiper/portfolio-tracker/internal/model"
)

// ValidPositionStatus contains the allowed position status values.
var ValidPositionStatus = map[string]bool{
	model.StatusHolding: true, model.StatusSold: true, model.StatusWatching: true,
}

// ValidateCreatePosition validates a position creation request.
//
// Required fields:
//   - companyName: must be non-empty
//   - status: one of holding, sold, watching (empty defaults to watching)
//
// Seed fields (totalQuantity, totalInvestment, totalFees, currentPrice) must
// be non-negative when provided.
func ValidateCreatePosition(req request.CreatePositionRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.CompanyName) == "" {
		errors["companyName"] = "companyName is required"
	}
	if req.Status != "" && !ValidPositionStatus[req.Status] {
		errors["status"] = fmt.Sprintf("invalid status: %s", req.Status)
	}
	if req.TotalQuantity < 0 {
		errors["totalQuantity"] = "totalQuantity cannot be negative"
	}
	if req.TotalInvestment < 0 {
		errors["totalInvestment"] = "totalInvestment cannot be negative"
	}
	if req.TotalFees < 0 {
		errors["totalFees"] = "totalFees cannot be negative"
	}
	if req.CurrentPrice < 0 {
		errors["currentPrice"] = "currentPrice cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdatePosition validates a position update request. All fields are
// optional, but if provided they must meet the same constraints as create.
func ValidateUpdatePosition(req request.UpdatePositionRequest) error {
	errors := make(map[string]string)

	if req.CompanyName != nil && strings.TrimSpace(*req.CompanyName) == "" {
		errors["companyName"] = "companyName cannot be empty"
	}
	if req.Status != nil && !ValidPositionStatus[*req.Status] {
		errors["status"] = fmt.Sprintf("invalid status: %s", *req.Status)
	}
	if req.CurrentPrice != nil && *req.CurrentPrice < 0 {
		errors["currentPrice"] = "currentPrice cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
