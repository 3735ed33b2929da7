package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/mkuiper/portfolio-tracker/internal/api/request"
	"github.com/mkuiper/portfolio-tracker/internal/model"
	"github.com/mkuiper/portfolio-tracker/internal/repository"
)

// PositionService handles position-related business logic operations.
// It owns the derived valuation fields (investment with fees, current value,
// unrealized P/L) and recomputes them on every write so the stored record is
// always consistent.
type PositionService struct {
	positionRepo *repository.PositionRepository
}

// NewPositionService creates a new PositionService with the provided repository dependency.
func NewPositionService(positionRepo *repository.PositionRepository) *PositionService {
	return &PositionService{positionRepo: positionRepo}
}

// GetPositions retrieves positions matching the given filter.
func (s *PositionService) GetPositions(filter model.PositionFilter) ([]model.Position, error) {
	return s.positionRepo.GetPositions(filter)
}

// GetPosition retrieves a single position by ID.
func (s *PositionService) GetPosition(id string) (model.Position, error) {
	return s.positionRepo.GetPosition(id)
}

// CreatePosition creates a new position from the request. Quantities and
// costs normally accrue through transactions, so a new position starts empty
// unless the request seeds it (e.g. when importing an existing holding).
func (s *PositionService) CreatePosition(req request.CreatePositionRequest) (model.Position, error) {
	now := time.Now().UTC()

	status := req.Status
	if status == "" {
		status = model.StatusWatching
	}

	p := model.Position{
		ID:              uuid.NewString(),
		CompanyName:     req.CompanyName,
		TotalQuantity:   req.TotalQuantity,
		TotalInvestment: req.TotalInvestment,
		TotalFees:       req.TotalFees,
		CurrentPrice:    req.CurrentPrice,
		Status:          status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if p.TotalQuantity > 0 {
		p.AveragePrice = p.TotalInvestment / p.TotalQuantity
	}
	deriveValuation(&p)

	if err := s.positionRepo.CreatePosition(p); err != nil {
		return model.Position{}, err
	}

	return p, nil
}

// UpdatePosition applies the non-nil fields of the request to an existing
// position and rederives its valuation.
func (s *PositionService) UpdatePosition(id string, req request.UpdatePositionRequest) (model.Position, error) {
	p, err := s.positionRepo.GetPosition(id)
	if err != nil {
		return model.Position{}, err
	}

	if req.CompanyName != nil {
		p.CompanyName = *req.CompanyName
	}
	if req.CurrentPrice != nil {
		p.CurrentPrice = *req.CurrentPrice
	}
	if req.Status != nil {
		p.Status = *req.Status
	}

	p.UpdatedAt = time.Now().UTC()
	deriveValuation(&p)

	if err := s.positionRepo.UpdatePosition(p); err != nil {
		return model.Position{}, err
	}

	return p, nil
}

// DeletePosition removes a position and its transactions.
func (s *PositionService) DeletePosition(id string) error {
	return s.positionRepo.DeletePosition(id)
}

// deriveValuation recomputes the derived fields of a position from its base
// state: investment with fees, current value (price * quantity), unrealized
// P/L, and the unrealized percentage with a zero-investment guard.
func deriveValuation(p *model.Position) {
	p.InvestmentWithFees = p.TotalInvestment + p.TotalFees
	p.CurrentValue = p.CurrentPrice * p.TotalQuantity
	p.UnrealizedPnL = p.CurrentValue - p.InvestmentWithFees

	if p.InvestmentWithFees == 0 {
		p.UnrealizedPct = 0
		return
	}
	p.UnrealizedPct = p.UnrealizedPnL / p.InvestmentWithFees * 100
}
