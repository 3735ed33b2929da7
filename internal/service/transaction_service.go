package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mkuiper/portfolio-tracker/internal/api/request"
	"github.com/mkuiper/portfolio-tracker/internal/apperrors"
	"github.com/mkuiper/portfolio-tracker/internal/model"
	"github.com/mkuiper/portfolio-tracker/internal/repository"
)

// TransactionService handles transaction-related business logic operations.
// Transactions are append-only: creating one updates the parent position's
// quantity and cost basis, and there is no update or delete.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
	positionRepo    *repository.PositionRepository
}

// NewTransactionService creates a new TransactionService with the provided repository dependencies.
func NewTransactionService(
	transactionRepo *repository.TransactionRepository,
	positionRepo *repository.PositionRepository,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		positionRepo:    positionRepo,
	}
}

// GetTransactions retrieves all transactions enriched with company names.
// If positionID is non-empty, only that position's transactions are returned.
func (s *TransactionService) GetTransactions(positionID string) ([]model.TransactionResponse, error) {
	return s.transactionRepo.GetTransactionResponses(positionID)
}

// GetTransaction retrieves a single transaction by ID.
func (s *TransactionService) GetTransaction(id string) (model.Transaction, error) {
	return s.transactionRepo.GetTransaction(id)
}

// CreateTransaction records a buy or sell against a position and rolls the
// position's state forward.
//
// The stored total is quantity*price + fees for buys (cost including fees)
// and quantity*price - fees for sells (net proceeds after fees).
//
// Buys accrue quantity, investment, and fees; the average price is the
// investment divided by the quantity held. Sells reduce the quantity and
// scale the cost basis (investment and accrued fees) proportionally, the
// weighted-average-cost method; a position sold down to zero quantity moves
// to the "sold" status.
func (s *TransactionService) CreateTransaction(req request.CreateTransactionRequest) (model.Transaction, error) {
	p, err := s.positionRepo.GetPosition(req.PositionID)
	if err != nil {
		return model.Transaction{}, err
	}

	gross := req.Quantity * req.Price

	t := model.Transaction{
		ID:         uuid.NewString(),
		PositionID: req.PositionID,
		Type:       req.Type,
		Quantity:   req.Quantity,
		Price:      req.Price,
		Fees:       req.Fees,
		CreatedAt:  time.Now().UTC(),
	}

	switch req.Type {
	case model.TransactionBuy:
		t.Total = gross + req.Fees

		p.TotalQuantity += req.Quantity
		p.TotalInvestment += gross
		p.TotalFees += req.Fees
		p.AveragePrice = p.TotalInvestment / p.TotalQuantity
		if p.Status != model.StatusHolding {
			p.Status = model.StatusHolding
		}

	case model.TransactionSell:
		if req.Quantity > p.TotalQuantity {
			return model.Transaction{}, fmt.Errorf("%w: have %v, selling %v",
				apperrors.ErrInsufficientQuantity, p.TotalQuantity, req.Quantity)
		}
		t.Total = gross - req.Fees

		remaining := p.TotalQuantity - req.Quantity
		if remaining > 0 {
			share := remaining / p.TotalQuantity
			p.TotalInvestment *= share
			p.TotalFees *= share
		} else {
			p.TotalInvestment = 0
			p.TotalFees = 0
			p.AveragePrice = 0
			p.Status = model.StatusSold
		}
		p.TotalQuantity = remaining

	default:
		return model.Transaction{}, apperrors.ErrInvalidTransactionType
	}

	p.UpdatedAt = t.CreatedAt
	deriveValuation(&p)

	if err := s.transactionRepo.CreateTransaction(t); err != nil {
		return model.Transaction{}, err
	}
	if err := s.positionRepo.UpdatePosition(p); err != nil {
		return model.Transaction{}, err
	}

	return t, nil
}
