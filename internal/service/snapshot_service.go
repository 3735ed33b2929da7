package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/mkuiper/portfolio-tracker/internal/model"
	"github.com/mkuiper/portfolio-tracker/internal/repository"
)

// SnapshotService builds and retrieves daily portfolio snapshots: one rollup
// per calendar date of every held position's valuation.
type SnapshotService struct {
	snapshotRepo *repository.SnapshotRepository
	positionRepo *repository.PositionRepository
}

// NewSnapshotService creates a new SnapshotService with the provided repository dependencies.
func NewSnapshotService(
	snapshotRepo *repository.SnapshotRepository,
	positionRepo *repository.PositionRepository,
) *SnapshotService {
	return &SnapshotService{
		snapshotRepo: snapshotRepo,
		positionRepo: positionRepo,
	}
}

// GetSnapshots retrieves the full snapshot history, sorted by date ascending.
func (s *SnapshotService) GetSnapshots() ([]model.DailySnapshot, error) {
	return s.snapshotRepo.GetSnapshots()
}

// GetSnapshotByDate retrieves the snapshot for one calendar date.
func (s *SnapshotService) GetSnapshotByDate(date time.Time) (model.DailySnapshot, error) {
	return s.snapshotRepo.GetSnapshotByDate(date)
}

// CaptureSnapshot rolls up all currently held positions into the snapshot for
// the given date, replacing any snapshot already stored for that date.
// Watching and sold positions carry no value and are excluded.
func (s *SnapshotService) CaptureSnapshot(date time.Time) (model.DailySnapshot, error) {
	positions, err := s.positionRepo.GetPositions(model.PositionFilter{Status: model.StatusHolding})
	if err != nil {
		return model.DailySnapshot{}, err
	}

	snapshot := model.DailySnapshot{
		ID:        uuid.NewString(),
		Date:      date,
		Positions: make([]model.SnapshotPosition, 0, len(positions)),
		CreatedAt: time.Now().UTC(),
	}

	for _, p := range positions {
		snapshot.TotalInvestment += p.InvestmentWithFees
		snapshot.TotalCurrentValue += p.CurrentValue
		snapshot.TotalUnrealizedPnL += p.UnrealizedPnL

		snapshot.Positions = append(snapshot.Positions, model.SnapshotPosition{
			PositionID:    p.ID,
			CompanyName:   p.CompanyName,
			Quantity:      p.TotalQuantity,
			CurrentPrice:  p.CurrentPrice,
			CurrentValue:  p.CurrentValue,
			UnrealizedPnL: p.UnrealizedPnL,
		})
	}

	if err := s.snapshotRepo.UpsertSnapshot(snapshot); err != nil {
		return model.DailySnapshot{}, err
	}

	return snapshot, nil
}
