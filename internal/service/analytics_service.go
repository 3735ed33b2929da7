package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/mkuiper/portfolio-tracker/internal/analytics"
	"github.com/mkuiper/portfolio-tracker/internal/model"
	"github.com/mkuiper/portfolio-tracker/internal/repository"
)

// AnalyticsService feeds stored records into the pure analytics engine. It
// owns no computation itself: it loads positions, transactions, and snapshot
// history (concurrently where a view needs more than one) and delegates to
// the analytics package.
type AnalyticsService struct {
	positionRepo    *repository.PositionRepository
	transactionRepo *repository.TransactionRepository
	snapshotRepo    *repository.SnapshotRepository
}

// NewAnalyticsService creates a new AnalyticsService with the provided repository dependencies.
func NewAnalyticsService(
	positionRepo *repository.PositionRepository,
	transactionRepo *repository.TransactionRepository,
	snapshotRepo *repository.SnapshotRepository,
) *AnalyticsService {
	return &AnalyticsService{
		positionRepo:    positionRepo,
		transactionRepo: transactionRepo,
		snapshotRepo:    snapshotRepo,
	}
}

// loadPositionsAndSnapshots fetches both analytics inputs concurrently.
func (s *AnalyticsService) loadPositionsAndSnapshots(ctx context.Context) ([]model.Position, []model.DailySnapshot, error) {
	var positions []model.Position
	var snapshots []model.DailySnapshot

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		positions, err = s.positionRepo.GetPositions(model.PositionFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		snapshots, err = s.snapshotRepo.GetSnapshots()
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return positions, snapshots, nil
}

// Performance assembles the performance bundle over all positions and the
// snapshot history.
func (s *AnalyticsService) Performance(ctx context.Context) (analytics.PerformanceBundle, error) {
	positions, snapshots, err := s.loadPositionsAndSnapshots(ctx)
	if err != nil {
		return analytics.PerformanceBundle{}, err
	}
	return analytics.PerformanceMetrics(positions, snapshots), nil
}

// Risk assembles the risk bundle over all positions and the snapshot history.
func (s *AnalyticsService) Risk(ctx context.Context) (analytics.RiskBundle, error) {
	positions, snapshots, err := s.loadPositionsAndSnapshots(ctx)
	if err != nil {
		return analytics.RiskBundle{}, err
	}
	return analytics.RiskMetrics(positions, snapshots), nil
}

// Allocation assembles the per-company allocation bundle.
func (s *AnalyticsService) Allocation() (analytics.AllocationBundle, error) {
	positions, err := s.positionRepo.GetPositions(model.PositionFilter{})
	if err != nil {
		return analytics.AllocationBundle{}, err
	}
	return analytics.AllocationBreakdown(positions), nil
}

// Transactions assembles the transaction-activity bundle.
func (s *AnalyticsService) Transactions() (analytics.TransactionBundle, error) {
	transactions, err := s.transactionRepo.GetTransactions("")
	if err != nil {
		return analytics.TransactionBundle{}, err
	}
	return analytics.TransactionAnalytics(transactions), nil
}

// Time assembles the time-based bundle for the given period.
func (s *AnalyticsService) Time(period analytics.Period) (analytics.TimeBundle, error) {
	snapshots, err := s.snapshotRepo.GetSnapshots()
	if err != nil {
		return analytics.TimeBundle{}, err
	}
	return analytics.TimeAnalytics(snapshots, period), nil
}

// Distribution builds the return-distribution histogram with the given bin count.
func (s *AnalyticsService) Distribution(buckets int) ([]analytics.DistributionBucket, error) {
	positions, err := s.positionRepo.GetPositions(model.PositionFilter{})
	if err != nil {
		return nil, err
	}
	return analytics.ReturnDistribution(positions, buckets), nil
}

// TopPositions returns the n best-performing positions.
func (s *AnalyticsService) TopPositions(n int) ([]model.Position, error) {
	positions, err := s.positionRepo.GetPositions(model.PositionFilter{})
	if err != nil {
		return nil, err
	}
	return analytics.TopPositions(positions, n), nil
}

// BottomPositions returns the n worst-performing positions.
func (s *AnalyticsService) BottomPositions(n int) ([]model.Position, error) {
	positions, err := s.positionRepo.GetPositions(model.PositionFilter{})
	if err != nil {
		return nil, err
	}
	return analytics.BottomPositions(positions, n), nil
}

// Companies returns the company aggregations ranked by performance.
func (s *AnalyticsService) Companies() ([]analytics.RankedCompany, error) {
	positions, err := s.positionRepo.GetPositions(model.PositionFilter{})
	if err != nil {
		return nil, err
	}
	return analytics.CompareCompanies(analytics.AggregateByCompany(positions)), nil
}

// PositionSizes returns each position's share of total invested capital.
func (s *AnalyticsService) PositionSizes() ([]analytics.PositionSize, error) {
	positions, err := s.positionRepo.GetPositions(model.PositionFilter{})
	if err != nil {
		return nil, err
	}
	return analytics.ComparePositionSizes(positions), nil
}
