package handlers

import (
	"net/http"
	"strconv"

	"github.com/mkuiper/portfolio-tracker/internal/analytics"
	"github.com/mkuiper/portfolio-tracker/internal/api/response"
	"github.com/mkuiper/portfolio-tracker/internal/apperrors"
	"github.com/mkuiper/portfolio-tracker/internal/service"
)

// AnalyticsHandler handles HTTP requests for the analytics endpoints. Each
// endpoint maps one-to-one onto a view of the analytics engine.
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler with the provided service dependency.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// Performance handles GET requests for the portfolio performance bundle:
// totals, win rate, average return, and the best and worst positions.
//
// Endpoint: GET /api/analytics/performance
// Response: 200 OK with PerformanceBundle
// Error: 500 Internal Server Error if computation fails
func (h *AnalyticsHandler) Performance(w http.ResponseWriter, r *http.Request) {
	bundle, err := h.analyticsService.Performance(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeAnalytics.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, bundle)
}

// Risk handles GET requests for the risk bundle: volatility, max drawdown,
// Sharpe and Sortino ratios, Value-at-Risk, and downside deviation.
//
// Endpoint: GET /api/analytics/risk
// Response: 200 OK with RiskBundle
// Error: 500 Internal Server Error if computation fails
func (h *AnalyticsHandler) Risk(w http.ResponseWriter, r *http.Request) {
	bundle, err := h.analyticsService.Risk(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeAnalytics.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, bundle)
}

// Allocation handles GET requests for the per-company allocation breakdown.
//
// Endpoint: GET /api/analytics/allocation
// Response: 200 OK with AllocationBundle
// Error: 500 Internal Server Error if computation fails
func (h *AnalyticsHandler) Allocation(w http.ResponseWriter, _ *http.Request) {
	bundle, err := h.analyticsService.Allocation()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeAnalytics.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, bundle)
}

// Transactions handles GET requests for transaction-activity analytics:
// buy/sell counts and volumes, fee totals, and daily, weekly, and monthly
// activity series.
//
// Endpoint: GET /api/analytics/transactions
// Response: 200 OK with TransactionBundle
// Error: 500 Internal Server Error if computation fails
func (h *AnalyticsHandler) Transactions(w http.ResponseWriter, _ *http.Request) {
	bundle, err := h.analyticsService.Transactions()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeAnalytics.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, bundle)
}

// Time handles GET requests for time-bucketed portfolio analytics.
//
// Endpoint: GET /api/analytics/time?period=monthly (daily, weekly, monthly, yearly)
// Response: 200 OK with TimeBundle
// Error: 400 Bad Request if the period is invalid
// Error: 500 Internal Server Error if computation fails
func (h *AnalyticsHandler) Time(w http.ResponseWriter, r *http.Request) {
	period := analytics.Period(r.URL.Query().Get("period"))
	if period == "" {
		period = analytics.PeriodMonthly
	}
	if !analytics.ValidPeriod(period) {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidPeriod.Error(), string(period))
		return
	}

	bundle, err := h.analyticsService.Time(period)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeAnalytics.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, bundle)
}

// Distribution handles GET requests for the return-distribution histogram.
//
// Endpoint: GET /api/analytics/distribution?buckets=10
// Response: 200 OK with array of DistributionBucket
// Error: 400 Bad Request if buckets is not a positive integer
// Error: 500 Internal Server Error if computation fails
func (h *AnalyticsHandler) Distribution(w http.ResponseWriter, r *http.Request) {
	buckets, err := positiveIntQuery(r, "buckets", analytics.DefaultDistributionBuckets)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "buckets must be a positive integer", r.URL.Query().Get("buckets"))
		return
	}

	histogram, err := h.analyticsService.Distribution(buckets)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeAnalytics.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, histogram)
}

// Top handles GET requests for the best-performing positions.
//
// Endpoint: GET /api/analytics/top?n=5
// Response: 200 OK with array of Position, best first
// Error: 400 Bad Request if n is not a positive integer
// Error: 500 Internal Server Error if computation fails
func (h *AnalyticsHandler) Top(w http.ResponseWriter, r *http.Request) {
	n, err := positiveIntQuery(r, "n", analytics.DefaultTopN)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "n must be a positive integer", r.URL.Query().Get("n"))
		return
	}

	positions, err := h.analyticsService.TopPositions(n)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeAnalytics.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, positions)
}

// Bottom handles GET requests for the worst-performing positions.
//
// Endpoint: GET /api/analytics/bottom?n=5
// Response: 200 OK with array of Position, worst first
// Error: 400 Bad Request if n is not a positive integer
// Error: 500 Internal Server Error if computation fails
func (h *AnalyticsHandler) Bottom(w http.ResponseWriter, r *http.Request) {
	n, err := positiveIntQuery(r, "n", analytics.DefaultTopN)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "n must be a positive integer", r.URL.Query().Get("n"))
		return
	}

	positions, err := h.analyticsService.BottomPositions(n)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeAnalytics.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, positions)
}

// Companies handles GET requests for per-company aggregations ranked by
// unrealized performance.
//
// Endpoint: GET /api/analytics/companies
// Response: 200 OK with array of RankedCompany
// Error: 500 Internal Server Error if computation fails
func (h *AnalyticsHandler) Companies(w http.ResponseWriter, _ *http.Request) {
	companies, err := h.analyticsService.Companies()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeAnalytics.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, companies)
}

// Sizes handles GET requests for each position's share of invested capital.
//
// Endpoint: GET /api/analytics/sizes
// Response: 200 OK with array of PositionSize, largest first
// Error: 500 Internal Server Error if computation fails
func (h *AnalyticsHandler) Sizes(w http.ResponseWriter, _ *http.Request) {
	sizes, err := h.analyticsService.PositionSizes()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeAnalytics.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, sizes)
}

// positiveIntQuery reads an optional positive integer query parameter,
// returning the fallback when the parameter is absent.
func positiveIntQuery(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}
