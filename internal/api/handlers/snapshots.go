package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mkuiper/portfolio-tracker/internal/api/response"
	"github.com/mkuiper/portfolio-tracker/internal/apperrors"
	"github.com/mkuiper/portfolio-tracker/internal/service"
)

// SnapshotHandler handles HTTP requests for daily snapshot endpoints.
type SnapshotHandler struct {
	snapshotService *service.SnapshotService
}

// NewSnapshotHandler creates a new SnapshotHandler with the provided service dependency.
func NewSnapshotHandler(snapshotService *service.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{
		snapshotService: snapshotService,
	}
}

// captureSnapshotRequest is the optional body for a capture request. When the
// date is omitted the snapshot is taken for today.
type captureSnapshotRequest struct {
	Date string `json:"date"`
}

// GetSnapshots handles GET requests to retrieve the full snapshot history.
// Snapshots are returned sorted by date ascending.
//
// Endpoint: GET /api/snapshot
// Response: 200 OK with array of DailySnapshot
// Error: 500 Internal Server Error if retrieval fails
func (h *SnapshotHandler) GetSnapshots(w http.ResponseWriter, _ *http.Request) {
	snapshots, err := h.snapshotService.GetSnapshots()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSnapshots.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshots)
}

// GetSnapshotByDate handles GET requests to retrieve the snapshot for one calendar date.
//
// Endpoint: GET /api/snapshot/{date} (date in YYYY-MM-DD)
// Response: 200 OK with DailySnapshot
// Error: 400 Bad Request if the date is malformed
// Error: 404 Not Found if no snapshot exists for that date
// Error: 500 Internal Server Error if retrieval fails
func (h *SnapshotHandler) GetSnapshotByDate(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "date")

	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid date format, expected YYYY-MM-DD", raw)
		return
	}

	snapshot, err := h.snapshotService.GetSnapshotByDate(date)
	if err != nil {
		if errors.Is(err, apperrors.ErrSnapshotNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrSnapshotNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSnapshots.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshot)
}

// CaptureSnapshot handles POST requests to roll up the current holdings into
// a daily snapshot. An existing snapshot for the same date is replaced, so
// the endpoint is safe to call repeatedly within a day.
//
// Endpoint: POST /api/snapshot
// Request Body: optional {"date": "YYYY-MM-DD"}, defaults to today
// Response: 201 Created with DailySnapshot
// Error: 400 Bad Request if the date is malformed
// Error: 500 Internal Server Error if the capture fails
func (h *SnapshotHandler) CaptureSnapshot(w http.ResponseWriter, r *http.Request) {
	date := time.Now().UTC().Truncate(24 * time.Hour)

	if r.Body != nil && r.ContentLength > 0 {
		req, err := parseJSON[captureSnapshotRequest](r)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
			return
		}
		if req.Date != "" {
			parsed, err := time.Parse("2006-01-02", req.Date)
			if err != nil {
				response.RespondError(w, http.StatusBadRequest, "invalid date format, expected YYYY-MM-DD", req.Date)
				return
			}
			date = parsed
		}
	}

	snapshot, err := h.snapshotService.CaptureSnapshot(date)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToCreateSnapshot.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, snapshot)
}
