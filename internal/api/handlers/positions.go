package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkuiper/portfolio-tracker/internal/api/request"
	"github.com/mkuiper/portfolio-tracker/internal/api/response"
	"github.com/mkuiper/portfolio-tracker/internal/apperrors"
	"github.com/mkuiper/portfolio-tracker/internal/model"
	"github.com/mkuiper/portfolio-tracker/internal/service"
	"github.com/mkuiper/portfolio-tracker/internal/validation"
)

// PositionHandler handles HTTP requests for position endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the positionService.
type PositionHandler struct {
	positionService *service.PositionService
}

// NewPositionHandler creates a new PositionHandler with the provided service dependency.
func NewPositionHandler(positionService *service.PositionService) *PositionHandler {
	return &PositionHandler{
		positionService: positionService,
	}
}

// GetPositions handles GET requests to retrieve all positions.
// Supports optional filtering by status and company name via query parameters.
//
// Endpoint: GET /api/position?status=holding&company=Acme
// Response: 200 OK with array of Position
// Error: 400 Bad Request if the status filter is invalid
// Error: 500 Internal Server Error if retrieval fails
func (h *PositionHandler) GetPositions(w http.ResponseWriter, r *http.Request) {
	filter := model.PositionFilter{
		Status:      r.URL.Query().Get("status"),
		CompanyName: r.URL.Query().Get("company"),
	}

	if filter.Status != "" && !validation.ValidPositionStatus[filter.Status] {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidStatus.Error(), filter.Status)
		return
	}

	positions, err := h.positionService.GetPositions(filter)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePositions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, positions)
}

// GetPosition handles GET requests to retrieve a single position by ID.
//
// Endpoint: GET /api/position/{uuid}
// Response: 200 OK with Position
// Error: 400 Bad Request if position ID is invalid (validated by middleware)
// Error: 404 Not Found if position not found
// Error: 500 Internal Server Error if retrieval fails
func (h *PositionHandler) GetPosition(w http.ResponseWriter, r *http.Request) {
	positionID := chi.URLParam(r, "uuid")

	position, err := h.positionService.GetPosition(positionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPositionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPositionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePosition.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, position)
}

// CreatePosition handles POST requests to create a new position.
// Validates the request body and creates a position record in the database.
//
// Endpoint: POST /api/position
// Request Body: CreatePositionRequest (companyName required, seed fields optional)
// Response: 201 Created with Position
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *PositionHandler) CreatePosition(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreatePositionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreatePosition(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	position, err := h.positionService.CreatePosition(req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create position", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, position)
}

// UpdatePosition handles PUT requests to update an existing position.
// Quantity and cost basis change only through transactions; this endpoint
// covers the remaining mutable fields.
//
// Endpoint: PUT /api/position/{uuid}
// Request Body: UpdatePositionRequest (all fields optional)
// Response: 200 OK with updated Position
// Error: 400 Bad Request if position ID is invalid (validated by middleware) or validation fails
// Error: 404 Not Found if position not found
// Error: 500 Internal Server Error if update fails
func (h *PositionHandler) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	positionID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdatePositionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdatePosition(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	position, err := h.positionService.UpdatePosition(positionID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrPositionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPositionNotFound.Error(), err.Error())
			return
		}

		response.RespondError(w, http.StatusInternalServerError, "failed to update position", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, position)
}

// DeletePosition handles DELETE requests to remove a position.
// Deleting a position cascades to its transactions.
//
// Endpoint: DELETE /api/position/{uuid}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if position ID is invalid (validated by middleware)
// Error: 404 Not Found if position not found
// Error: 500 Internal Server Error if deletion fails
func (h *PositionHandler) DeletePosition(w http.ResponseWriter, r *http.Request) {
	positionID := chi.URLParam(r, "uuid")

	err := h.positionService.DeletePosition(positionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPositionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPositionNotFound.Error(), err.Error())
			return
		}

		response.RespondError(w, http.StatusInternalServerError, "failed to delete position", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
