package handlers

import (
	"errors"
	"strconv"
	"time"

	"nomadtax/internal/core/domain"
	"nomadtax/internal/core/services"
	"nomadtax/internal/pkg/pagination"
	"nomadtax/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TravelHandler handles travel record endpoints
type TravelHandler struct {
	travelService *services.TravelService
}

// NewTravelHandler creates a new travel handler
func NewTravelHandler(travelService *services.TravelService) *TravelHandler {
	return &TravelHandler{travelService: travelService}
}

// CloseStayRequest represents the close-stay request body
type CloseStayRequest struct {
	ExitDate time.Time `json:"exit_date"`
}

// Create creates a travel record
// @Summary Create travel record
// @Description Record a stretch of presence in a country; omit exit_date for an ongoing stay
// @Tags Travel
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateTravelInput true "Travel record"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /travel [post]
func (h *TravelHandler) Create(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateTravelInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	record, err := h.travelService.Create(c.Context(), userID, &input)
	if err != nil {
		return travelError(c, err)
	}

	return response.Created(c, "Travel record created successfully", record)
}

// List lists travel records
// @Summary List travel records
// @Description List the user's travel records with pagination
// @Tags Travel
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /travel [get]
func (h *TravelHandler) List(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)

	records, total, err := h.travelService.List(c.Context(), userID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list travel records")
	}

	return response.Success(c, "Travel records retrieved successfully", pagination.NewResponse(records, params, total))
}

// ListOpen lists ongoing stays
// @Summary List open stays
// @Description List records with no exit date yet
// @Tags Travel
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /travel/open [get]
func (h *TravelHandler) ListOpen(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	records, err := h.travelService.ListOpen(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list open stays")
	}

	return response.Success(c, "Open stays retrieved successfully", records)
}

// GetByID returns one travel record
// @Summary Get travel record
// @Description Get a single travel record by ID
// @Tags Travel
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /travel/{id} [get]
func (h *TravelHandler) GetByID(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid record ID")
	}

	record, err := h.travelService.GetByID(c.Context(), userID, uint(id))
	if err != nil {
		return travelError(c, err)
	}

	return response.Success(c, "Travel record retrieved successfully", record)
}

// Update updates a travel record
// @Summary Update travel record
// @Description Update fields of a travel record; set clear_exit to reopen the stay
// @Tags Travel
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Param body body services.UpdateTravelInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /travel/{id} [put]
func (h *TravelHandler) Update(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid record ID")
	}

	var input services.UpdateTravelInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	record, err := h.travelService.Update(c.Context(), userID, uint(id), &input)
	if err != nil {
		return travelError(c, err)
	}

	return response.Success(c, "Travel record updated successfully", record)
}

// CloseStay closes an ongoing stay
// @Summary Close stay
// @Description Set the exit date on an ongoing stay
// @Tags Travel
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Param body body CloseStayRequest true "Exit date"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /travel/{id}/close [put]
func (h *TravelHandler) CloseStay(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid record ID")
	}

	var req CloseStayRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.ExitDate.IsZero() {
		return response.BadRequest(c, "Exit date is required")
	}

	record, err := h.travelService.CloseStay(c.Context(), userID, uint(id), req.ExitDate)
	if err != nil {
		return travelError(c, err)
	}

	return response.Success(c, "Stay closed successfully", record)
}

// Delete removes a travel record
// @Summary Delete travel record
// @Description Delete a travel record by ID
// @Tags Travel
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /travel/{id} [delete]
func (h *TravelHandler) Delete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid record ID")
	}

	if err := h.travelService.Delete(c.Context(), userID, uint(id)); err != nil {
		return travelError(c, err)
	}

	return response.Success(c, "Travel record deleted successfully", nil)
}

// travelError maps travel domain errors to HTTP responses
func travelError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrTravelNotFound):
		return response.NotFound(c, "Travel record not found")
	case errors.Is(err, domain.ErrInvalidCountry):
		return response.BadRequest(c, "Country must be a 2-letter country code")
	case errors.Is(err, domain.ErrInvalidDateRange):
		return response.BadRequest(c, "Exit date must not be before entry date")
	case errors.Is(err, domain.ErrInvalidPurpose):
		return response.BadRequest(c, "Unknown travel purpose")
	default:
		return response.InternalServerError(c, "Travel operation failed")
	}
}
