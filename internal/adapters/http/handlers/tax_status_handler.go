package handlers

import (
	"errors"
	"strconv"
	"time"

	"nomadtax/internal/core/domain"
	"nomadtax/internal/core/services"
	"nomadtax/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TaxStatusHandler handles declared tax status endpoints
type TaxStatusHandler struct {
	residencyService *services.ResidencyService
}

// NewTaxStatusHandler creates a new tax status handler
func NewTaxStatusHandler(residencyService *services.ResidencyService) *TaxStatusHandler {
	return &TaxStatusHandler{residencyService: residencyService}
}

// Set declares or updates a tax status
// @Summary Set tax status
// @Description Declare residency status and required presence for a country and tax year (upsert)
// @Tags TaxStatus
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.TaxStatusInput true "Tax status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /tax-statuses [put]
func (h *TaxStatusHandler) Set(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.TaxStatusInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	status, err := h.residencyService.SetTaxStatus(c.Context(), userID, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCountry):
			return response.BadRequest(c, "Country must be a 2-letter country code")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid tax year or residency status")
		default:
			return response.InternalServerError(c, "Failed to set tax status")
		}
	}

	return response.Success(c, "Tax status saved successfully", status)
}

// List returns declared statuses for a tax year
// @Summary List tax statuses
// @Description List declared tax statuses for a tax year (defaults to the current year)
// @Tags TaxStatus
// @Produce json
// @Security BearerAuth
// @Param year query int false "Tax year"
// @Success 200 {object} response.Response
// @Router /tax-statuses [get]
func (h *TaxStatusHandler) List(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	year, err := strconv.Atoi(c.Query("year", strconv.Itoa(time.Now().Year())))
	if err != nil {
		return response.BadRequest(c, "Invalid tax year")
	}

	statuses, err := h.residencyService.ListTaxStatuses(c.Context(), userID, year)
	if err != nil {
		return response.InternalServerError(c, "Failed to list tax statuses")
	}

	return response.Success(c, "Tax statuses retrieved successfully", statuses)
}

// Delete removes a declared status
// @Summary Delete tax status
// @Description Delete a declared tax status by ID
// @Tags TaxStatus
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tax status ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tax-statuses/{id} [delete]
func (h *TaxStatusHandler) Delete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid tax status ID")
	}

	if err := h.residencyService.DeleteTaxStatus(c.Context(), userID, uint(id)); err != nil {
		if errors.Is(err, domain.ErrTaxStatusNotFound) {
			return response.NotFound(c, "Tax status not found")
		}
		return response.InternalServerError(c, "Failed to delete tax status")
	}

	return response.Success(c, "Tax status deleted successfully", nil)
}
