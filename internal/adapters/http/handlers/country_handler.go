package handlers

import (
	"errors"
	"strings"

	"nomadtax/internal/adapters/persistence/models"
	"nomadtax/internal/adapters/persistence/repositories"
	"nomadtax/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CountryHandler serves the country rule reference data
type CountryHandler struct {
	countryRepo repositories.CountryRuleRepository
}

// NewCountryHandler creates a new country handler
func NewCountryHandler(countryRepo repositories.CountryRuleRepository) *CountryHandler {
	return &CountryHandler{countryRepo: countryRepo}
}

// CountryRuleRequest represents an admin upsert request body
type CountryRuleRequest struct {
	CountryCode        string `json:"country_code"`
	Name               string `json:"name"`
	ResidencyThreshold int    `json:"residency_threshold"`
	SpecialRules       string `json:"special_rules"`
	TaxYearStart       string `json:"tax_year_start"`
	TaxTreaties        string `json:"tax_treaties"`
}

// List lists all country rules
// @Summary List country rules
// @Description List residency thresholds and special rules for all countries
// @Tags Countries
// @Produce json
// @Success 200 {object} response.Response
// @Router /countries [get]
func (h *CountryHandler) List(c *fiber.Ctx) error {
	rules, err := h.countryRepo.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list country rules")
	}

	return response.Success(c, "Country rules retrieved successfully", rules)
}

// GetByCode returns one country rule
// @Summary Get country rule
// @Description Get the rule for one country by its 2-letter code
// @Tags Countries
// @Produce json
// @Param code path string true "Country code"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /countries/{code} [get]
func (h *CountryHandler) GetByCode(c *fiber.Ctx) error {
	code := strings.ToUpper(c.Params("code"))
	if len(code) != 2 {
		return response.BadRequest(c, "Country code must be 2 letters")
	}

	rule, err := h.countryRepo.GetByCode(c.Context(), code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Country rule not found")
		}
		return response.InternalServerError(c, "Failed to get country rule")
	}

	return response.Success(c, "Country rule retrieved successfully", rule)
}

// Upsert creates or updates a country rule (admin)
// @Summary Upsert country rule
// @Description Create or update a country rule (admin only)
// @Tags Countries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CountryRuleRequest true "Country rule"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /countries [put]
func (h *CountryHandler) Upsert(c *fiber.Ctx) error {
	var req CountryRuleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	code := strings.ToUpper(strings.TrimSpace(req.CountryCode))
	if len(code) != 2 {
		return response.BadRequest(c, "Country code must be 2 letters")
	}
	if req.Name == "" {
		return response.BadRequest(c, "Country name is required")
	}
	if req.ResidencyThreshold < 0 {
		return response.BadRequest(c, "Residency threshold must not be negative")
	}

	rule := &models.CountryRule{
		CountryCode:        code,
		Name:               req.Name,
		ResidencyThreshold: req.ResidencyThreshold,
		SpecialRules:       req.SpecialRules,
		TaxYearStart:       req.TaxYearStart,
		TaxTreaties:        req.TaxTreaties,
		IsActive:           true,
	}

	if err := h.countryRepo.Upsert(c.Context(), rule); err != nil {
		return response.InternalServerError(c, "Failed to save country rule")
	}

	return response.Success(c, "Country rule saved successfully", rule)
}
