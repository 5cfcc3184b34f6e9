package handlers

import (
	"strconv"

	"nomadtax/internal/core/domain"
	"nomadtax/internal/core/engine"
	"nomadtax/internal/core/services"
	"nomadtax/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles the tax-residency dashboard endpoints
type DashboardHandler struct {
	residencyService *services.ResidencyService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(residencyService *services.ResidencyService) *DashboardHandler {
	return &DashboardHandler{residencyService: residencyService}
}

// GetDashboard returns the full dashboard
// @Summary Get dashboard
// @Description Full dashboard: per-country tax risks, compliance alerts, critical dates and a narrative summary
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param period query string false "Reporting period: current_year (default), last_year, rolling_year"
// @Success 200 {object} response.Response
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	data, err := h.residencyService.Dashboard(c.Context(), userID, periodParam(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to compute dashboard")
	}

	return response.Success(c, "Dashboard computed successfully", data)
}

// GetTaxRisks returns the per-country risk list
// @Summary Get tax risks
// @Description Per-country tax-residency risk classification for the selected period
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param period query string false "Reporting period: current_year (default), last_year, rolling_year"
// @Success 200 {object} response.Response
// @Router /dashboard/risks [get]
func (h *DashboardHandler) GetTaxRisks(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	risks, err := h.residencyService.TaxRisks(c.Context(), userID, periodParam(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to compute tax risks")
	}

	return response.Success(c, "Tax risks computed successfully", risks)
}

// GetAlerts returns the compliance alerts
// @Summary Get compliance alerts
// @Description Compliance alerts: residency progress, stay duration and passport validity
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard/alerts [get]
func (h *DashboardHandler) GetAlerts(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	alerts, err := h.residencyService.Alerts(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to compute alerts")
	}

	return response.Success(c, "Alerts computed successfully", alerts)
}

// GetCriticalDates returns upcoming document deadlines
// @Summary Get critical dates
// @Description Document expiries inside the lookahead window, soonest first
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param months query int false "Lookahead window in months (default 6)"
// @Success 200 {object} response.Response
// @Router /dashboard/critical-dates [get]
func (h *DashboardHandler) GetCriticalDates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	months, _ := strconv.Atoi(c.Query("months", strconv.Itoa(engine.DefaultLookaheadMonths)))

	dates, err := h.residencyService.CriticalDates(c.Context(), userID, months)
	if err != nil {
		return response.InternalServerError(c, "Failed to compute critical dates")
	}

	return response.Success(c, "Critical dates computed successfully", dates)
}

// periodParam reads the ?period= query; unrecognized values fall back to
// the current calendar year.
func periodParam(c *fiber.Ctx) domain.PeriodKind {
	return domain.PeriodKind(c.Query("period", string(domain.PeriodCurrentYear)))
}
