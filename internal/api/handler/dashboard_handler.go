package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/luct/reporting-system/internal/core/domain"
	"github.com/luct/reporting-system/internal/core/ports"
)

// DashboardHandler serves the lecturer dashboard aggregate: the lecturer's
// own reports plus the ratings students have given them, newest first.
type DashboardHandler struct {
	reports ports.ReportService
	ratings ports.RatingService
}

func NewDashboardHandler(reports ports.ReportService, ratings ports.RatingService) *DashboardHandler {
	return &DashboardHandler{reports: reports, ratings: ratings}
}

type lecturerDashboardResponse struct {
	Reports []*domain.Report   `json:"reports"`
	Ratings []ports.RatingView `json:"ratings"`
}

// Lecturer handles GET /dashboard/lecturer.
//
// @Summary      Lecturer dashboard data
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  lecturerDashboardResponse
// @Failure      403  {object}  errorResponse
// @Router       /dashboard/lecturer [get]
func (h *DashboardHandler) Lecturer(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	reports, err := h.reports.List(c.Request().Context(), principal)
	if err != nil {
		return err
	}
	ratings, err := h.ratings.ListForLecturer(c.Request().Context(), principal.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, lecturerDashboardResponse{Reports: reports, Ratings: ratings})
}
