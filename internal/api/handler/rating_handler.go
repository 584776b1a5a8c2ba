package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/luct/reporting-system/internal/api/metrics"
	"github.com/luct/reporting-system/internal/core/domain"
	"github.com/luct/reporting-system/internal/core/ports"
)

// RatingHandler handles HTTP requests for lecturer ratings.
type RatingHandler struct {
	service ports.RatingService
}

func NewRatingHandler(service ports.RatingService) *RatingHandler {
	return &RatingHandler{service: service}
}

type submitRatingRequest struct {
	LecturerID string `json:"lecturer_id" validate:"required"`
	Rating     int    `json:"rating"      validate:"required,min=1,max=5"`
	Comment    string `json:"comment"`
}

type ratingResponse struct {
	Message string         `json:"message,omitempty"`
	Rating  *domain.Rating `json:"rating,omitempty"`
}

// Submit handles POST /rate.
//
// @Summary      Rate a lecturer
// @Tags         ratings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      submitRatingRequest  true  "Rating details"
// @Success      200   {object}  ratingResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /rate [post]
func (h *RatingHandler) Submit(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req submitRatingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rating, err := h.service.Submit(c.Request().Context(), principal, req.LecturerID, req.Rating, req.Comment)
	if err != nil {
		return err
	}

	metrics.RatingsSubmittedTotal.Inc()
	return c.JSON(http.StatusOK, ratingResponse{Message: "rating submitted", Rating: rating})
}

// List handles GET /ratings.
//
// @Summary      List ratings
// @Tags         ratings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.RatingView
// @Failure      401  {object}  errorResponse
// @Router       /ratings [get]
func (h *RatingHandler) List(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	views, err := h.service.List(c.Request().Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// Delete handles DELETE /rate/:id.
//
// @Summary      Delete an owned rating
// @Tags         ratings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Rating id"
// @Success      200  {object}  ratingResponse
// @Failure      404  {object}  errorResponse
// @Router       /rate/{id} [delete]
func (h *RatingHandler) Delete(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), principal, c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrRatingNotFound) {
			metrics.OwnershipDeniedTotal.WithLabelValues("rating").Inc()
		}
		return err
	}
	return c.JSON(http.StatusOK, ratingResponse{Message: "rating deleted"})
}

// Summary handles GET /ratings-summary. The faculty scope comes from the
// acting PRL's own token, never from the request.
//
// @Summary      Per-lecturer rating averages for the PRL's faculty
// @Tags         ratings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.LecturerRatingSummary
// @Failure      403  {object}  errorResponse
// @Router       /ratings-summary [get]
func (h *RatingHandler) Summary(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	items, err := h.service.Summary(c.Request().Context(), principal.FacultyID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}
