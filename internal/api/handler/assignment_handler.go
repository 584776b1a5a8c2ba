package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/luct/reporting-system/internal/api/metrics"
	"github.com/luct/reporting-system/internal/core/domain"
	"github.com/luct/reporting-system/internal/core/ports"
)

// AssignmentHandler handles HTTP requests for course assignments.
type AssignmentHandler struct {
	service ports.AssignmentService
}

func NewAssignmentHandler(service ports.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{service: service}
}

type assignCourseRequest struct {
	CourseID   string `json:"course_id"   validate:"required"`
	LecturerID string `json:"lecturer_id" validate:"required"`
}

type assignmentResponse struct {
	Message    string                   `json:"message,omitempty"`
	Assignment *domain.CourseAssignment `json:"assignment,omitempty"`
}

// Assign handles POST /assign-course.
//
// @Summary      Assign a course to a lecturer
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      assignCourseRequest  true  "Course and lecturer ids"
// @Success      201   {object}  assignmentResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /assign-course [post]
func (h *AssignmentHandler) Assign(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req assignCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	assignment, err := h.service.Assign(c.Request().Context(), principal, req.CourseID, req.LecturerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, assignmentResponse{Message: "course assigned", Assignment: assignment})
}

// List handles GET /assignments.
//
// @Summary      List course assignments
// @Tags         assignments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.AssignmentView
// @Failure      403  {object}  errorResponse
// @Router       /assignments [get]
func (h *AssignmentHandler) List(c echo.Context) error {
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

// Delete handles DELETE /assignments/:id.
//
// @Summary      Delete an assignment created by the acting PL
// @Tags         assignments
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Assignment id"
// @Success      200  {object}  assignmentResponse
// @Failure      404  {object}  errorResponse
// @Router       /assignments/{id} [delete]
func (h *AssignmentHandler) Delete(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), principal, c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrAssignmentNotFound) {
			metrics.OwnershipDeniedTotal.WithLabelValues("assignment").Inc()
		}
		return err
	}
	return c.JSON(http.StatusOK, assignmentResponse{Message: "assignment deleted"})
}
