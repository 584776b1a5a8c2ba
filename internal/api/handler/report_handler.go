package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/luct/reporting-system/internal/api/metrics"
	"github.com/luct/reporting-system/internal/core/domain"
	"github.com/luct/reporting-system/internal/core/ports"
)

// ReportHandler handles HTTP requests for the report lifecycle.
type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

type createReportRequest struct {
	ClassID          string `json:"class_id"          validate:"required"`
	CourseID         string `json:"course_id"         validate:"required"`
	WeekOfReporting  string `json:"week_of_reporting" validate:"required"`
	DateOfLecture    string `json:"date_of_lecture"   validate:"required"`
	StudentsPresent  int    `json:"students_present"  validate:"gte=0"`
	TotalStudents    int    `json:"total_students"    validate:"gte=0"`
	Venue            string `json:"venue"`
	LectureTime      string `json:"lecture_time"`
	Topic            string `json:"topic"             validate:"required"`
	LearningOutcomes string `json:"learning_outcomes"`
	Recommendations  string `json:"recommendations"`
}

// updateReportRequest carries the whitelisted mutable fields. Pointer fields
// distinguish "absent" from "set to zero value".
type updateReportRequest struct {
	WeekOfReporting  *string `json:"week_of_reporting"`
	DateOfLecture    *string `json:"date_of_lecture"`
	StudentsPresent  *int    `json:"students_present"`
	TotalStudents    *int    `json:"total_students"`
	Venue            *string `json:"venue"`
	LectureTime      *string `json:"lecture_time"`
	Topic            *string `json:"topic"`
	LearningOutcomes *string `json:"learning_outcomes"`
	Recommendations  *string `json:"recommendations"`
}

type feedbackRequest struct {
	Feedback string `json:"feedback" validate:"required"`
}

type reportResponse struct {
	Message string         `json:"message,omitempty"`
	Report  *domain.Report `json:"report,omitempty"`
}

// Create handles POST /reports.
//
// @Summary      Submit a weekly lecture report
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createReportRequest  true  "Report fields"
// @Success      201   {object}  reportResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /reports [post]
func (h *ReportHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	report, err := h.service.Create(c.Request().Context(), principal, ports.CreateReportInput{
		ClassID:          req.ClassID,
		CourseID:         req.CourseID,
		WeekOfReporting:  req.WeekOfReporting,
		DateOfLecture:    req.DateOfLecture,
		StudentsPresent:  req.StudentsPresent,
		TotalStudents:    req.TotalStudents,
		Venue:            req.Venue,
		LectureTime:      req.LectureTime,
		Topic:            req.Topic,
		LearningOutcomes: req.LearningOutcomes,
		Recommendations:  req.Recommendations,
	})
	if err != nil {
		return err
	}

	metrics.ReportsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, reportResponse{Message: "report added", Report: report})
}

// List handles GET /reports.
//
// @Summary      List lecture reports
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Report
// @Failure      401  {object}  errorResponse
// @Router       /reports [get]
func (h *ReportHandler) List(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	reports, err := h.service.List(c.Request().Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reports)
}

// Update handles PUT /reports/:id.
//
// @Summary      Update an owned report
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Report id"
// @Param        body  body      updateReportRequest  true  "Fields to change"
// @Success      200   {object}  reportResponse
// @Failure      404   {object}  errorResponse
// @Router       /reports/{id} [put]
func (h *ReportHandler) Update(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	report, err := h.service.Update(c.Request().Context(), principal, c.Param("id"), domain.ReportPatch{
		WeekOfReporting:  req.WeekOfReporting,
		DateOfLecture:    req.DateOfLecture,
		StudentsPresent:  req.StudentsPresent,
		TotalStudents:    req.TotalStudents,
		Venue:            req.Venue,
		LectureTime:      req.LectureTime,
		Topic:            req.Topic,
		LearningOutcomes: req.LearningOutcomes,
		Recommendations:  req.Recommendations,
	})
	if err != nil {
		if errors.Is(err, domain.ErrReportNotFound) {
			metrics.OwnershipDeniedTotal.WithLabelValues("report").Inc()
		}
		return err
	}

	return c.JSON(http.StatusOK, reportResponse{Message: "report updated", Report: report})
}

// Delete handles DELETE /reports/:id.
//
// @Summary      Delete an owned report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Report id"
// @Success      200  {object}  reportResponse
// @Failure      404  {object}  errorResponse
// @Router       /reports/{id} [delete]
func (h *ReportHandler) Delete(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), principal, c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrReportNotFound) {
			metrics.OwnershipDeniedTotal.WithLabelValues("report").Inc()
		}
		return err
	}
	return c.JSON(http.StatusOK, reportResponse{Message: "report deleted"})
}

// AttachFeedback handles PUT /reports/:id/feedback.
//
// @Summary      Attach PRL feedback to a report
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Report id"
// @Param        body  body      feedbackRequest  true  "Feedback text"
// @Success      200   {object}  reportResponse
// @Failure      400   {object}  errorResponse
// @Router       /reports/{id}/feedback [put]
func (h *ReportHandler) AttachFeedback(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req feedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.AttachFeedback(c.Request().Context(), principal, c.Param("id"), req.Feedback); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reportResponse{Message: "feedback added"})
}
