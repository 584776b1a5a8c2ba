package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/luct/reporting-system/internal/core/ports"
)

// DirectoryHandler serves the read-only reference listings.
type DirectoryHandler struct {
	service ports.DirectoryService
}

func NewDirectoryHandler(service ports.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{service: service}
}

// Faculties handles GET /faculties. Public: the registration form needs it
// before any token exists.
//
// @Summary      List faculties
// @Tags         directory
// @Produce      json
// @Success      200  {array}  domain.Faculty
// @Router       /faculties [get]
func (h *DirectoryHandler) Faculties(c echo.Context) error {
	faculties, err := h.service.ListFaculties(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, faculties)
}

// Classes handles GET /classes. Public for the same reason as Faculties.
//
// @Summary      List classes
// @Tags         directory
// @Produce      json
// @Success      200  {array}  domain.Class
// @Router       /classes [get]
func (h *DirectoryHandler) Classes(c echo.Context) error {
	classes, err := h.service.ListClasses(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, classes)
}

// Courses handles GET /courses with an optional faculty_id query filter.
//
// @Summary      List courses
// @Tags         directory
// @Produce      json
// @Security     BearerAuth
// @Param        faculty_id  query  string  false  "Restrict to one faculty"
// @Success      200  {array}  domain.Course
// @Router       /courses [get]
func (h *DirectoryHandler) Courses(c echo.Context) error {
	courses, err := h.service.ListCourses(c.Request().Context(), c.QueryParam("faculty_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, courses)
}

// Lecturers handles GET /lecturers.
//
// @Summary      List lecturers
// @Tags         directory
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  ports.LecturerInfo
// @Router       /lecturers [get]
func (h *DirectoryHandler) Lecturers(c echo.Context) error {
	lecturers, err := h.service.ListLecturers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, lecturers)
}
