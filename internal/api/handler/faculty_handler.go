package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/univadmin/records-system/internal/core/ports"
	"github.com/univadmin/records-system/internal/core/query"
	"github.com/univadmin/records-system/internal/core/service"
)

// AcademicFacultyHandler handles HTTP requests for academic faculties.
type AcademicFacultyHandler struct {
	svc ports.AcademicFacultyService
}

func NewAcademicFacultyHandler(svc ports.AcademicFacultyService) *AcademicFacultyHandler {
	return &AcademicFacultyHandler{svc: svc}
}

// Create godoc
//
// @Summary      Create an academic faculty
// @Tags         academic-faculties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAcademicFacultyRequest  true  "Faculty payload"
// @Success      201   {object}  envelope{data=academicFacultyResponse}
// @Failure      400   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Router       /academic-faculties [post]
func (h *AcademicFacultyHandler) Create(c echo.Context) error {
	var req createAcademicFacultyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	f, err := h.svc.Create(c.Request().Context(), ports.CreateAcademicFacultyInput{Title: req.Title})
	if err != nil {
		return err
	}
	return sendResponse(c, http.StatusCreated, "Academic faculty created successfully", toAcademicFacultyResponse(f))
}

// List godoc
//
// @Summary      List academic faculties
// @Tags         academic-faculties
// @Produce      json
// @Security     BearerAuth
// @Param        searchTerm  query     string  false  "Partial, case-insensitive match on title"
// @Param        title       query     string  false  "Exact title"
// @Param        page        query     int     false  "Page number (default 1)"
// @Param        limit       query     int     false  "Page size (default 10, max 100)"
// @Param        sortBy      query     string  false  "title, createdAt or updatedAt"
// @Param        sortOrder   query     string  false  "asc or desc"
// @Success      200         {object}  envelope{data=[]academicFacultyResponse}
// @Router       /academic-faculties [get]
func (h *AcademicFacultyHandler) List(c echo.Context) error {
	filter, page := query.Translate(c.QueryParams(), service.AcademicFacultyListSpec)

	res, err := h.svc.List(c.Request().Context(), filter, page)
	if err != nil {
		return err
	}
	return sendPage(c, "Academic faculties retrieved successfully", res.Meta, toAcademicFacultyResponses(res.Data))
}

// Get godoc
//
// @Summary      Get an academic faculty
// @Tags         academic-faculties
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Faculty ID"
// @Success      200  {object}  envelope{data=academicFacultyResponse}
// @Failure      404  {object}  map[string]any
// @Router       /academic-faculties/{id} [get]
func (h *AcademicFacultyHandler) Get(c echo.Context) error {
	f, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return sendResponse(c, http.StatusOK, "Academic faculty retrieved successfully", toAcademicFacultyResponse(f))
}

// Update godoc
//
// @Summary      Update an academic faculty
// @Tags         academic-faculties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                        true  "Faculty ID"
// @Param        body  body      updateAcademicFacultyRequest  true  "Fields to change"
// @Success      200   {object}  envelope{data=academicFacultyResponse}
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Router       /academic-faculties/{id} [patch]
func (h *AcademicFacultyHandler) Update(c echo.Context) error {
	var req updateAcademicFacultyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	f, err := h.svc.Update(c.Request().Context(), c.Param("id"), ports.UpdateAcademicFacultyInput{Title: req.Title})
	if err != nil {
		return err
	}
	return sendResponse(c, http.StatusOK, "Academic faculty updated successfully", toAcademicFacultyResponse(f))
}

// Delete godoc
//
// @Summary      Delete an academic faculty
// @Tags         academic-faculties
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Faculty ID"
// @Success      200  {object}  envelope{data=academicFacultyResponse}
// @Failure      404  {object}  map[string]any
// @Router       /academic-faculties/{id} [delete]
func (h *AcademicFacultyHandler) Delete(c echo.Context) error {
	f, err := h.svc.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return sendResponse(c, http.StatusOK, "Academic faculty deleted successfully", toAcademicFacultyResponse(f))
}
