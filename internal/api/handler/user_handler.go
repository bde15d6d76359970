package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/univadmin/records-system/internal/core/domain"
	"github.com/univadmin/records-system/internal/core/ports"
	"github.com/univadmin/records-system/internal/core/query"
	"github.com/univadmin/records-system/internal/core/service"
)

// HeaderIdempotencyKey lets clients retry POST /users without creating a second account.
const HeaderIdempotencyKey = "Idempotency-Key"

// UserHandler handles HTTP requests for user accounts.
type UserHandler struct {
	svc ports.UserService
}

func NewUserHandler(svc ports.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Create godoc
//
// @Summary      Create a user
// @Description  Allocates the next identifier for the role. When password is
// @Description  omitted the default password is applied and the user must change it.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string             false  "Retry key"
// @Param        body             body      createUserRequest  true   "User payload"
// @Success      201              {object}  envelope{data=userResponse}
// @Failure      400              {object}  map[string]any
// @Failure      409              {object}  map[string]any
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	u, err := h.svc.Create(c.Request().Context(), ports.CreateUserInput{
		Role:           domain.Role(req.Role),
		Password:       req.Password,
		Profile:        toProfileLinks(req.Profile),
		IdempotencyKey: c.Request().Header.Get(HeaderIdempotencyKey),
	})
	if err != nil {
		return err
	}
	return sendResponse(c, http.StatusCreated, "User created successfully", toUserResponse(u))
}

// List godoc
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        searchTerm           query     string  false  "Partial, case-insensitive match on id"
// @Param        id                   query     string  false  "Exact id"
// @Param        role                 query     string  false  "student, faculty or admin"
// @Param        needsPasswordChange  query     bool    false  "Forced-change flag"
// @Param        page                 query     int     false  "Page number (default 1)"
// @Param        limit                query     int     false  "Page size (default 10, max 100)"
// @Param        sortBy               query     string  false  "id, role, createdAt or updatedAt"
// @Param        sortOrder            query     string  false  "asc or desc"
// @Success      200                  {object}  envelope{data=[]userResponse}
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	filter, page := query.Translate(c.QueryParams(), service.UserListSpec)

	res, err := h.svc.List(c.Request().Context(), filter, page)
	if err != nil {
		return err
	}
	return sendPage(c, "Users retrieved successfully", res.Meta, toUserResponses(res.Data))
}

// Get godoc
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID, e.g. S-00001"
// @Success      200  {object}  envelope{data=userResponse}
// @Failure      404  {object}  map[string]any
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	u, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return sendResponse(c, http.StatusOK, "User retrieved successfully", toUserResponse(u))
}

// Update godoc
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User ID"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  envelope{data=userResponse}
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input := ports.UpdateUserInput{NeedsPasswordChange: req.NeedsPasswordChange}
	if req.Profile != nil {
		p := toProfileLinks(*req.Profile)
		input.Profile = &p
	}

	u, err := h.svc.Update(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return err
	}
	return sendResponse(c, http.StatusOK, "User updated successfully", toUserResponse(u))
}

// Delete godoc
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  envelope{data=userResponse}
// @Failure      404  {object}  map[string]any
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	u, err := h.svc.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return sendResponse(c, http.StatusOK, "User deleted successfully", toUserResponse(u))
}
