package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/directorylabs/user-directory/internal/api/response"
	"github.com/directorylabs/user-directory/internal/core/domain"
	"github.com/directorylabs/user-directory/internal/core/ports"
)

// UserHandler handles HTTP requests for user and role operations.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Create handles POST /users.
//
// @Summary      Create a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  response.Success
// @Failure      400   {object}  response.Error
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.service.Create(c.Request().Context(), ports.CreateUserInput{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return response.OK(c, http.StatusCreated, view, "User created successfully", domain.CodeUserCreated)
}

// FindOne handles GET /users/:idOrName. The credential is included only when
// the caller passes psw=true.
//
// @Summary      Fetch a user by id or name
// @Tags         users
// @Produce      json
// @Param        idOrName  path      string  true   "User id or unique name"
// @Param        psw       query     string  false  "Include the credential when \"true\""
// @Success      200       {object}  response.Success
// @Failure      404       {object}  response.Error
// @Router       /users/{idOrName} [get]
func (h *UserHandler) FindOne(c echo.Context) error {
	idOrName := c.Param("idOrName")
	includePassword := c.QueryParam("psw") == "true"

	view, err := h.service.FindOne(c.Request().Context(), idOrName, includePassword)
	if err != nil {
		return err
	}

	return response.OK(c, http.StatusOK, view, "User fetched successfully", domain.CodeUserFetched)
}

// FindAll handles GET /users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        search  query     string  false  "Case-insensitive substring match on name"
// @Param        page    query     int     false  "1-based page number (default 1)"
// @Param        limit   query     int     false  "Page size (default 10)"
// @Success      200     {object}  response.Success
// @Failure      400     {object}  response.Error
// @Router       /users [get]
func (h *UserHandler) FindAll(c echo.Context) error {
	q := listUsersQuery{Page: 1, Limit: 10}
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	result, err := h.service.FindAll(c.Request().Context(), ports.ListUsersInput{
		Search:   q.Search,
		Page:     q.Page,
		PageSize: q.Limit,
	})
	if err != nil {
		return err
	}

	return response.OK(c, http.StatusOK, result, "Users list fetched successfully", domain.CodeUserListFetched)
}

// Delete handles DELETE /users/:idOrName.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Param        idOrName  path      string  true  "User id or unique name"
// @Success      200       {object}  response.Success
// @Failure      404       {object}  response.Error
// @Router       /users/{idOrName} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("idOrName")); err != nil {
		return err
	}

	return response.OK(c, http.StatusOK, nil, "User deleted successfully", domain.CodeUserDeleted)
}

// HasRoles handles GET /users/:idOrName/roles?roles=A,B.
//
// @Summary      Check role membership
// @Tags         roles
// @Produce      json
// @Param        idOrName  path      string  true  "User id or unique name"
// @Param        roles     query     string  true  "Comma-separated role labels"
// @Success      200       {object}  response.Success
// @Failure      404       {object}  response.Error
// @Router       /users/{idOrName}/roles [get]
func (h *UserHandler) HasRoles(c echo.Context) error {
	roles := splitRoles(c.QueryParam("roles"))

	result, err := h.service.HasRoles(c.Request().Context(), c.Param("idOrName"), roles)
	if err != nil {
		return err
	}

	return response.OK(c, http.StatusOK, result, "Roles checked successfully", domain.CodeRolesUpdated)
}

// AddRoles handles PUT /users/:idOrName/roles/add.
//
// @Summary      Grant roles to a user
// @Tags         roles
// @Accept       json
// @Produce      json
// @Param        idOrName  path      string        true  "User id or unique name"
// @Param        body      body      rolesRequest  true  "Role labels to add"
// @Success      200       {object}  response.Success
// @Failure      400       {object}  response.Error
// @Failure      404       {object}  response.Error
// @Router       /users/{idOrName}/roles/add [put]
func (h *UserHandler) AddRoles(c echo.Context) error {
	var req rolesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.service.AddRoles(c.Request().Context(), c.Param("idOrName"), req.Roles)
	if err != nil {
		return err
	}

	return response.OK(c, http.StatusOK, view, "Roles updated successfully", domain.CodeRolesUpdated)
}

// RemoveRoles handles PUT /users/:idOrName/roles/remove.
//
// @Summary      Revoke roles from a user
// @Tags         roles
// @Accept       json
// @Produce      json
// @Param        idOrName  path      string        true  "User id or unique name"
// @Param        body      body      rolesRequest  true  "Role labels to remove"
// @Success      200       {object}  response.Success
// @Failure      400       {object}  response.Error
// @Failure      404       {object}  response.Error
// @Router       /users/{idOrName}/roles/remove [put]
func (h *UserHandler) RemoveRoles(c echo.Context) error {
	var req rolesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.service.RemoveRoles(c.Request().Context(), c.Param("idOrName"), req.Roles)
	if err != nil {
		return err
	}

	return response.OK(c, http.StatusOK, view, "Roles updated successfully", domain.CodeRolesUpdated)
}

// splitRoles parses the comma-separated roles query parameter, dropping empty
// segments.
func splitRoles(raw string) []string {
	var roles []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			roles = append(roles, part)
		}
	}
	return roles
}
