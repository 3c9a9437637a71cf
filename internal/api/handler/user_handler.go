package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mediscan/platform-api/internal/core/domain"
	"github.com/mediscan/platform-api/internal/core/ports"
)

// UserHandler exposes account administration endpoints.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type updateUserRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=2"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Role      *string `json:"role" validate:"omitempty,oneof=patient doctor superadmin"`
	Phone     *string `json:"phone"`
	LicenseID *string `json:"license_id"`
}

// List returns all accounts, newest first.
//
// @Summary      List accounts
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  accountListResponse
// @Failure      403  {object}  map[string]any
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accountListResponse{Success: true, Users: users})
}

// Get returns a single account. Superadmins may fetch anyone; everyone
// else only their own record.
//
// @Summary      Get an account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account ID"
// @Success      200  {object}  accountResponse
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	accountID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	if role != domain.RoleSuperadmin && accountID != id {
		return domain.ErrForbidden
	}

	user, err := h.userService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accountResponse{Success: true, User: user})
}

// Update mutates an account. Superadmins may edit anyone and every
// mutable field; owners may edit only their own name and phone. The
// allow-list is explicit per role; fields are never discovered by
// iterating the payload.
//
// @Summary      Update an account
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Account ID"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  accountResponse
// @Failure      400   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	accountID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	if role != domain.RoleSuperadmin && accountID != id {
		return domain.ErrForbidden
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input := ports.UpdateAccountInput{ID: id}
	if role == domain.RoleSuperadmin {
		input.Name = req.Name
		input.Email = req.Email
		input.Role = req.Role
		input.Phone = req.Phone
		input.LicenseID = req.LicenseID
	} else {
		if req.Email != nil || req.Role != nil || req.LicenseID != nil {
			return domain.ErrForbidden
		}
		input.Name = req.Name
		input.Phone = req.Phone
	}

	user, err := h.userService.Update(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accountResponse{
		Success: true,
		Message: "Account updated successfully",
		User:    user,
	})
}

// Delete removes an account permanently. There is no soft delete.
//
// @Summary      Delete an account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account ID"
// @Success      200  {object}  accountResponse
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	user, err := h.userService.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accountResponse{
		Success: true,
		Message: "Account deleted successfully",
		User:    user,
	})
}
