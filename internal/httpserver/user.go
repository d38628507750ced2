package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lattzaw/group_order/internal/logging"
	"github.com/lattzaw/group_order/internal/service"
	"github.com/lattzaw/group_order/internal/transport"
)

type UserHandler struct {
	Svc *service.UserService
}

func (h *UserHandler) CreateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.create")

	var req transport.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_user_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.CreateUser(ctx, req.Username, req.Email, req.FullName, req.Role)
	if err != nil {
		l.Warn("create_user_error", "error", err)
		return httpError(err)
	}

	l.Info("create_user_success", "user_id", user.ID)
	return c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) ListActiveUsers(c echo.Context) error {
	users, err := h.Svc.ListActiveUsers(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) UpdateRole(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.update_role")

	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req transport.UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_role_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.UpdateRole(ctx, id, req.Role)
	if err != nil {
		l.Warn("update_role_error", "user_id", id, "error", err)
		return httpError(err)
	}

	l.Info("update_role_success", "user_id", user.ID, "role", user.Role)
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdatePresence(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req transport.UpdatePresenceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.SetPresence(ctx, id, req.IsActiveNow)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	profile, err := h.Svc.GetProfile(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, profile)
}
