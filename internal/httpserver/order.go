package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lattzaw/group_order/internal/logging"
	"github.com/lattzaw/group_order/internal/mykafka"
	"github.com/lattzaw/group_order/internal/service"
	"github.com/lattzaw/group_order/internal/transport"
)

type OrderHandler struct {
	Svc      *service.OrderService
	Producer *mykafka.Producer
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.CreateOrder(ctx, req.OrderMaker, req.OrderMakerMoney, req.IsActiveNow)
	if err != nil {
		l.Warn("create_order_error", "error", err)
		return httpError(err)
	}

	publish(ctx, h.Producer, "order_events", order.OrderCode, map[string]any{
		"type":        "order_created",
		"orderID":     order.ID,
		"order_code":  order.OrderCode,
		"order_maker": order.OrderMakerID,
	})

	l.Info("create_order_success", "order_id", order.ID)
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	orders, err := h.Svc.ListOrders(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) ListActiveOrders(c echo.Context) error {
	orders, err := h.Svc.ListActiveOrders(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) ActivateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.activate")

	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.Svc.ActivateOrder(ctx, id)
	if err != nil {
		l.Warn("activate_order_error", "order_id", id, "error", err)
		return httpError(err)
	}

	publish(ctx, h.Producer, "order_events", order.OrderCode, map[string]any{
		"type":    "order_activated",
		"orderID": order.ID,
	})

	l.Info("activate_order_success", "order_id", order.ID)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) AddPurchaser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.add_purchaser")

	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req transport.AddPurchaserRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_purchaser_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	purchaser, err := h.Svc.AddPurchaser(ctx, id, req.Purchaser, req.PurchaserMoney)
	if err != nil {
		l.Warn("add_purchaser_error", "order_id", id, "error", err)
		return httpError(err)
	}

	l.Info("add_purchaser_success", "order_id", id, "purchaser_id", purchaser.PurchaserID)
	return c.JSON(http.StatusCreated, purchaser)
}
