package httpserver

import (
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/lattzaw/group_order/internal/logging"
	"github.com/lattzaw/group_order/internal/mykafka"
	"github.com/lattzaw/group_order/internal/repo"
	"github.com/lattzaw/group_order/internal/service"
	"github.com/lattzaw/group_order/internal/service/search"
	"github.com/lattzaw/group_order/internal/transport"
)

type OrderItemHandler struct {
	Svc      *service.OrderItemService
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
	Index    string
}

func (h *OrderItemHandler) CreateOrderItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orderitem.create")

	var req transport.CreateOrderItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_item_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.CreateOrderItem(ctx, req)
	if err != nil {
		l.Warn("create_item_error", "error", err)
		return httpError(err)
	}

	h.indexProduct(c, item.ProductID)

	publish(ctx, h.Producer, "order_item_events", req.Shop, map[string]any{
		"type":      "order_item_created",
		"itemID":    item.ID,
		"orderID":   item.OrderID,
		"productID": item.ProductID,
		"shopID":    item.ShopID,
	})

	l.Info("create_item_success", "item_id", item.ID)
	return c.JSON(http.StatusCreated, item)
}

// indexProduct keeps the search index in step with lookup-or-create product
// writes. Failures are logged and swallowed.
func (h *OrderItemHandler) indexProduct(c echo.Context, productID uint) {
	if h.ES == nil {
		return
	}
	ctx := c.Request().Context()
	product, err := h.Repo.GetProduct(ctx, productID)
	if err != nil {
		logging.FromContext(ctx).Warn("index product lookup failed", "product_id", productID, "error", err)
		return
	}
	if err := search.IndexProduct(ctx, h.ES, h.Index, product); err != nil {
		logging.FromContext(ctx).Warn("index product failed", "product_id", productID, "error", err)
	}
}

func (h *OrderItemHandler) GetOrderItem(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	item, err := h.Svc.GetOrderItem(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *OrderItemHandler) EditOrderItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orderitem.edit")

	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req transport.EditOrderItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("edit_item_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.EditOrderItem(ctx, id, req)
	if err != nil {
		l.Warn("edit_item_error", "item_id", id, "error", err)
		return httpError(err)
	}

	publish(ctx, h.Producer, "order_item_events", item.Type, map[string]any{
		"type":   "order_item_updated",
		"itemID": item.ID,
		"state":  item.Type,
	})

	l.Info("edit_item_success", "item_id", item.ID)
	return c.JSON(http.StatusOK, item)
}

func (h *OrderItemHandler) DeleteOrderItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orderitem.delete")

	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteOrderItem(ctx, id); err != nil {
		l.Warn("delete_item_error", "item_id", id, "error", err)
		return httpError(err)
	}

	publish(ctx, h.Producer, "order_item_events", "", map[string]any{
		"type":   "order_item_deleted",
		"itemID": id,
	})

	l.Info("delete_item_success", "item_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *OrderItemHandler) ListOrderItems(c echo.Context) error {
	items, err := h.Svc.ListOrderItems(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *OrderItemHandler) ListByState(c echo.Context) error {
	items, err := h.Svc.ListByState(c.Request().Context(), c.Param("type"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *OrderItemHandler) ListBySameShop(c echo.Context) error {
	items, err := h.Svc.ListBySameShop(c.Request().Context(), c.Param("shop"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}
