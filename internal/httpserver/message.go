package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lattzaw/group_order/internal/logging"
	"github.com/lattzaw/group_order/internal/mykafka"
	"github.com/lattzaw/group_order/internal/service"
	"github.com/lattzaw/group_order/internal/transport"
)

type MessageHandler struct {
	Svc      *service.MessageService
	Producer *mykafka.Producer
}

func (h *MessageHandler) PostMessage(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "message.post")

	itemID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req transport.PostMessageRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("post_message_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	// The transport requires receivers; the service-level fan-out tolerates an
	// empty set for internal callers.
	if len(req.ReceivingUsers) == 0 {
		l.Warn("post_message_error", "status", 400, "reason", "receiving_user missing")
		return echo.NewHTTPError(http.StatusBadRequest, "missing field: receiving_user")
	}

	message, err := h.Svc.PostMessage(ctx, itemID, req.SendingUser, req.ReceivingUsers, req.Message)
	if err != nil {
		l.Warn("post_message_error", "item_id", itemID, "error", err)
		return httpError(err)
	}

	publish(ctx, h.Producer, "message_events", "", map[string]any{
		"type":       "order_item_message_created",
		"messageID":  message.ID,
		"itemID":     message.OrderItemID,
		"sender":     message.SendingUserID,
		"recipients": len(req.ReceivingUsers),
	})

	l.Info("post_message_success", "message_id", message.ID, "recipients", len(req.ReceivingUsers))
	return c.JSON(http.StatusCreated, message)
}

func (h *MessageHandler) ListMessages(c echo.Context) error {
	itemID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	messages, err := h.Svc.ListMessages(c.Request().Context(), itemID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, messages)
}

func (h *MessageHandler) ListNotifications(c echo.Context) error {
	itemID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	recipient := uint(parseIntDefault(c.QueryParam("recipient_id"), 0))
	unseenOnly := c.QueryParam("unseen") == "true"

	notifications, err := h.Svc.ListNotifications(c.Request().Context(), itemID, recipient, unseenOnly)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, notifications)
}

func (h *MessageHandler) MarkNotificationsSeen(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "message.mark_seen")

	itemID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req transport.MarkSeenRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("mark_seen_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	updated, err := h.Svc.MarkNotificationsSeen(ctx, itemID, req.Recipient)
	if err != nil {
		l.Warn("mark_seen_error", "item_id", itemID, "error", err)
		return httpError(err)
	}

	l.Info("mark_seen_success", "item_id", itemID, "recipient", req.Recipient, "updated", updated)
	return c.JSON(http.StatusOK, map[string]any{
		"detail":  "notifications marked as seen",
		"updated": updated,
	})
}
