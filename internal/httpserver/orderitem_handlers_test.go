package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/lattzaw/group_order/internal/models"
	"github.com/lattzaw/group_order/internal/repo"
	"github.com/lattzaw/group_order/internal/service"
)

type testEnv struct {
	E     *echo.Echo
	Repo  *repo.GormRepo
	Items *OrderItemHandler
	Msgs  *MessageHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Product{},
		&models.Shop{},
		&models.Order{},
		&models.OrderPurchaser{},
		&models.OrderItem{},
		&models.OrderItemMessage{},
		&models.OrderItemMessageNotification{},
	); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	r := repo.New(db)
	return &testEnv{
		E:    echo.New(),
		Repo: r,
		Items: &OrderItemHandler{
			Svc:  &service.OrderItemService{Repo: r},
			Repo: r,
		},
		Msgs: &MessageHandler{
			Svc: &service.MessageService{Repo: r},
		},
	}
}

func (env *testEnv) doJSONRequest(method, target string, body any) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func (env *testEnv) seed(t *testing.T) (order *models.Order, users map[string]*models.User) {
	t.Helper()

	users = map[string]*models.User{}
	for _, name := range []string{"maker", "alice", "bob", "carol"} {
		u := &models.User{Username: name, Email: name + "@example.com", Role: models.RolePurchaser}
		require.NoError(t, env.Repo.DB.Create(u).Error)
		users[name] = u
	}
	require.NoError(t, env.Repo.DB.Create(&models.Shop{Name: "TeaShop"}).Error)

	order = &models.Order{
		OrderCode:       "01-01-2026",
		OrderMakerID:    users["maker"].ID,
		OrderMakerMoney: decimal.NewFromInt(10000),
		IsActiveNow:     true,
	}
	require.NoError(t, env.Repo.DB.Create(order).Error)
	return order, users
}

func TestOrderItemLifecycle(t *testing.T) {
	env := newTestEnv(t)
	order, _ := env.seed(t)

	payload := map[string]any{
		"order":          order.ID,
		"product_name":   "GreenTea",
		"shop":           "TeaShop",
		"purchaser":      "alice",
		"primary_amount": "2 Khu",
		"type":           "pending",
	}

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/order-items", payload)
	require.NoError(t, env.Items.CreateOrderItem(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var item models.OrderItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	require.NotZero(t, item.ID)
	require.Equal(t, "pending", item.Type)

	// The product was created on the fly.
	var product models.Product
	require.NoError(t, env.Repo.DB.Where("name = ?", "GreenTea").First(&product).Error)

	// Straight to complete, no in_progress step required.
	rec, c = env.doJSONRequest(http.MethodPut, "/api/v1/order-items/1", map[string]any{"type": "complete"})
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.Items.EditOrderItem(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var edited models.OrderItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &edited))
	require.Equal(t, "complete", edited.Type)
	require.Equal(t, "2 Khu", edited.PrimaryAmount)

	rec, c = env.doJSONRequest(http.MethodDelete, "/api/v1/order-items/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.Items.DeleteOrderItem(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	// Deleting again is a 404, never a silent success.
	_, c = env.doJSONRequest(http.MethodDelete, "/api/v1/order-items/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	err := env.Items.DeleteOrderItem(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusNotFound, he.Code)
}

func TestCreateOrderItem_UnknownShopIs404(t *testing.T) {
	env := newTestEnv(t)
	order, _ := env.seed(t)

	payload := map[string]any{
		"order":          order.ID,
		"product_name":   "GreenTea",
		"shop":           "NoSuchShop",
		"purchaser":      "alice",
		"primary_amount": "2 Khu",
		"type":           "pending",
	}

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/order-items", payload)
	err := env.Items.CreateOrderItem(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusNotFound, he.Code)
}

func TestCreateOrderItem_MissingFieldIs400(t *testing.T) {
	env := newTestEnv(t)
	order, _ := env.seed(t)

	payload := map[string]any{
		"order":          order.ID,
		"shop":           "TeaShop",
		"purchaser":      "alice",
		"primary_amount": "2 Khu",
		"type":           "pending",
	}

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/order-items", payload)
	err := env.Items.CreateOrderItem(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusBadRequest, he.Code)
	require.Contains(t, he.Message, "product_name")
}

func TestMessageThreadAndNotifications(t *testing.T) {
	env := newTestEnv(t)
	order, users := env.seed(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/order-items", map[string]any{
		"order":          order.ID,
		"product_name":   "GreenTea",
		"shop":           "TeaShop",
		"purchaser":      "alice",
		"primary_amount": "2 Khu",
		"type":           "pending",
	})
	require.NoError(t, env.Items.CreateOrderItem(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, c = env.doJSONRequest(http.MethodPost, "/api/v1/order-items/1/messages", map[string]any{
		"sending_user":   users["alice"].ID,
		"receiving_user": []uint{users["bob"].ID, users["carol"].ID},
		"message":        "tea shop closes at 5",
	})
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.Msgs.PostMessage(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, c = env.doJSONRequest(http.MethodGet, "/api/v1/order-items/1/messages", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.Msgs.ListMessages(c))

	var messages []models.OrderItemMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &messages))
	require.Len(t, messages, 1)

	unseen := func(userID uint) []models.OrderItemMessageNotification {
		rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/order-items/1/notifications", nil)
		c.SetParamNames("id")
		c.SetParamValues("1")
		c.QueryParams().Set("recipient_id", itoa(userID))
		c.QueryParams().Set("unseen", "true")
		require.NoError(t, env.Msgs.ListNotifications(c))

		var notifications []models.OrderItemMessageNotification
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &notifications))
		return notifications
	}

	require.Len(t, unseen(users["bob"].ID), 1)
	require.Len(t, unseen(users["carol"].ID), 1)

	rec, c = env.doJSONRequest(http.MethodPost, "/api/v1/order-items/1/notifications/seen", map[string]any{
		"recipient": users["bob"].ID,
	})
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.Msgs.MarkNotificationsSeen(c))
	require.Equal(t, http.StatusOK, rec.Code)

	require.Empty(t, unseen(users["bob"].ID))
	require.Len(t, unseen(users["carol"].ID), 1)
}

func TestPostMessage_EmptyReceiversIs400(t *testing.T) {
	env := newTestEnv(t)
	order, users := env.seed(t)

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/order-items", map[string]any{
		"order":          order.ID,
		"product_name":   "GreenTea",
		"shop":           "TeaShop",
		"purchaser":      "alice",
		"primary_amount": "2 Khu",
		"type":           "pending",
	})
	require.NoError(t, env.Items.CreateOrderItem(c))

	_, c = env.doJSONRequest(http.MethodPost, "/api/v1/order-items/1/messages", map[string]any{
		"sending_user": users["alice"].ID,
		"message":      "anyone there?",
	})
	c.SetParamNames("id")
	c.SetParamValues("1")
	err := env.Msgs.PostMessage(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusBadRequest, he.Code)
}

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
