package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type Deps struct {
	DB               *gorm.DB
	OrderHandler     *OrderHandler
	OrderItemHandler *OrderItemHandler
	MessageHandler   *MessageHandler
	CatalogHandler   *CatalogHandler
	UserHandler      *UserHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	v1.GET("/search", d.CatalogHandler.Search)

	products := v1.Group("/products")
	products.GET("", d.CatalogHandler.ListProducts)
	products.GET("/:id", d.CatalogHandler.GetProduct)

	shops := v1.Group("/shops")
	shops.GET("", d.CatalogHandler.ListShops)
	shops.GET("/:id", d.CatalogHandler.GetShop)

	orders := v1.Group("/orders")
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.GET("", d.OrderHandler.ListOrders)
	orders.GET("/active", d.OrderHandler.ListActiveOrders)
	orders.POST("/:id/activate", d.OrderHandler.ActivateOrder)
	orders.POST("/:id/purchasers", d.OrderHandler.AddPurchaser)

	items := v1.Group("/order-items")
	items.POST("", d.OrderItemHandler.CreateOrderItem)
	items.GET("", d.OrderItemHandler.ListOrderItems)
	items.GET("/state/:type", d.OrderItemHandler.ListByState)
	items.GET("/shop/:shop", d.OrderItemHandler.ListBySameShop)
	items.GET("/:id", d.OrderItemHandler.GetOrderItem)
	items.PUT("/:id", d.OrderItemHandler.EditOrderItem)
	items.DELETE("/:id", d.OrderItemHandler.DeleteOrderItem)

	items.POST("/:id/messages", d.MessageHandler.PostMessage)
	items.GET("/:id/messages", d.MessageHandler.ListMessages)
	items.GET("/:id/notifications", d.MessageHandler.ListNotifications)
	items.POST("/:id/notifications/seen", d.MessageHandler.MarkNotificationsSeen)

	users := v1.Group("/users")
	users.POST("", d.UserHandler.CreateUser)
	users.GET("/active", d.UserHandler.ListActiveUsers)
	users.PATCH("/:id/role", d.UserHandler.UpdateRole)
	users.PATCH("/:id/presence", d.UserHandler.UpdatePresence)
	users.GET("/:id/profile", d.UserHandler.GetProfile)
}
