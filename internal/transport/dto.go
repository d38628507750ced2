package transport

import "github.com/shopspring/decimal"

type CreateOrderRequest struct {
	OrderMaker      uint            `json:"order_maker"`
	OrderMakerMoney decimal.Decimal `json:"order_maker_money"`
	IsActiveNow     bool            `json:"is_active_now"`
}

type AddPurchaserRequest struct {
	Purchaser      uint            `json:"purchaser"`
	PurchaserMoney decimal.Decimal `json:"purchaser_money"`
}

type CreateOrderItemRequest struct {
	Order         uint   `json:"order"`
	ProductName   string `json:"product_name"`
	Shop          string `json:"shop"`
	Purchaser     string `json:"purchaser"`
	PrimaryAmount string `json:"primary_amount"`
	Type          string `json:"type"`
}

type EditOrderItemRequest struct {
	Order         *uint            `json:"order"`
	Product       *uint            `json:"product"`
	Shop          *uint            `json:"shop"`
	Purchaser     *uint            `json:"purchaser"`
	PrimaryAmount *string          `json:"primary_amount"`
	Type          *string          `json:"type"`
	CurrentPrice  *decimal.Decimal `json:"current_price"`
}

type PostMessageRequest struct {
	SendingUser    uint   `json:"sending_user"`
	ReceivingUsers []uint `json:"receiving_user"`
	Message        string `json:"message"`
}

type MarkSeenRequest struct {
	Recipient uint `json:"recipient"`
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

type UpdatePresenceRequest struct {
	IsActiveNow bool `json:"is_active_now"`
}
