package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleNormalUser = "Normal User"
	RoleShopOwner  = "Shop Owner"
	RoleOrderMaker = "Order Maker"
	RolePurchaser  = "Purchaser"
)

func ValidRole(role string) bool {
	switch role {
	case RoleNormalUser, RoleShopOwner, RoleOrderMaker, RolePurchaser:
		return true
	}
	return false
}

const (
	ItemPending    = "pending"
	ItemInProgress = "in_progress"
	ItemComplete   = "complete"
)

func ValidItemType(t string) bool {
	switch t {
	case ItemPending, ItemInProgress, ItemComplete:
		return true
	}
	return false
}

type User struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username    string `gorm:"unique;not null"          json:"username"`
	Email       string `gorm:"unique;not null"          json:"email"`
	FullName    string `json:"full_name"`
	Role        string `gorm:"not null"                 json:"role"`
	IsActiveNow bool   `gorm:"default:false"            json:"is_active_now"`
}

type Profile struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null"     json:"user_id"`
	Image     string    `json:"image"`
	FullName  string    `json:"full_name"`
	Bio       string    `json:"bio"`
	About     string    `json:"about"`
	Country   string    `json:"country"`
	DateAdded time.Time `gorm:"autoCreateTime"           json:"date_added"`
}

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"index;not null"           json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2)"       json:"price"`
}

type Shop struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string    `gorm:"index;not null"           json:"name"`
	ContactNumber  string    `json:"contact_number"`
	Address        string    `json:"address"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	MapURL         string    `json:"map_url"`
	BgColor        string    `json:"bg_color"`
	TextColor      string    `json:"text_color"`
	AvailableItems []Product `gorm:"many2many:shop_available_items" json:"available_items,omitempty"`
}

type Order struct {
	ID              uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderCode       string          `gorm:"not null"                 json:"order_code"`
	OrderMakerID    uint            `gorm:"index;not null"           json:"order_maker"`
	OrderMakerMoney decimal.Decimal `gorm:"type:numeric(10,2)"       json:"order_maker_money"`
	PurchaserMoney  decimal.Decimal `gorm:"type:numeric(10,2)"       json:"purchaser_money"`
	TaxiFee         decimal.Decimal `gorm:"type:numeric(10,2)"       json:"taxi_fee"`
	IsComplete      bool            `gorm:"default:false"            json:"is_complete"`
	IsActiveNow     bool            `gorm:"index;default:false"      json:"is_active_now"`
	DateAdded       time.Time       `gorm:"autoCreateTime"           json:"date_added"`
}

// OrderCodeStamp is the human-facing order code for the given creation time.
// Two orders opened on the same day share a code.
func OrderCodeStamp(t time.Time) string {
	return t.Format("02-01-2006")
}

type OrderPurchaser struct {
	ID             uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID        uint            `gorm:"index;not null"           json:"order_id"`
	PurchaserID    uint            `gorm:"uniqueIndex;not null"     json:"purchaser_id"`
	PurchaserMoney decimal.Decimal `gorm:"type:numeric(10,2)"       json:"purchaser_money"`
	DateAdded      time.Time       `gorm:"autoCreateTime"           json:"date_added"`
}

type OrderItem struct {
	ID            uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID       uint             `gorm:"index;not null"           json:"order_id"`
	ProductID     uint             `gorm:"not null"                 json:"product_id"`
	ShopID        uint             `gorm:"index;not null"           json:"shop_id"`
	PurchaserID   uint             `gorm:"index;not null"           json:"purchaser_id"`
	PrimaryAmount string           `json:"primary_amount"`
	Type          string           `gorm:"not null;default:pending" json:"type"`
	CurrentPrice  decimal.Decimal  `gorm:"type:numeric(10,2)"       json:"current_price"`
	DateAdded     time.Time        `gorm:"autoCreateTime"           json:"date_added"`
	UnreadUsers   []OrderPurchaser `gorm:"many2many:order_item_unread_users" json:"unread_users,omitempty"`
}

type OrderItemMessage struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderItemID    uint      `gorm:"index;not null"           json:"order_item_id"`
	SendingUserID  uint      `gorm:"index;not null"           json:"sending_user"`
	Message        string    `json:"message"`
	Timestamp      time.Time `gorm:"autoCreateTime"           json:"timestamp"`
	ReceivingUsers []User    `gorm:"many2many:message_receiving_users" json:"receiving_users,omitempty"`
	SeenUsers      []User    `gorm:"many2many:message_seen_users"      json:"seen_users,omitempty"`
}

type OrderItemMessageNotification struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderItemID uint      `gorm:"index;not null"           json:"order_item_id"`
	RecipientID uint      `gorm:"index;not null"           json:"recipient"`
	Message     string    `json:"message"`
	IsSeen      bool      `gorm:"default:false"            json:"is_seen"`
	Timestamp   time.Time `gorm:"autoCreateTime"           json:"timestamp"`
}
