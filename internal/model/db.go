package model

import "time"

type User struct {
	ID        string    `gorm:"primaryKey;size:64;not null" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:255;uniqueIndex" json:"email"`
	Role      string    `gorm:"size:32;index;not null;default:user" json:"role"` // user, admin
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Category struct {
	ID       string  `gorm:"primaryKey;size:64;not null" json:"id"`
	Name     string  `gorm:"size:50;not null" json:"name"`
	Slug     string  `gorm:"size:64;uniqueIndex;not null" json:"slug"`
	ParentID *string `gorm:"size:64;index" json:"parentId,omitempty"`

	Subcategories []*Category `gorm:"-" json:"subcategories,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Product struct {
	ID          string  `gorm:"primaryKey;size:64;not null" json:"id"`
	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:1000" json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	Image       string  `gorm:"size:255;default:/uploads/example.jpeg" json:"image"`
	CategoryID  string  `gorm:"size:64;index" json:"categoryId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Cart is the per-user mutable pre-checkout state. TotalPrice is a cached
// derived value, recomputed from live catalog prices on every mutation.
type Cart struct {
	ID         string     `gorm:"primaryKey;size:64;not null" json:"id"`
	UserID     string     `gorm:"size:64;uniqueIndex;not null" json:"userId"`
	Items      []CartItem `gorm:"foreignKey:CartID" json:"items"`
	TotalPrice float64    `json:"totalPrice"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CartItem struct {
	ID     uint   `gorm:"primaryKey" json:"-"`
	CartID string `gorm:"size:64;uniqueIndex:idx_cart_product;not null" json:"-"`
	// one line per product within a cart
	ProductID string `gorm:"size:64;uniqueIndex:idx_cart_product;not null" json:"productId"`
	Quantity  int    `gorm:"not null" json:"quantity"`

	Product *Product `gorm:"-" json:"product,omitempty"`
}

// Order is an immutable snapshot taken at checkout. Only Status moves after
// creation.
type Order struct {
	ID              string      `gorm:"primaryKey;size:64;not null" json:"id"`
	UserID          string      `gorm:"size:64;index;not null" json:"userId"`
	Items           []OrderItem `gorm:"foreignKey:OrderID" json:"orderItems"`
	Subtotal        float64     `gorm:"not null" json:"subtotal"`
	Tax             float64     `gorm:"not null" json:"tax"`
	ShippingFee     float64     `gorm:"not null" json:"shippingFee"`
	Total           float64     `gorm:"not null" json:"total"`
	PaymentIntentID string      `gorm:"size:128;index" json:"paymentIntentId"`
	Status          string      `gorm:"size:32;index;not null" json:"status"` // pending, paid, succeeded, failed, confirmed

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	OrderID   string  `gorm:"size:64;index;not null" json:"-"`
	ProductID string  `gorm:"size:64;index;not null" json:"productId"`
	Name      string  `gorm:"size:100;not null" json:"name"`
	Image     string  `gorm:"size:255" json:"image"`
	UnitPrice float64 `gorm:"not null" json:"unitPrice"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Amount    float64 `gorm:"not null" json:"amount"`
}

// Payment is the local audit record mirroring a gateway charge. The unique
// intent id index is the duplication guard for the confirmation/webhook race.
type Payment struct {
	ID              string  `gorm:"primaryKey;size:64;not null" json:"id"`
	UserID          string  `gorm:"size:64;index;not null" json:"userId"`
	OrderID         string  `gorm:"size:64;index;not null" json:"orderId"`
	PaymentIntentID string  `gorm:"size:128;uniqueIndex;not null" json:"paymentIntentId"`
	Amount          float64 `gorm:"not null" json:"amount"`
	Currency        string  `gorm:"size:8;not null;default:usd" json:"currency"`
	Status          string  `gorm:"size:32;index;not null" json:"status"` // mirrors gateway status

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Address struct {
	Street  string `gorm:"size:255" json:"street"`
	City    string `gorm:"size:100" json:"city"`
	State   string `gorm:"size:100" json:"state"`
	ZipCode string `gorm:"size:20" json:"zipCode"`
	Country string `gorm:"size:100" json:"country"`
}

type Shipping struct {
	ID             string  `gorm:"primaryKey;size:64;not null" json:"id"`
	UserID         string  `gorm:"size:64;index;not null" json:"userId"`
	OrderID        string  `gorm:"size:64;index;not null" json:"orderId"`
	Address        Address `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	TrackingNumber string  `gorm:"size:64" json:"trackingNumber"`
	Carrier        string  `gorm:"size:64;default:UPS" json:"carrier"`
	Status         string  `gorm:"size:32;index;not null" json:"status"` // pending, shipped, delivered, cancelled

	EstimatedDeliveryDate time.Time `json:"estimatedDeliveryDate"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

type WishList struct {
	ID     string         `gorm:"primaryKey;size:64;not null" json:"id"`
	UserID string         `gorm:"size:64;uniqueIndex;not null" json:"userId"`
	Items  []WishListItem `gorm:"foreignKey:WishListID" json:"items"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type WishListItem struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	WishListID string    `gorm:"size:64;uniqueIndex:idx_wishlist_product;not null" json:"-"`
	ProductID  string    `gorm:"size:64;uniqueIndex:idx_wishlist_product;not null" json:"productId"`
	AddedAt    time.Time `json:"addedAt"`

	Product *Product `gorm:"-" json:"product,omitempty"`
}

// CardConfig is one homepage card. Auto-generated cards carry source=auto and
// are replaced wholesale by the refresher.
type CardConfig struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	Type        string   `gorm:"size:32;not null" json:"type"` // singleImage, grid, threeImage
	Source      string   `gorm:"size:16;index;not null;default:auto" json:"source"`
	Title       string   `gorm:"size:100" json:"title"`
	LinkText    string   `gorm:"size:100" json:"linkText"`
	ProductID   string   `gorm:"size:64" json:"productId,omitempty"`
	CategoryIDs []string `gorm:"serializer:json" json:"categoryIds,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CardConfigSettings is a single-row settings document. LastUpdatedAt doubles
// as the compare-and-swap marker that makes refresher runs re-entrant.
type CardConfigSettings struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UseAuto       bool       `gorm:"not null;default:false" json:"useAuto"`
	LastUpdatedAt *time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string     `gorm:"size:16" json:"lastUpdatedBy"` // auto or admin
}
