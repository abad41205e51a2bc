package domain

import (
	"time"

	catalog "github.com/CristalT/elico-storefront/internal/catalog/domain"
)

type Status string

const (
	StatusInCart     Status = "in_cart"
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusDelivered  Status = "delivered"
)

type Order struct {
	ID                string       `json:"id"`
	OrderNumber       string       `json:"orderNumber"`
	Status            Status       `json:"status"`
	Total             float64      `json:"total"`
	Items             []OrderItem  `json:"cartItems"`
	DeliveryInfo      DeliveryInfo `json:"deliveryInfo"`
	TrackingNumber    string       `json:"trackingNumber,omitempty"`
	EstimatedDelivery string       `json:"estimatedDelivery,omitempty"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
}

type OrderItem struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     float64         `json:"price"`
	Product   catalog.Product `json:"product"`
}

type DeliveryInfo struct {
	Email      string `json:"email"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Address    string `json:"address"`
	Address2   string `json:"address2,omitempty"`
	PostalCode string `json:"postalCode"`
	City       string `json:"city"`
	Province   string `json:"province"`
	Phone      string `json:"phone"`
}

// CreateRequest is the order-creation payload the commerce backend accepts.
// Items carry the cart lines at their snapshot prices; the backend owns
// final pricing and stock checks.
type CreateRequest struct {
	DeliveryInfo DeliveryInfo `json:"deliveryInfo"`
	Newsletter   bool         `json:"newsletter"`
	Items        []OrderItem  `json:"items"`
}
