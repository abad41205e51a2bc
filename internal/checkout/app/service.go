package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	cartdomain "github.com/CristalT/elico-storefront/internal/cart/domain"
	"github.com/CristalT/elico-storefront/internal/checkout/domain"
	orderdomain "github.com/CristalT/elico-storefront/internal/order/domain"
	"golang.org/x/sync/errgroup"
)

var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrInvalidDeliveryInfo = errors.New("invalid delivery info")
)

type CartReader interface {
	Items(ctx context.Context) ([]cartdomain.LineItem, error)
	Clear(ctx context.Context) error
}

type CatalogReader interface {
	GetProduct(ctx context.Context, productID string) (Product, error)
}

type Product struct {
	ID    string
	Name  string
	Price float64
}

type OrderPlacer interface {
	Create(ctx context.Context, req orderdomain.CreateRequest) (orderdomain.Order, error)
}

type FinishRequest struct {
	DeliveryInfo orderdomain.DeliveryInfo `json:"deliveryInfo"`
	Newsletter   bool                     `json:"newsletter"`
}

type Service struct {
	Cart    CartReader
	Catalog CatalogReader
	Orders  OrderPlacer

	log           *slog.Logger
	maxConcurrent int
}

func NewService(cart CartReader, catalog CatalogReader, orders OrderPlacer, log *slog.Logger, maxConcurrent int) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		Cart:          cart,
		Catalog:       catalog,
		Orders:        orders,
		log:           log,
		maxConcurrent: maxConcurrent,
	}
}

// Finish submits the order and, once the backend confirms it, empties the
// cart. A failed cart clear does not undo the order; it is logged and the
// next cart read repairs the drift.
func (s *Service) Finish(ctx context.Context, req FinishRequest) (orderdomain.Order, error) {
	if err := validateDeliveryInfo(req.DeliveryInfo); err != nil {
		return orderdomain.Order{}, err
	}

	items, err := s.Cart.Items(ctx)
	if err != nil {
		return orderdomain.Order{}, err
	}
	if len(items) == 0 {
		return orderdomain.Order{}, ErrEmptyCart
	}

	orderItems := make([]orderdomain.OrderItem, 0, len(items))
	for _, it := range items {
		orderItems = append(orderItems, orderdomain.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Product:   it.Product,
		})
	}

	order, err := s.Orders.Create(ctx, orderdomain.CreateRequest{
		DeliveryInfo: req.DeliveryInfo,
		Newsletter:   req.Newsletter,
		Items:        orderItems,
	})
	if err != nil {
		return orderdomain.Order{}, fmt.Errorf("create order: %w", err)
	}

	if err := s.Cart.Clear(ctx); err != nil {
		s.log.Warn("clear cart after order failed", slog.String("order", order.ID), slog.Any("err", err))
	}
	return order, nil
}

// Quote prices the current cart at live catalog prices, fetching product
// data concurrently.
func (s *Service) Quote(ctx context.Context) (domain.Quote, error) {
	items, err := s.Cart.Items(ctx)
	if err != nil {
		return domain.Quote{}, err
	}

	if len(items) == 0 {
		return domain.Quote{}, ErrEmptyCart
	}

	lines := make([]domain.QuoteLine, len(items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range items {
		idx := idx
		g.Go(func() error {
			it := items[idx]
			if it.Quantity <= 0 {
				return fmt.Errorf("quantity must be greater than zero: %d", it.Quantity)
			}

			product, err := s.Catalog.GetProduct(ctx, it.ProductID)
			if err != nil {
				return fmt.Errorf("failed to get product %s: %w", it.ProductID, err)
			}

			lines[idx] = domain.QuoteLine{
				ProductID: product.ID,
				Name:      product.Name,
				Quantity:  it.Quantity,
				UnitPrice: product.Price,
				LineTotal: product.Price * float64(it.Quantity),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.Quote{}, err
	}

	var total float64
	for _, line := range lines {
		total += line.LineTotal
	}

	return domain.Quote{
		Lines: lines,
		Total: total,
	}, nil
}

func validateDeliveryInfo(d orderdomain.DeliveryInfo) error {
	required := map[string]string{
		"email":      d.Email,
		"firstName":  d.FirstName,
		"lastName":   d.LastName,
		"address":    d.Address,
		"postalCode": d.PostalCode,
		"city":       d.City,
		"phone":      d.Phone,
	}
	for field, v := range required {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%w: missing %s", ErrInvalidDeliveryInfo, field)
		}
	}
	return nil
}
