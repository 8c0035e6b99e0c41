package services

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/storefront-qa/pageflow/internal/models"
)

// Checkout errors
var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrUnknownCountry = errors.New("country is not offered")
)

// CheckoutService turns a shopper's cart into an order
type CheckoutService interface {
	PlaceOrder(email, country string) (*models.Order, error)
}

// CheckoutServiceImpl implements CheckoutService
type CheckoutServiceImpl struct {
	carts        *CartService
	orderService OrderService
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(carts *CartService, orderService OrderService) CheckoutService {
	return &CheckoutServiceImpl{
		carts:        carts,
		orderService: orderService,
	}
}

// PlaceOrder orders every product in the cart and empties it.
// The cart is left untouched when the order is rejected.
func (s *CheckoutServiceImpl) PlaceOrder(email, country string) (*models.Order, error) {
	items := s.carts.Items(email)
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	if !s.carts.IsCountry(country) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCountry, country)
	}

	order, err := s.orderService.CreateOrder(email, country, items)
	if err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	s.carts.Clear(email)

	logrus.WithFields(logrus.Fields{
		"reference": order.Reference,
		"email":     email,
		"products":  len(items),
	}).Info("order placed")
	return order, nil
}
