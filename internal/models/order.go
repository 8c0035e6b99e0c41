package models

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents valid order states
type OrderStatus string

// Order statuses
const (
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is a storefront order: every product in the cart shipped to one country
type Order struct {
	ID        string
	Reference string
	Email     string
	Country   string
	Products  []string
	Status    OrderStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Domain errors
var (
	ErrInvalidEmail            = errors.New("email address is invalid")
	ErrInvalidCountry          = errors.New("country cannot be empty")
	ErrEmptyOrder              = errors.New("order needs at least one product")
	ErrInvalidProductName      = errors.New("product name cannot be empty")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
)

// NewOrder creates a placed order with validation
func NewOrder(email, country string, products []string) (*Order, error) {
	if err := validateOrderInput(email, country, products); err != nil {
		return nil, err
	}

	id := uuid.New()
	now := time.Now()

	return &Order{
		ID:        id.String(),
		Reference: fmt.Sprintf("ORDER-%s", strings.ToUpper(id.String()[:8])),
		Email:     email,
		Country:   country,
		Products:  append([]string(nil), products...),
		Status:    OrderStatusPlaced,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// validateOrderInput validates order creation parameters
func validateOrderInput(email, country string, products []string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(country) == "" {
		return ErrInvalidCountry
	}
	if len(products) == 0 {
		return ErrEmptyOrder
	}
	for _, p := range products {
		if strings.TrimSpace(p) == "" {
			return ErrInvalidProductName
		}
	}
	return nil
}

// Cancel marks the order as cancelled
func (o *Order) Cancel() error {
	if o.Status == OrderStatusCancelled {
		return fmt.Errorf("%w: order is already cancelled", ErrInvalidStatusTransition)
	}

	o.Status = OrderStatusCancelled
	o.UpdatedAt = time.Now()
	return nil
}

// IsPlaced returns true if the order is placed
func (o *Order) IsPlaced() bool {
	return o.Status == OrderStatusPlaced
}
