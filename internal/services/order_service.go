package services

import (
	"errors"
	"fmt"
	"sync"

	"github.com/storefront-qa/pageflow/internal/models"
)

// ErrOrderNotFound is returned when no order has the requested reference
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	CreateOrder(order *models.Order) error
	GetOrderByReference(reference string) (*models.Order, error)
	ListOrdersByEmail(email string) ([]*models.Order, error)
	UpdateOrder(order *models.Order) error
}

// OrderService handles order business logic
type OrderService interface {
	CreateOrder(email, country string, products []string) (*models.Order, error)
	GetOrderByReference(reference string) (*models.Order, error)
	OrdersFor(email string) ([]*models.Order, error)
	CancelOrder(reference string) error
}

// OrderServiceImpl implements OrderService
type OrderServiceImpl struct {
	orderRepo OrderRepository
}

// NewOrderService creates a new order service
func NewOrderService(orderRepo OrderRepository) OrderService {
	return &OrderServiceImpl{
		orderRepo: orderRepo,
	}
}

// CreateOrder validates and stores a placed order
func (s *OrderServiceImpl) CreateOrder(email, country string, products []string) (*models.Order, error) {
	order, err := models.NewOrder(email, country, products)
	if err != nil {
		return nil, fmt.Errorf("invalid order: %w", err)
	}

	if err := s.orderRepo.CreateOrder(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return order, nil
}

// GetOrderByReference retrieves an order by its reference
func (s *OrderServiceImpl) GetOrderByReference(reference string) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByReference(reference)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

// OrdersFor returns the orders of an account, oldest first
func (s *OrderServiceImpl) OrdersFor(email string) ([]*models.Order, error) {
	orders, err := s.orderRepo.ListOrdersByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// CancelOrder moves a placed order to cancelled
func (s *OrderServiceImpl) CancelOrder(reference string) error {
	order, err := s.orderRepo.GetOrderByReference(reference)
	if err != nil {
		return fmt.Errorf("failed to get order: %w", err)
	}

	if err := order.Cancel(); err != nil {
		return err
	}

	if err := s.orderRepo.UpdateOrder(order); err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	return nil
}

// MemoryOrderRepository keeps orders in memory for the fixture storefront
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*models.Order
	refs   []string
}

// NewMemoryOrderRepository creates an empty repository
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{orders: map[string]*models.Order{}}
}

func (r *MemoryOrderRepository) CreateOrder(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.Reference]; ok {
		return fmt.Errorf("order %s already exists", order.Reference)
	}
	r.orders[order.Reference] = copyOrder(order)
	r.refs = append(r.refs, order.Reference)
	return nil
}

func (r *MemoryOrderRepository) GetOrderByReference(reference string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[reference]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return copyOrder(order), nil
}

func (r *MemoryOrderRepository) ListOrdersByEmail(email string) ([]*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*models.Order
	for _, ref := range r.refs {
		if o := r.orders[ref]; o.Email == email {
			out = append(out, copyOrder(o))
		}
	}
	return out, nil
}

func (r *MemoryOrderRepository) UpdateOrder(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.Reference]; !ok {
		return ErrOrderNotFound
	}
	r.orders[order.Reference] = copyOrder(order)
	return nil
}

func copyOrder(o *models.Order) *models.Order {
	c := *o
	c.Products = append([]string(nil), o.Products...)
	return &c
}
