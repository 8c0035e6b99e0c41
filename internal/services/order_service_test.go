package services

import (
	"errors"
	"testing"

	"github.com/storefront-qa/pageflow/internal/models"
)

// MockOrderRepository is a mock implementation of OrderRepository for testing
type MockOrderRepository struct {
	CreateOrderFunc         func(*models.Order) error
	GetOrderByReferenceFunc func(string) (*models.Order, error)
	ListOrdersByEmailFunc   func(string) ([]*models.Order, error)
	UpdateOrderFunc         func(*models.Order) error
}

func (m *MockOrderRepository) CreateOrder(order *models.Order) error {
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(order)
	}
	return nil
}

func (m *MockOrderRepository) GetOrderByReference(reference string) (*models.Order, error) {
	if m.GetOrderByReferenceFunc != nil {
		return m.GetOrderByReferenceFunc(reference)
	}
	return &models.Order{Reference: reference, Status: models.OrderStatusPlaced}, nil
}

func (m *MockOrderRepository) ListOrdersByEmail(email string) ([]*models.Order, error) {
	if m.ListOrdersByEmailFunc != nil {
		return m.ListOrdersByEmailFunc(email)
	}
	return nil, nil
}

func (m *MockOrderRepository) UpdateOrder(order *models.Order) error {
	if m.UpdateOrderFunc != nil {
		return m.UpdateOrderFunc(order)
	}
	return nil
}

func TestOrderService_CreateOrder(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		country   string
		products  []string
		mockError error
		wantErr   error
	}{
		{
			name:     "successful order creation",
			email:    "anshika@gmail.com",
			country:  "India",
			products: []string{"IPHONE 13 PRO"},
		},
		{
			name:      "repository error",
			email:     "anshika@gmail.com",
			country:   "India",
			products:  []string{"IPHONE 13 PRO"},
			mockError: errors.New("database error"),
		},
		{
			name:     "invalid order",
			email:    "anshika@gmail.com",
			country:  "India",
			products: nil,
			wantErr:  models.ErrEmptyOrder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockOrderRepository{
				CreateOrderFunc: func(order *models.Order) error {
					if tt.mockError != nil {
						return tt.mockError
					}
					if order.Email != tt.email {
						t.Errorf("Expected email %s, got %s", tt.email, order.Email)
					}
					if order.Country != tt.country {
						t.Errorf("Expected country %s, got %s", tt.country, order.Country)
					}
					if order.Status != models.OrderStatusPlaced {
						t.Errorf("Expected status %s, got %s", models.OrderStatusPlaced, order.Status)
					}
					return nil
				},
			}

			service := NewOrderService(mockRepo)
			order, err := service.CreateOrder(tt.email, tt.country, tt.products)

			wantFailure := tt.mockError != nil || tt.wantErr != nil
			if (err != nil) != wantFailure {
				t.Fatalf("CreateOrder() error = %v, wantFailure %v", err, wantFailure)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected error %v, got %v", tt.wantErr, err)
			}
			if !wantFailure && order.Reference == "" {
				t.Error("Order reference should not be empty")
			}
		})
	}
}

func TestOrderService_GetOrderByReference(t *testing.T) {
	mockRepo := &MockOrderRepository{
		GetOrderByReferenceFunc: func(reference string) (*models.Order, error) {
			if reference == "ORDER-123" {
				return &models.Order{Reference: reference}, nil
			}
			return nil, ErrOrderNotFound
		},
	}
	service := NewOrderService(mockRepo)

	order, err := service.GetOrderByReference("ORDER-123")
	if err != nil || order == nil {
		t.Fatalf("GetOrderByReference() = %v, %v", order, err)
	}

	if _, err := service.GetOrderByReference("ORDER-999"); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("Expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderService_CancelOrder(t *testing.T) {
	tests := []struct {
		name      string
		status    models.OrderStatus
		updateErr error
		wantErr   bool
	}{
		{name: "placed order", status: models.OrderStatusPlaced},
		{name: "already cancelled", status: models.OrderStatusCancelled, wantErr: true},
		{name: "repository error", status: models.OrderStatusPlaced, updateErr: errors.New("database error"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var updated *models.Order
			mockRepo := &MockOrderRepository{
				GetOrderByReferenceFunc: func(reference string) (*models.Order, error) {
					return &models.Order{Reference: reference, Status: tt.status}, nil
				},
				UpdateOrderFunc: func(order *models.Order) error {
					updated = order
					return tt.updateErr
				},
			}

			err := NewOrderService(mockRepo).CancelOrder("ORDER-123")

			if (err != nil) != tt.wantErr {
				t.Fatalf("CancelOrder() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && updated.Status != models.OrderStatusCancelled {
				t.Errorf("Expected cancelled order to be stored, got %s", updated.Status)
			}
		})
	}
}

func TestMemoryOrderRepository(t *testing.T) {
	repo := NewMemoryOrderRepository()
	service := NewOrderService(repo)

	first, err := service.CreateOrder("anshika@gmail.com", "India", []string{"IPHONE 13 PRO"})
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}
	if _, err := service.CreateOrder("shetty@gmail.com", "India", []string{"ZARA COAT 3"}); err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}
	second, err := service.CreateOrder("anshika@gmail.com", "Chile", []string{"ADIDAS ORIGINAL", "ZARA COAT 3"})
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}

	orders, err := service.OrdersFor("anshika@gmail.com")
	if err != nil {
		t.Fatalf("OrdersFor() error = %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("Expected 2 orders, got %d", len(orders))
	}
	if orders[0].Reference != first.Reference || orders[1].Reference != second.Reference {
		t.Errorf("Expected orders oldest first, got %s then %s", orders[0].Reference, orders[1].Reference)
	}

	// stored orders are copies
	orders[0].Products[0] = "changed"
	again, _ := service.GetOrderByReference(first.Reference)
	if again.Products[0] != "IPHONE 13 PRO" {
		t.Errorf("Stored order was modified through a returned copy")
	}

	if err := repo.CreateOrder(first); err == nil {
		t.Error("Expected duplicate reference to be rejected")
	}
	if err := repo.UpdateOrder(&models.Order{Reference: "ORDER-NONE"}); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("Expected ErrOrderNotFound, got %v", err)
	}
}
