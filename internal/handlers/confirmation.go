package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/storefront-qa/pageflow/internal/models"
	"github.com/storefront-qa/pageflow/internal/services"
)

// ConfirmationHandler handles the order confirmation page
type ConfirmationHandler struct {
	template *template.Template
	accounts *services.AccountService
	carts    *services.CartService
	orders   services.OrderService
}

// NewConfirmationHandler creates a new confirmation handler
func NewConfirmationHandler(templatePath string, accounts *services.AccountService, carts *services.CartService, orders services.OrderService) (*ConfirmationHandler, error) {
	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	return &ConfirmationHandler{
		template: tmpl,
		accounts: accounts,
		carts:    carts,
		orders:   orders,
	}, nil
}

// ConfirmationData represents the data for the confirmation template
type ConfirmationData struct {
	Shell Shell
	Order *models.Order
}

// ServeHTTP handles GET /client/dashboard/thanks?ref=
func (h *ConfirmationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	email, ok := requireShopper(h.accounts, w, r)
	if !ok {
		return
	}

	reference := r.URL.Query().Get("ref")
	if reference == "" {
		http.Error(w, "Missing order reference", http.StatusBadRequest)
		return
	}

	order, err := h.orders.GetOrderByReference(reference)
	if errors.Is(err, services.ErrOrderNotFound) || (err == nil && order.Email != email) {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logrus.WithError(err).Error("failed to load order")
		http.Error(w, "Failed to load order", http.StatusInternalServerError)
		return
	}

	render(w, h.template, http.StatusOK, ConfirmationData{
		Shell: shell(h.carts, email),
		Order: order,
	})
}
