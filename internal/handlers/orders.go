package handlers

import (
	"html/template"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/storefront-qa/pageflow/internal/services"
)

// OrderRow is one product of one order in the history table
type OrderRow struct {
	Reference string
	Country   string
	Product   string
	Status    string
}

// OrdersData is passed to the order history template
type OrdersData struct {
	Shell Shell
	Rows  []OrderRow
}

// OrdersHandler renders the order history
type OrdersHandler struct {
	template *template.Template
	accounts *services.AccountService
	carts    *services.CartService
	orders   services.OrderService
}

// NewOrdersHandler creates a new order history handler
func NewOrdersHandler(templatePath string, accounts *services.AccountService, carts *services.CartService, orders services.OrderService) (*OrdersHandler, error) {
	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return nil, err
	}

	return &OrdersHandler{
		template: tmpl,
		accounts: accounts,
		carts:    carts,
		orders:   orders,
	}, nil
}

// ServeHTTP handles GET /client/dashboard/myorders, newest order first
func (h *OrdersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	email, ok := requireShopper(h.accounts, w, r)
	if !ok {
		return
	}

	orders, err := h.orders.OrdersFor(email)
	if err != nil {
		logrus.WithError(err).Error("failed to list orders")
		http.Error(w, "Failed to load orders", http.StatusInternalServerError)
		return
	}

	var rows []OrderRow
	for i := len(orders) - 1; i >= 0; i-- {
		o := orders[i]
		for _, p := range o.Products {
			rows = append(rows, OrderRow{
				Reference: o.Reference,
				Country:   o.Country,
				Product:   p,
				Status:    string(o.Status),
			})
		}
	}

	render(w, h.template, http.StatusOK, OrdersData{
		Shell: shell(h.carts, email),
		Rows:  rows,
	})
}
