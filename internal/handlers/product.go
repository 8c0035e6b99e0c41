package handlers

import (
	"html/template"
	"net/http"

	"github.com/storefront-qa/pageflow/internal/models"
	"github.com/storefront-qa/pageflow/internal/services"
)

// DashboardData is passed to the catalogue template
type DashboardData struct {
	Shell    Shell
	Products []models.Product
}

// ProductHandler renders the product catalogue
type ProductHandler struct {
	template *template.Template
	accounts *services.AccountService
	carts    *services.CartService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(templatePath string, accounts *services.AccountService, carts *services.CartService) (*ProductHandler, error) {
	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return nil, err
	}

	return &ProductHandler{
		template: tmpl,
		accounts: accounts,
		carts:    carts,
	}, nil
}

// ServeHTTP handles GET /client/dashboard/dash
func (h *ProductHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	email, ok := requireShopper(h.accounts, w, r)
	if !ok {
		return
	}

	render(w, h.template, http.StatusOK, DashboardData{
		Shell:    shell(h.carts, email),
		Products: h.carts.Catalogue(),
	})
}
