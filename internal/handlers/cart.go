package handlers

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/storefront-qa/pageflow/internal/services"
)

// AddedToCartMessage is the toast shown after a product is added
const AddedToCartMessage = "Product Added To Cart"

// CartData is passed to the cart template
type CartData struct {
	Shell Shell
	Items []string
}

// CartHandler renders the shopper's cart
type CartHandler struct {
	template *template.Template
	accounts *services.AccountService
	carts    *services.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(templatePath string, accounts *services.AccountService, carts *services.CartService) (*CartHandler, error) {
	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return nil, err
	}

	return &CartHandler{
		template: tmpl,
		accounts: accounts,
		carts:    carts,
	}, nil
}

// ServeHTTP handles GET /client/dashboard/cart
func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	email, ok := requireShopper(h.accounts, w, r)
	if !ok {
		return
	}

	render(w, h.template, http.StatusOK, CartData{
		Shell: shell(h.carts, email),
		Items: h.carts.Items(email),
	})
}

// AddToCartRequest is the body of POST /client/api/cart
type AddToCartRequest struct {
	Product string `json:"product"`
}

// CartAPIHandler adds products to the cart for the catalogue's script
type CartAPIHandler struct {
	accounts *services.AccountService
	carts    *services.CartService
}

// NewCartAPIHandler creates a new cart API handler
func NewCartAPIHandler(accounts *services.AccountService, carts *services.CartService) *CartAPIHandler {
	return &CartAPIHandler{
		accounts: accounts,
		carts:    carts,
	}
}

// ServeHTTP handles POST /client/api/cart
func (h *CartAPIHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendErrorResponse(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	email, ok := shopper(h.accounts, r)
	if !ok {
		sendErrorResponse(w, "Please sign in", http.StatusUnauthorized)
		return
	}

	var req AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.carts.Add(email, req.Product); err != nil {
		if errors.Is(err, services.ErrUnknownProduct) {
			sendErrorResponse(w, "Product not found", http.StatusNotFound)
			return
		}
		logrus.WithError(err).Error("failed to add product to cart")
		sendErrorResponse(w, "Failed to add product", http.StatusInternalServerError)
		return
	}

	logrus.WithFields(logrus.Fields{"email": email, "product": req.Product}).Debug("product added to cart")
	sendJSON(w, http.StatusCreated, MessageResponse{Message: AddedToCartMessage})
}
