package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"
	"github.com/storefront-qa/pageflow/internal/services"
)

// ShippingErrorMessage is shown when an order is placed without a valid country
const ShippingErrorMessage = "Please Enter Full Shipping Information"

// CheckoutData represents the data passed to the checkout template
type CheckoutData struct {
	Shell Shell
	Items []string
	Error string
}

// CheckoutHandler renders the order form and places orders
type CheckoutHandler struct {
	template *template.Template
	accounts *services.AccountService
	carts    *services.CartService
	checkout services.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(templatePath string, accounts *services.AccountService, carts *services.CartService, checkout services.CheckoutService) (*CheckoutHandler, error) {
	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return nil, err
	}

	return &CheckoutHandler{
		template: tmpl,
		accounts: accounts,
		carts:    carts,
		checkout: checkout,
	}, nil
}

// ServeHTTP renders the form on GET and places the order on POST
func (h *CheckoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	email, ok := requireShopper(h.accounts, w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.renderForm(w, email, http.StatusOK, "")
	case http.MethodPost:
		h.placeOrder(w, r, email)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *CheckoutHandler) placeOrder(w http.ResponseWriter, r *http.Request, email string) {
	order, err := h.checkout.PlaceOrder(email, r.FormValue("country"))
	switch {
	case errors.Is(err, services.ErrUnknownCountry):
		h.renderForm(w, email, http.StatusBadRequest, ShippingErrorMessage)
		return
	case errors.Is(err, services.ErrEmptyCart):
		http.Redirect(w, r, CartPath, http.StatusSeeOther)
		return
	case err != nil:
		logrus.WithError(err).Error("failed to place order")
		http.Error(w, "Failed to place order", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, ThanksPath+"?ref="+url.QueryEscape(order.Reference), http.StatusSeeOther)
}

func (h *CheckoutHandler) renderForm(w http.ResponseWriter, email string, status int, message string) {
	render(w, h.template, status, CheckoutData{
		Shell: shell(h.carts, email),
		Items: h.carts.Items(email),
		Error: message,
	})
}

// CountriesHandler answers the country typeahead
type CountriesHandler struct {
	carts *services.CartService
}

// NewCountriesHandler creates a new countries handler
func NewCountriesHandler(carts *services.CartService) *CountriesHandler {
	return &CountriesHandler{carts: carts}
}

// ServeHTTP handles GET /client/api/countries?q=
func (h *CountriesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		sendErrorResponse(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	countries := h.carts.Countries(r.URL.Query().Get("q"))
	if countries == nil {
		countries = []string{}
	}
	sendJSON(w, http.StatusOK, countries)
}
