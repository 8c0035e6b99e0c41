package handlers

import (
	"net/http"
	"testing"

	"github.com/storefront-qa/pageflow/internal/models"
	"github.com/storefront-qa/pageflow/internal/services"
)

const templatesDir = "../../templates/"

// fixture wires the in-memory services behind every handler
type fixture struct {
	accounts *services.AccountService
	carts    *services.CartService
	orders   services.OrderService
	checkout services.CheckoutService
}

func newFixture() *fixture {
	carts := services.NewCartService(models.DefaultProducts(), services.DefaultCountries())
	orders := services.NewOrderService(services.NewMemoryOrderRepository())
	return &fixture{
		accounts: services.NewAccountService(services.DefaultAccounts()),
		carts:    carts,
		orders:   orders,
		checkout: services.NewCheckoutService(carts, orders),
	}
}

// signIn attaches a session cookie for email to req
func (f *fixture) signIn(t *testing.T, req *http.Request, email string) {
	t.Helper()
	token, err := f.accounts.Login(email, services.DefaultAccounts()[email])
	if err != nil {
		t.Fatalf("Failed to sign in %s: %v", email, err)
	}
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
}
