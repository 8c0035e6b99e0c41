package cli

import (
	"fmt"
	"path/filepath"

	"github.com/storefront-qa/pageflow/internal/config"
	"github.com/storefront-qa/pageflow/internal/handlers"
	"github.com/storefront-qa/pageflow/internal/models"
	"github.com/storefront-qa/pageflow/internal/services"
)

// BuildStorefront wires the seeded in-memory storefront behind its handlers.
// templatesDir holds layout.html and one template per screen.
func BuildStorefront(serverConfig config.ServerConfig, templatesDir string) (ServerDependencies, error) {
	deps := ServerDependencies{ServerConfig: serverConfig}

	accounts := services.NewAccountService(services.DefaultAccounts())
	carts := services.NewCartService(models.DefaultProducts(), services.DefaultCountries())
	orders := services.NewOrderService(services.NewMemoryOrderRepository())
	checkout := services.NewCheckoutService(carts, orders)

	tmpl := func(name string) string { return filepath.Join(templatesDir, name) }

	var err error
	if deps.LandingHandler, err = handlers.NewLandingHandler(tmpl("login.html"), accounts); err != nil {
		return deps, fmt.Errorf("failed to create landing handler: %w", err)
	}
	if deps.LoginHandler, err = handlers.NewLoginHandler(tmpl("login.html"), accounts); err != nil {
		return deps, fmt.Errorf("failed to create login handler: %w", err)
	}
	deps.LogoutHandler = handlers.NewLogoutHandler(accounts)
	if deps.ProductHandler, err = handlers.NewProductHandler(tmpl("dashboard.html"), accounts, carts); err != nil {
		return deps, fmt.Errorf("failed to create product handler: %w", err)
	}
	if deps.CartHandler, err = handlers.NewCartHandler(tmpl("cart.html"), accounts, carts); err != nil {
		return deps, fmt.Errorf("failed to create cart handler: %w", err)
	}
	deps.CartAPIHandler = handlers.NewCartAPIHandler(accounts, carts)
	if deps.CheckoutHandler, err = handlers.NewCheckoutHandler(tmpl("order.html"), accounts, carts, checkout); err != nil {
		return deps, fmt.Errorf("failed to create checkout handler: %w", err)
	}
	deps.CountriesHandler = handlers.NewCountriesHandler(carts)
	if deps.ConfirmationHandler, err = handlers.NewConfirmationHandler(tmpl("thanks.html"), accounts, carts, orders); err != nil {
		return deps, fmt.Errorf("failed to create confirmation handler: %w", err)
	}
	if deps.OrdersHandler, err = handlers.NewOrdersHandler(tmpl("myorders.html"), accounts, carts, orders); err != nil {
		return deps, fmt.Errorf("failed to create orders handler: %w", err)
	}

	return deps, nil
}
