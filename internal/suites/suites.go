// Package suites expresses the storefront and retail journeys as scenarios
package suites

import (
	"context"
	"fmt"
	"strings"

	"github.com/storefront-qa/pageflow/internal/dataset"
	"github.com/storefront-qa/pageflow/internal/scenario"
)

// Expected texts and fixed inputs of the journeys
const (
	ConfirmationMessage = "THANKYOU FOR THE ORDER."
	LoginErrorMessage   = "Incorrect email or password."
	CountryQuery        = "Ind"

	HistoryEmail    = "anshika@gmail.com"
	HistoryPassword = "Iamking@000"
	HistoryProduct  = "IPHONE 13 PRO"

	// ErrorProduct is added to the cart; ErrorLookalike must then not match it
	ErrorProduct   = "ZARA COAT 3"
	ErrorLookalike = "ZARA COAT 33"
)

// DefaultRetailEntries are the header entries checked on the retail site
var DefaultRetailEntries = []string{
	"Tecnologia",
	"Electro",
	"Hardware",
	"Perifericos",
	"boton de perfil",
	"boton de configuracion",
}

// Config points the journeys at their sites and data
type Config struct {
	BaseURL       string
	RetailURL     string
	Purchases     []dataset.Purchase
	RetailEntries []string
}

// Storefront returns the storefront journeys in dependency order: purchases
// first, so the order history has something to show
func Storefront(cfg Config) []scenario.Scenario {
	var out []scenario.Scenario
	for _, p := range cfg.Purchases {
		out = append(out, scenario.Scenario{
			Name: fmt.Sprintf("submit order %s %s", p.Email, p.Product),
			Run:  Purchase(cfg.BaseURL, p),
		})
	}
	return append(out,
		scenario.Scenario{Name: "login error validation", Run: LoginError(cfg.BaseURL)},
		scenario.Scenario{Name: "product error validation", Run: ProductError(cfg.BaseURL)},
		scenario.Scenario{Name: "order history", Run: OrderHistory(cfg.BaseURL)},
	)
}

// Retail returns one header check per configured entry
func Retail(cfg Config) []scenario.Scenario {
	entries := cfg.RetailEntries
	if len(entries) == 0 {
		entries = DefaultRetailEntries
	}
	out := make([]scenario.Scenario, 0, len(entries))
	for _, e := range entries {
		out = append(out, scenario.Scenario{
			Name: "retail header " + e,
			Run:  RetailHeader(cfg.RetailURL, e),
		})
	}
	return out
}

// All returns the storefront journeys followed by the retail checks
func All(cfg Config) []scenario.Scenario {
	return append(Storefront(cfg), Retail(cfg)...)
}

// Purchase logs in, buys the record's product and checks the confirmation
func Purchase(baseURL string, p dataset.Purchase) scenario.Func {
	return func(ctx context.Context, sc *scenario.Context) error {
		landing, err := sc.Flow.OpenLanding(ctx, baseURL)
		if err != nil {
			return err
		}
		catalogue, err := landing.Login(ctx, p.Email, p.Password)
		if err != nil {
			return err
		}
		if err := catalogue.AddToCart(ctx, p.Product); err != nil {
			return err
		}
		cart, err := catalogue.GoToCart(ctx)
		if err != nil {
			return err
		}
		ok, err := cart.ContainsProduct(ctx, p.Product)
		if err != nil {
			return err
		}
		if !ok {
			return scenario.Failf("cart does not list %q", p.Product)
		}
		checkout, err := cart.ProceedToCheckout(ctx)
		if err != nil {
			return err
		}
		if err := checkout.SelectCountry(ctx, CountryQuery); err != nil {
			return err
		}
		confirmation, err := checkout.SubmitOrder(ctx)
		if err != nil {
			return err
		}
		msg, err := confirmation.Message(ctx)
		if err != nil {
			return err
		}
		if !strings.EqualFold(msg, ConfirmationMessage) {
			return scenario.Failf("confirmation is %q, want %q", msg, ConfirmationMessage)
		}
		sc.Log.WithField("product", p.Product).Info("order confirmed")
		return nil
	}
}

// LoginError submits a wrong password and checks the error toast
func LoginError(baseURL string) scenario.Func {
	return func(ctx context.Context, sc *scenario.Context) error {
		landing, err := sc.Flow.OpenLanding(ctx, baseURL)
		if err != nil {
			return err
		}
		if _, err := landing.Login(ctx, HistoryEmail, "Iamkig@000"); err != nil {
			return err
		}
		msg, err := landing.ErrorMessage(ctx)
		if err != nil {
			return err
		}
		if msg != LoginErrorMessage {
			return scenario.Failf("login error is %q, want %q", msg, LoginErrorMessage)
		}
		return nil
	}
}

// ProductError adds a product and checks that a lookalike name is not reported in the cart
func ProductError(baseURL string) scenario.Func {
	return func(ctx context.Context, sc *scenario.Context) error {
		landing, err := sc.Flow.OpenLanding(ctx, baseURL)
		if err != nil {
			return err
		}
		catalogue, err := landing.Login(ctx, HistoryEmail, HistoryPassword)
		if err != nil {
			return err
		}
		if err := catalogue.AddToCart(ctx, ErrorProduct); err != nil {
			return err
		}
		cart, err := catalogue.GoToCart(ctx)
		if err != nil {
			return err
		}
		ok, err := cart.ContainsProduct(ctx, ErrorLookalike)
		if err != nil {
			return err
		}
		if ok {
			return scenario.Failf("cart matched %q after adding %q", ErrorLookalike, ErrorProduct)
		}
		return nil
	}
}

// OrderHistory checks that an earlier purchase shows in the orders table
func OrderHistory(baseURL string) scenario.Func {
	return func(ctx context.Context, sc *scenario.Context) error {
		landing, err := sc.Flow.OpenLanding(ctx, baseURL)
		if err != nil {
			return err
		}
		catalogue, err := landing.Login(ctx, HistoryEmail, HistoryPassword)
		if err != nil {
			return err
		}
		orders, err := catalogue.GoToOrders(ctx)
		if err != nil {
			return err
		}
		ok, err := orders.ContainsOrder(ctx, HistoryProduct)
		if err != nil {
			return err
		}
		if !ok {
			return scenario.Failf("order history does not list %q", HistoryProduct)
		}
		return nil
	}
}

// RetailHeader opens the retail site and checks one header entry is displayed
func RetailHeader(retailURL, entry string) scenario.Func {
	return func(ctx context.Context, sc *scenario.Context) error {
		header, err := sc.Flow.OpenRetailHeader(ctx, retailURL)
		if err != nil {
			return err
		}
		url, err := sc.Session().URL(ctx)
		if err != nil {
			return err
		}
		if url != retailURL {
			return scenario.Failf("landed on %q, want %q", url, retailURL)
		}
		ok, err := header.HasEntry(ctx, entry)
		if err != nil {
			return err
		}
		if !ok {
			return scenario.Failf("header entry %q is not displayed", entry)
		}
		return nil
	}
}
