package pages

import "github.com/storefront-qa/pageflow/internal/locator"

// Locators is the DOM contract of the storefront, one group per screen.
// It is configuration: swap it to point the page objects at a different build.
type Locators struct {
	Landing      LandingLocators
	Header       HeaderLocators
	Catalogue    CatalogueLocators
	Cart         CartLocators
	Checkout     CheckoutLocators
	Confirmation ConfirmationLocators
	Orders       OrdersLocators
	Retail       RetailLocators
}

// LandingLocators locate the login form
type LandingLocators struct {
	Email    locator.Locator
	Password locator.Locator
	Submit   locator.Locator
	Error    locator.Locator
}

// HeaderLocators locate the authenticated navigation links
type HeaderLocators struct {
	Cart   locator.Locator
	Orders locator.Locator
}

// CatalogueLocators locate product cards. Title and AddButton are scoped to a card.
type CatalogueLocators struct {
	Products  locator.Locator
	Title     locator.Locator
	AddButton locator.Locator
	Toast     locator.Locator
	Overlay   locator.Locator
}

// CartLocators locate cart line items
type CartLocators struct {
	Items    locator.Locator
	Checkout locator.Locator
}

// CheckoutLocators locate the country typeahead and submit control
type CheckoutLocators struct {
	Country         locator.Locator
	Suggestions     locator.Locator
	SuggestionItems locator.Locator
	Submit          locator.Locator
}

// ConfirmationLocators locate the thank-you banner
type ConfirmationLocators struct {
	Message locator.Locator
}

// OrdersLocators locate the product column of the order history table
type OrdersLocators struct {
	ProductNames locator.Locator
}

// RetailLocators map header entry names of the retail site to locators
type RetailLocators struct {
	Entries map[string]locator.Locator
}

// DefaultLocators returns the selectors of the demo storefront and retail site
func DefaultLocators() Locators {
	return Locators{
		Landing: LandingLocators{
			Email:    locator.ID("userEmail"),
			Password: locator.ID("userPassword"),
			Submit:   locator.ID("login"),
			Error:    locator.AttrContains("class", "flyInOut"),
		},
		Header: HeaderLocators{
			Cart:   locator.AttrContains("routerlink", "cart"),
			Orders: locator.AttrContains("routerlink", "myorders"),
		},
		Catalogue: CatalogueLocators{
			Products:  locator.CSS(".mb-3"),
			Title:     locator.CSS("b"),
			AddButton: locator.CSS(".card-body button:last-of-type"),
			Toast:     locator.ID("toast-container"),
			Overlay:   locator.CSS(".ng-animating"),
		},
		Cart: CartLocators{
			Items:    locator.CSS(".cartSection h3"),
			Checkout: locator.CSS(".totalRow button"),
		},
		Checkout: CheckoutLocators{
			Country:         locator.Attr("placeholder", "Select Country"),
			Suggestions:     locator.CSS(".ta-results"),
			SuggestionItems: locator.XPath("//button[contains(@class,'ta-item')]"),
			Submit:          locator.CSS(".action__submit"),
		},
		Confirmation: ConfirmationLocators{
			Message: locator.CSS(".hero-primary"),
		},
		Orders: OrdersLocators{
			ProductNames: locator.CSS("tr td:nth-child(3)"),
		},
		Retail: RetailLocators{
			Entries: map[string]locator.Locator{
				"Tecnologia":             locator.ButtonText("Tecnología"),
				"Hardware":               locator.ButtonText("Hardware"),
				"Electro":                locator.ButtonText("Electro"),
				"Perifericos":            locator.ButtonText("Periféricos"),
				"boton de perfil":        locator.CSS(".MuiButton-textSecondary"),
				"boton de configuracion": locator.XPath("(//button[contains(@class, 'MuiButtonBase-root') and contains(@class, 'MuiIconButton-root')])[2]"),
			},
		},
	}
}
