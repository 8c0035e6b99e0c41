// Package pagestest scripts the storefront document on top of sessiontest so
// page objects, scenarios and suites can be exercised without a browser.
package pagestest

import (
	"context"
	"strings"
	"sync"

	"github.com/storefront-qa/pageflow/internal/pages"
	"github.com/storefront-qa/pageflow/internal/session"
	"github.com/storefront-qa/pageflow/internal/session/sessiontest"
)

// Messages rendered by the scripted storefront
const (
	LoginError   = "Incorrect email or password."
	Confirmation = "Thankyou for the order."
	AddedToast   = "Product Added To Cart"
)

// Storefront reacts to clicks and typing the way the demo storefront does.
// Accounts, carts and orders are shared by every session it opens, like a
// server would share them between browser tabs.
type Storefront struct {
	// Session is the first tab, opened by New
	Session  *sessiontest.Session
	Locators pages.Locators

	mu        sync.Mutex
	accounts  map[string]string
	products  []string
	countries []string
	carts     map[string][]string
	orders    map[string][]string
	country   string
	retailURL string
	retail    []string
	tabs      []*sessiontest.Session
}

var _ session.Factory = (*Storefront)(nil)

// New renders the login screen on every navigation except to the retail
// site. The catalogue, the accounts and the country list are the demo
// storefront's seed data.
func New() *Storefront {
	sf := &Storefront{
		Locators: pages.DefaultLocators(),
		accounts: map[string]string{
			"shetty@gmail.com":  "Iamking@000",
			"anshika@gmail.com": "Iamking@000",
		},
		products:  []string{"ZARA COAT 3", "ADIDAS ORIGINAL", "IPHONE 13 PRO"},
		countries: []string{"British Indian Ocean Territory", "India"},
		carts:     map[string][]string{},
		orders:    map[string][]string{},
	}
	sf.Session = sf.open()
	return sf
}

// NewSession opens another tab on the same storefront
func (sf *Storefront) NewSession(ctx context.Context) (session.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return sf.open(), nil
}

// Tabs returns every session opened so far, the first one included
func (sf *Storefront) Tabs() []*sessiontest.Session {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	return append([]*sessiontest.Session(nil), sf.tabs...)
}

func (sf *Storefront) open() *sessiontest.Session {
	t := &tab{sf: sf, s: sessiontest.New()}
	t.s.OnNavigate = t.navigate
	sf.mu.Lock()
	sf.tabs = append(sf.tabs, t.s)
	sf.mu.Unlock()
	return t.s
}

// ServeRetail renders the named retail header entries when url is opened
func (sf *Storefront) ServeRetail(url string, entries ...string) {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	sf.retailURL = url
	sf.retail = entries
}

// SetCountries replaces the country list offered by the typeahead
func (sf *Storefront) SetCountries(countries ...string) {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	sf.countries = countries
}

// SetProducts replaces the catalogue
func (sf *Storefront) SetProducts(products ...string) {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	sf.products = products
}

// AddOrder seeds the order history of an account
func (sf *Storefront) AddOrder(email, product string) {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	sf.orders[email] = append(sf.orders[email], product)
}

// Orders returns the products ordered by an account
func (sf *Storefront) Orders(email string) []string {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	return append([]string(nil), sf.orders[email]...)
}

// Country returns the country picked most recently on a checkout screen
func (sf *Storefront) Country() string {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	return sf.country
}

// tab is one browser tab: its own document and signed-in user
type tab struct {
	sf      *Storefront
	s       *sessiontest.Session
	user    string
	country string
}

func (t *tab) navigate(url string) {
	sf := t.sf
	sf.mu.Lock()
	retail := url != "" && url == sf.retailURL
	entries := append([]string(nil), sf.retail...)
	sf.mu.Unlock()

	if !retail {
		t.renderLanding()
		return
	}
	t.s.Clear()
	for _, name := range entries {
		if loc, ok := sf.Locators.Retail.Entries[name]; ok {
			t.s.Put(loc, sessiontest.NewNode(name))
		}
	}
}

func (t *tab) renderLanding() {
	loc := t.sf.Locators.Landing
	email := sessiontest.NewNode("")
	password := sessiontest.NewNode("")
	submit := sessiontest.NewNode("Login")
	submit.OnClick = func() {
		t.login(t.s.ValueOf(email), t.s.ValueOf(password))
	}

	t.s.Clear()
	t.s.Put(loc.Email, email)
	t.s.Put(loc.Password, password)
	t.s.Put(loc.Submit, submit)
}

func (t *tab) login(email, password string) {
	t.sf.mu.Lock()
	want, ok := t.sf.accounts[email]
	t.sf.mu.Unlock()

	if !ok || want != password {
		t.s.Put(t.sf.Locators.Landing.Error, sessiontest.NewNode(LoginError))
		return
	}
	t.user = email
	t.renderCatalogue()
}

func (t *tab) header() {
	loc := t.sf.Locators.Header
	cart := sessiontest.NewNode("Cart")
	cart.OnClick = t.renderCart
	orders := sessiontest.NewNode("ORDERS")
	orders.OnClick = t.renderOrders
	t.s.Put(loc.Cart, cart)
	t.s.Put(loc.Orders, orders)
}

func (t *tab) renderCatalogue() {
	sf := t.sf
	loc := sf.Locators.Catalogue
	sf.mu.Lock()
	products := append([]string(nil), sf.products...)
	sf.mu.Unlock()

	cards := make([]*sessiontest.Node, 0, len(products))
	for _, name := range products {
		name := name
		add := sessiontest.NewNode("Add To Cart")
		add.OnClick = func() {
			sf.mu.Lock()
			sf.carts[t.user] = append(sf.carts[t.user], name)
			sf.mu.Unlock()
			t.s.Put(loc.Toast, sessiontest.NewNode(AddedToast))
		}
		card := sessiontest.NewNode(name).
			With(loc.Title, sessiontest.NewNode(name)).
			With(loc.AddButton, add)
		cards = append(cards, card)
	}

	t.s.Clear()
	t.header()
	if len(cards) > 0 {
		t.s.Put(loc.Products, cards...)
	}
}

func (t *tab) renderCart() {
	sf := t.sf
	loc := sf.Locators.Cart
	sf.mu.Lock()
	items := append([]string(nil), sf.carts[t.user]...)
	sf.mu.Unlock()

	nodes := make([]*sessiontest.Node, 0, len(items))
	for _, item := range items {
		nodes = append(nodes, sessiontest.NewNode(item))
	}
	checkout := sessiontest.NewNode("Checkout")
	checkout.OnClick = t.renderCheckout

	t.s.Clear()
	t.header()
	if len(nodes) > 0 {
		t.s.Put(loc.Items, nodes...)
	}
	t.s.Put(loc.Checkout, checkout)
}

func (t *tab) renderCheckout() {
	loc := t.sf.Locators.Checkout
	country := sessiontest.NewNode("")
	country.OnType = t.suggest
	submit := sessiontest.NewNode("Place Order")
	submit.OnClick = t.placeOrder

	t.country = ""
	t.s.Clear()
	t.header()
	t.s.Put(loc.Country, country)
	t.s.Put(loc.Submit, submit)
}

func (t *tab) suggest(typed string) {
	sf := t.sf
	loc := sf.Locators.Checkout
	sf.mu.Lock()
	countries := append([]string(nil), sf.countries...)
	sf.mu.Unlock()

	var items []*sessiontest.Node
	for _, c := range countries {
		if !strings.Contains(strings.ToLower(c), strings.ToLower(typed)) {
			continue
		}
		c := c
		item := sessiontest.NewNode(c)
		item.OnClick = func() {
			t.country = c
			sf.mu.Lock()
			sf.country = c
			sf.mu.Unlock()
			t.s.Remove(loc.Suggestions)
			t.s.Remove(loc.SuggestionItems)
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return
	}
	t.s.Put(loc.Suggestions, sessiontest.NewNode(""))
	t.s.Put(loc.SuggestionItems, items...)
}

func (t *tab) placeOrder() {
	if t.country == "" {
		return
	}
	sf := t.sf
	sf.mu.Lock()
	sf.orders[t.user] = append(sf.orders[t.user], sf.carts[t.user]...)
	delete(sf.carts, t.user)
	sf.mu.Unlock()

	t.s.Clear()
	t.header()
	t.s.Put(sf.Locators.Confirmation.Message, sessiontest.NewNode(strings.ToUpper(Confirmation)))
}

func (t *tab) renderOrders() {
	sf := t.sf
	sf.mu.Lock()
	orders := append([]string(nil), sf.orders[t.user]...)
	sf.mu.Unlock()

	nodes := make([]*sessiontest.Node, 0, len(orders))
	for _, o := range orders {
		nodes = append(nodes, sessiontest.NewNode(o))
	}

	t.s.Clear()
	t.header()
	if len(nodes) > 0 {
		t.s.Put(sf.Locators.Orders.ProductNames, nodes...)
	}
}
