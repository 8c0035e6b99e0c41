package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/storefront-qa/pageflow/internal/session"
)

// Product is one card of the catalogue
type Product struct {
	Name  string
	Index int

	card session.Element
}

// Catalogue is the product dashboard shown after login
type Catalogue struct {
	header
}

// Products waits for the product cards to render and returns them in page order
func (c *Catalogue) Products(ctx context.Context) ([]Product, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	loc := c.flow.loc.Catalogue
	if err := c.flow.waiter.Appear(ctx, c.flow.sess, loc.Products); err != nil {
		return nil, err
	}
	cards, err := c.find(ctx, loc.Products)
	if err != nil {
		return nil, err
	}

	products := make([]Product, 0, len(cards))
	for i, card := range cards {
		title, ok, err := session.First(ctx, card, loc.Title)
		if err != nil {
			return nil, fmt.Errorf("failed to locate title of product %d: %w", i, err)
		}
		var name string
		if ok {
			if name, err = title.Text(ctx); err != nil {
				return nil, fmt.Errorf("failed to read title of product %d: %w", i, err)
			}
		}
		products = append(products, Product{Name: strings.TrimSpace(name), Index: i, card: card})
	}
	return products, nil
}

// FindProduct returns the first product whose title equals name exactly.
// A miss is reported through the boolean, not as an error.
func (c *Catalogue) FindProduct(ctx context.Context, name string) (Product, bool, error) {
	products, err := c.Products(ctx)
	if err != nil {
		return Product{}, false, err
	}
	for _, p := range products {
		if p.Name == name {
			return p, true, nil
		}
	}
	return Product{}, false, nil
}

// AddToCart clicks the add control of the named product, waits for the
// confirmation toast and then for the animation overlay to clear. A zero
// Overlay locator skips the overlay wait and its settle delay.
func (c *Catalogue) AddToCart(ctx context.Context, name string) error {
	p, ok, err := c.FindProduct(ctx, name)
	if err != nil {
		return err
	}
	if !ok {
		return &NotFoundError{Entity: "product", Name: name}
	}

	loc := c.flow.loc.Catalogue
	button, ok, err := session.First(ctx, p.card, loc.AddButton)
	if err != nil {
		return fmt.Errorf("failed to locate add control of %q: %w", name, err)
	}
	if !ok {
		return &NotFoundError{Entity: "add-to-cart control", Name: name}
	}
	if err := button.Click(ctx); err != nil {
		return fmt.Errorf("failed to add %q to cart: %w", name, err)
	}

	if err := c.flow.waiter.Appear(ctx, c.flow.sess, loc.Toast); err != nil {
		return fmt.Errorf("no confirmation after adding %q: %w", name, err)
	}
	if !loc.Overlay.IsZero() {
		if err := c.flow.waiter.Disappear(ctx, c.flow.sess, loc.Overlay); err != nil {
			return fmt.Errorf("catalogue did not settle after adding %q: %w", name, err)
		}
	}

	c.flow.logger.WithFields(logrus.Fields{"product": name}).Debug("product added to cart")
	return nil
}
