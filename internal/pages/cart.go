package pages

import (
	"context"
	"strings"
)

// Cart lists the products added during the session
type Cart struct {
	header
}

// ContainsProduct reports whether a line item title matches name, ignoring case.
// An empty cart reports false once the wait budget is spent.
func (c *Cart) ContainsProduct(ctx context.Context, name string) (bool, error) {
	if err := c.check(); err != nil {
		return false, err
	}
	titles, err := c.texts(ctx, c.flow.loc.Cart.Items)
	if err != nil {
		return false, err
	}
	return containsFold(titles, name), nil
}

// ProceedToCheckout clicks the checkout control
func (c *Cart) ProceedToCheckout(ctx context.Context) (*Checkout, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	if err := c.click(ctx, c.flow.loc.Cart.Checkout); err != nil {
		return nil, err
	}
	next := &Checkout{header: header{c.flow.newPage(ScreenCheckout)}}
	c.flow.enter(next, next.token)
	return next, nil
}

func containsFold(values []string, name string) bool {
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), name) {
			return true
		}
	}
	return false
}
