package pages

import "context"

// Navigator is the navigation bar shared by every authenticated screen
type Navigator interface {
	GoToCart(ctx context.Context) (*Cart, error)
	GoToOrders(ctx context.Context) (*Orders, error)
}

var (
	_ Navigator = (*Catalogue)(nil)
	_ Navigator = (*Cart)(nil)
	_ Navigator = (*Checkout)(nil)
	_ Navigator = (*Confirmation)(nil)
	_ Navigator = (*Orders)(nil)
)

// header implements Navigator for the page it is embedded in
type header struct {
	*page
}

// GoToCart clicks the cart link in the header
func (h header) GoToCart(ctx context.Context) (*Cart, error) {
	if err := h.check(); err != nil {
		return nil, err
	}
	if err := h.click(ctx, h.flow.loc.Header.Cart); err != nil {
		return nil, err
	}
	c := &Cart{header: header{h.flow.newPage(ScreenCart)}}
	h.flow.enter(c, c.token)
	return c, nil
}

// GoToOrders clicks the orders link in the header
func (h header) GoToOrders(ctx context.Context) (*Orders, error) {
	if err := h.check(); err != nil {
		return nil, err
	}
	if err := h.click(ctx, h.flow.loc.Header.Orders); err != nil {
		return nil, err
	}
	o := &Orders{header: header{h.flow.newPage(ScreenOrders)}}
	h.flow.enter(o, o.token)
	return o, nil
}
