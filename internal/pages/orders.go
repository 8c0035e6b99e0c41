package pages

import "context"

// Orders is the order history table
type Orders struct {
	header
}

// ContainsOrder reports whether an order row names the product, ignoring case
func (o *Orders) ContainsOrder(ctx context.Context, name string) (bool, error) {
	if err := o.check(); err != nil {
		return false, err
	}
	names, err := o.texts(ctx, o.flow.loc.Orders.ProductNames)
	if err != nil {
		return false, err
	}
	return containsFold(names, name), nil
}
