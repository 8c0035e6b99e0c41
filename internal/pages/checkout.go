package pages

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Checkout is the shipping details screen
type Checkout struct {
	header
}

// SelectCountry types a partial country name and clicks the suggestion at
// Options.SuggestionIndex. The pick is positional, not a name match.
func (c *Checkout) SelectCountry(ctx context.Context, partial string) error {
	if err := c.check(); err != nil {
		return err
	}
	loc := c.flow.loc.Checkout

	field, err := c.visible(ctx, loc.Country)
	if err != nil {
		return err
	}
	if err := field.Type(ctx, partial); err != nil {
		return fmt.Errorf("failed to type country %q: %w", partial, err)
	}

	if err := c.flow.waiter.Appear(ctx, c.flow.sess, loc.Suggestions); err != nil {
		return fmt.Errorf("no country suggestions for %q: %w", partial, err)
	}
	items, err := c.find(ctx, loc.SuggestionItems)
	if err != nil {
		return err
	}

	idx := c.flow.opts.SuggestionIndex
	if idx >= len(items) {
		return &NotFoundError{
			Entity: "country suggestion",
			Name:   fmt.Sprintf("%s[%d] of %d", partial, idx, len(items)),
		}
	}

	choice := items[idx]
	if text, err := choice.Text(ctx); err == nil {
		c.flow.logger.WithFields(logrus.Fields{
			"typed":  partial,
			"index":  idx,
			"choice": text,
		}).Debug("selecting country suggestion")
	}
	if err := choice.Click(ctx); err != nil {
		return fmt.Errorf("failed to select country suggestion %d: %w", idx, err)
	}
	return nil
}

// SubmitOrder places the order
func (c *Checkout) SubmitOrder(ctx context.Context) (*Confirmation, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	if err := c.click(ctx, c.flow.loc.Checkout.Submit); err != nil {
		return nil, err
	}
	next := &Confirmation{header: header{c.flow.newPage(ScreenConfirmation)}}
	c.flow.enter(next, next.token)
	return next, nil
}
