package pages

import (
	"context"
	"fmt"
	"strings"
)

// Confirmation is the thank-you screen after an order is placed
type Confirmation struct {
	header
}

// Message returns the confirmation banner text
func (c *Confirmation) Message(ctx context.Context) (string, error) {
	if err := c.check(); err != nil {
		return "", err
	}
	el, err := c.visible(ctx, c.flow.loc.Confirmation.Message)
	if err != nil {
		return "", err
	}
	text, err := el.Text(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}
	return strings.TrimSpace(text), nil
}
