package pages

import (
	"context"
	"fmt"
	"strings"
)

// Landing is the login screen
type Landing struct {
	*page
}

// Login fills both credential fields and submits the form. The returned
// Catalogue becomes active on its first use; until then this Landing stays
// valid so a rejected login can be inspected with ErrorMessage.
func (l *Landing) Login(ctx context.Context, email, password string) (*Catalogue, error) {
	if err := l.check(); err != nil {
		return nil, err
	}
	loc := l.flow.loc.Landing

	emailField, err := l.visible(ctx, loc.Email)
	if err != nil {
		return nil, err
	}
	if err := emailField.Type(ctx, email); err != nil {
		return nil, fmt.Errorf("failed to type email: %w", err)
	}

	passField, err := l.visible(ctx, loc.Password)
	if err != nil {
		return nil, err
	}
	if err := passField.Type(ctx, password); err != nil {
		return nil, fmt.Errorf("failed to type password: %w", err)
	}

	if err := l.click(ctx, loc.Submit); err != nil {
		return nil, err
	}

	c := &Catalogue{header: header{l.flow.newPage(ScreenCatalogue)}}
	l.flow.offer(c, c.token)
	return c, nil
}

// ErrorMessage waits for the login error toast and returns its text
func (l *Landing) ErrorMessage(ctx context.Context) (string, error) {
	if err := l.check(); err != nil {
		return "", err
	}
	el, err := l.visible(ctx, l.flow.loc.Landing.Error)
	if err != nil {
		return "", err
	}
	text, err := el.Text(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read login error: %w", err)
	}
	return strings.TrimSpace(text), nil
}
