package handlers

import (
	"bytes"
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/storefront-qa/pageflow/internal/services"
)

// Storefront routes
const (
	LandingPath      = "/client"
	LoginPath        = "/client/auth/login"
	LogoutPath       = "/client/auth/logout"
	DashboardPath    = "/client/dashboard/dash"
	CartPath         = "/client/dashboard/cart"
	OrderPath        = "/client/dashboard/order"
	ThanksPath       = "/client/dashboard/thanks"
	OrdersPath       = "/client/dashboard/myorders"
	CartAPIPath      = "/client/api/cart"
	CountriesAPIPath = "/client/api/countries"
)

// SessionCookie carries the shopper's session token
const SessionCookie = "pageflow_session"

// Shell is the data every signed-in page passes to the navigation header
type Shell struct {
	Email     string
	CartCount int
}

// parseTemplate parses a page together with layout.html from the same directory
func parseTemplate(templatePath string) (*template.Template, error) {
	layout := filepath.Join(filepath.Dir(templatePath), "layout.html")
	return template.ParseFiles(templatePath, layout)
}

// shopper returns the signed-in email, if any
func shopper(accounts *services.AccountService, r *http.Request) (string, bool) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return "", false
	}
	return accounts.UserFor(cookie.Value)
}

// requireShopper redirects anonymous visitors to the login screen
func requireShopper(accounts *services.AccountService, w http.ResponseWriter, r *http.Request) (string, bool) {
	email, ok := shopper(accounts, r)
	if !ok {
		http.Redirect(w, r, LandingPath, http.StatusSeeOther)
		return "", false
	}
	return email, true
}

func shell(carts *services.CartService, email string) Shell {
	return Shell{Email: email, CartCount: len(carts.Items(email))}
}

func render(w http.ResponseWriter, tmpl *template.Template, status int, data any) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		logrus.WithError(err).WithField("template", tmpl.Name()).Error("failed to render page")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
