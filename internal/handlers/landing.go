package handlers

import (
	"html/template"
	"net/http"

	"github.com/storefront-qa/pageflow/internal/services"
)

// LandingData is passed to the login template
type LandingData struct {
	Email string
	Error string
}

// LandingHandler renders the login screen
type LandingHandler struct {
	template *template.Template
	accounts *services.AccountService
}

// NewLandingHandler creates a new LandingHandler
func NewLandingHandler(templatePath string, accounts *services.AccountService) (*LandingHandler, error) {
	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return nil, err
	}

	return &LandingHandler{
		template: tmpl,
		accounts: accounts,
	}, nil
}

// ServeHTTP handles GET /client. Signed-in shoppers go straight to the dashboard.
func (h *LandingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if _, ok := shopper(h.accounts, r); ok {
		http.Redirect(w, r, DashboardPath, http.StatusSeeOther)
		return
	}

	render(w, h.template, http.StatusOK, LandingData{})
}
