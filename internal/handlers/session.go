package handlers

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/storefront-qa/pageflow/internal/services"
)

// LoginErrorMessage is shown in the error toast for rejected credentials
const LoginErrorMessage = "Incorrect email or password."

// LoginHandler opens shopper sessions
type LoginHandler struct {
	template *template.Template
	accounts *services.AccountService
}

// NewLoginHandler creates a login handler; templatePath is the login screen
// re-rendered with the error toast
func NewLoginHandler(templatePath string, accounts *services.AccountService) (*LoginHandler, error) {
	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return nil, err
	}

	return &LoginHandler{
		template: tmpl,
		accounts: accounts,
	}, nil
}

// ServeHTTP handles POST /client/auth/login
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	email := r.FormValue("userEmail")
	token, err := h.accounts.Login(email, r.FormValue("userPassword"))
	if errors.Is(err, services.ErrInvalidCredentials) {
		logrus.WithField("email", email).Info("login rejected")
		render(w, h.template, http.StatusOK, LandingData{Email: email, Error: LoginErrorMessage})
		return
	}
	if err != nil {
		logrus.WithError(err).Error("login failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	logrus.WithField("email", email).Info("shopper signed in")
	http.Redirect(w, r, DashboardPath, http.StatusSeeOther)
}

// LogoutHandler ends the shopper's session
type LogoutHandler struct {
	accounts *services.AccountService
}

// NewLogoutHandler creates a new logout handler
func NewLogoutHandler(accounts *services.AccountService) *LogoutHandler {
	return &LogoutHandler{accounts: accounts}
}

// ServeHTTP handles POST /client/auth/logout
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if cookie, err := r.Cookie(SessionCookie); err == nil {
		h.accounts.Logout(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "", Path: "/", MaxAge: -1})
	http.Redirect(w, r, LandingPath, http.StatusSeeOther)
}

// MessageResponse is the JSON body of successful API calls
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// sendJSON writes a JSON response with the given status
func sendJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Warn("failed to encode response")
	}
}

// sendErrorResponse sends a JSON error response
func sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	sendJSON(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
