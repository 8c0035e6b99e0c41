package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestLandingHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name             string
		method           string
		signedIn         bool
		expectedStatus   int
		expectedLocation string
		checkContent     []string
	}{
		{
			name:           "renders the login form",
			method:         http.MethodGet,
			expectedStatus: http.StatusOK,
			checkContent:   []string{`id="userEmail"`, `id="userPassword"`, `id="login"`},
		},
		{
			name:             "signed-in shopper goes to the dashboard",
			method:           http.MethodGet,
			signedIn:         true,
			expectedStatus:   http.StatusSeeOther,
			expectedLocation: DashboardPath,
		},
		{
			name:           "method not allowed - POST",
			method:         http.MethodPost,
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			handler, err := NewLandingHandler(templatesDir+"login.html", f.accounts)
			if err != nil {
				t.Fatalf("Failed to create handler: %v", err)
			}

			req := httptest.NewRequest(tt.method, LandingPath, nil)
			if tt.signedIn {
				f.signIn(t, req, "anshika@gmail.com")
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.expectedLocation != "" && w.Header().Get("Location") != tt.expectedLocation {
				t.Errorf("expected redirect to %s, got %s", tt.expectedLocation, w.Header().Get("Location"))
			}
			body := w.Body.String()
			for _, content := range tt.checkContent {
				if !strings.Contains(body, content) {
					t.Errorf("expected response to contain '%s'", content)
				}
			}
			if strings.Contains(body, "flyInOut") {
				t.Error("expected no error toast on the landing screen")
			}
		})
	}
}

func TestLoginHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		email          string
		password       string
		expectedStatus int
		expectCookie   bool
		expectToast    bool
	}{
		{
			name:           "valid credentials",
			email:          "anshika@gmail.com",
			password:       "Iamking@000",
			expectedStatus: http.StatusSeeOther,
			expectCookie:   true,
		},
		{
			name:           "wrong password",
			email:          "anshika@gmail.com",
			password:       "Iamkig@000",
			expectedStatus: http.StatusOK,
			expectToast:    true,
		},
		{
			name:           "unknown account",
			email:          "someone@gmail.com",
			password:       "Iamking@000",
			expectedStatus: http.StatusOK,
			expectToast:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			handler, err := NewLoginHandler(templatesDir+"login.html", f.accounts)
			if err != nil {
				t.Fatalf("Failed to create handler: %v", err)
			}

			form := url.Values{"userEmail": {tt.email}, "userPassword": {tt.password}}
			req := httptest.NewRequest(http.MethodPost, LoginPath, strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			var token string
			for _, c := range w.Result().Cookies() {
				if c.Name == SessionCookie {
					token = c.Value
				}
			}
			if tt.expectCookie {
				if email, ok := f.accounts.UserFor(token); !ok || email != tt.email {
					t.Errorf("expected a session for %s, got %q", tt.email, email)
				}
				if w.Header().Get("Location") != DashboardPath {
					t.Errorf("expected redirect to %s, got %s", DashboardPath, w.Header().Get("Location"))
				}
			} else if token != "" {
				t.Error("expected no session cookie")
			}

			body := w.Body.String()
			if tt.expectToast && !strings.Contains(body, LoginErrorMessage) {
				t.Errorf("expected response to contain '%s'", LoginErrorMessage)
			}
			if tt.expectToast && !strings.Contains(body, "flyInOut") {
				t.Error("expected the error toast")
			}
		})
	}
}

func TestLoginHandler_MethodNotAllowed(t *testing.T) {
	f := newFixture()
	handler, err := NewLoginHandler(templatesDir+"login.html", f.accounts)
	if err != nil {
		t.Fatalf("Failed to create handler: %v", err)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, LoginPath, nil))

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, w.Code)
	}
}

func TestLogoutHandler_EndsSession(t *testing.T) {
	// GIVEN a signed-in shopper
	f := newFixture()
	handler := NewLogoutHandler(f.accounts)
	req := httptest.NewRequest(http.MethodPost, LogoutPath, nil)
	f.signIn(t, req, "shetty@gmail.com")
	cookie, _ := req.Cookie(SessionCookie)

	// WHEN
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	// THEN
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != LandingPath {
		t.Errorf("expected redirect to %s, got %d %s", LandingPath, w.Code, w.Header().Get("Location"))
	}
	if _, ok := f.accounts.UserFor(cookie.Value); ok {
		t.Error("expected session to be closed")
	}
}

func TestNewLandingHandler_MissingTemplate(t *testing.T) {
	if _, err := NewLandingHandler(templatesDir+"missing.html", newFixture().accounts); err == nil {
		t.Error("expected error for missing template")
	}
}
