package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestProductHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		signedIn       bool
		expectedStatus int
		checkContent   []string
	}{
		{
			name:           "renders every product card",
			method:         http.MethodGet,
			signedIn:       true,
			expectedStatus: http.StatusOK,
			checkContent: []string{
				"<b>ZARA COAT 3</b>",
				"<b>ADIDAS ORIGINAL</b>",
				"<b>IPHONE 13 PRO</b>",
				`class="mb-3"`,
				"Add To Cart",
				`routerlink="/dashboard/cart"`,
				`routerlink="/dashboard/myorders"`,
			},
		},
		{
			name:           "anonymous visitor is sent to login",
			method:         http.MethodGet,
			expectedStatus: http.StatusSeeOther,
		},
		{
			name:           "method not allowed - POST",
			method:         http.MethodPost,
			signedIn:       true,
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			handler, err := NewProductHandler(templatesDir+"dashboard.html", f.accounts, f.carts)
			if err != nil {
				t.Fatalf("Failed to create handler: %v", err)
			}

			req := httptest.NewRequest(tt.method, DashboardPath, nil)
			if tt.signedIn {
				f.signIn(t, req, "anshika@gmail.com")
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			body := w.Body.String()
			for _, content := range tt.checkContent {
				if !strings.Contains(body, content) {
					t.Errorf("expected response to contain '%s'", content)
				}
			}
			if strings.Count(body, `class="mb-3"`) > 3 {
				t.Error("expected one card per product")
			}
		})
	}
}
