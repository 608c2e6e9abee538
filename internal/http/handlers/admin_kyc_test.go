package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

// Request validation runs before any storage access, so these cases can
// drive the handlers without a database.
func doPatch(t *testing.T, handler gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PATCH("/x", handler)

	req := httptest.NewRequest("PATCH", "/x", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminDecideKycValidation(t *testing.T) {
	h := &Handler{}

	cases := []struct {
		name string
		body string
	}{
		{"missing id", `{"status": "approved"}`},
		{"non-terminal status", `{"id": 1, "status": "pending"}`},
		{"unknown status", `{"id": 1, "status": "maybe"}`},
		{"rejection without remarks", `{"id": 1, "status": "rejected"}`},
		{"rejection with blank remarks", `{"id": 1, "status": "rejected", "remarks": "   "}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if w := doPatch(t, h.AdminDecideKyc, c.body); w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestAdminDecideWithdrawalValidation(t *testing.T) {
	h := &Handler{}

	cases := []struct {
		name string
		body string
	}{
		{"missing id", `{"approve": true}`},
		{"rejection without remarks", `{"id": 1, "approve": false}`},
		{"rejection with blank remarks", `{"id": 1, "approve": false, "remarks": " "}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if w := doPatch(t, h.AdminDecideWithdrawal, c.body); w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}
