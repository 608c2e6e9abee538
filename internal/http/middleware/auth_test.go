package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mlm_platform/internal/domain"
	"mlm_platform/internal/service"

	"github.com/gin-gonic/gin"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserID(c)})
	})
	r.GET("/admin", RequireAuth(), RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func doGet(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	service.InitJWT("test-secret", time.Hour)
	r := testRouter()

	if w := doGet(r, "/me", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", w.Code)
	}
	if w := doGet(r, "/me", "garbage"); w.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status = %d, want 401", w.Code)
	}

	token, err := service.GenerateJWT("123456", domain.RoleUser)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if w := doGet(r, "/me", token); w.Code != http.StatusOK {
		t.Errorf("valid token: status = %d, want 200", w.Code)
	}
}

func TestRequireAuthQueryToken(t *testing.T) {
	service.InitJWT("test-secret", time.Hour)
	r := testRouter()

	token, err := service.GenerateJWT("123456", domain.RoleUser)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if w := doGet(r, "/me?token="+token, ""); w.Code != http.StatusOK {
		t.Errorf("query token: status = %d, want 200", w.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	service.InitJWT("test-secret", time.Hour)
	r := testRouter()

	userToken, _ := service.GenerateJWT("123456", domain.RoleUser)
	if w := doGet(r, "/admin", userToken); w.Code != http.StatusForbidden {
		t.Errorf("user role: status = %d, want 403", w.Code)
	}

	adminToken, _ := service.GenerateJWT("999001", domain.RoleAdmin)
	if w := doGet(r, "/admin", adminToken); w.Code != http.StatusOK {
		t.Errorf("admin role: status = %d, want 200", w.Code)
	}

	superToken, _ := service.GenerateJWT("999002", domain.RoleSuperAdmin)
	if w := doGet(r, "/admin", superToken); w.Code != http.StatusOK {
		t.Errorf("super_admin role: status = %d, want 200", w.Code)
	}
}
