package service

import (
	"testing"
	"time"

	"mlm_platform/internal/domain"
)

func TestJWTRoundTrip(t *testing.T) {
	InitJWT("test-secret", time.Hour)

	token, err := GenerateJWT("123456", domain.RoleUser)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "123456" {
		t.Errorf("user id = %q, want 123456", claims.UserID)
	}
	if claims.Role != domain.RoleUser {
		t.Errorf("role = %q, want user", claims.Role)
	}
}

func TestJWTAdminRole(t *testing.T) {
	InitJWT("test-secret", time.Hour)

	token, err := GenerateJWT("999001", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Role != domain.RoleAdmin {
		t.Errorf("role = %q, want admin", claims.Role)
	}
}

func TestJWTRejectsGarbage(t *testing.T) {
	InitJWT("test-secret", time.Hour)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := ParseJWT(tok); err == nil {
			t.Errorf("ParseJWT(%q) succeeded, want error", tok)
		}
	}
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	InitJWT("secret-one", time.Hour)
	token, err := GenerateJWT("123456", domain.RoleUser)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	InitJWT("secret-two", time.Hour)
	if _, err := ParseJWT(token); err == nil {
		t.Error("token signed with old secret accepted")
	}
}

func TestJWTExpired(t *testing.T) {
	InitJWT("test-secret", -time.Minute)
	token, err := GenerateJWT("123456", domain.RoleUser)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseJWT(token); err == nil {
		t.Error("expired token accepted")
	}
}
