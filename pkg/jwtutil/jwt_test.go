package jwtutil

import (
	"testing"

	"inventory-service/pkg/config"
)

func testConfig() *config.JWTConfig {
	return &config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 12}
}

func TestGenerateAndValidateToken(t *testing.T) {
	util := NewJWTUtil(testConfig())

	token, err := util.GenerateToken("user@example.com", 42)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	claims, err := util.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("email = %q", claims.Email)
	}
	if claims.UserID != 42 {
		t.Errorf("user id = %d", claims.UserID)
	}
	if claims.ExpiresAt == nil {
		t.Error("expiry not set")
	}
}

func TestValidateTokenWrongKey(t *testing.T) {
	token, err := NewJWTUtil(testConfig()).GenerateToken("user@example.com", 1)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	other := NewJWTUtil(&config.JWTConfig{SigningKey: "different-key", ExpirationHours: 12})
	if _, err := other.ValidateToken(token); err == nil {
		t.Fatal("token signed with another key validated")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	util := NewJWTUtil(testConfig())
	if _, err := util.ValidateToken("not.a.token"); err == nil {
		t.Fatal("garbage token validated")
	}
}

func TestExpiredToken(t *testing.T) {
	// Negative lifetime produces an already-expired token
	util := NewJWTUtil(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: -1})
	token, err := util.GenerateToken("user@example.com", 1)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := util.ValidateToken(token); err == nil {
		t.Fatal("expired token validated")
	}
}

func TestNilConfig(t *testing.T) {
	util := NewJWTUtil(nil)
	if _, err := util.GenerateToken("user@example.com", 1); err == nil {
		t.Fatal("GenerateToken succeeded without config")
	}
	if _, err := util.ValidateToken("anything"); err == nil {
		t.Fatal("ValidateToken succeeded without config")
	}
}
