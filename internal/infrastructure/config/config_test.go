package config

import "testing"

func TestValidate_DevelopmentFallsBack(t *testing.T) {
	cfg := &Config{Env: "development"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.JWTSecret == "" {
		t.Fatalf("expected fallback secret in development")
	}
}

func TestValidate_ProductionRequiresSecret(t *testing.T) {
	cfg := &Config{Env: "production"}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for missing secret")
	}

	cfg = &Config{Env: "production", JWTSecret: insecureSecret}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for placeholder secret")
	}

	cfg = &Config{Env: "production", JWTSecret: "s3cr3t-rotated"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
