package configs

import "testing"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENVIRONMENT", "PORT", "ALLOWED_ORIGINS", "JWT_SECRET",
		"S3_BUCKET_NAME", "S3_ENDPOINT", "S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY",
		"S3_PUBLIC_BASE_URL", "DATABASE_URL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDevelopmentDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Environment != "development" {
		t.Errorf("Environment = %q", cfg.Environment)
	}
	if cfg.Port != 3000 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if cfg.JWTSecret == "" {
		t.Error("development did not get a default JWT secret")
	}
	if cfg.DatabaseDSN == "" {
		t.Error("development did not get a default DSN")
	}
	if cfg.HasPhotoStorage() {
		t.Error("photo storage reported configured without credentials")
	}
}

func TestLoadConfigProductionRequiresSecrets(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENVIRONMENT", "production")

	if _, err := LoadConfig(); err == nil {
		t.Error("production config loaded without JWT_SECRET")
	}
}

func TestLoadConfigPortValidation(t *testing.T) {
	clearEnv(t)

	t.Setenv("PORT", "80")
	if _, err := LoadConfig(); err == nil {
		t.Error("privileged port accepted")
	}

	t.Setenv("PORT", "not-a-port")
	if _, err := LoadConfig(); err == nil {
		t.Error("non-numeric port accepted")
	}
}

func TestLoadConfigOrigins(t *testing.T) {
	clearEnv(t)
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com ,")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Fatalf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if cfg.AllowedOrigins[1] != "https://b.example.com" {
		t.Errorf("origin not trimmed: %q", cfg.AllowedOrigins[1])
	}
}
