package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearEnv はテストに影響する環境変数を未設定にする。
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "APP_ENV", "LOG_LEVEL", "DATABASE_URL", "DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS",
		"AUTO_MIGRATE", "JWT_SECRET", "TOKEN_TTL", "BCRYPT_COST", "CORS_ALLOWED_ORIGIN",
		"APPOINTMENT_EXPORT_PATH", "SEED_DOCTORS",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), ".env")
}

func TestLoad_DefaultValues(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadWithEnvFile(noEnvFile(t))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.Port != "5000" {
		t.Errorf("Port = %q, want 5000", cfg.Port)
	}
	if cfg.AppEnv != "development" || cfg.IsProduction() {
		t.Errorf("AppEnv = %q", cfg.AppEnv)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.DatabaseURL != "postgres://localhost:5432/medicare?sslmode=disable" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.JWTSecret != DefaultJWTSecret {
		t.Errorf("JWTSecret = %q", cfg.JWTSecret)
	}
	if cfg.TokenTTL != 7*24*time.Hour {
		t.Errorf("TokenTTL = %v, want 168h", cfg.TokenTTL)
	}
	if cfg.BcryptCost != 10 {
		t.Errorf("BcryptCost = %d, want 10", cfg.BcryptCost)
	}
	if cfg.CORSAllowedOrigin != "*" {
		t.Errorf("CORSAllowedOrigin = %q", cfg.CORSAllowedOrigin)
	}
	if cfg.AppointmentExportPath != "appointments.json" {
		t.Errorf("AppointmentExportPath = %q", cfg.AppointmentExportPath)
	}
	if !cfg.SeedDoctors || !cfg.AutoMigrate {
		t.Errorf("SeedDoctors = %v, AutoMigrate = %v, want true/true", cfg.SeedDoctors, cfg.AutoMigrate)
	}
	if cfg.DBMaxOpenConns != 20 || cfg.DBMaxIdleConns != 5 {
		t.Errorf("pool = %d/%d", cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/medicare")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("CORS_ALLOWED_ORIGIN", "https://clinic.example.com")
	t.Setenv("SEED_DOCTORS", "false")
	t.Setenv("AUTO_MIGRATE", "0")

	cfg, err := LoadWithEnvFile(noEnvFile(t))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.Port != "8080" || cfg.DatabaseURL != "postgres://u:p@db:5432/medicare" || cfg.JWTSecret != "s3cret" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.TokenTTL != time.Hour || cfg.BcryptCost != 12 {
		t.Errorf("TokenTTL = %v, BcryptCost = %d", cfg.TokenTTL, cfg.BcryptCost)
	}
	if cfg.CORSAllowedOrigin != "https://clinic.example.com" {
		t.Errorf("CORSAllowedOrigin = %q", cfg.CORSAllowedOrigin)
	}
	if cfg.SeedDoctors || cfg.AutoMigrate {
		t.Errorf("SeedDoctors = %v, AutoMigrate = %v, want false/false", cfg.SeedDoctors, cfg.AutoMigrate)
	}
}

// 空文字列を明示するとミラー書き出しが無効になる
func TestLoad_EmptyExportPathDisablesExport(t *testing.T) {
	clearEnv(t)
	t.Setenv("APPOINTMENT_EXPORT_PATH", "")

	cfg, err := LoadWithEnvFile(noEnvFile(t))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.AppointmentExportPath != "" {
		t.Errorf("AppointmentExportPath = %q, want empty", cfg.AppointmentExportPath)
	}
}

func TestLoad_InvalidNumbersFallBackToDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_MAX_OPEN_CONNS", "many")
	t.Setenv("TOKEN_TTL", "a week")
	t.Setenv("SEED_DOCTORS", "maybe")

	cfg, err := LoadWithEnvFile(noEnvFile(t))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.DBMaxOpenConns != 20 || cfg.TokenTTL != 7*24*time.Hour || !cfg.SeedDoctors {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoad_Production_RequiresJWTSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")

	if _, err := LoadWithEnvFile(noEnvFile(t)); err == nil || !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Fatalf("expected JWT_SECRET error, got %v", err)
	}

	t.Setenv("JWT_SECRET", DefaultJWTSecret)
	if _, err := LoadWithEnvFile(noEnvFile(t)); err == nil {
		t.Fatal("default secret must be rejected in production")
	}

	t.Setenv("JWT_SECRET", "a-real-secret")
	cfg, err := LoadWithEnvFile(noEnvFile(t))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !cfg.IsProduction() {
		t.Error("IsProduction() = false")
	}
}

func TestLoad_InvalidBcryptCost(t *testing.T) {
	clearEnv(t)
	t.Setenv("BCRYPT_COST", "2")

	if _, err := LoadWithEnvFile(noEnvFile(t)); err == nil {
		t.Fatal("expected error for bcrypt cost below minimum")
	}
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	content := "PORT=6000\nJWT_SECRET=from-file\nSEED_DOCTORS=false\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("PORT", "7000")

	cfg, err := LoadWithEnvFile(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	// 環境変数が.envより優先される
	if cfg.Port != "7000" {
		t.Errorf("Port = %q, want 7000", cfg.Port)
	}
	if cfg.JWTSecret != "from-file" || cfg.SeedDoctors {
		t.Errorf("JWTSecret = %q, SeedDoctors = %v", cfg.JWTSecret, cfg.SeedDoctors)
	}
}
