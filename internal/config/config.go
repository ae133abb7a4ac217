// Package config は環境変数（と任意の.envファイル）からアプリケーション設定を読み込む。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultJWTSecret は開発用の署名鍵。production環境では使用できない。
	DefaultJWTSecret = "devsecret"

	envProduction = "production"
)

// Config はアプリケーション全体の設定を保持する。
// 起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Server
	Port     string
	AppEnv   string
	LogLevel string

	// Database
	DatabaseURL    string
	DBMaxOpenConns int
	DBMaxIdleConns int
	AutoMigrate    bool

	// Auth
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int

	// CORS
	CORSAllowedOrigin string

	// Appointments
	AppointmentExportPath string // 空の場合はミラーを行わない
	SeedDoctors           bool
}

// IsProduction はproduction環境かどうかを返す。
func (c *Config) IsProduction() bool {
	return c.AppEnv == envProduction
}

// Load は環境変数からConfigを読み込む。
// カレントディレクトリに.envがあれば、環境変数で未設定の値の補完に使う。
func Load() (*Config, error) {
	return LoadWithEnvFile(".env")
}

// LoadWithEnvFile は環境変数と指定された.envファイルからConfigを読み込む。
// 環境変数の値が.envファイルより優先される。ファイルが存在しない場合は環境変数のみを使う。
func LoadWithEnvFile(path string) (*Config, error) {
	file, err := godotenv.Read(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
		}
		file = map[string]string{}
	}
	env := envSource{file: file}

	cfg := &Config{
		Port:                  env.getString("PORT", "5000"),
		AppEnv:                env.getString("APP_ENV", "development"),
		LogLevel:              env.getString("LOG_LEVEL", "info"),
		DatabaseURL:           env.getString("DATABASE_URL", "postgres://localhost:5432/medicare?sslmode=disable"),
		DBMaxOpenConns:        env.getInt("DB_MAX_OPEN_CONNS", 20),
		DBMaxIdleConns:        env.getInt("DB_MAX_IDLE_CONNS", 5),
		AutoMigrate:           env.getBool("AUTO_MIGRATE", true),
		JWTSecret:             env.getString("JWT_SECRET", DefaultJWTSecret),
		TokenTTL:              env.getDuration("TOKEN_TTL", 7*24*time.Hour),
		BcryptCost:            env.getInt("BCRYPT_COST", bcrypt.DefaultCost),
		CORSAllowedOrigin:     env.getString("CORS_ALLOWED_ORIGIN", "*"),
		AppointmentExportPath: env.getStringAllowEmpty("APPOINTMENT_EXPORT_PATH", "appointments.json"),
		SeedDoctors:           env.getBool("SEED_DOCTORS", true),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.IsProduction() && c.JWTSecret == DefaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must be set to a non-default value in production")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	return nil
}

// envSource は環境変数と.envファイルの値を優先順位付きで参照する。
type envSource struct {
	file map[string]string
}

func (s envSource) lookup(key string) (string, bool) {
	if v, ok := os.LookupEnv(key); ok {
		return v, true
	}
	v, ok := s.file[key]
	return v, ok
}

func (s envSource) getString(key, defaultVal string) string {
	if v, _ := s.lookup(key); v != "" {
		return v
	}
	return defaultVal
}

// getStringAllowEmpty は明示的に空文字列が設定された場合は空文字列を返す。
func (s envSource) getStringAllowEmpty(key, defaultVal string) string {
	if v, ok := s.lookup(key); ok {
		return v
	}
	return defaultVal
}

func (s envSource) getInt(key string, defaultVal int) int {
	v, _ := s.lookup(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func (s envSource) getBool(key string, defaultVal bool) bool {
	v, _ := s.lookup(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}

func (s envSource) getDuration(key string, defaultVal time.Duration) time.Duration {
	v, _ := s.lookup(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
