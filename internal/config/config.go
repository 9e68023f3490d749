package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database    DatabaseConfig
	App         AppConfig
	Cache       CacheConfig
	Attendance  AttendanceConfig
	Payroll     PayrollConfig
	Performance PerformanceConfig
	Summarizer  SummarizerConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

type CacheConfig struct {
	Enabled      bool
	Addr         string
	Password     string
	DB           int
	ReferenceTTL time.Duration
	SummaryTTL   time.Duration
}

// AttendanceConfig holds the policy windows used by the attendance classifier.
// Times are clock values in "HH:MM" form.
type AttendanceConfig struct {
	NormalCheckInCutoff  string
	NormalCheckOutFloor  string
	Workdays             string
	SummaryRecomputeTick time.Duration
}

// PayrollConfig holds externally configured rates and the progressive tax
// bracket schedule. Brackets are "upper_bound:rate" pairs ordered by upper
// bound; an empty upper bound marks the open-ended top bracket.
type PayrollConfig struct {
	SocialInsuranceRate  decimal.Decimal
	MedicalInsuranceRate decimal.Decimal
	HousingFundRate      decimal.Decimal
	DefaultTaxExemption  decimal.Decimal
	TaxBrackets          string
}

// PerformanceConfig holds the appraisal grade schedule. Bands are
// "upper_bound:grade" pairs ordered by upper bound; an empty upper bound
// marks the open-ended top band.
type PerformanceConfig struct {
	GradeBands string
}

type SummarizerConfig struct {
	APIURL  string
	APIKey  string
	Model   string
	Timeout time.Duration
}

func Load() (*Config, error) {
	// Missing .env is fine in production, env vars win either way.
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hrms"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(getEnvInt("DB_MAX_CONNS", 25)),
		MinConns: int32(getEnvInt("DB_MIN_CONNS", 5)),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	referenceTTL, err := time.ParseDuration(getEnv("CACHE_REFERENCE_TTL", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_REFERENCE_TTL: %w", err)
	}

	summaryTTL, err := time.ParseDuration(getEnv("CACHE_SUMMARY_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_SUMMARY_TTL: %w", err)
	}

	config.Cache = CacheConfig{
		Enabled:      getEnv("REDIS_ENABLED", "false") == "true",
		Addr:         getEnv("REDIS_ADDR", "localhost:6379"),
		Password:     getEnv("REDIS_PASSWORD", ""),
		DB:           getEnvInt("REDIS_DB", 0),
		ReferenceTTL: referenceTTL,
		SummaryTTL:   summaryTTL,
	}

	summaryTick, err := time.ParseDuration(getEnv("SUMMARY_RECOMPUTE_TICK", "6h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SUMMARY_RECOMPUTE_TICK: %w", err)
	}

	config.Attendance = AttendanceConfig{
		NormalCheckInCutoff:  getEnv("NORMAL_CHECKIN_CUTOFF", "09:00"),
		NormalCheckOutFloor:  getEnv("NORMAL_CHECKOUT_FLOOR", "18:00"),
		Workdays:             getEnv("WORKDAYS", "MON,TUE,WED,THU,FRI"),
		SummaryRecomputeTick: summaryTick,
	}

	socialRate, err := getEnvDecimal("SOCIAL_INSURANCE_RATE", "0.08")
	if err != nil {
		return nil, err
	}
	medicalRate, err := getEnvDecimal("MEDICAL_INSURANCE_RATE", "0.02")
	if err != nil {
		return nil, err
	}
	housingRate, err := getEnvDecimal("HOUSING_FUND_RATE", "0.07")
	if err != nil {
		return nil, err
	}
	taxExemption, err := getEnvDecimal("DEFAULT_TAX_EXEMPTION", "5000")
	if err != nil {
		return nil, err
	}

	config.Payroll = PayrollConfig{
		SocialInsuranceRate:  socialRate,
		MedicalInsuranceRate: medicalRate,
		HousingFundRate:      housingRate,
		DefaultTaxExemption:  taxExemption,
		TaxBrackets: getEnv("PAYROLL_TAX_BRACKETS",
			"3000:0.03,12000:0.10,25000:0.20,35000:0.25,55000:0.30,80000:0.35,:0.45"),
	}

	config.Performance = PerformanceConfig{
		GradeBands: getEnv("PERFORMANCE_GRADE_BANDS", "60:D,75:C,85:B,:A"),
	}

	summarizerTimeout, err := time.ParseDuration(getEnv("SUMMARY_API_TIMEOUT", "20s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SUMMARY_API_TIMEOUT: %w", err)
	}

	config.Summarizer = SummarizerConfig{
		APIURL:  getEnv("SUMMARY_API_URL", "https://openrouter.ai/api/v1/chat/completions"),
		APIKey:  getEnv("SUMMARY_API_KEY", ""),
		Model:   getEnv("SUMMARY_API_MODEL", "openai/gpt-3.5-turbo"),
		Timeout: summarizerTimeout,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Payroll.SocialInsuranceRate.IsNegative() ||
		c.Payroll.MedicalInsuranceRate.IsNegative() ||
		c.Payroll.HousingFundRate.IsNegative() {
		return fmt.Errorf("insurance rates must not be negative")
	}
	if c.Payroll.DefaultTaxExemption.IsNegative() {
		return fmt.Errorf("DEFAULT_TAX_EXEMPTION must not be negative")
	}
	if strings.TrimSpace(c.Payroll.TaxBrackets) == "" {
		return fmt.Errorf("PAYROLL_TAX_BRACKETS is required")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDecimal(key, fallback string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(getEnv(key, fallback))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
