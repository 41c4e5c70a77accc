package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"messmate-api/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret used to sign tokens, read from env or fallback
var JWTSecret = []byte(getEnv("JWT_SECRET", "messmate_super_secret_2024"))

// TokenTTL is how long an issued token stays valid.
var TokenTTL = 24 * time.Hour

type Config struct {
	Port        string
	GinMode     string
	DBDriver    string // "sqlite" or "postgres"
	DBPath      string
	DatabaseURL string
	JWTSecret   string
	TokenTTL    time.Duration
	SeedData    bool
	CORSOrigins []string
}

// Load reads the environment, after loading a .env file if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	ttlHours, err := strconv.Atoi(getEnv("TOKEN_TTL_HOURS", "24"))
	if err != nil || ttlHours <= 0 {
		return nil, fmt.Errorf("invalid TOKEN_TTL_HOURS: %q", os.Getenv("TOKEN_TTL_HOURS"))
	}
	seed, err := strconv.ParseBool(getEnv("SEED_SAMPLE_DATA", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_SAMPLE_DATA: %w", err)
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "debug"),
		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBPath:      getEnv("DB_PATH", "messmate.db"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   getEnv("JWT_SECRET", "messmate_super_secret_2024"),
		TokenTTL:    time.Duration(ttlHours) * time.Hour,
		SeedData:    seed,
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
	}

	switch cfg.DBDriver {
	case "sqlite":
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when DB_DRIVER=postgres")
		}
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	return cfg, nil
}

// Apply publishes the auth settings to the package-level values the
// middleware reads.
func (c *Config) Apply() {
	JWTSecret = []byte(c.JWTSecret)
	TokenTTL = c.TokenTTL
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Open connects to the configured database and migrates all models.
func Open(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DatabaseURL)
	default:
		dialector = sqlite.Open(cfg.DBPath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	// Every pooled connection to ":memory:" would be its own empty database.
	if cfg.DBDriver != "postgres" && strings.Contains(cfg.DBPath, ":memory:") {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.DailyMenu{},
		&models.MealBooking{},
		&models.MealOrder{},
		&models.Feedback{},
	)
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}

func InitDB(cfg *Config) {
	var err error
	DB, err = Open(cfg)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	log.Printf("✅ Database connected and migrated successfully (%s)", cfg.DBDriver)
}
