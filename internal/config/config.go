package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"
)

// Config holds all runtime configuration values. Each field corresponds to an
// environment variable. Required values (database coordinates and the JWT
// signing secret) abort startup when missing; pool limits, token lifetimes and
// the bcrypt cost fall back to sensible defaults.
type Config struct {
	Env    string // application environment (e.g. "dev", "prod")
	Port   string // HTTP port to listen on
	DBUser string // database username
	DBPass string // database password (optional)
	DBHost string // database host address
	DBPort string // database port number
	DBName string // database name

	DBMaxOpenConns    int           // connection pool: max open connections
	DBMaxIdleConns    int           // connection pool: max idle connections
	DBConnMaxLifetime time.Duration // connection pool: max connection age

	JWTSecret      string // secret used to sign access and refresh tokens
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for password hashing
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values cause
// the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:    getenv("APP_ENV", "dev"),
		Port:   getenv("APP_PORT", "8080"),
		DBUser: must("DB_USER"),
		DBPass: os.Getenv("DB_PASS"), // empty allowed
		DBHost: must("DB_HOST"),
		DBPort: must("DB_PORT"),
		DBName: must("DB_NAME"),

		DBMaxOpenConns:    envInt("DB_MAX_OPEN_CONNS", 20),
		DBMaxIdleConns:    envInt("DB_MAX_IDLE_CONNS", 10),
		DBConnMaxLifetime: envDur("DB_CONN_MAX_LIFETIME", time.Hour),

		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   envInt("ACCESS_TOKEN_TTL_MIN", 15),
		RefreshTTLDays: envInt("REFRESH_TOKEN_TTL_DAYS", 1),
		BcryptCost:     envInt("BCRYPT_COST", 10),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// getenv returns the variable's value or a default when it is unset.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envInt is like getenv but converts the value to an integer, falling back to
// the default on parse failure.
func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid int for %s: %q, using %d", key, v, def)
		return def
	}
	return n
}
