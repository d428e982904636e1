package config

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultCORSOrigins are the deployed frontends plus the local dev servers.
var DefaultCORSOrigins = []string{
	"https://multi-module-7wppp6x1g-sans-projects-97fe81a5.vercel.app",
	"https://multi-module-5mcw5agfc-sans-projects-97fe81a5.vercel.app",
	"http://localhost:3000",
	"http://localhost:5173",
}

// Config holds the server settings read from the environment.
type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration

	DatabaseURL        string
	DBHost             string
	DBPort             int
	DBUser             string
	DBPassword         string
	DBName             string
	DBSSLMode          string
	DBMaxOpenConns     int
	DBConnMaxIdleTime  time.Duration
	DBConnectTimeout   time.Duration
	DBStatementTimeout time.Duration

	CORSOrigins  []string
	MaxBodyBytes int64

	JWTSecret string
	JWTTTL    time.Duration
}

// Load reads .env (if present) and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("config: .env not loaded: %v", err)
	}

	databaseURL := GetEnvAsString("POSTGRES_URL", "")
	if databaseURL == "" {
		databaseURL = GetEnvAsString("DATABASE_URL", "")
	}

	return Config{
		HTTPAddr:        ":" + GetEnvAsString("PORT", "8080"),
		ShutdownTimeout: GetEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		DatabaseURL:        databaseURL,
		DBHost:             GetEnvAsString("DB_HOST", "localhost"),
		DBPort:             GetEnvAsInt("DB_PORT", 5432),
		DBUser:             GetEnvAsString("DB_USER", "postgres"),
		DBPassword:         GetEnvAsString("DB_PASSWORD", ""),
		DBName:             GetEnvAsString("DB_NAME", "todo_app"),
		DBSSLMode:          GetEnvAsString("DB_SSLMODE", "require"),
		DBMaxOpenConns:     GetEnvAsInt("DB_MAX_OPEN_CONNS", 10),
		DBConnMaxIdleTime:  GetEnvAsDuration("DB_CONN_MAX_IDLE_TIME", 30*time.Second),
		DBConnectTimeout:   GetEnvAsDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		DBStatementTimeout: GetEnvAsDuration("DB_STATEMENT_TIMEOUT", 30*time.Second),

		CORSOrigins:  GetEnvAsSlice("CORS_ORIGINS", DefaultCORSOrigins),
		MaxBodyBytes: GetEnvAsInt64("MAX_BODY_BYTES", 100<<20),

		JWTSecret: GetEnvAsString("JWT_SECRET", ""),
		JWTTTL:    GetEnvAsDuration("JWT_TTL", 24*time.Hour),
	}
}

// DSN builds the postgres connection string. A full URL from the environment
// wins over the individual DB_* settings; sslmode and connect_timeout are only
// filled in when the URL does not carry them.
func (c Config) DSN() (string, error) {
	var u *url.URL
	if c.DatabaseURL != "" {
		parsed, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return "", fmt.Errorf("DSN: invalid database url: %w", err)
		}
		u = parsed
	} else {
		u = &url.URL{
			Scheme: "postgres",
			Host:   net.JoinHostPort(c.DBHost, strconv.Itoa(c.DBPort)),
			Path:   "/" + c.DBName,
		}
		if c.DBPassword != "" {
			u.User = url.UserPassword(c.DBUser, c.DBPassword)
		} else {
			u.User = url.User(c.DBUser)
		}
	}

	q := u.Query()
	if q.Get("sslmode") == "" && c.DBSSLMode != "" {
		q.Set("sslmode", c.DBSSLMode)
	}
	if q.Get("connect_timeout") == "" && c.DBConnectTimeout > 0 {
		secs := int(c.DBConnectTimeout / time.Second)
		if secs < 1 {
			secs = 1
		}
		q.Set("connect_timeout", strconv.Itoa(secs))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// AuthEnabled reports whether /api routes require a bearer token.
func (c Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}
