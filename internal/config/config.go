// internal/config/config.go
//
// Environment-driven configuration for the server and the CLI client.
// A .env file in the working directory is loaded first (development);
// real environment variables always win.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // TZ_NAME must resolve on hosts without zoneinfo

	"github.com/joho/godotenv"
)

// Store backends.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Store selects and configures the leaderboard persistence.
type Store struct {
	Backend     string // STORE_BACKEND
	DataFile    string // DATA_FILE
	SQLitePath  string // SQLITE_PATH
	DatabaseURL string // DATABASE_URL
}

// Server is the configuration of the HTTP leaderboard service.
type Server struct {
	Port          string
	LogLevel      string
	ClientOrigins []string
	Location      *time.Location // calendar day used by the daily reset
	Store         Store
}

// Client is the configuration of the leaderboard gateway.
type Client struct {
	APIURL       string
	LocalStorage string        // fallback storage file
	Timeout      time.Duration // remote transport timeout
	LogLevel     string
}

// LoadServer reads Server settings from the environment.
func LoadServer() (Server, error) {
	_ = godotenv.Load()

	loc, err := location(os.Getenv("TZ_NAME"))
	if err != nil {
		return Server{}, err
	}
	return Server{
		Port:          getEnv("PORT", "5175"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		ClientOrigins: splitList(getEnv("CLIENT_ORIGIN", "http://localhost:5173")),
		Location:      loc,
		Store: Store{
			Backend:     strings.ToLower(getEnv("STORE_BACKEND", BackendFile)),
			DataFile:    getEnv("DATA_FILE", filepath.Join("data", "leaderboard.json")),
			SQLitePath:  getEnv("SQLITE_PATH", filepath.Join("data", "leaderboard.db")),
			DatabaseURL: os.Getenv("DATABASE_URL"),
		},
	}, nil
}

// LoadClient reads Client settings from the environment.
func LoadClient() (Client, error) {
	_ = godotenv.Load()

	timeout, err := envDuration("ASSOCIA_TIMEOUT", 5*time.Second)
	if err != nil {
		return Client{}, err
	}
	local := os.Getenv("ASSOCIA_LOCAL_STORAGE")
	if local == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir = "."
		}
		local = filepath.Join(dir, "associa", "localstorage.json")
	}
	return Client{
		APIURL:       strings.TrimRight(getEnv("ASSOCIA_API_URL", "http://localhost:5175"), "/"),
		LocalStorage: local,
		Timeout:      timeout,
		LogLevel:     getEnv("LOG_LEVEL", "warn"),
	}, nil
}

func location(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("TZ_NAME: %w", err)
	}
	return loc, nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// envInt returns k parsed as an int, or def if unset or malformed.
func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// envDuration accepts Go durations ("750ms") or whole seconds ("5").
func envDuration(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d, nil
	}
	if n := envInt(k, -1); n >= 0 {
		return time.Duration(n) * time.Second, nil
	}
	return 0, fmt.Errorf("%s: invalid duration %q", k, v)
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
