package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names read by the front-ends
const (
	EnvParams     = "EVTAX_PARAMS"
	EnvStatsDB    = "EVTAX_STATS_DB"
	EnvLogLevel   = "EVTAX_LOG_LEVEL"
	EnvAddr       = "EVTAX_ADDR"
	EnvAdminUsers = "EVTAX_ADMIN_USERS"
	EnvRateLimit  = "EVTAX_RATE_LIMIT"
)

// DefaultRateLimit is the per-client request budget per minute on the API
const DefaultRateLimit = 120

// Settings is the process-level configuration taken from the environment
type Settings struct {
	ParamsPath string
	StatsDB    string
	LogLevel   string
	Addr       string
	AdminUsers []string
	RateLimit  int
}

// LoadEnv loads variables from the given .env files, or ./.env when none are
// named. A missing default file is not an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	}
	return godotenv.Load(files...)
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetListEnv splits a comma-separated variable, dropping empty items
func GetListEnv(key string) []string {
	var out []string
	for _, item := range strings.Split(GetEnv(key, ""), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// SettingsFromEnv reads Settings from the current environment
func SettingsFromEnv() Settings {
	return Settings{
		ParamsPath: GetEnv(EnvParams, ""),
		StatsDB:    GetEnv(EnvStatsDB, ""),
		LogLevel:   GetEnv(EnvLogLevel, "info"),
		Addr:       GetEnv(EnvAddr, ":8080"),
		AdminUsers: GetListEnv(EnvAdminUsers),
		RateLimit:  GetIntEnv(EnvRateLimit, DefaultRateLimit),
	}
}
