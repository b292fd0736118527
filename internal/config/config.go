package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

func GetConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	var cfg Config
	if err = json.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	// Override with environment variables
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		cfg.App.Port = p
	}

	// DB environment variables
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Repository.DBHost = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid DB_PORT %q: %w", port, err)
		}
		cfg.Repository.DBPort = p
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.Repository.DBUsername = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		cfg.Repository.DBPassword = password
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Repository.DBName = name
	}
	if sslMode := os.Getenv("DB_SSL_MODE"); sslMode != "" {
		cfg.Repository.DBSSLMode = sslMode
	}

	// Redis environment variables
	if redisHost := os.Getenv("REDIS_HOST"); redisHost != "" {
		cfg.Cache.RedisHost = redisHost
	}
	if redisPort := os.Getenv("REDIS_PORT"); redisPort != "" {
		p, err := strconv.Atoi(redisPort)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_PORT %q: %w", redisPort, err)
		}
		cfg.Cache.RedisPort = p
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		cfg.Cache.RedisPassword = redisPassword
	}
	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		db, err := strconv.Atoi(redisDB)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q: %w", redisDB, err)
		}
		cfg.Cache.RedisDB = db
	}

	// Tracking environment variables
	if tracked := os.Getenv("TRACKED_SELLER"); tracked != "" {
		cfg.Tracking.TrackedSeller = tracked
	}
	if catalog := os.Getenv("CATALOG_PATH"); catalog != "" {
		cfg.Tracking.CatalogPath = catalog
	}
	if reportDir := os.Getenv("REPORT_DIR"); reportDir != "" {
		cfg.Tracking.ReportDir = reportDir
	}
	if schedule := os.Getenv("COLLECT_SCHEDULE"); schedule != "" {
		cfg.Tracking.Schedule = schedule
	}
	if mode := os.Getenv("COLLECT_MODE"); mode != "" {
		cfg.Tracking.Mode = mode
	}
	if delay := os.Getenv("REQUEST_DELAY_MS"); delay != "" {
		d, err := strconv.Atoi(delay)
		if err != nil {
			return nil, fmt.Errorf("invalid REQUEST_DELAY_MS %q: %w", delay, err)
		}
		cfg.Tracking.RequestDelayMs = d
	}
	if sellers := os.Getenv("SELLERS"); sellers != "" {
		cfg.Tracking.Sellers = strings.Split(sellers, ",")
	}

	// Defaults for the fields the config file may omit
	if cfg.Tracking.TrackedSeller == "" {
		cfg.Tracking.TrackedSeller = "Our company"
	}
	if cfg.Tracking.CatalogPath == "" {
		cfg.Tracking.CatalogPath = "products.csv"
	}
	if cfg.Tracking.ReportDir == "" {
		cfg.Tracking.ReportDir = "reports"
	}

	return &cfg, nil
}

type Config struct {
	App        App        `json:"app"`
	Repository Repository `json:"repository"`
	Cache      Cache      `json:"cache"`
	Tracking   Tracking   `json:"tracking"`
}

type App struct {
	Port int `json:"port"`
}

type Repository struct {
	DBHost     string `json:"db_host"`
	DBPort     int    `json:"db_port"`
	DBUsername string `json:"db_username"`
	DBPassword string `json:"db_password"`
	DBName     string `json:"db_name"`
	DBSSLMode  string `json:"db_ssl_mode"`
	MaxConn    int    `json:"max_conn"`
}

type Cache struct {
	RedisHost     string `json:"redis_host"`
	RedisPort     int    `json:"redis_port"`
	RedisPassword string `json:"redis_password"`
	RedisDB       int    `json:"redis_db"`
	PoolSize      int    `json:"pool_size"`
	MinIdleConns  int    `json:"min_idle_conns"`
}

type Tracking struct {
	TrackedSeller  string   `json:"tracked_seller"`
	CatalogPath    string   `json:"catalog_path"`
	ReportDir      string   `json:"report_dir"`
	Schedule       string   `json:"schedule"` // cron expression, empty disables
	Mode           string   `json:"mode"`     // "live" or "test"
	RequestDelayMs int      `json:"request_delay_ms"`
	Sellers        []string `json:"sellers"` // empty enables all built-in profiles
}
