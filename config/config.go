package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Server struct {
	Host string
	Port int
}

type DB struct {
	Host string
	Port int
	User string
	Pass string
	Name string
}

type Store struct {
	Backend      string // "file" or "database"
	RegistryPath string
}

type Redis struct {
	Addr string // empty keeps the rate limiter in process memory
	Pass string
	DB   int
}

type Limits struct {
	MaxUsers          int
	LoginAttempts     int
	LoginWindowMin    int
	RegisterAttempts  int
	RegisterWindowMin int
}

type Chat struct {
	APIKey  string
	Model   string
	BaseURL string
}

type Config struct {
	Server Server
	DB     DB
	Store  Store
	Redis  Redis
	Limits Limits
	Chat   Chat
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Defaults
	v.SetDefault("auth.host", "127.0.0.1")
	v.SetDefault("auth.port", 9400)
	v.SetDefault("auth.store.backend", "file")
	v.SetDefault("auth.store.registry_path", "registry.json")
	v.SetDefault("auth.db.host", "127.0.0.1")
	v.SetDefault("auth.db.port", 3306)
	v.SetDefault("auth.db.user", "root")
	v.SetDefault("auth.db.pass", "")
	v.SetDefault("auth.db.name", "lingo_guard")
	v.SetDefault("auth.redis.addr", "")
	v.SetDefault("auth.redis.pass", "")
	v.SetDefault("auth.redis.db", 0)
	v.SetDefault("auth.limits.max_users", 100)
	v.SetDefault("auth.limits.login_attempts", 5)
	v.SetDefault("auth.limits.login_window_min", 15)
	v.SetDefault("auth.limits.register_attempts", 5)
	v.SetDefault("auth.limits.register_window_min", 60)
	v.SetDefault("auth.chat.model", "google/gemini-2.0-flash-lite-preview-02-05:free")
	v.SetDefault("auth.chat.base_url", "https://openrouter.ai/api/v1")

	// Secrets come from the environment, never the file
	_ = v.BindEnv("auth.chat.api_key", "OPENROUTER_API_KEY")
	_ = v.BindEnv("auth.db.pass", "AUTH_DB_PASS")
	_ = v.BindEnv("auth.redis.pass", "AUTH_REDIS_PASS")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{
		Server: Server{Host: v.GetString("auth.host"), Port: v.GetInt("auth.port")},
		DB: DB{
			Host: v.GetString("auth.db.host"),
			Port: v.GetInt("auth.db.port"),
			User: v.GetString("auth.db.user"),
			Pass: v.GetString("auth.db.pass"),
			Name: v.GetString("auth.db.name"),
		},
		Store: Store{
			Backend:      v.GetString("auth.store.backend"),
			RegistryPath: v.GetString("auth.store.registry_path"),
		},
		Redis: Redis{
			Addr: v.GetString("auth.redis.addr"),
			Pass: v.GetString("auth.redis.pass"),
			DB:   v.GetInt("auth.redis.db"),
		},
		Limits: Limits{
			MaxUsers:          v.GetInt("auth.limits.max_users"),
			LoginAttempts:     v.GetInt("auth.limits.login_attempts"),
			LoginWindowMin:    v.GetInt("auth.limits.login_window_min"),
			RegisterAttempts:  v.GetInt("auth.limits.register_attempts"),
			RegisterWindowMin: v.GetInt("auth.limits.register_window_min"),
		},
		Chat: Chat{
			APIKey:  v.GetString("auth.chat.api_key"),
			Model:   v.GetString("auth.chat.model"),
			BaseURL: v.GetString("auth.chat.base_url"),
		},
	}
	if cfg.Store.Backend != "file" && cfg.Store.Backend != "database" {
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
	return cfg, nil
}
