package initialize

import (
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"lingo-guard/app/controllers"
	"lingo-guard/app/db"
	"lingo-guard/app/middleware"
	"lingo-guard/app/models"
	"lingo-guard/app/ratelimit"
	"lingo-guard/app/services"
	"lingo-guard/app/store"
	"lingo-guard/config"
	"lingo-guard/global"
	"lingo-guard/router"
)

type App struct {
	Cfg    *config.Config
	DB     *gorm.DB
	Router http.Handler
	Auth   *services.AuthService
	Users  store.UserStore
}

func Build(configPath string) (*App, error) {
	// Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	global.Config = *cfg

	// User store backend, selected once; the service never branches on it
	var users store.UserStore
	var gdb *gorm.DB
	switch cfg.Store.Backend {
	case "database":
		gdb, err = db.Connect(db.Config{Host: cfg.DB.Host, Port: cfg.DB.Port, User: cfg.DB.User, Password: cfg.DB.Pass, DBName: cfg.DB.Name})
		if err != nil {
			return nil, fmt.Errorf("connect db: %w", err)
		}
		if err := gdb.AutoMigrate(&models.User{}); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		global.Mdb = gdb
		users = store.NewDocumentStore(gdb)
	default:
		users = store.NewFileStore(cfg.Store.RegistryPath, global.Logger)
	}

	// Rate-limit attempt stores: one per feature, so login and registration
	// windows stay independent
	loginWindow := time.Duration(cfg.Limits.LoginWindowMin) * time.Minute
	registerWindow := time.Duration(cfg.Limits.RegisterWindowMin) * time.Minute
	var loginStore, registerStore ratelimit.AttemptStore
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Pass, DB: cfg.Redis.DB})
		global.Rdb = rdb
		loginStore = ratelimit.NewRedisStore(rdb, "login", loginWindow)
		registerStore = ratelimit.NewRedisStore(rdb, "register", registerWindow)
	} else {
		loginStore = ratelimit.NewMemoryStore()
		registerStore = ratelimit.NewMemoryStore()
	}
	loginLimiter := ratelimit.New(loginStore, cfg.Limits.LoginAttempts, loginWindow)
	registerLimiter := ratelimit.New(registerStore, cfg.Limits.RegisterAttempts, registerWindow)

	// Services
	authSvc := services.NewAuthService(users, loginLimiter, registerLimiter, cfg.Limits.MaxUsers, global.Logger)

	// Controllers
	httpCtrl := controllers.NewHTTPController()
	authCtrl := controllers.NewAuthController(authSvc)
	chatCtrl := controllers.NewChatController(cfg.Chat.APIKey, cfg.Chat.Model, cfg.Chat.BaseURL, global.Logger)

	// Router
	h := router.New(httpCtrl, authCtrl, chatCtrl)
	h = middleware.Logging(h)

	return &App{Cfg: cfg, DB: gdb, Router: h, Auth: authSvc, Users: users}, nil
}
