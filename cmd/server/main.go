package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "bimillog/docs"
	"bimillog/internal/backend"
	"bimillog/internal/cache"
	"bimillog/internal/config"
	"bimillog/internal/repository"
	"bimillog/internal/service"
	"bimillog/internal/session"
	"bimillog/internal/toast"
	"bimillog/internal/transport/rest"
	"bimillog/internal/transport/ws"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	errorRetention     = 30 * 24 * time.Hour
	toastPruneInterval = time.Minute
)

// @title BimilLog BFF API
// @version 1.0
// @description Backend-for-frontend of the BimilLog rolling-paper service
// @host localhost:8080
// @BasePath /v1
func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	log.Printf("Backend:  %s (timeout %s, %d retries)", cfg.Backend.BaseURL, cfg.Backend.Timeout, cfg.Backend.MaxRetries)
	log.Printf("Query:    stale %s, gc %s", cfg.Query.StaleTime, cfg.Query.GCTime)
	if cfg.Session.Secret == "bimillog-dev-secret" {
		log.Println("Warning: SESSION_SECRET not set, using the development secret")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub and toast registry
	wsHub := ws.NewHub(logger)
	toasts := toast.NewRegistry(wsHub)
	log.Println("WebSocket hub started")

	// Initialize repositories
	errorRepo := repository.NewErrorReportRepo(db, errorRetention, logger)
	errorRepo.EnsureIndexes(ctx)

	// Initialize caches
	queryCache := cache.NewRedisQueryCache(rdb, "query:", cfg.Query.GCTime)
	prefCache := cache.NewPreferenceCache(rdb)
	sessionStore := session.NewRedisStore(rdb, "bff:", cfg.Session.TokenTTL)

	api, err := backend.New(backend.Config{
		BaseURL:    cfg.Backend.BaseURL,
		Timeout:    cfg.Backend.Timeout,
		MaxRetries: cfg.Backend.MaxRetries,
		Logger:     logger,
	})
	if err != nil {
		log.Fatal("Invalid backend configuration:", err)
	}

	// Initialize services
	deps := service.Deps{
		API: api,
		Query: cache.NewQuery(cache.QueryConfig{
			Cache:      queryCache,
			StaleTime:  cfg.Query.StaleTime,
			ServeStale: service.ServeStale,
			Logger:     logger,
		}),
		Toasts: toasts,
		Logger: logger,
	}
	sessions := service.NewSessionService(cfg.Session.Secret, 0, sessionStore, logger)
	memberSvc := service.NewMemberService(deps, sessions)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	memberSvc.SetBroadcaster(wsHub)

	container := &rest.Container{
		Sessions:            sessions,
		AuthService:         service.NewAuthService(deps, sessions),
		PaperService:        service.NewPaperService(deps, sessions),
		BoardService:        service.NewBoardService(deps),
		FriendService:       service.NewFriendService(deps),
		MemberService:       memberSvc,
		NotificationService: service.NewNotificationService(deps),
		PreferenceService:   service.NewPreferenceService(prefCache, logger),
		AdminService:        service.NewAdminService(deps, sessions, errorRepo),
		ErrorReporter:       service.NewErrorReporter(errorRepo, logger),
		Toasts:              toasts,
		WSHub:               wsHub,
		SessionCookie:       cfg.Session.CookieName,
		CookieSecure:        cfg.Session.CookieSecure,
		AllowedOrigins:      cfg.CORSAllowedOrigins,
		Logger:              logger,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login, /v1/auth/logout")
		log.Println("  GET  /v1/paper, /v1/paper/{memberName}, /v1/paper/grid")
		log.Println("  GET  /v1/posts, /v1/friends, /v1/notifications")
		log.Println("  GET  /v1/toasts, /v1/preferences/theme")
		log.Println("  POST /v1/errors")
		log.Println("  WS   /v1/ws")
		log.Println("  GET  /swagger/doc.json")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	pruneDone := make(chan struct{})
	go pruneToasts(toasts, pruneDone, logger)

	// server first, then the push channel, then the stores
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"bff": func(ctx context.Context) error {
				log.Println("Shutting down server...")
				err := srv.Shutdown(ctx)
				close(pruneDone)
				toasts.Close()
				wsHub.Close()
				return errors.Join(err, rdb.Close(), mongoClient.Disconnect(ctx))
			},
		},
	)

	exitCode := <-wait
	log.Printf("Server exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// pruneToasts drops idle toast sessions until done is closed.
func pruneToasts(toasts *toast.Registry, done <-chan struct{}, logger *slog.Logger) {
	ticker := time.NewTicker(toastPruneInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := toasts.Prune(); n > 0 {
				logger.Debug("pruned idle toast sessions", "count", n)
			}
		case <-done:
			return
		}
	}
}
