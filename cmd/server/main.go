package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/BivekiGroup/bivekinew-sub000/internal/config"
	"github.com/BivekiGroup/bivekinew-sub000/internal/controllers"
	"github.com/BivekiGroup/bivekinew-sub000/internal/database"
	"github.com/BivekiGroup/bivekinew-sub000/internal/mailer"
	"github.com/BivekiGroup/bivekinew-sub000/internal/middleware"
	"github.com/BivekiGroup/bivekinew-sub000/internal/repositories"
	"github.com/BivekiGroup/bivekinew-sub000/internal/routes"
	"github.com/BivekiGroup/bivekinew-sub000/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	setupLogger(&cfg.Logging)

	if err := database.Connect(&cfg.Database); err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("error closing database", "error", err)
		}
	}()

	if err := database.RunMigrations(&cfg.Database); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	db := database.GetDB()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	codeRepo := repositories.NewOneTimeCodeRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	contactRepo := repositories.NewContactRepository(db)

	// Initialize services
	notifier := buildNotifier(cfg)
	authService := services.NewAuthService(userRepo, codeRepo, sessionRepo, notifier, cfg)

	// Initialize controllers
	authController := controllers.NewAuthController(authService)
	userController := controllers.NewUserController(userRepo)
	projectController := controllers.NewProjectController(projectRepo)
	contactController := controllers.NewContactController(contactRepo)

	// Setup router
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(corsMiddleware(&cfg.CORS))

	authenticate := middleware.Authenticate(cfg, userRepo, sessionRepo)
	routes.SetupRoutes(router, authController, userController, projectController, contactController, authenticate)

	addr := cfg.Server.Host + ":" + strconv.Itoa(cfg.Server.Port)
	go func() {
		slog.Info("server running", "addr", addr)
		if err := router.Run(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to run server: %v", err)
		}
	}()

	waitForShutdown()
}

func setupLogger(cfg *config.LoggingConfig) {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	}
	slog.SetDefault(slog.New(handler))
}

// buildNotifier wires the SMTP mailer, or a log-only notifier when email is
// disabled so local environments can read codes off the console.
func buildNotifier(cfg *config.Config) services.Notifier {
	if cfg.Email.Enabled {
		return mailer.NewSMTPMailer(cfg.Email)
	}
	slog.Warn("email disabled, login codes will be logged instead of sent")
	return logNotifier{}
}

type logNotifier struct{}

func (logNotifier) SendLoginCode(email, code string, expiresAt time.Time) error {
	slog.Info("login code issued", "email", email, "code", code, "expires_at", expiresAt)
	return nil
}

func waitForShutdown() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down server")
}

func corsMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	origins := "*"
	if len(cfg.AllowedOrigins) > 0 {
		origins = strings.Join(cfg.AllowedOrigins, ", ")
	}
	methods := "GET, POST, PUT, PATCH, DELETE, OPTIONS"
	if len(cfg.AllowedMethods) > 0 {
		methods = strings.Join(cfg.AllowedMethods, ", ")
	}
	headers := "Origin, Content-Type, Content-Length, Accept-Encoding, Authorization"
	if len(cfg.AllowedHeaders) > 0 {
		headers = strings.Join(cfg.AllowedHeaders, ", ")
	}

	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origins)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methods)
		c.Writer.Header().Set("Access-Control-Allow-Headers", headers)
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
