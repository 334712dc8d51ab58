package main

import (
	"context"
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"streetbite_backend/internal/config"
	"streetbite_backend/internal/database"
	"streetbite_backend/internal/metrics"
	"streetbite_backend/internal/middleware"
	"streetbite_backend/internal/repositories"
	"streetbite_backend/internal/router"
	"streetbite_backend/internal/services"
	"streetbite_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/securecookie"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		utils.LogError(err, "Server exited with error")
		log.Fatalf("server: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Initialize Logger
	utils.InitLogger(cfg.Logging.Level, cfg.Logging.Pretty)
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Database
	db, err := database.InitDB(cfg.DB.Driver, cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()
	if cfg.DB.AutoSchema {
		if err := database.ApplySchema(db, cfg.DB.Driver); err != nil {
			return err
		}
	}
	utils.LogInfo("Database initialized", map[string]interface{}{"driver": cfg.DB.Driver, "auto_schema": cfg.DB.AutoSchema})

	sessionSecret := []byte(cfg.Session.Secret)
	if len(sessionSecret) == 0 {
		sessionSecret = securecookie.GenerateRandomKey(32)
		utils.LogWarn("SESSION_SECRET not set; admin sessions will not survive a restart")
	}
	jwtSecret := cfg.JWT.Secret
	if jwtSecret == "" {
		jwtSecret = hex.EncodeToString(securecookie.GenerateRandomKey(32))
		utils.LogWarn("JWT_SECRET not set; bearer tokens will not survive a restart")
	}
	tokens, err := utils.NewJWTManager(jwtSecret, cfg.JWT.TTL)
	if err != nil {
		return err
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	images, err := services.NewDiskImageStore(cfg.Uploads.Dir, cfg.Uploads.MaxBytes)
	if err != nil {
		return err
	}

	// Seed settings and the admin account before serving traffic.
	settingService := services.NewSettingService(repositories.NewSettingRepository(db), db)
	seeded, err := settingService.SeedDefaults()
	if err != nil {
		return err
	}
	authService := services.NewAuthService(repositories.NewAuthRepository(db), db, tokens)
	created, err := authService.EnsureAdmin(cfg.Admin.Username, cfg.Admin.Password)
	if err != nil {
		return err
	}
	utils.LogInfo("Bootstrap complete", map[string]interface{}{"settings_seeded": seeded, "admin_created": created})

	engine := router.New(db, router.Options{
		Sessions:       middleware.NewCookieStore(sessionSecret, cfg.Session.MaxAgeSecs, cfg.Session.CookieSecure),
		Tokens:         tokens,
		Images:         images,
		Metrics:        metrics.New(),
		Calendar:       services.NewCalendar(loc),
		PricingMode:    cfg.PricingMode,
		UploadDir:      cfg.Uploads.Dir,
		MaxUploadBytes: cfg.Uploads.MaxBytes,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		utils.LogInfo("Server starting", map[string]interface{}{"port": cfg.Port, "timezone": loc.String(), "pricing_mode": cfg.PricingMode})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		utils.LogInfo("Shutting down server")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
