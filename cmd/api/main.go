package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-manager/internal/audit"
	"github.com/BruksfildServices01/salon-manager/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-manager/internal/db"
	"github.com/BruksfildServices01/salon-manager/internal/identity"
	infraRepo "github.com/BruksfildServices01/salon-manager/internal/infra/repository"
	"github.com/BruksfildServices01/salon-manager/internal/logger"
	"github.com/BruksfildServices01/salon-manager/internal/middleware"
	"github.com/BruksfildServices01/salon-manager/internal/routes"
	"github.com/BruksfildServices01/salon-manager/internal/session"
	"github.com/BruksfildServices01/salon-manager/internal/storage"
	"github.com/BruksfildServices01/salon-manager/internal/timezone"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger ainda não existe
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatal("database", zap.Error(err))
	}

	rdb, err := dbpkg.NewRedis(ctx, cfg)
	if err != nil {
		log.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	sessions := session.NewStore(rdb)
	limiter := session.NewLimiter(rdb, cfg.LoginMaxAttempts, cfg.LoginWindow)

	deps := routes.Deps{
		DB:       db,
		Cfg:      cfg,
		Log:      log,
		Sessions: sessions,
		Limiter:  limiter,
		Clock:    timezone.NewClock(cfg.Timezone),
		Loc:      timezone.Location(cfg.Timezone),
	}

	// ======================================================
	// 🔐 PROVEDOR DE IDENTIDADE
	// ======================================================
	switch cfg.AuthProvider {
	case config.AuthProviderFirebase:
		client, err := identity.InitializeFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatal("firebase", zap.Error(err))
		}
		fb := identity.NewFirebase(client, infraRepo.NewUserGormRepository(db))
		deps.Authenticator = fb
		deps.Provider = fb
	default:
		local := identity.NewLocal(cfg.JWTSecret, sessions)
		deps.Authenticator = local
		deps.Provider = local
		deps.Passwords = local
		deps.Issuer = local
	}

	if cfg.StorageEnabled() {
		deps.Storage = storage.NewS3(storage.Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
	} else {
		log.Warn("S3_BUCKET not set, uploads disabled")
	}

	dispatcher := audit.NewDispatcher(audit.New(db), log, cfg.AuditQueueSize)
	deps.Audit = dispatcher

	// ======================================================
	// 🌍 HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.Recovery(log),
		middleware.RequestLogger(log),
		middleware.CORSMiddleware(cfg.CORSOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server running",
			zap.String("addr", cfg.Addr()),
			zap.String("auth_provider", cfg.AuthProvider),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}

	// drena a fila de auditoria antes de sair
	dispatcher.Close()
}
