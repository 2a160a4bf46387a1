package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	auditapp "github.com/portal/backend/internal/application/audit"
	identityapp "github.com/portal/backend/internal/application/identity"
	notificationsapp "github.com/portal/backend/internal/application/notifications"
	projectsapp "github.com/portal/backend/internal/application/projects"
	"github.com/portal/backend/internal/domain/shared"
	"github.com/portal/backend/internal/infrastructure/auth"
	"github.com/portal/backend/internal/infrastructure/cache"
	"github.com/portal/backend/internal/infrastructure/config"
	"github.com/portal/backend/internal/infrastructure/email"
	"github.com/portal/backend/internal/infrastructure/logger"
	"github.com/portal/backend/internal/infrastructure/persistence"
	"github.com/portal/backend/internal/infrastructure/storage"
	"github.com/portal/backend/internal/infrastructure/telemetry"
	"github.com/portal/backend/internal/interfaces/http/handler"
	"github.com/portal/backend/internal/interfaces/http/middleware"
	"github.com/portal/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

//	@title			Client Portal API
//	@version		1.0
//	@description	Agency-client project collaboration portal backend

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting portal backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Tracing (no-op provider when disabled)
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Database
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, mapGormLogLevel(cfg.Log.Level))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	dbTracing := telemetry.DefaultDBTracingConfig()
	dbTracing.Enabled = cfg.Telemetry.Enabled
	if err := telemetry.RegisterDBTracing(db.DB, dbTracing, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	profileRepo := persistence.NewGormProfileRepository(db.DB)
	projectRepo := persistence.NewGormProjectRepository(db.DB)
	documentRepo := persistence.NewGormDocumentRepository(db.DB)
	photoRepo := persistence.NewGormPhotoRepository(db.DB)
	noteRepo := persistence.NewGormNoteRepository(db.DB)
	milestoneRepo := persistence.NewGormMilestoneRepository(db.DB)
	workRepo := persistence.NewGormAdditionalWorkRepository(db.DB)
	changeRequestRepo := persistence.NewGormChangeRequestRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)
	auditRepo := persistence.NewGormAuditRepository(db.DB)

	// Object storage: S3-compatible when configured, stub URLs otherwise
	var objectStorage projectsapp.ObjectStorageService
	if cfg.Storage.Bucket != "" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("Object storage ready",
			zap.String("bucket", cfg.Storage.Bucket),
			zap.String("region", cfg.Storage.Region),
		)
	} else {
		objectStorage = storage.NewStubObjectStorage()
		log.Warn("No storage bucket configured, using stub object storage")
	}

	// Outbound email: Resend when an API key is present, log-only otherwise
	var mailSender notificationsapp.EmailSender
	if cfg.Mail.APIKey != "" {
		resendSender, err := email.NewResendSender(&cfg.Mail, log)
		if err != nil {
			log.Fatal("Failed to initialize mail sender", zap.Error(err))
		}
		mailSender = resendSender
	} else {
		mailSender = email.NewLogSender(log)
		log.Warn("No mail API key configured, email delivery disabled")
	}

	// Digest concurrency guard: Redis when configured, in-process otherwise
	var digestGuard shared.IdempotencyStore
	if cfg.Redis.Host != "" {
		redisStore, err := cache.NewRedisIdempotencyStore(cache.RedisConfig{
			Addr:     cfg.Redis.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		digestGuard = redisStore
		log.Info("Redis connected", zap.String("addr", cfg.Redis.RedisAddr()))
	} else {
		digestGuard = cache.NewInMemoryIdempotencyStore()
		log.Warn("No Redis configured, digest locks are per-process only")
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, profileRepo, jwtService, log)
	profileService := identityapp.NewProfileService(userRepo, profileRepo, log)

	recorder := auditapp.NewRecorder(auditRepo, log)
	invitationService := identityapp.NewInvitationService(userRepo, profileRepo, mailSender, recorder, cfg.Mail.PortalURL, log)
	notifier := notificationsapp.NewNotifier(notificationRepo, userRepo, profileRepo, mailSender, notificationsapp.NotifierConfig{
		AutoEmail: cfg.Notifications.AutoEmail,
		PortalURL: cfg.Mail.PortalURL,
	}, log)

	projectService := projectsapp.NewProjectService(projectRepo, profileRepo, objectStorage, notifier, recorder, log)
	documentService := projectsapp.NewDocumentService(projectRepo, documentRepo, profileRepo, objectStorage, notifier, recorder, log)
	photoService := projectsapp.NewPhotoService(projectRepo, photoRepo, profileRepo, objectStorage, recorder, log)
	noteService := projectsapp.NewNoteService(projectRepo, noteRepo, profileRepo, notifier, recorder, log)
	milestoneService := projectsapp.NewMilestoneService(projectRepo, milestoneRepo, recorder, log)
	workService := projectsapp.NewAdditionalWorkService(projectRepo, workRepo, profileRepo, objectStorage, notifier, recorder, log)
	changeRequestService := projectsapp.NewChangeRequestService(projectRepo, changeRequestRepo, profileRepo, recorder, log)

	notificationService := notificationsapp.NewNotificationService(notificationRepo, log)
	digestService := notificationsapp.NewDigestService(
		projectRepo, documentRepo, photoRepo, notificationRepo, userRepo,
		mailSender, digestGuard, cfg.Digest.LockTTL, recorder, log,
	)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(log))
	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.Use(middleware.Auth(middleware.AuthConfig{
		JWTService:  jwtService,
		ProfileRepo: profileRepo,
		SkipPaths: []string{
			"/api/v1/health",
			"/api/v1/auth/register",
			"/api/v1/auth/login",
		},
		Logger: log,
	}))

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(handler.NewSystemHandler(cfg.App.Name, cfg.App.Env)).
		Register(handler.NewAuthHandler(authService)).
		Register(handler.NewProfileHandler(profileService, invitationService)).
		Register(handler.NewProjectHandler(projectService)).
		Register(handler.NewDocumentHandler(documentService)).
		Register(handler.NewPhotoHandler(photoService)).
		Register(handler.NewNoteHandler(noteService)).
		Register(handler.NewMilestoneHandler(milestoneService)).
		Register(handler.NewAdditionalWorkHandler(workService)).
		Register(handler.NewChangeRequestHandler(changeRequestService)).
		Register(handler.NewNotificationHandler(notificationService, digestService)).
		Register(handler.NewAuditHandler(recorder)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

func mapGormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "debug":
		return gormlogger.Info
	case "warn":
		return gormlogger.Warn
	default:
		return gormlogger.Silent
	}
}
