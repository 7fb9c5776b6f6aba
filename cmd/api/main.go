package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeyakmania/booking-api/internal/audit"
	"github.com/yeyakmania/booking-api/internal/config"
	dbpkg "github.com/yeyakmania/booking-api/internal/db"
	domainAccount "github.com/yeyakmania/booking-api/internal/domain/account"
	"github.com/yeyakmania/booking-api/internal/events"
	"github.com/yeyakmania/booking-api/internal/infra/cache"
	"github.com/yeyakmania/booking-api/internal/infra/google"
	"github.com/yeyakmania/booking-api/internal/infra/notify"
	infraRepo "github.com/yeyakmania/booking-api/internal/infra/repository"
	"github.com/yeyakmania/booking-api/internal/infra/storage"
	"github.com/yeyakmania/booking-api/internal/jobs"
	"github.com/yeyakmania/booking-api/internal/routes"
	"github.com/yeyakmania/booking-api/internal/timezone"
	"github.com/yeyakmania/booking-api/internal/usecase"
	"github.com/yeyakmania/booking-api/internal/usecase/availability"
	"github.com/yeyakmania/booking-api/internal/validators"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := validators.Register(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// STORAGE
	// ======================================================
	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return err
	}
	if err := dbpkg.Migrate(db); err != nil {
		return err
	}
	store := infraRepo.NewGormStore(db)
	repos := store.Repos()

	var (
		states    domainAccount.StateStore = cache.NewMemoryStates()
		busyCache availability.BusyCache
	)
	if cfg.RedisURL != "" {
		client, err := cache.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer client.Close()
		states = cache.NewRedisStates(client)
		busyCache = cache.NewBusyCache(cache.NewHelper(client, "availability:"))
	} else {
		logger.Warn("REDIS_URL not set, using in-process oauth state and no availability cache")
	}

	// ======================================================
	// GOOGLE
	// ======================================================
	oauthCfg := google.OAuthConfig(cfg.Google)
	sealer := google.NewSealer(cfg.TokenEncryptionKey)
	gcal := google.NewCalendar(oauthCfg, repos.Settings, sealer, logger)

	// ======================================================
	// EVENTS + NOTIFICATIONS
	// ======================================================
	bus := events.NewBus(logger)

	var channels notify.Channels
	if cfg.Mail.ResendAPIKey != "" {
		channels.Mail = notify.NewResendMailer(cfg.Mail.ResendAPIKey, cfg.Mail.From)
	}
	if cfg.SMS.APIKey != "" {
		channels.SMS = notify.NewSolapiSender(cfg.SMS.APIKey, cfg.SMS.APISecret, cfg.SMS.Sender, &http.Client{Timeout: cfg.OutboundTimeout})
	}
	if cfg.Notion.Token != "" {
		channels.Notion = notify.NewNotionClient(cfg.Notion.Token, cfg.Notion.DatabaseID, &http.Client{Timeout: cfg.OutboundTimeout})
	}
	notifier := notify.NewNotifier(repos.Users, repos.Settings, channels, logger, cfg.OutboundTimeout)
	if err := notifier.Register(ctx, bus); err != nil {
		return err
	}

	auditLogs := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogs, logger, 256)

	deps := usecase.Deps{
		Store:           store,
		Calendar:        gcal,
		Events:          bus,
		Audit:           auditDispatcher,
		Logger:          logger,
		Now:             timezone.Now,
		OutboundTimeout: cfg.OutboundTimeout,
		RefundWindow:    cfg.RefundWindow,
	}

	var uploader domainAccount.ImageUploader
	if u := storage.NewS3Uploader(cfg.S3); u != nil {
		uploader = u
	}

	// ======================================================
	// JOBS
	// ======================================================
	scheduler := jobs.NewScheduler(timezone.Location(cfg.Timezone), logger)
	reminders := jobs.NewReminderJob(repos.Reservations, bus, logger, cfg.Timezone, nil)
	err = scheduler.Add("reservation_reminder", cfg.ReminderCron, func(ctx context.Context) error {
		_, err := reminders.Run(ctx)
		return err
	})
	if err != nil {
		return err
	}
	scheduler.Start()

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Infra{
		Deps:      deps,
		BusyCache: busyCache,
		Identity:  google.NewOAuth(oauthCfg),
		States:    states,
		Sealer:    sealer,
		Uploader:  uploader,
		AuditLogs: auditLogs,
		Logger:    logger,
	}, cfg)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server running", "addr", cfg.Addr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	// ======================================================
	// SHUTDOWN
	// ======================================================
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if err := srv.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	scheduler.Stop(shutdownCtx)
	if err := bus.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := auditDispatcher.Close(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	if sqlDB, err := db.DB(); err == nil {
		errs = append(errs, sqlDB.Close())
	}
	return errors.Join(errs...)
}
