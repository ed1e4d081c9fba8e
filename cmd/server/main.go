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

	"github.com/joho/godotenv"

	"github.com/ledgerline/backend/internal/config"
	"github.com/ledgerline/backend/internal/handler"
	"github.com/ledgerline/backend/internal/logging"
	"github.com/ledgerline/backend/internal/notify"
	"github.com/ledgerline/backend/internal/repository"
	"github.com/ledgerline/backend/internal/scheduler"
	"github.com/ledgerline/backend/internal/service"
	"github.com/ledgerline/backend/internal/storage"
	"github.com/ledgerline/backend/pkg/auth"
)

func main() {
	_ = godotenv.Load()
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("invalid configuration", "error", err)
	}

	pool, err := repository.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("failed to connect to database", "error", err)
	}
	defer pool.Close()

	contactRepo := repository.NewPgContactRepository(pool)
	bookingRepo := repository.NewPgBookingRepository(pool)
	clientRepo := repository.NewPgClientRepository(pool)
	blogRepo := repository.NewPgBlogRepository(pool)
	settingsRepo := repository.NewPgSettingsRepository(pool)
	statsRepo := repository.NewPgStatsRepository(pool)

	// Without SMTP, notifications are disabled.
	var notifier notify.Notifier = notify.Nop{}
	var outbox *notify.Async
	if cfg.SMTP.Enabled() {
		outbox = notify.NewAsync(notify.NewMailer(cfg.SMTP))
		notifier = outbox
	} else {
		slog.Warn("SMTP not configured, e-mail notifications disabled")
	}

	settingsService := service.NewSettingsService(settingsRepo)
	contactService := service.NewContactService(contactRepo, notifier, settingsService)
	bookingService := service.NewBookingService(bookingRepo, notifier, settingsService)
	clientService := service.NewClientService(clientRepo, contactRepo)
	blogService := service.NewBlogService(blogRepo)
	analyticsService := service.NewAnalyticsService(statsRepo)

	sessionSecret := auth.SessionSecretBytes(cfg.SessionSecret)

	h := handler.New(pool, cfg.FrontendURL)
	contactHandler := handler.NewContactHandler(contactService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	clientHandler := handler.NewClientHandler(clientService)
	blogHandler := handler.NewBlogHandler(blogService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	toolsHandler := handler.NewToolsHandler()
	uploadHandler := handler.NewUploadHandler(storage.NewLocalStorage(cfg.UploadDir, "/uploads"))
	authHandler := handler.NewAuthHandler(auth.Credentials{
		Email:        cfg.AdminEmail,
		PasswordHash: cfg.AdminPasswordHash,
	}, sessionSecret, cfg.SecureCookies())

	limiter := handler.NewRateLimiter(cfg.RateLimitPerMinute, cfg.TrustedProxies)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)
	mux.HandleFunc("GET /api/settings", settingsHandler.Public)
	mux.Handle("GET /uploads/", handler.ServeUploads("/uploads/", cfg.UploadDir))

	// Public forms, rate limited per IP
	mux.Handle("POST /api/contact", limiter.Limit("contact", contactHandler.Submit))
	mux.Handle("POST /api/bookings", limiter.Limit("booking", bookingHandler.Submit))
	mux.Handle("POST /api/admin/login", limiter.Limit("login", authHandler.Login))
	mux.HandleFunc("POST /api/admin/logout", authHandler.Logout)

	// Blog (published posts only)
	mux.HandleFunc("GET /api/blog", blogHandler.List)
	mux.HandleFunc("GET /api/blog/{slug}", blogHandler.GetBySlug)

	// Calculators
	mux.HandleFunc("POST /api/tools/corporate-tax", toolsHandler.CorporateTax)
	mux.HandleFunc("POST /api/tools/vat", toolsHandler.VAT)
	mux.HandleFunc("POST /api/tools/cash-flow", toolsHandler.CashFlow)
	mux.Handle("POST /api/tools/cash-flow/export", limiter.Limit("export", toolsHandler.CashFlowExport))
	mux.HandleFunc("POST /api/tools/setup-cost", toolsHandler.SetupCost)
	mux.HandleFunc("GET /api/tools/setup-cost/catalog", toolsHandler.SetupCostCatalog)
	mux.HandleFunc("POST /api/tools/roi", toolsHandler.ROI)

	// Admin endpoints
	wrapAuth := func(next http.HandlerFunc) http.Handler {
		if cfg.AuthRequired {
			return auth.RequireAdmin(sessionSecret)(next)
		}
		return auth.DevAuth(next)
	}
	mux.Handle("GET /api/admin/session", wrapAuth(authHandler.Session))

	mux.Handle("GET /api/admin/contacts", wrapAuth(contactHandler.AdminList))
	mux.Handle("GET /api/admin/contacts/{id}", wrapAuth(contactHandler.AdminGet))
	mux.Handle("PATCH /api/admin/contacts/{id}/status", wrapAuth(contactHandler.UpdateStatus))
	mux.Handle("DELETE /api/admin/contacts/{id}", wrapAuth(contactHandler.Delete))
	mux.Handle("POST /api/admin/contacts/{id}/convert", wrapAuth(clientHandler.ConvertContact))

	mux.Handle("GET /api/admin/bookings", wrapAuth(bookingHandler.AdminList))
	mux.Handle("GET /api/admin/bookings/agenda", wrapAuth(bookingHandler.Agenda))
	mux.Handle("GET /api/admin/bookings/{id}", wrapAuth(bookingHandler.AdminGet))
	mux.Handle("PATCH /api/admin/bookings/{id}/status", wrapAuth(bookingHandler.UpdateStatus))
	mux.Handle("PUT /api/admin/bookings/{id}", wrapAuth(bookingHandler.Reschedule))
	mux.Handle("DELETE /api/admin/bookings/{id}", wrapAuth(bookingHandler.Delete))

	mux.Handle("GET /api/admin/clients", wrapAuth(clientHandler.List))
	mux.Handle("POST /api/admin/clients", wrapAuth(clientHandler.Create))
	mux.Handle("GET /api/admin/clients/{id}", wrapAuth(clientHandler.Get))
	mux.Handle("PUT /api/admin/clients/{id}", wrapAuth(clientHandler.Update))
	mux.Handle("DELETE /api/admin/clients/{id}", wrapAuth(clientHandler.Delete))

	mux.Handle("GET /api/admin/blog", wrapAuth(blogHandler.AdminList))
	mux.Handle("POST /api/admin/blog", wrapAuth(blogHandler.Create))
	mux.Handle("GET /api/admin/blog/{id}", wrapAuth(blogHandler.AdminGet))
	mux.Handle("PUT /api/admin/blog/{id}", wrapAuth(blogHandler.Update))
	mux.Handle("DELETE /api/admin/blog/{id}", wrapAuth(blogHandler.Delete))
	mux.Handle("POST /api/admin/uploads", wrapAuth(uploadHandler.Upload))
	mux.Handle("DELETE /api/admin/uploads/{key...}", wrapAuth(uploadHandler.Delete))

	mux.Handle("GET /api/admin/stats", wrapAuth(analyticsHandler.Stats))
	mux.Handle("GET /api/admin/settings", wrapAuth(settingsHandler.AdminGet))
	mux.Handle("PUT /api/admin/settings", wrapAuth(settingsHandler.Update))

	digest, err := scheduler.New(cfg.DigestSchedule, scheduler.NewDigestJob(bookingService, notifier, settingsService))
	if err != nil {
		logging.Fatal("failed to schedule daily digest", "error", err)
	}
	digest.Start()

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler.RequestLogger(h.CORS(handler.SecurityHeaders(mux))),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "auth_required", cfg.AuthRequired)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	digest.Stop(ctx)
	limiter.Stop()
	if outbox != nil && !outbox.Drain(ctx) {
		slog.Warn("shutdown timed out with notifications still sending")
	}
	slog.Info("server stopped")
}
