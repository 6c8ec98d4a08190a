package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/config"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/search"
	appHTTP "github.com/cmlabs-hris/ems-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/oauth"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/openai"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/ems-backend-go/internal/repository/postgresql"
	redisRepo "github.com/cmlabs-hris/ems-backend-go/internal/repository/redis"
	attendanceService "github.com/cmlabs-hris/ems-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/ems-backend-go/internal/service/auth"
	chatService "github.com/cmlabs-hris/ems-backend-go/internal/service/chat"
	employeeService "github.com/cmlabs-hris/ems-backend-go/internal/service/employee"
	leaveService "github.com/cmlabs-hris/ems-backend-go/internal/service/leave"
	notificationService "github.com/cmlabs-hris/ems-backend-go/internal/service/notification"
	payrollService "github.com/cmlabs-hris/ems-backend-go/internal/service/payroll"
	performanceService "github.com/cmlabs-hris/ems-backend-go/internal/service/performance"
	searchService "github.com/cmlabs-hris/ems-backend-go/internal/service/search"
	sessionService "github.com/cmlabs-hris/ems-backend-go/internal/service/session"
	"github.com/go-chi/httplog/v3"
	goredis "github.com/redis/go-redis/v9"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.LogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "ems-backend"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", cfg.App.Timezone, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Pool.Close()

	if cfg.Database.RunMigrations {
		if err := database.Migrate(ctx, db); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	var redisClient *goredis.Client
	if cfg.Redis.Enabled() {
		redisClient = goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			slog.Warn("Redis unreachable, caching disabled", "addr", cfg.Redis.Addr, "error", err)
			_ = redisClient.Close()
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}
	appCache := cache.New(redisClient, cfg.Redis.CacheTTL)
	hub := sse.NewHub()
	withTx := postgresql.Transactor(db)

	userRepo := postgresql.NewUserRepository(db)
	JWTRepository := postgresql.NewJWTRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	contactRepo := postgresql.NewEmergencyContactRepository(db)
	historyRepo := postgresql.NewEmploymentHistoryRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payrollRunRepo := postgresql.NewPayrollRunRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)
	componentRepo := postgresql.NewSalaryComponentRepository(db)
	reviewRepo := postgresql.NewReviewRepository(db)
	goalRepo := postgresql.NewGoalRepository(db)
	feedbackRepo := postgresql.NewFeedbackRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, cfg.App.Env == "production")
	if err != nil {
		return fmt.Errorf("init jwt: %w", err)
	}

	var googleService oauth.GoogleService
	if cfg.OAuth2Google.Enabled() {
		googleService = oauth.NewGoogleService(
			cfg.OAuth2Google.ClientID,
			cfg.OAuth2Google.ClientSecret,
			cfg.OAuth2Google.RedirectURL,
			cfg.OAuth2Google.Scopes,
			cfg.JWT.Secret,
		)
	}

	notifSvc := notificationService.NewNotificationService(notificationRepo, hub, appCache, notificationService.Config{})
	defer notifSvc.Stop()

	authSvc := serviceAuth.NewAuthService(withTx, userRepo, employeeRepo, JWTService, JWTRepository, googleService, hub)
	employeeSvc := employeeService.NewEmployeeService(withTx, employeeRepo, contactRepo, historyRepo, appCache)
	sessions := sessionService.NewRegistry(authSvc, employeeSvc, hub)
	defer sessions.CloseAll()

	leaveSvc := leaveService.NewLeaveService(withTx, leaveTypeRepo, leaveRequestRepo, leaveBalanceRepo, holidayRepo, notifSvc, appCache)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, appCache, loc)
	payrollSvc := payrollService.NewPayrollService(withTx, payrollRunRepo, payslipRepo, componentRepo, employeeRepo, appCache)
	performanceSvc := performanceService.NewPerformanceService(reviewRepo, goalRepo, feedbackRepo, appCache)
	generator := notificationService.NewGenerator(attendanceRepo, employeeRepo, notifSvc, loc)

	openaiClient := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Timeout)
	chatSvc := chatService.NewChatService(openaiClient, chatService.Options{
		Model:       cfg.OpenAI.Model,
		MaxTokens:   cfg.OpenAI.MaxTokens,
		Temperature: cfg.OpenAI.Temperature,
	})

	var recent search.RecentStore
	if redisClient != nil {
		recent = redisRepo.NewRecentSearchStore(redisClient)
	}
	searchSvc := searchService.NewSearchService(employeeRepo, leaveRequestRepo, notificationRepo, recent)

	scheduler := cron.NewScheduler()
	cron.NewSessionReaper(sessions, cfg.Session.IdleTimeout, cfg.Session.ReapInterval).RegisterJobs(scheduler)
	if cfg.Notifications.CronEnabled {
		cron.NewNotificationJobs(generator, cfg.Notifications.CronInterval).RegisterJobs(scheduler)
	}
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		AllowedOrigins: []string{cfg.App.FrontendURL},
		Logger:         logger,
		LogLevel:       cfg.LogLevel(),
	}, JWTService, sessions, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(JWTService, authSvc, sessions, cfg.App.FrontendURL),
		Employee:     appHTTP.NewEmployeeHandler(employeeSvc),
		Leave:        appHTTP.NewLeaveHandler(leaveSvc),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
		Payroll:      appHTTP.NewPayrollHandler(payrollSvc),
		Performance:  appHTTP.NewPerformanceHandler(performanceSvc),
		Notification: appHTTP.NewNotificationHandler(notifSvc, JWTService),
		Search:       appHTTP.NewSearchHandler(searchSvc),
		Functions:    appHTTP.NewFunctionsHandler(chatSvc, generator),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// Open SSE streams end when the signal context is cancelled.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
	case <-ctx.Done():
		slog.Info("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
