package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	addStaffHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/add_staff"
	cancelAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_appointment"
	createPaymentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_payment"
	createReviewHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_review"
	createServiceHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_service"
	getAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_available_slots"
	getSalonAnalyticsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_salon_analytics"
	getSalonAppointmentsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_salon_appointments"
	getStaffScheduleHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_staff_schedule"
	getUserAppointmentsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_user_appointments"
	listPaymentsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/list_payments"
	listReviewsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/list_reviews"
	listServicesHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/list_services"
	listStaffHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/list_staff"
	replaceStaffScheduleHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/replace_staff_schedule"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_appointment_status"
	updateServiceHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_service"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/config"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	paymentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/payment"
	reviewRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/review"
	salonRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/salon"
	scheduleRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/schedule"
	staffRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notifications"
	"github.com/m04kA/SMC-SalonService/internal/integrations/stripepay"
	userServiceClient "github.com/m04kA/SMC-SalonService/internal/integrations/userservice"
	"github.com/m04kA/SMC-SalonService/internal/service/access"
	appointmentsService "github.com/m04kA/SMC-SalonService/internal/service/appointments"
	catalogService "github.com/m04kA/SMC-SalonService/internal/service/catalog"
	paymentsService "github.com/m04kA/SMC-SalonService/internal/service/payments"
	reviewsService "github.com/m04kA/SMC-SalonService/internal/service/reviews"
	staffService "github.com/m04kA/SMC-SalonService/internal/service/staff"
	createAppointmentUC "github.com/m04kA/SMC-SalonService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
	getSalonAnalyticsUC "github.com/m04kA/SMC-SalonService/internal/usecase/get_salon_analytics"
	"github.com/m04kA/SMC-SalonService/internal/worker/reminders"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/metrics"
	"github.com/m04kA/SMC-SalonService/pkg/tracing"
	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-SalonService...")
	log.Info("Configuration loaded from config.toml")

	// Трейсинг
	shutdownTracing, err := tracing.Setup(context.Background(), tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRatio:  cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("Failed to setup tracing: %v", err)
	}
	if cfg.Tracing.Enabled {
		log.Info("Tracing enabled, exporting to %s", cfg.Tracing.OTLPEndpoint)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Без метрик обёртка только проксирует запросы и держит транзакцию в контексте
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	if cfg.Metrics.Enabled {
		log.Info("Database metrics collection started")
	}

	// Репозитории
	salonRepository := salonRepo.NewRepository(wrappedDB)
	staffRepository := staffRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	paymentRepository := paymentRepo.NewRepository(wrappedDB)
	reviewRepository := reviewRepo.NewRepository(wrappedDB)

	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Интеграции
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	stripeClient := stripepay.NewClient(cfg.Stripe.SecretKey, log)
	publisher := notifications.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.ReminderTopic, log)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds, Kafka topic=%s)",
		cfg.UserService.URL, cfg.UserService.Timeout, cfg.Kafka.ReminderTopic)

	// Роли пользователей определяются только на сервере
	resolver := access.NewResolver(salonRepository, staffRepository, log)

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(catalogRepository, salonRepository, resolver, log)
	staffSvc := staffService.NewService(staffRepository, scheduleRepository, salonRepository, resolver, txMgr, log)
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, resolver, log)
	reviewsSvc := reviewsService.NewService(reviewRepository, appointmentRepository, salonRepository, log)
	paymentsSvc := paymentsService.NewService(
		paymentRepository,
		appointmentRepository,
		stripeClient,
		resolver,
		cfg.Stripe.Currency,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		salonRepository,
		staffRepository,
		catalogRepository,
		scheduleRepository,
		appointmentRepository,
		metricsCollector,
		cfg.Metrics.ServiceName,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		salonRepository,
		staffRepository,
		catalogRepository,
		scheduleRepository,
		txMgr,
		log,
	)
	getSalonAnalyticsUseCase := getSalonAnalyticsUC.NewUseCase(
		appointmentRepository,
		paymentRepository,
		reviewRepository,
		resolver,
		txMgr,
		log,
	)

	// Рассылка напоминаний
	dispatcher := reminders.NewDispatcher(
		appointmentRepository,
		userClient,
		publisher,
		metricsCollector,
		reminders.Config{
			Interval:    time.Duration(cfg.Reminders.IntervalSeconds) * time.Second,
			Lead:        time.Duration(cfg.Reminders.LeadMinutes) * time.Minute,
			BatchSize:   cfg.Reminders.BatchSize,
			ServiceName: cfg.Metrics.ServiceName,
		},
		log,
	)
	if cfg.Reminders.Enabled {
		if err := dispatcher.Start(context.Background()); err != nil {
			log.Fatal("Failed to start reminder dispatcher: %v", err)
		}
	} else {
		log.Info("Reminder dispatcher disabled")
	}

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getSalonAppointments := getSalonAppointmentsHandler.NewHandler(appointmentsSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	listStaff := listStaffHandler.NewHandler(staffSvc, log)
	addStaff := addStaffHandler.NewHandler(staffSvc, log)
	getStaffSchedule := getStaffScheduleHandler.NewHandler(staffSvc, log)
	replaceStaffSchedule := replaceStaffScheduleHandler.NewHandler(staffSvc, log)
	createReview := createReviewHandler.NewHandler(reviewsSvc, log)
	listReviews := listReviewsHandler.NewHandler(reviewsSvc, log)
	createPayment := createPaymentHandler.NewHandler(paymentsSvc, log)
	listPayments := listPaymentsHandler.NewHandler(paymentsSvc, log)
	getSalonAnalytics := getSalonAnalyticsHandler.NewHandler(getSalonAnalyticsUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			log.Warn("GET /healthz - Database unavailable: %v", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации, с rate limit)
	// ============================================================

	public := api.PathPrefix("").Subrouter()

	var rdb *redis.Client
	if cfg.RateLimit.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			// Лимитер сам решает, пропускать ли запросы при недоступном Redis (fail_open)
			log.Warn("Redis is unavailable at %s: %v", cfg.Redis.Addr, err)
		}

		trustedProxies, err := middleware.ParseTrustedProxies(cfg.RateLimit.TrustedProxies)
		if err != nil {
			log.Fatal("Failed to parse trusted proxies: %v", err)
		}

		limiter := middleware.NewRateLimiter(
			middleware.NewRedisCounter(rdb),
			cfg.RateLimit.Limit,
			time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
			cfg.RateLimit.FailOpen,
			trustedProxies,
			log,
		)
		public.Use(limiter.Middleware)
		log.Info("Rate limit enabled: %d requests per %ds (fail_open=%t)",
			cfg.RateLimit.Limit, cfg.RateLimit.WindowSeconds, cfg.RateLimit.FailOpen)
	}

	// Свободные слоты мастера на дату
	public.HandleFunc("/salons/{salonId}/staff/{staffId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Каталог, сотрудники, расписание, отзывы
	public.HandleFunc("/salons/{salonId}/services", listServices.Handle).Methods(http.MethodGet)
	public.HandleFunc("/salons/{salonId}/staff", listStaff.Handle).Methods(http.MethodGet)
	public.HandleFunc("/salons/{salonId}/staff/{staffId}/schedule", getStaffSchedule.Handle).Methods(http.MethodGet)
	public.HandleFunc("/salons/{salonId}/reviews", listReviews.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/appointments", getUserAppointments.Handle).Methods(http.MethodGet)

	// --- Отзывы и оплаты ---
	protected.HandleFunc("/appointments/{appointmentId}/review", createReview.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}/payments", createPayment.Handle).Methods(http.MethodPost)

	// --- Управление салоном ---
	protected.HandleFunc("/salons/{salonId}/appointments", getSalonAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/salons/{salonId}/services", createService.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/salons/{salonId}/services/{serviceId}", updateService.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/salons/{salonId}/staff", addStaff.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/salons/{salonId}/staff/{staffId}/schedule", replaceStaffSchedule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/salons/{salonId}/payments", listPayments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/salons/{salonId}/analytics", getSalonAnalytics.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      otelhttp.NewHandler(r, cfg.Metrics.ServiceName),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Сначала останавливаем фоновую рассылку, чтобы она не писала в закрываемые ресурсы
	dispatcher.Stop()

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if err := publisher.Close(); err != nil {
		log.Error("Failed to close Kafka publisher: %v", err)
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Error("Failed to close Redis client: %v", err)
		}
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to shutdown tracing: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)
	if cfg.Metrics.Enabled {
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}
