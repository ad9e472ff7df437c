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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	blockScheduleHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/block_schedule"
	cancelBookingHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/cancel_booking"
	confirmReservationHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/confirm_reservation"
	createBookingHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/create_booking"
	generateScheduleHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/generate_schedule"
	generateWeekHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/generate_week"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_available_slots"
	getBayStatisticsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_bay_statistics"
	getBookingHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_booking"
	getBranchBookingsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_branch_bookings"
	getCustomerBookingsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_customer_bookings"
	getDayScheduleHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_day_schedule"
	releaseReservationHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/release_reservation"
	reserveSlotsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/reserve_slots"
	updateBookingStatusHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/config"
	bookingRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/slot"
	branchServiceClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/branchservice"
	customerServiceClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/customerservice"
	allocationService "github.com/m04kA/SMC-ScheduleService/internal/service/allocation"
	bookingsService "github.com/m04kA/SMC-ScheduleService/internal/service/bookings"
	scheduleService "github.com/m04kA/SMC-ScheduleService/internal/service/schedule"
	createBookingUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_booking"
	generateScheduleUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/generate_schedule"
	generateWeekUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/generate_week"
	getAvailableSlotsUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
	"github.com/m04kA/SMC-ScheduleService/pkg/metrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ScheduleService/pkg/txmanager"
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

	log.Info("Starting SMC-ScheduleService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем интеграционных клиентов
	branchClient := branchServiceClient.NewClient(
		cfg.BranchService.URL,
		time.Duration(cfg.BranchService.Timeout)*time.Second,
		time.Duration(cfg.BranchService.CacheTTLSeconds)*time.Second,
		log,
	)
	customerClient := customerServiceClient.NewClient(
		cfg.CustomerService.URL,
		time.Duration(cfg.CustomerService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (BranchService=%s timeout=%ds, CustomerService=%s timeout=%ds)",
		cfg.BranchService.URL, cfg.BranchService.Timeout, cfg.CustomerService.URL, cfg.CustomerService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		slotRepository    *slotRepo.Repository
		bookingRepository *bookingRepo.Repository
	)

	// Интерфейс transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	// Метрики бизнес-логики: заглушки, когда сбор метрик выключен
	var allocMetrics allocationService.Metrics = allocationService.NopMetrics{}
	var genMetrics generateScheduleUC.Metrics = generateScheduleUC.NopMetrics{}

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		slotRepository = slotRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
		allocMetrics = metricsCollector
		genMetrics = metricsCollector
	} else {
		slotRepository = slotRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	allocator := allocationService.NewService(
		slotRepository,
		txMgr,
		allocMetrics,
		log,
		cfg.Allocator.MaxReserveAttempts,
		time.Duration(cfg.Allocator.ReservationTTLMinutes)*time.Minute,
	)
	scheduleSvc := scheduleService.NewService(slotRepository, log)
	bookingSvc := bookingsService.NewService(bookingRepository, slotRepository, txMgr, log)

	// Инициализируем use cases
	generateScheduleUseCase := generateScheduleUC.NewUseCase(
		slotRepository,
		branchClient,
		txMgr,
		genMetrics,
		log,
	)
	generateWeekUseCase := generateWeekUC.NewUseCase(
		generateScheduleUseCase,
		branchClient,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		slotRepository,
		branchClient,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		allocator,
		generateScheduleUseCase,
		branchClient,
		customerClient,
		log,
	)

	// Инициализируем handlers
	generateSchedule := generateScheduleHandler.NewHandler(generateScheduleUseCase, log)
	generateWeek := generateWeekHandler.NewHandler(generateWeekUseCase, log)
	getBayStatistics := getBayStatisticsHandler.NewHandler(scheduleSvc, log)
	getDaySchedule := getDayScheduleHandler.NewHandler(scheduleSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	blockSchedule := blockScheduleHandler.NewHandler(scheduleSvc, log)
	reserveSlots := reserveSlotsHandler.NewHandler(allocator, log)
	confirmReservation := confirmReservationHandler.NewHandler(allocator, log)
	releaseReservation := releaseReservationHandler.NewHandler(allocator, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	getBranchBookings := getBranchBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Rate limit middleware (если включен)
	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		r.Use(rateLimiter.Middleware)
		log.Info("Rate limit middleware enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Расписание дня филиала
	api.HandleFunc("/branches/{branch_id}/schedule", getDaySchedule.Handle).Methods(http.MethodGet)

	// Доступные варианты начала обслуживания
	api.HandleFunc("/branches/{branch_id}/availability", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Статистика слотов бокса
	api.HandleFunc("/bays/{bay_id}/statistics", getBayStatistics.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Генерация расписания ---
	protected.HandleFunc("/branches/{branch_id}/schedule/generate", generateSchedule.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/branches/{branch_id}/schedule/generate-week", generateWeek.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/branches/{branch_id}/schedule/block", blockSchedule.Handle).Methods(http.MethodPost)

	// --- Резервирование слотов (двухфазный протокол) ---
	protected.HandleFunc("/reservations", reserveSlots.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{token}/confirm", confirmReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{token}", releaseReservation.Handle).Methods(http.MethodDelete)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{booking_id}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{booking_id}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{booking_id}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// --- История бронирований ---
	protected.HandleFunc("/customers/{customer_id}/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/branches/{branch_id}/bookings", getBranchBookings.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
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

	// Останавливаем фоновые процессы
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}
	if rateLimiter != nil {
		rateLimiter.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
