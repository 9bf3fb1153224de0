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

	cancelReservationHandler "github.com/m04kA/GolfTee-BookingService/internal/api/handlers/cancel_reservation"
	confirmSettlementHandler "github.com/m04kA/GolfTee-BookingService/internal/api/handlers/confirm_settlement"
	createReservationHandler "github.com/m04kA/GolfTee-BookingService/internal/api/handlers/create_reservation"
	createSettlementHandler "github.com/m04kA/GolfTee-BookingService/internal/api/handlers/create_settlement"
	getClubReservationsHandler "github.com/m04kA/GolfTee-BookingService/internal/api/handlers/get_club_reservations"
	getReservationHandler "github.com/m04kA/GolfTee-BookingService/internal/api/handlers/get_reservation"
	getSettlementHandler "github.com/m04kA/GolfTee-BookingService/internal/api/handlers/get_settlement"
	getUserReservationsHandler "github.com/m04kA/GolfTee-BookingService/internal/api/handlers/get_user_reservations"
	lockSettlementHandler "github.com/m04kA/GolfTee-BookingService/internal/api/handlers/lock_settlement"
	markNoShowHandler "github.com/m04kA/GolfTee-BookingService/internal/api/handlers/mark_no_show"
	quoteTeeTimeHandler "github.com/m04kA/GolfTee-BookingService/internal/api/handlers/quote_tee_time"
	settlementPreviewHandler "github.com/m04kA/GolfTee-BookingService/internal/api/handlers/settlement_preview"
	"github.com/m04kA/GolfTee-BookingService/internal/api/middleware"
	"github.com/m04kA/GolfTee-BookingService/internal/config"
	reservationRepo "github.com/m04kA/GolfTee-BookingService/internal/infra/storage/reservation"
	settlementRepo "github.com/m04kA/GolfTee-BookingService/internal/infra/storage/settlement"
	teeTimeRepo "github.com/m04kA/GolfTee-BookingService/internal/infra/storage/teetime"
	userRepo "github.com/m04kA/GolfTee-BookingService/internal/infra/storage/user"
	clubServiceClient "github.com/m04kA/GolfTee-BookingService/internal/integrations/clubservice"
	paymentServiceClient "github.com/m04kA/GolfTee-BookingService/internal/integrations/paymentservice"
	weatherServiceClient "github.com/m04kA/GolfTee-BookingService/internal/integrations/weatherservice"
	"github.com/m04kA/GolfTee-BookingService/internal/pricing"
	reservationsService "github.com/m04kA/GolfTee-BookingService/internal/service/reservations"
	settlementsService "github.com/m04kA/GolfTee-BookingService/internal/service/settlements"
	cancelReservationUC "github.com/m04kA/GolfTee-BookingService/internal/usecase/cancel_reservation"
	createReservationUC "github.com/m04kA/GolfTee-BookingService/internal/usecase/create_reservation"
	createSettlementUC "github.com/m04kA/GolfTee-BookingService/internal/usecase/create_settlement"
	markNoShowUC "github.com/m04kA/GolfTee-BookingService/internal/usecase/mark_no_show"
	quoteTeeTimeUC "github.com/m04kA/GolfTee-BookingService/internal/usecase/quote_tee_time"
	settlementPreviewUC "github.com/m04kA/GolfTee-BookingService/internal/usecase/settlement_preview"
	"github.com/m04kA/GolfTee-BookingService/pkg/dbmetrics"
	"github.com/m04kA/GolfTee-BookingService/pkg/logger"
	"github.com/m04kA/GolfTee-BookingService/pkg/metrics"
	"github.com/m04kA/GolfTee-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/GolfTee-BookingService/pkg/txmanager"
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

	log.Info("Starting GolfTee-BookingService...")
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
	clubClient := clubServiceClient.NewClient(
		cfg.ClubService.URL,
		time.Duration(cfg.ClubService.Timeout)*time.Second,
		log,
	)
	weatherClient := weatherServiceClient.NewClient(
		cfg.WeatherService.URL,
		time.Duration(cfg.WeatherService.Timeout)*time.Second,
		log,
	)
	paymentClient := paymentServiceClient.NewClient(
		cfg.PaymentService.URL,
		time.Duration(cfg.PaymentService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (ClubService=%s, WeatherService=%s, PaymentService=%s)",
		cfg.ClubService.URL, cfg.WeatherService.URL, cfg.PaymentService.URL)

	// Инициализируем репозитории (с метриками или без)
	var (
		teeTimeRepository     *teeTimeRepo.Repository
		reservationRepository *reservationRepo.Repository
		userRepository        *userRepo.Repository
		settlementRepository  *settlementRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		teeTimeRepository = teeTimeRepo.NewRepository(wrappedDB)
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		userRepository = userRepo.NewRepository(wrappedDB)
		settlementRepository = settlementRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		teeTimeRepository = teeTimeRepo.NewRepository(db)
		reservationRepository = reservationRepo.NewRepository(db)
		userRepository = userRepo.NewRepository(db)
		settlementRepository = settlementRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Движок ценообразования
	pricingEngine := pricing.NewEngine(pricing.Config{
		MinFinalPrice: cfg.Pricing.MinFinalPrice,
	})

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		clubClient,
		log,
	)
	settlementsSvc := settlementsService.NewService(
		settlementRepository,
		clubClient,
		log,
	)

	// Инициализируем use cases
	quoteTeeTimeUseCase := quoteTeeTimeUC.NewUseCase(
		teeTimeRepository,
		userRepository,
		weatherClient,
		pricingEngine,
		log,
	)

	createReservationUseCase := createReservationUC.NewUseCase(
		teeTimeRepository,
		reservationRepository,
		userRepository,
		weatherClient,
		pricingEngine,
		txMgr,
		log,
	)

	cancelReservationUseCase := cancelReservationUC.NewUseCase(
		reservationRepository,
		teeTimeRepository,
		clubClient,
		paymentClient,
		txMgr,
		log,
	)

	markNoShowUseCase := markNoShowUC.NewUseCase(
		reservationRepository,
		userRepository,
		clubClient,
		txMgr,
		log,
	)

	settlementPreviewUseCase := settlementPreviewUC.NewUseCase(
		reservationRepository,
		clubClient,
		log,
	)

	createSettlementUseCase := createSettlementUC.NewUseCase(
		reservationRepository,
		settlementRepository,
		clubClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	quoteTeeTime := quoteTeeTimeHandler.NewHandler(quoteTeeTimeUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(cancelReservationUseCase, log)
	markNoShow := markNoShowHandler.NewHandler(markNoShowUseCase, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationsSvc, log)
	getClubReservations := getClubReservationsHandler.NewHandler(reservationsSvc, log)
	settlementPreview := settlementPreviewHandler.NewHandler(settlementPreviewUseCase, log)
	createSettlement := createSettlementHandler.NewHandler(createSettlementUseCase, log)
	getSettlement := getSettlementHandler.NewHandler(settlementsSvc, log)
	confirmSettlement := confirmSettlementHandler.NewHandler(settlementsSvc, log)
	lockSettlement := lockSettlementHandler.NewHandler(settlementsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
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

	// Котировка цены tee time (пользователь опционально через X-User-ID)
	api.HandleFunc("/tee-times/{teeTimeId}/quote", quoteTeeTime.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// Фиксация неявки (для управляющих клуба)
	protected.HandleFunc("/reservations/{reservationId}/no-show", markNoShow.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Управление клубом (для управляющих) ---
	// Список бронирований клуба
	protected.HandleFunc("/clubs/{clubId}/reservations", getClubReservations.Handle).Methods(http.MethodGet)

	// Предпросмотр расчёта за период
	protected.HandleFunc("/clubs/{clubId}/settlements/preview", settlementPreview.Handle).Methods(http.MethodGet)

	// Создание расчёта за период
	protected.HandleFunc("/clubs/{clubId}/settlements", createSettlement.Handle).Methods(http.MethodPost)

	// --- Расчёты ---
	// Получение расчёта по ID
	protected.HandleFunc("/settlements/{settlementId}", getSettlement.Handle).Methods(http.MethodGet)

	// Подтверждение расчёта
	protected.HandleFunc("/settlements/{settlementId}/confirm", confirmSettlement.Handle).Methods(http.MethodPatch)

	// Блокировка расчёта
	protected.HandleFunc("/settlements/{settlementId}/lock", lockSettlement.Handle).Methods(http.MethodPatch)

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

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
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
