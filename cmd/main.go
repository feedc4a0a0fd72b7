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

	cancelAppointmentHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/cancel_appointment"
	createAbsenceHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/create_absence"
	createAppointmentHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/create_appointment"
	deleteAbsenceHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/delete_absence"
	getAbsencesHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_absences"
	getAppointmentHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_appointment"
	getClientAppointmentsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_client_appointments"
	getFreeSlotsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_free_slots"
	getPolicyHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_policy"
	getScheduleHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_schedule"
	getStaffAppointmentsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_staff_appointments"
	getStaffSlotsHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_staff_slots"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/update_appointment_status"
	updatePolicyHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/update_policy"
	updateScheduleHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/update_schedule"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/config"
	absenceRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/absence"
	appointmentRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/appointment"
	policyRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/policy"
	scheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/schedule"
	staffServiceClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/staffservice"
	appointmentsService "github.com/m04kA/SMC-ScheduleService/internal/service/appointments"
	policyService "github.com/m04kA/SMC-ScheduleService/internal/service/policy"
	scheduleService "github.com/m04kA/SMC-ScheduleService/internal/service/schedule"
	createAppointmentUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_appointment"
	getFreeSlotsUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_free_slots"
	getStaffSlotsUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_staff_slots"
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

	// Таймзона салона - в ней перечисляются календарные дни при расчёте слотов
	location, err := time.LoadLocation(cfg.Booking.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Booking.Timezone, err)
	}
	log.Info("Salon timezone: %s", cfg.Booking.Timezone)

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

	// Инициализируем интеграционного клиента
	staffClient := staffServiceClient.NewClient(
		cfg.StaffService.URL,
		time.Duration(cfg.StaffService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (StaffService=%s timeout=%ds)",
		cfg.StaffService.URL, cfg.StaffService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
		absenceRepository     *absenceRepo.Repository
		policyRepository      *policyRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		absenceRepository = absenceRepo.NewRepository(wrappedDB)
		policyRepository = policyRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		appointmentRepository = appointmentRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		absenceRepository = absenceRepo.NewRepository(db)
		policyRepository = policyRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		staffClient,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		absenceRepository,
		staffClient,
		txMgr,
		log,
	)
	policySvc := policyService.NewService(
		policyRepository,
		staffClient,
		log,
	)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		absenceRepository,
		policyRepository,
		staffClient,
		txMgr,
		location,
		log,
	)

	getFreeSlotsUseCase := getFreeSlotsUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		absenceRepository,
		location,
		log,
	)

	getStaffSlotsUseCase := getStaffSlotsUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		absenceRepository,
		policyRepository,
		location,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	getClientAppointments := getClientAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getStaffAppointments := getStaffAppointmentsHandler.NewHandler(appointmentsSvc, location, log)
	getFreeSlots := getFreeSlotsHandler.NewHandler(getFreeSlotsUseCase, location, log)
	getStaffSlots := getStaffSlotsHandler.NewHandler(getStaffSlotsUseCase, location, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)
	getAbsences := getAbsencesHandler.NewHandler(scheduleSvc, location, log)
	createAbsence := createAbsenceHandler.NewHandler(scheduleSvc, log)
	deleteAbsence := deleteAbsenceHandler.NewHandler(scheduleSvc, log)
	getPolicy := getPolicyHandler.NewHandler(policySvc, log)
	updatePolicy := updatePolicyHandler.NewHandler(policySvc, log)

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

	// Свободные интервалы мастера за период
	api.HandleFunc("/staff/{staffId}/free-slots", getFreeSlots.Handle).Methods(http.MethodGet)

	// Квантованные слоты для записи на дату
	api.HandleFunc("/staff/{staffId}/slots", getStaffSlots.Handle).Methods(http.MethodGet)

	// Расписание мастера
	api.HandleFunc("/staff/{staffId}/schedule", getSchedule.Handle).Methods(http.MethodGet)

	// Отсутствия мастера за период
	api.HandleFunc("/staff/{staffId}/absences", getAbsences.Handle).Methods(http.MethodGet)

	// Действующая политика бронирования
	api.HandleFunc("/policy", getPolicy.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Создание записи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// История записей клиента
	protected.HandleFunc("/appointments", getClientAppointments.Handle).Methods(http.MethodGet)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Обновление статуса записи (для мастеров и менеджеров)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// Записи календаря мастера
	protected.HandleFunc("/staff/{staffId}/appointments", getStaffAppointments.Handle).Methods(http.MethodGet)

	// --- Управление расписанием ---
	// Полная замена расписания мастера
	protected.HandleFunc("/staff/{staffId}/schedule", updateSchedule.Handle).Methods(http.MethodPut)

	// Создание отсутствия
	protected.HandleFunc("/staff/{staffId}/absences", createAbsence.Handle).Methods(http.MethodPost)

	// Удаление отсутствия
	protected.HandleFunc("/absences/{absenceId}", deleteAbsence.Handle).Methods(http.MethodDelete)

	// --- Политика бронирования ---
	// Создание или обновление политики
	protected.HandleFunc("/policy", updatePolicy.Handle).Methods(http.MethodPut)

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
