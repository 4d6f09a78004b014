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

	cancelEntryHandler "github.com/fairwaylab/GC-LotteryService/internal/api/handlers/cancel_entry"
	commitArrangementHandler "github.com/fairwaylab/GC-LotteryService/internal/api/handlers/commit_arrangement"
	evaluateRestrictionsHandler "github.com/fairwaylab/GC-LotteryService/internal/api/handlers/evaluate_restrictions"
	getArrangementHandler "github.com/fairwaylab/GC-LotteryService/internal/api/handlers/get_arrangement"
	getDayConfigHandler "github.com/fairwaylab/GC-LotteryService/internal/api/handlers/get_day_config"
	getDayEntriesHandler "github.com/fairwaylab/GC-LotteryService/internal/api/handlers/get_day_entries"
	getEntryHandler "github.com/fairwaylab/GC-LotteryService/internal/api/handlers/get_entry"
	getMemberEntriesHandler "github.com/fairwaylab/GC-LotteryService/internal/api/handlers/get_member_entries"
	getWindowsHandler "github.com/fairwaylab/GC-LotteryService/internal/api/handlers/get_windows"
	moveEntryHandler "github.com/fairwaylab/GC-LotteryService/internal/api/handlers/move_entry"
	openDayHandler "github.com/fairwaylab/GC-LotteryService/internal/api/handlers/open_day"
	processLotteryHandler "github.com/fairwaylab/GC-LotteryService/internal/api/handlers/process_lottery"
	recomputeFairnessHandler "github.com/fairwaylab/GC-LotteryService/internal/api/handlers/recompute_fairness"
	resetArrangementHandler "github.com/fairwaylab/GC-LotteryService/internal/api/handlers/reset_arrangement"
	resetLotteryHandler "github.com/fairwaylab/GC-LotteryService/internal/api/handlers/reset_lottery"
	submitEntryHandler "github.com/fairwaylab/GC-LotteryService/internal/api/handlers/submit_entry"
	swapEntriesHandler "github.com/fairwaylab/GC-LotteryService/internal/api/handlers/swap_entries"
	swapSlotContentsHandler "github.com/fairwaylab/GC-LotteryService/internal/api/handlers/swap_slot_contents"
	updateDayConfigHandler "github.com/fairwaylab/GC-LotteryService/internal/api/handlers/update_day_config"
	"github.com/fairwaylab/GC-LotteryService/internal/api/middleware"
	"github.com/fairwaylab/GC-LotteryService/internal/config"
	assignmentlogRepo "github.com/fairwaylab/GC-LotteryService/internal/infra/storage/assignmentlog"
	dayconfigRepo "github.com/fairwaylab/GC-LotteryService/internal/infra/storage/dayconfig"
	entryRepo "github.com/fairwaylab/GC-LotteryService/internal/infra/storage/entry"
	fairnessRepo "github.com/fairwaylab/GC-LotteryService/internal/infra/storage/fairness"
	restrictionRepo "github.com/fairwaylab/GC-LotteryService/internal/infra/storage/restriction"
	slotRepo "github.com/fairwaylab/GC-LotteryService/internal/infra/storage/slot"
	memberServiceClient "github.com/fairwaylab/GC-LotteryService/internal/integrations/memberservice"
	arrangementsService "github.com/fairwaylab/GC-LotteryService/internal/service/arrangements"
	daysService "github.com/fairwaylab/GC-LotteryService/internal/service/days"
	entriesService "github.com/fairwaylab/GC-LotteryService/internal/service/entries"
	restrictionsService "github.com/fairwaylab/GC-LotteryService/internal/service/restrictions"
	openLotteryDayUC "github.com/fairwaylab/GC-LotteryService/internal/usecase/open_lottery_day"
	processLotteryUC "github.com/fairwaylab/GC-LotteryService/internal/usecase/process_lottery"
	recomputeFairnessUC "github.com/fairwaylab/GC-LotteryService/internal/usecase/recompute_fairness"
	resetLotteryUC "github.com/fairwaylab/GC-LotteryService/internal/usecase/reset_lottery"
	submitEntryUC "github.com/fairwaylab/GC-LotteryService/internal/usecase/submit_entry"
	"github.com/fairwaylab/GC-LotteryService/pkg/dbmetrics"
	"github.com/fairwaylab/GC-LotteryService/pkg/logger"
	"github.com/fairwaylab/GC-LotteryService/pkg/metrics"
	"github.com/fairwaylab/GC-LotteryService/pkg/simpletxmanager"
	"github.com/fairwaylab/GC-LotteryService/pkg/txmanager"
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

	log.Info("Starting GC-LotteryService...")
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

	// Инициализируем клиента MemberService
	memberClient := memberServiceClient.NewClient(
		cfg.MemberService.URL,
		time.Duration(cfg.MemberService.Timeout)*time.Second,
		log,
	)
	log.Info("MemberService client initialized (url=%s, timeout=%ds)",
		cfg.MemberService.URL, cfg.MemberService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		entryRepository         *entryRepo.Repository
		slotRepository          *slotRepo.Repository
		restrictionRepository   *restrictionRepo.Repository
		fairnessRepository      *fairnessRepo.Repository
		dayconfigRepository     *dayconfigRepo.Repository
		assignmentlogRepository *assignmentlogRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		entryRepository = entryRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		restrictionRepository = restrictionRepo.NewRepository(wrappedDB)
		fairnessRepository = fairnessRepo.NewRepository(wrappedDB)
		dayconfigRepository = dayconfigRepo.NewRepository(wrappedDB)
		assignmentlogRepository = assignmentlogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		entryRepository = entryRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		restrictionRepository = restrictionRepo.NewRepository(db)
		fairnessRepository = fairnessRepo.NewRepository(db)
		dayconfigRepository = dayconfigRepo.NewRepository(db)
		assignmentlogRepository = assignmentlogRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	entriesSvc := entriesService.NewService(entryRepository, txMgr, log)
	daysSvc := daysService.NewService(dayconfigRepository, log)
	restrictionsSvc := restrictionsService.NewService(
		restrictionRepository,
		dayconfigRepository,
		memberClient,
		log,
	)
	arrangementsSvc := arrangementsService.NewService(
		entryRepository,
		slotRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	submitEntryUseCase := submitEntryUC.NewUseCase(
		entryRepository,
		restrictionRepository,
		dayconfigRepository,
		memberClient,
		txMgr,
		log,
	)
	openLotteryDayUseCase := openLotteryDayUC.NewUseCase(
		slotRepository,
		dayconfigRepository,
		txMgr,
		log,
	)
	processLotteryUseCase := processLotteryUC.NewUseCase(
		entryRepository,
		slotRepository,
		restrictionRepository,
		fairnessRepository,
		dayconfigRepository,
		assignmentlogRepository,
		memberClient,
		txMgr,
		arrangementsSvc,
		log,
	)
	resetLotteryUseCase := resetLotteryUC.NewUseCase(entryRepository, txMgr, arrangementsSvc, log)
	recomputeFairnessUseCase := recomputeFairnessUC.NewUseCase(
		entryRepository,
		slotRepository,
		fairnessRepository,
		dayconfigRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	submitEntry := submitEntryHandler.NewHandler(submitEntryUseCase, log)
	cancelEntry := cancelEntryHandler.NewHandler(entriesSvc, log)
	getEntry := getEntryHandler.NewHandler(entriesSvc, log)
	getDayEntries := getDayEntriesHandler.NewHandler(entriesSvc, log)
	getMemberEntries := getMemberEntriesHandler.NewHandler(entriesSvc, log)
	getWindows := getWindowsHandler.NewHandler(daysSvc, log)
	evaluateRestrictions := evaluateRestrictionsHandler.NewHandler(restrictionsSvc, log)
	openDay := openDayHandler.NewHandler(openLotteryDayUseCase, log)
	processLottery := processLotteryHandler.NewHandler(processLotteryUseCase, log)
	resetLottery := resetLotteryHandler.NewHandler(resetLotteryUseCase, log)
	recomputeFairness := recomputeFairnessHandler.NewHandler(recomputeFairnessUseCase, log)
	getDayConfig := getDayConfigHandler.NewHandler(daysSvc, log)
	updateDayConfig := updateDayConfigHandler.NewHandler(daysSvc, log)
	getArrangement := getArrangementHandler.NewHandler(arrangementsSvc, log)
	moveEntry := moveEntryHandler.NewHandler(arrangementsSvc, log)
	swapEntries := swapEntriesHandler.NewHandler(arrangementsSvc, log)
	swapSlotContents := swapSlotContentsHandler.NewHandler(arrangementsSvc, log)
	commitArrangement := commitArrangementHandler.NewHandler(arrangementsSvc, log)
	resetArrangement := resetArrangementHandler.NewHandler(arrangementsSvc, log)

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

	// Окна предпочтений действующей конфигурации
	api.HandleFunc("/windows", getWindows.Handle).Methods(http.MethodGet)

	// Конфигурация операционного дня
	api.HandleFunc("/config", getDayConfig.Handle).Methods(http.MethodGet)

	// Оценка допустимости окон для состава группы
	api.HandleFunc("/restrictions/evaluate", evaluateRestrictions.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Заявки ---
	protected.HandleFunc("/entries", submitEntry.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/entries/{entryId}", getEntry.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/entries/{entryId}/cancel", cancelEntry.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/members/{memberId}/entries", getMemberEntries.Handle).Methods(http.MethodGet)

	// --- Операционные дни (для операторов клуба) ---
	protected.HandleFunc("/days", openDay.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/days/{date}/entries", getDayEntries.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/days/{date}/process", processLottery.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/days/{date}/reset", resetLottery.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/days/{date}/recompute-fairness", recomputeFairness.Handle).Methods(http.MethodPost)

	// --- Ручная расстановка ---
	protected.HandleFunc("/days/{date}/arrangement", getArrangement.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/days/{date}/arrangement/move", moveEntry.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/days/{date}/arrangement/swap", swapEntries.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/days/{date}/arrangement/swap-slots", swapSlotContents.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/days/{date}/arrangement/commit", commitArrangement.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/days/{date}/arrangement/reset", resetArrangement.Handle).Methods(http.MethodPost)

	// --- Конфигурация (для операторов клуба) ---
	protected.HandleFunc("/config", updateDayConfig.Handle).Methods(http.MethodPut)

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

	log.Info("Server exited")
}
