package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"fastfoodbot/internal/api"
	"fastfoodbot/internal/bot"
	"fastfoodbot/internal/config"
	"fastfoodbot/internal/database"
	"fastfoodbot/internal/domain"
	"fastfoodbot/internal/events"
	"fastfoodbot/internal/logging"
	"fastfoodbot/internal/metrics"
	"fastfoodbot/internal/models"
	"fastfoodbot/internal/repository"
	"fastfoodbot/internal/service"
	"fastfoodbot/internal/worker"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func(c io.Closer) { _ = c.Close() })(closer)
	}

	if err := prepareDirectories(cfg, &logger); err != nil {
		return err
	}

	db, err := database.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		logger.Error().Err(err).Msg("Ошибка инициализации базы данных")
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, sessionService := initSessions(ctx, cfg, &logger)

	tgService, err := initTelegram(cfg, &logger)
	if err != nil {
		return err
	}

	// Воркер уведомлений менеджеров: очередь в БД, redis как сигнал
	retryPolicy := worker.RetryPolicy{MaxRetries: 5, InitialDelay: 2 * time.Second, MaxDelay: time.Minute, BackoffFactor: 2}
	notifyWorker := worker.NewNotifyWorker(db, notifySender{tg: tgService}, cfg.Managers, redisClient, retryPolicy,
		log.New(os.Stdout, "notify: ", log.LstdFlags))
	go notifyWorker.Start(ctx)

	eventBus := events.NewEventBus()
	subscribeOrderEvents(eventBus, &logger)

	// Бизнес-сервисы
	catalogService := service.NewCatalogService(db, &logger)
	cartService := service.NewCartService(catalogService, &logger)
	orderService := service.NewOrderService(db, eventBus, notifyWorker, &logger)
	checkoutService := service.NewCheckoutService(sessionService, orderService, &logger)
	userService := service.NewUserService(db, cfg, &logger)
	botMetrics := bot.NewMetrics()

	if cfg.Monitoring.PrometheusEnabled {
		startMetricsServer(cfg.Monitoring.PrometheusPort, &logger)
	}

	if cfg.API.Enabled {
		metrics.Register()
		apiServer := api.NewServer(cfg.API, db, catalogService, cfg.Exports.Path, &logger)
		go func() {
			if err := apiServer.Start(); err != nil {
				logger.Error().Err(err).Msg("API server error")
			}
		}()
		defer func() {
			_ = apiServer.Shutdown(context.Background())
		}()
	}

	telegramBot, err := bot.NewBot(
		tgService, cfg, db, sessionService,
		cartService, checkoutService, orderService, catalogService,
		userService, eventBus, botMetrics, &logger,
	)
	if err != nil {
		logger.Error().Err(err).Msg("Ошибка создания бота")
		return err
	}

	logger.Info().Msg("Бот запущен...")
	telegramBot.Start(ctx)
	telegramBot.Stop()

	logger.Info().Msg("Shutdown complete.")
	return nil
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, err
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, err
	}
	logger := baseLogger.With().Str("component", "bot-main").Logger()

	return cfg, logger, closer, nil
}

func prepareDirectories(cfg *config.Config, logger *zerolog.Logger) error {
	if cfg == nil {
		return os.ErrInvalid
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		logger.Error().Err(err).Msg("Ошибка создания директории для базы данных")
		return err
	}
	if err := os.MkdirAll(cfg.Exports.Path, 0o755); err != nil {
		logger.Error().Err(err).Msg("Ошибка создания директории для экспорта")
		return err
	}
	return nil
}

func initSessions(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*redis.Client, *service.SessionService) {
	var redisClient *redis.Client
	if cfg.Redis.Address != "" {
		redisClient = repository.NewRedisClient(cfg.Redis)
		if errPing := repository.Ping(ctx, redisClient); errPing != nil {
			logger.Warn().Err(errPing).Msg("Redis unavailable")
		}
	}

	ttl := time.Duration(models.DefaultSessionTTL) * time.Second
	primaryRepo := repository.NewRedisSessionRepository(redisClient, ttl)
	fallbackRepo := repository.NewMemorySessionRepository(ttl)
	sessionRepo := repository.NewFailoverSessionRepository(primaryRepo, fallbackRepo, logger)
	return redisClient, service.NewSessionService(sessionRepo, cfg.Bot, logger)
}

func initTelegram(cfg *config.Config, logger *zerolog.Logger) (domain.TelegramService, error) {
	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		logger.Error().Err(err).Msg("Ошибка создания BotAPI")
		return nil, err
	}
	botAPI.Debug = cfg.Telegram.Debug

	return service.NewTelegramService(bot.NewBotWrapper(botAPI)), nil
}

func startMetricsServer(port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		addr := fmt.Sprintf(":%d", port)
		logger.Info().Str("addr", addr).Msg("Metrics endpoint listening")
		if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("Metrics server error")
		}
	}()
}

func subscribeOrderEvents(bus *events.EventBus, logger *zerolog.Logger) {
	logEvent := func(ev *events.Event) error {
		logger.Info().Str("event", ev.Type).RawJSON("payload", ev.Payload).Msg("order event")
		return nil
	}

	bus.Subscribe(events.EventOrderCreated, logEvent)
	bus.Subscribe(events.EventOrderStatusChanged, logEvent)
	bus.Subscribe(events.EventPromoApplied, logEvent)
}

// notifySender адаптирует TelegramService к интерфейсу воркера.
type notifySender struct {
	tg domain.TelegramService
}

func (s notifySender) SendMessage(chatID int64, text string) error {
	_, err := s.tg.SendMessage(chatID, text)
	return err
}
