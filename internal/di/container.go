package di

import (
	"context"
	"fmt"

	"github.com/GoArmGo/CareerCraft/internal/adapter/storage/minio"
	"github.com/GoArmGo/CareerCraft/internal/app"
	"github.com/GoArmGo/CareerCraft/internal/auth"
	"github.com/GoArmGo/CareerCraft/internal/cache"
	"github.com/GoArmGo/CareerCraft/internal/config"
	"github.com/GoArmGo/CareerCraft/internal/core/ports"
	"github.com/GoArmGo/CareerCraft/internal/database/client"
	"github.com/GoArmGo/CareerCraft/internal/database/postgres"
	"github.com/GoArmGo/CareerCraft/internal/database/storage"
	"github.com/GoArmGo/CareerCraft/internal/handler"
	"github.com/GoArmGo/CareerCraft/internal/logger"
	"github.com/GoArmGo/CareerCraft/internal/rabbitmq"
	"github.com/GoArmGo/CareerCraft/internal/usecase"
)

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
// При ошибке уже открытые ресурсы закрываются.
func BuildApp(ctx context.Context, mode string) (_ *app.App, err error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "careercraft-" + mode,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	var resources []app.Resource
	defer func() {
		if err != nil {
			_ = app.NewApp(cfg, slogger, nil, nil, nil, resources...).Shutdown()
		}
	}()

	// 2. Инициализация PostgreSQL клиента
	dbClient, err := client.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}
	resources = append(resources, app.Resource{Name: "postgres", Closer: dbClient})

	gormDB, err := postgres.NewGormDB(dbClient.DB)
	if err != nil {
		return nil, err
	}

	// 3. Инициализация хранилищ
	jobStorage := storage.NewJobStorage(dbClient.DB, slogger)
	applicationStorage := storage.NewApplicationStorage(dbClient.DB, slogger)
	userStorage := postgres.NewGormUserStorage(gormDB, slogger)

	// 4. Файловое хранилище и кэш
	fileStorage, err := minio.NewMinioClient(ctx, cfg, slogger)
	if err != nil {
		return nil, err
	}

	jobCache := cache.NewRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.JobsTTL, slogger)
	resources = append(resources, app.Resource{Name: "redis", Closer: jobCache})

	// 5. RabbitMQ нужен воркеру и серверу с включенной очисткой резюме
	var (
		cleanupPublisher ports.ResumeCleanupPublisher
		cleanupConsumer  ports.ResumeCleanupConsumer
	)
	if mode == "worker" || cfg.ResumeCleanupEnabled {
		if cfg.RabbitMQ.RabbitMQURL == "" {
			return nil, fmt.Errorf("RABBITMQ_URL is required in %s mode", mode)
		}
		rabbitMQClient, err := rabbitmq.NewClient(cfg, slogger)
		if err != nil {
			return nil, err
		}
		resources = append(resources, app.Resource{Name: "rabbitmq", Closer: rabbitMQClient})
		cleanupConsumer = rabbitMQClient
		if cfg.ResumeCleanupEnabled {
			cleanupPublisher = rabbitMQClient
		}
	}

	// 6. Инициализация бизнес-логики (usecases)
	tokens := auth.NewHMACService(cfg.JWTSecret, cfg.JWTExpiresIn)
	jobUseCase := usecase.NewJobUseCase(jobStorage, jobCache, slogger)
	applicationUseCase := usecase.NewApplicationUseCase(applicationStorage, jobStorage, fileStorage, cleanupPublisher, slogger)
	userUseCase := usecase.NewUserUseCase(userStorage, tokens, slogger)

	// 7. HTTP
	router := app.NewRouter(app.RouterDeps{
		Jobs:           handler.NewJobHandler(jobUseCase, slogger),
		Applications:   handler.NewApplicationHandler(applicationUseCase, cfg.MaxResumeBytes, slogger),
		Users:          handler.NewUserHandler(userUseCase, cfg.CookieName, cfg.JWTExpiresIn, slogger),
		Tokens:         tokens,
		CookieName:     cfg.CookieName,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RequestTimeout: cfg.RequestTimeout,
		Logger:         slogger,
	})

	// 8. Сборка итогового приложения
	application := app.NewApp(cfg, slogger, router, fileStorage, cleanupConsumer, resources...)

	slogger.Info("all dependencies initialized", "resume_cleanup", cleanupPublisher != nil)
	return application, nil
}
