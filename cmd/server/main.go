package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/plandeck/backend/api/handler"
	"github.com/plandeck/backend/internal/config"
	"github.com/plandeck/backend/internal/infrastructure/buffer"
	"github.com/plandeck/backend/internal/infrastructure/monitor"
	pgInfra "github.com/plandeck/backend/internal/infrastructure/postgres"
	redisInfra "github.com/plandeck/backend/internal/infrastructure/redis"
	"github.com/plandeck/backend/internal/middleware"
	"github.com/plandeck/backend/internal/router"
	"github.com/plandeck/backend/internal/services"
	"github.com/plandeck/backend/internal/services/lifecycle"
	"github.com/plandeck/backend/pkg/httpcontext"
	"github.com/plandeck/backend/pkg/logger"
	"github.com/plandeck/backend/repository/postgres"
	redisRepo "github.com/plandeck/backend/repository/redis"
	authUC "github.com/plandeck/backend/usecase/auth"
	boardUC "github.com/plandeck/backend/usecase/board"
	habitUC "github.com/plandeck/backend/usecase/habit"
	profileUC "github.com/plandeck/backend/usecase/profile"
	scheduleUC "github.com/plandeck/backend/usecase/schedule"
	taskUC "github.com/plandeck/backend/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	bufferStore, err := buffer.Open(cfg.Buffer.Path, "buffer")
	if err != nil {
		zapLogger.Fatal("failed to open buffer store", zap.Error(err))
	}
	manager.Register("buffer", func(ctx context.Context) error {
		return bufferStore.Close()
	})

	mon := monitor.New(pool, redisClient, bufferStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	habitRepo := postgres.NewHabitRepository(pool)
	blockRepo := postgres.NewTimeBlockRepository(pool)
	boardRepo := postgres.NewBoardRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, 24*time.Hour)
	analyticsCache := redisRepo.NewAnalyticsCache(redisClient, cfg.Analytics.CacheTTL)

	bufferProcessor := services.NewBufferProcessor(
		bufferStore,
		mon,
		userRepo,
		taskRepo,
		habitRepo,
		zapLogger,
		services.ProcessorConfig{
			Interval:   cfg.Buffer.SyncInterval,
			BatchSize:  50,
			MaxRetries: cfg.Buffer.MaxRetry,
		},
	)
	bufferProcessor.Start()
	manager.Register("buffer_processor", func(ctx context.Context) error {
		bufferProcessor.Stop(ctx)
		return nil
	})

	bufferBridge := services.NewBufferBridge(bufferProcessor)

	workdayLoc, err := time.LoadLocation(cfg.Workday.Timezone)
	if err != nil {
		zapLogger.Warn("invalid workday timezone, falling back to UTC", zap.String("tz", cfg.Workday.Timezone))
		workdayLoc = time.UTC
	}
	workday := scheduleUC.Workday{
		StartHour: cfg.Workday.StartHour,
		EndHour:   cfg.Workday.EndHour,
		Location:  workdayLoc,
	}

	authUseCase := authUC.New(userRepo, sessionRepo, zapLogger)
	profileUseCase := profileUC.New(userRepo, bufferBridge, zapLogger)
	taskUseCase := taskUC.New(taskRepo, bufferBridge, zapLogger)
	habitUseCase := habitUC.New(habitRepo, analyticsCache, bufferBridge, zapLogger)
	scheduleUseCase := scheduleUC.New(blockRepo, taskRepo, workday, zapLogger)
	boardUseCase := boardUC.New(boardRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:     apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger, time.Hour),
		Profile:  apiHandler.NewProfileHandler(profileUseCase, ctxAdapter, zapLogger),
		Task:     apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Habit:    apiHandler.NewHabitHandler(habitUseCase, ctxAdapter, zapLogger),
		Schedule: apiHandler.NewScheduleHandler(scheduleUseCase, ctxAdapter, zapLogger),
		Board:    apiHandler.NewBoardHandler(boardUseCase, ctxAdapter, zapLogger),
		Health:   apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
