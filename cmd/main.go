package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Leganyst/operations-board/internal/config"
	"github.com/Leganyst/operations-board/internal/db"
	"github.com/Leganyst/operations-board/internal/httpapi"
	"github.com/Leganyst/operations-board/internal/model"
	"github.com/Leganyst/operations-board/internal/repository"
	"github.com/Leganyst/operations-board/internal/service"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// 1. Загружаем конфиг БД из env и конфиг доски из YAML.
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		logger.Fatal("load db config", zap.Error(err))
	}
	boardCfg, err := config.LoadBoardConfig(os.Getenv("BOARD_CONFIG"))
	if err != nil {
		logger.Fatal("load board config", zap.Error(err))
	}

	// 2. Подключаемся к БД через GORM.
	gormDB, err := db.NewGormDB(dbCfg)
	if err != nil {
		logger.Fatal("init db", zap.Error(err))
	}

	// 3. Миграции моделей.
	if err := model.AutoMigrate(gormDB); err != nil {
		logger.Fatal("auto migrate", zap.Error(err))
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("sql DB", zap.Error(err))
	}
	defer sqlDB.Close()

	// 4. Репозитории (реализации на GORM).
	resourceRepo := repository.NewGormResourceRepository(gormDB)
	eventRepo := repository.NewGormEventRepository(gormDB)

	// 5. Сервисы доски и планирования.
	boardSvc := service.NewBoardService(resourceRepo, eventRepo, boardCfg.VariantZoomLevels())
	schedulingSvc := service.NewSchedulingService(gormDB, resourceRepo, eventRepo, boardCfg.Granularity(), logger)

	// 6. HTTP-сервер.
	resourceHandler := httpapi.NewResourceHandler(boardSvc, logger)
	scheduleHandler := httpapi.NewScheduleHandler(boardSvc, schedulingSvc, logger)

	srv := &http.Server{
		Addr:         boardCfg.Listen,
		Handler:      httpapi.NewRouter(resourceHandler, scheduleHandler, logger),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// 7. Запускаем сервер в горутине.
	go func() {
		logger.Info("operations board listening", zap.String("addr", boardCfg.Listen))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http serve", zap.Error(err))
		}
	}()

	// 8. Грейсфул-шатдаун по сигналу.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down http server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
