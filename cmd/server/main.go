package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"arena-server/internal/agent"
	"arena-server/internal/engine"
	"arena-server/internal/infrastructure/storage"
	"arena-server/internal/network"
	"arena-server/internal/server"
	"arena-server/internal/version"
	"arena-server/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var configPath string
	var arenaPath string
	var withAgent bool
	flag.StringVar(&configPath, "config", "", "Path to YAML config file")
	flag.StringVar(&arenaPath, "arena", "", "Path to YAML arena description (overrides config)")
	flag.BoolVar(&withAgent, "agent", true, "Run the builtin companion controller")
	flag.Parse()

	logger.Log.Info("Starting arena server...")
	logger.Log.Info(version.String())

	cfg := engine.LoadConfig(configPath)
	if arenaPath != "" {
		cfg.ArenaFile = arenaPath
	}

	port := os.Getenv("ARENA_PORT")
	if port == "" {
		port = "8080"
	}

	// 2. Инициализация ядра
	service, err := engine.NewService(cfg)
	if err != nil {
		logger.Log.Fatal("Engine init error: ", err)
	}

	hub := network.NewBroadcaster()
	service.AddObserver(server.NewRelay(service.Sim, hub))

	// Выгрузка журнала матча на диск
	var sink *storage.JournalSink
	if cfg.MatchLogDir != "" {
		var archive *storage.EventArchive
		if cfg.ArchiveLogs {
			archive = storage.NewEventArchive(cfg.MatchLogDir)
		}
		sink = storage.NewJournalSink(cfg.MatchLogDir, archive)
		service.AddObserver(sink)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go service.Run(ctx)

	// Встроенный контроллер дружественного бота
	if withAgent {
		controller := agent.NewController("bot-1", service, hub)
		go controller.Run()
	}

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// 3. Запуск сервера
	srv := server.New(service, hub, port)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error: ", err)
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")

	cancel()
	if sink != nil {
		if err := sink.Close(); err != nil {
			logger.Log.WithError(err).Warn("Journal sink close failed")
		}
	}

	logger.Log.Info("Done.")
}
