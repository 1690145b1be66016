package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/telebot.v3"

	"github.com/Fluffbl4/FinH-bot/internal/bot"
	"github.com/Fluffbl4/FinH-bot/internal/config"
	"github.com/Fluffbl4/FinH-bot/internal/logger"
	"github.com/Fluffbl4/FinH-bot/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("error loading configuration: %v", err)
	}
	appLogger := logger.New(cfg.LogLevel)

	storageInstance, err := storage.NewStorage(context.Background(), cfg.DatabaseURL())
	if err != nil {
		appLogger.Fatalf("unable to connect to database: %v", err)
	}
	defer storageInstance.Close()

	if err := storage.Migrate(cfg.DatabaseURL()); err != nil {
		appLogger.Fatalf("unable to prepare schema: %v", err)
	}

	botSettings := telebot.Settings{
		Token:  cfg.BotToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
	}
	botAPI, err := telebot.NewBot(botSettings)
	if err != nil {
		appLogger.Fatalf("error creating bot instance: %v", err)
	}

	bot.RegisterHandlers(botAPI, func(ctx context.Context) (bot.Session, error) {
		return storageInstance.Acquire(ctx)
	}, appLogger)

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		<-stop
		appLogger.Info("shutting down")
		botAPI.Stop()
	}()

	appLogger.Info("bot start")
	botAPI.Start()
}
