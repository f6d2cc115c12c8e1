package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/kontestis/evaluator/internal/compiler"
	"github.com/kontestis/evaluator/internal/config"
	"github.com/kontestis/evaluator/internal/evaluate"
	"github.com/kontestis/evaluator/internal/isolate"
	"github.com/kontestis/evaluator/internal/ops"
	"github.com/kontestis/evaluator/internal/queue"
	"github.com/kontestis/evaluator/internal/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	logger := logrus.New()
	logger.SetLevel(cfg.GetLogLevel())
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	logger.Info("starting evaluator worker")

	launcher := isolate.NewLauncher(cfg.IsolatePath, cfg.RunWithCgroups, cfg.RunWithQuotas)
	driver := compiler.NewDriver(launcher)
	sched := scheduler.New(uint8(cfg.MaxEvaluations))

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.WithError(err).Fatal("invalid redis_url")
	}
	redisClient := redis.NewClient(redisOpts)

	runtime := &queue.Runtime{
		Redis:            redisClient,
		QueueKey:         cfg.RedisQueueKey,
		Scheduler:        sched,
		Deps:             evaluate.Deps{Launcher: launcher, Compiler: driver},
		ExitOnEmptyQueue: cfg.ExitOnEmptyQueue,
		Logger:           logger.WithField("component", "queue"),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var opsServer *opsServerHandle
	if cfg.OpsBindAddress != "" {
		opsServer = startOpsServer(cfg, sched, redisClient, logger)
	}

	runErr := runtime.Run(ctx)

	if opsServer != nil {
		opsServer.shutdown()
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		logger.WithError(runErr).Error("queue runtime exited with error")
		os.Exit(1)
	}

	logger.Info("evaluator worker exited cleanly")
}
