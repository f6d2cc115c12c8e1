package main

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/kontestis/evaluator/internal/config"
	"github.com/kontestis/evaluator/internal/ops"
	"github.com/kontestis/evaluator/internal/scheduler"
)

type opsServerHandle struct {
	server *http.Server
	logger *logrus.Logger
}

func startOpsServer(cfg *config.Config, sched *scheduler.Scheduler, redisClient *redis.Client, logger *logrus.Logger) *opsServerHandle {
	server := ops.NewServer(cfg.OpsBindAddress, uint8(cfg.MaxEvaluations), sched, redisClient, cfg.RedisQueueKey, logger)

	go func() {
		logger.Infof("ops server listening on %s", cfg.OpsBindAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("ops server failed")
		}
	}()

	return &opsServerHandle{server: server, logger: logger}
}

func (h *opsServerHandle) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.server.Shutdown(ctx); err != nil {
		h.logger.WithError(err).Warn("ops server forced to shutdown")
	}
}
